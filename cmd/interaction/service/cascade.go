package service

// childLister resolves the direct replies of a batch of comments.
type childLister func(parentIds []int64) ([]int64, error)

// collectSubtree gathers a comment and every descendant reply, level by
// level, so deleting a thread never orphans grandchildren.
func collectSubtree(rootId int64, children childLister) ([]int64, error) {
	ids := []int64{rootId}
	frontier := []int64{rootId}
	for len(frontier) > 0 {
		next, err := children(frontier)
		if err != nil {
			return nil, err
		}
		ids = append(ids, next...)
		frontier = next
	}
	return ids, nil
}
