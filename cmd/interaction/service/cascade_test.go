package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTree maps a comment id to its direct replies.
type fakeTree map[int64][]int64

func (ft fakeTree) lister() childLister {
	return func(parentIds []int64) ([]int64, error) {
		var out []int64
		for _, p := range parentIds {
			out = append(out, ft[p]...)
		}
		return out, nil
	}
}

func TestCollectSubtree(t *testing.T) {
	t.Run("leaf comment", func(t *testing.T) {
		ids, err := collectSubtree(1, fakeTree{}.lister())
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids)
	})

	t.Run("direct replies only", func(t *testing.T) {
		tree := fakeTree{1: {2, 3, 4}}
		ids, err := collectSubtree(1, tree.lister())
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1, 2, 3, 4}, ids)
	})

	t.Run("grandchildren are collected", func(t *testing.T) {
		tree := fakeTree{
			1: {2, 3},
			2: {4},
			4: {5, 6},
		}
		ids, err := collectSubtree(1, tree.lister())
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5, 6}, ids)
	})

	t.Run("deep chain", func(t *testing.T) {
		tree := fakeTree{}
		for i := int64(1); i < 50; i++ {
			tree[i] = []int64{i + 1}
		}
		ids, err := collectSubtree(1, tree.lister())
		require.NoError(t, err)
		assert.Len(t, ids, 50)
	})

	t.Run("siblings stay untouched", func(t *testing.T) {
		// Deleting comment 2 must not pick up its sibling 3 or the
		// sibling's replies.
		tree := fakeTree{
			1: {2, 3},
			2: {4},
			3: {5},
		}
		ids, err := collectSubtree(2, tree.lister())
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{2, 4}, ids)
	})

	t.Run("lister errors propagate", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := collectSubtree(1, func([]int64) ([]int64, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestValidateCommentContent(t *testing.T) {
	assert.Error(t, validateCommentContent(""))
	assert.Error(t, validateCommentContent("   "))
	assert.NoError(t, validateCommentContent("nice video"))

	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, validateCommentContent(string(long)))
	assert.NoError(t, validateCommentContent(string(long[:1000])))
}
