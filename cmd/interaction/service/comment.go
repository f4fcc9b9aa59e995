package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vistream/vistream/cmd/interaction/dal/db"
	"github.com/vistream/vistream/cmd/model"
	userdb "github.com/vistream/vistream/cmd/user/dal/db"
	videodb "github.com/vistream/vistream/cmd/video/dal/db"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/lock"
	"github.com/vistream/vistream/pkg/pagination"
)

type CommentService struct {
	ctx context.Context
}

func NewCommentService(ctx context.Context) *CommentService {
	return &CommentService{ctx: ctx}
}

// CommentAuthor is the slice of the user row shown next to a comment.
type CommentAuthor struct {
	UserId      int64  `json:"user_id"`
	Username    string `json:"username"`
	ChannelName string `json:"channel_name"`
	AvatarUrl   string `json:"avatar_url"`
}

// CommentView is a comment hydrated with its author, like count and,
// for top-level comments, its direct replies.
type CommentView struct {
	CommentId int64          `json:"comment_id"`
	VideoId   int64          `json:"video_id"`
	ParentId  int64          `json:"parent_id"`
	Content   string         `json:"content"`
	IsEdited  bool           `json:"is_edited"`
	CreatedAt string         `json:"created_at"`
	Author    *CommentAuthor `json:"author"`
	LikeCount int64          `json:"like_count"`
	Replies   []*CommentView `json:"replies,omitempty"`
}

func validateCommentContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errno.ParamErr.WithMessage("comment content is empty")
	}
	if len(content) > constants.MaxCommentLength {
		return errno.ParamErr.WithMessage("comment content too long")
	}
	return nil
}

// AddComment posts a comment or a reply. A reply's parent must exist and
// belong to the same video.
func (s *CommentService) AddComment(videoId, userId, parentId int64, content string) (*model.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}
	video, err := videodb.GetVideo(s.ctx, videoId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	if video == nil || video.IsBlocked {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}
	if parentId != constants.RootCommentParentID {
		parent, err := db.GetComment(s.ctx, parentId)
		if err != nil {
			return nil, errno.ConvertErr(err)
		}
		if parent == nil {
			return nil, errno.NotFoundErr.WithMessage("parent comment not found")
		}
		if parent.VideoId != videoId {
			return nil, errno.ParamErr.WithMessage("parent comment belongs to another video")
		}
	}

	now := time.Now().Format(constants.TimeFormat)
	comment := &model.Comment{
		VideoId:   videoId,
		UserId:    userId,
		ParentId:  parentId,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.CreateComment(s.ctx, comment); err != nil {
		return nil, errno.ConvertErr(err)
	}
	return comment, nil
}

// EditComment rewrites the text of the caller's own comment and marks it
// edited.
func (s *CommentService) EditComment(commentId, userId int64, content string) (*model.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}
	comment, err := db.GetComment(s.ctx, commentId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	if comment == nil {
		return nil, errno.NotFoundErr.WithMessage("comment not found")
	}
	if comment.UserId != userId {
		return nil, errno.ForbiddenErr.WithMessage("not the comment author")
	}
	now := time.Now().Format(constants.TimeFormat)
	if err := db.UpdateCommentContent(s.ctx, commentId, strings.TrimSpace(content), now); err != nil {
		return nil, errno.ConvertErr(err)
	}
	comment.Content = strings.TrimSpace(content)
	comment.IsEdited = true
	comment.UpdatedAt = now
	return comment, nil
}

// DeleteComment removes the caller's own comment and its whole reply
// subtree.
func (s *CommentService) DeleteComment(commentId, userId int64) (int64, error) {
	comment, err := db.GetComment(s.ctx, commentId)
	if err != nil {
		return 0, errno.ConvertErr(err)
	}
	if comment == nil {
		return 0, errno.NotFoundErr.WithMessage("comment not found")
	}
	if comment.UserId != userId {
		return 0, errno.ForbiddenErr.WithMessage("not the comment author")
	}

	ids, err := collectSubtree(commentId, func(parentIds []int64) ([]int64, error) {
		return db.GetChildCommentIds(s.ctx, parentIds)
	})
	if err != nil {
		return 0, errno.ConvertErr(err)
	}
	if err := db.DeleteCommentLikesByComments(s.ctx, ids); err != nil {
		return 0, errno.ConvertErr(err)
	}
	if err := db.DeleteCommentsByIds(s.ctx, ids); err != nil {
		return 0, errno.ConvertErr(err)
	}
	logrus.Infof("comment %d deleted with %d descendants", commentId, len(ids)-1)
	return int64(len(ids)), nil
}

// ListComments pages a video's top-level comments, newest first, each
// carrying its direct replies oldest first.
func (s *CommentService) ListComments(videoId int64, p pagination.Params) ([]*CommentView, pagination.Meta, error) {
	video, err := videodb.GetVideo(s.ctx, videoId)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}
	if video == nil || video.IsBlocked {
		return nil, pagination.Meta{}, errno.NotFoundErr.WithMessage("video not found")
	}

	topLevel, total, err := db.ListTopLevelByVideo(s.ctx, videoId, p)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}
	parentIds := make([]int64, 0, len(topLevel))
	for _, c := range topLevel {
		parentIds = append(parentIds, c.CommentId)
	}
	replies, err := db.ListRepliesByParents(s.ctx, parentIds)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}

	all := append(append([]*model.Comment{}, topLevel...), replies...)
	authors, err := s.loadAuthors(all)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	likeCounts, err := s.loadLikeCounts(all)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	views := make([]*CommentView, 0, len(topLevel))
	byId := make(map[int64]*CommentView, len(topLevel))
	for _, c := range topLevel {
		v := commentView(c, authors, likeCounts)
		views = append(views, v)
		byId[c.CommentId] = v
	}
	for _, r := range replies {
		if parent, ok := byId[r.ParentId]; ok {
			parent.Replies = append(parent.Replies, commentView(r, authors, likeCounts))
		}
	}
	return views, pagination.NewMeta(p, total), nil
}

func commentView(c *model.Comment, authors map[int64]*CommentAuthor, likes map[int64]int64) *CommentView {
	return &CommentView{
		CommentId: c.CommentId,
		VideoId:   c.VideoId,
		ParentId:  c.ParentId,
		Content:   c.Content,
		IsEdited:  c.IsEdited,
		CreatedAt: c.CreatedAt,
		Author:    authors[c.UserId],
		LikeCount: likes[c.CommentId],
	}
}

func (s *CommentService) loadAuthors(comments []*model.Comment) (map[int64]*CommentAuthor, error) {
	seen := make(map[int64]struct{}, len(comments))
	userIds := make([]int64, 0, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.UserId]; ok {
			continue
		}
		seen[c.UserId] = struct{}{}
		userIds = append(userIds, c.UserId)
	}
	users, err := userdb.GetUsersByIds(s.ctx, userIds)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	authors := make(map[int64]*CommentAuthor, len(users))
	for _, u := range users {
		authors[u.UserId] = &CommentAuthor{
			UserId:      u.UserId,
			Username:    u.Username,
			ChannelName: u.ChannelName,
			AvatarUrl:   u.AvatarUrl,
		}
	}
	return authors, nil
}

func (s *CommentService) loadLikeCounts(comments []*model.Comment) (map[int64]int64, error) {
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.CommentId)
	}
	counts, err := db.CountCommentLikesBatch(s.ctx, ids)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	return counts, nil
}

func commentLikeLockKey(commentId, userId int64) string {
	return fmt.Sprintf("commentlike:%d:%d", commentId, userId)
}

// ToggleCommentLike flips the caller's like on a comment and returns the
// new state with the fresh count. The read-then-write runs under the
// per-pair mutex so a doubled request toggles twice instead of tripping
// the unique index.
func (s *CommentService) ToggleCommentLike(commentId, userId int64) (liked bool, count int64, err error) {
	comment, err := db.GetComment(s.ctx, commentId)
	if err != nil {
		return false, 0, errno.ConvertErr(err)
	}
	if comment == nil {
		return false, 0, errno.NotFoundErr.WithMessage("comment not found")
	}

	err = lock.WithKeyedLock(s.ctx, commentLikeLockKey(commentId, userId), func() error {
		existing, err := db.GetCommentLike(s.ctx, commentId, userId)
		if err != nil {
			return errno.ConvertErr(err)
		}
		if existing == nil {
			like := &model.CommentLike{
				CommentId: commentId,
				UserId:    userId,
				CreatedAt: time.Now().Format(constants.TimeFormat),
			}
			if err := db.CreateCommentLike(s.ctx, like); err != nil {
				return errno.ConvertErr(err)
			}
			liked = true
		} else {
			if err := db.DeleteCommentLike(s.ctx, commentId, userId); err != nil {
				return errno.ConvertErr(err)
			}
		}
		count, err = db.CountCommentLikes(s.ctx, commentId)
		if err != nil {
			return errno.ConvertErr(err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}
