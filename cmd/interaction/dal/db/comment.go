package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vistream/vistream/cmd/model"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/pagination"
)

func CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := DB.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.Wrap(err, "CreateComment failed")
	}
	return nil
}

// GetComment returns (nil, nil) when the comment does not exist.
func GetComment(ctx context.Context, commentId int64) (*model.Comment, error) {
	var comment model.Comment
	err := DB.WithContext(ctx).Where("comment_id = ?", commentId).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetComment failed")
	}
	return &comment, nil
}

func UpdateCommentContent(ctx context.Context, commentId int64, content, updatedAt string) error {
	if err := DB.WithContext(ctx).Model(&model.Comment{}).
		Where("comment_id = ?", commentId).
		Updates(map[string]interface{}{
			"content":    content,
			"is_edited":  true,
			"updated_at": updatedAt,
		}).Error; err != nil {
		return errors.Wrap(err, "UpdateCommentContent failed")
	}
	return nil
}

// GetChildCommentIds returns the direct replies of the given comments.
// Callers walk the reply tree by batching one level at a time.
func GetChildCommentIds(ctx context.Context, parentIds []int64) ([]int64, error) {
	if len(parentIds) == 0 {
		return nil, nil
	}
	var ids []int64
	if err := DB.WithContext(ctx).Model(&model.Comment{}).
		Where("parent_id IN (?)", parentIds).
		Pluck("comment_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "GetChildCommentIds failed")
	}
	return ids, nil
}

func DeleteCommentsByIds(ctx context.Context, commentIds []int64) error {
	if len(commentIds) == 0 {
		return nil
	}
	if err := DB.WithContext(ctx).Where("comment_id IN (?)", commentIds).
		Delete(&model.Comment{}).Error; err != nil {
		return errors.Wrap(err, "DeleteCommentsByIds failed")
	}
	return nil
}

// GetCommentIdsByVideo returns every comment id on a video, replies
// included, for wholesale cleanup when the video goes away.
func GetCommentIdsByVideo(ctx context.Context, videoId int64) ([]int64, error) {
	var ids []int64
	if err := DB.WithContext(ctx).Model(&model.Comment{}).
		Where("video_id = ?", videoId).
		Pluck("comment_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "GetCommentIdsByVideo failed")
	}
	return ids, nil
}

func DeleteCommentsByVideo(ctx context.Context, videoId int64) error {
	if err := DB.WithContext(ctx).Where("video_id = ?", videoId).
		Delete(&model.Comment{}).Error; err != nil {
		return errors.Wrap(err, "DeleteCommentsByVideo failed")
	}
	return nil
}

// ListTopLevelByVideo pages through a video's top-level comments, newest
// first.
func ListTopLevelByVideo(ctx context.Context, videoId int64, p pagination.Params) ([]*model.Comment, int64, error) {
	tx := DB.WithContext(ctx).Model(&model.Comment{}).
		Where("video_id = ? AND parent_id = ?", videoId, constants.RootCommentParentID)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListTopLevelByVideo count failed")
	}
	comments := make([]*model.Comment, 0)
	if err := tx.Order("created_at DESC, comment_id DESC").
		Offset(int(p.Offset())).Limit(int(p.Limit)).
		Find(&comments).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListTopLevelByVideo query failed")
	}
	return comments, total, nil
}

// ListRepliesByParents loads the direct replies of a page of top-level
// comments in one query, oldest first within each thread.
func ListRepliesByParents(ctx context.Context, parentIds []int64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	if len(parentIds) == 0 {
		return comments, nil
	}
	if err := DB.WithContext(ctx).
		Where("parent_id IN (?)", parentIds).
		Order("created_at ASC, comment_id ASC").
		Find(&comments).Error; err != nil {
		return nil, errors.Wrap(err, "ListRepliesByParents failed")
	}
	return comments, nil
}

func CountCommentsByVideo(ctx context.Context, videoId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Comment{}).
		Where("video_id = ?", videoId).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountCommentsByVideo failed")
	}
	return count, nil
}

func CountReplies(ctx context.Context, commentId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Comment{}).
		Where("parent_id = ?", commentId).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountReplies failed")
	}
	return count, nil
}
