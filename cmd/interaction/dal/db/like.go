package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vistream/vistream/cmd/model"
	"github.com/vistream/vistream/pkg/constants"
)

// GetReaction returns the caller's reaction row for a video, or (nil, nil)
// when the user has not reacted.
func GetReaction(ctx context.Context, videoId, userId int64) (*model.VideoReaction, error) {
	var reaction model.VideoReaction
	err := DB.WithContext(ctx).
		Where("video_id = ? AND user_id = ?", videoId, userId).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetReaction failed")
	}
	return &reaction, nil
}

func CreateReaction(ctx context.Context, reaction *model.VideoReaction) error {
	if err := DB.WithContext(ctx).Create(reaction).Error; err != nil {
		return errors.Wrap(err, "CreateReaction failed")
	}
	return nil
}

// UpdateReaction flips an existing row between like and dislike.
func UpdateReaction(ctx context.Context, videoId, userId int64, reaction string) error {
	if err := DB.WithContext(ctx).Model(&model.VideoReaction{}).
		Where("video_id = ? AND user_id = ?", videoId, userId).
		Update("reaction", reaction).Error; err != nil {
		return errors.Wrap(err, "UpdateReaction failed")
	}
	return nil
}

func DeleteReaction(ctx context.Context, videoId, userId int64) error {
	if err := DB.WithContext(ctx).
		Where("video_id = ? AND user_id = ?", videoId, userId).
		Delete(&model.VideoReaction{}).Error; err != nil {
		return errors.Wrap(err, "DeleteReaction failed")
	}
	return nil
}

func DeleteReactionsByVideo(ctx context.Context, videoId int64) error {
	if err := DB.WithContext(ctx).Where("video_id = ?", videoId).
		Delete(&model.VideoReaction{}).Error; err != nil {
		return errors.Wrap(err, "DeleteReactionsByVideo failed")
	}
	return nil
}

// CountReactions tallies likes and dislikes from the reaction rows. The
// counters are derived here, never stored on the video row.
func CountReactions(ctx context.Context, videoId int64) (likes int64, dislikes int64, err error) {
	type row struct {
		Reaction string
		Total    int64
	}
	var rows []row
	if err := DB.WithContext(ctx).Model(&model.VideoReaction{}).
		Select("reaction, COUNT(*) AS total").
		Where("video_id = ?", videoId).
		Group("reaction").
		Scan(&rows).Error; err != nil {
		return 0, 0, errors.Wrap(err, "CountReactions failed")
	}
	for _, r := range rows {
		switch r.Reaction {
		case constants.ReactionLike:
			likes = r.Total
		case constants.ReactionDislike:
			dislikes = r.Total
		}
	}
	return likes, dislikes, nil
}

// ListLikedVideoIds returns the ids of videos the user has liked, most
// recent like first.
func ListLikedVideoIds(ctx context.Context, userId int64) ([]int64, error) {
	var ids []int64
	if err := DB.WithContext(ctx).Model(&model.VideoReaction{}).
		Where("user_id = ? AND reaction = ?", userId, constants.ReactionLike).
		Order("reaction_id DESC").
		Pluck("video_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "ListLikedVideoIds failed")
	}
	return ids, nil
}

func GetCommentLike(ctx context.Context, commentId, userId int64) (*model.CommentLike, error) {
	var like model.CommentLike
	err := DB.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentId, userId).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetCommentLike failed")
	}
	return &like, nil
}

func CreateCommentLike(ctx context.Context, like *model.CommentLike) error {
	if err := DB.WithContext(ctx).Create(like).Error; err != nil {
		return errors.Wrap(err, "CreateCommentLike failed")
	}
	return nil
}

func DeleteCommentLike(ctx context.Context, commentId, userId int64) error {
	if err := DB.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentId, userId).
		Delete(&model.CommentLike{}).Error; err != nil {
		return errors.Wrap(err, "DeleteCommentLike failed")
	}
	return nil
}

func DeleteCommentLikesByComments(ctx context.Context, commentIds []int64) error {
	if len(commentIds) == 0 {
		return nil
	}
	if err := DB.WithContext(ctx).Where("comment_id IN (?)", commentIds).
		Delete(&model.CommentLike{}).Error; err != nil {
		return errors.Wrap(err, "DeleteCommentLikesByComments failed")
	}
	return nil
}

func CountCommentLikes(ctx context.Context, commentId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.CommentLike{}).
		Where("comment_id = ?", commentId).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountCommentLikes failed")
	}
	return count, nil
}

// CountCommentLikesBatch returns like counts keyed by comment id for one
// page of comments.
func CountCommentLikesBatch(ctx context.Context, commentIds []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(commentIds))
	if len(commentIds) == 0 {
		return counts, nil
	}
	type row struct {
		CommentId int64
		Total     int64
	}
	var rows []row
	if err := DB.WithContext(ctx).Model(&model.CommentLike{}).
		Select("comment_id, COUNT(*) AS total").
		Where("comment_id IN (?)", commentIds).
		Group("comment_id").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "CountCommentLikesBatch failed")
	}
	for _, r := range rows {
		counts[r.CommentId] = r.Total
	}
	return counts, nil
}
