package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vistream/vistream/cmd/model"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/pagination"
)

func InsertVideo(ctx context.Context, video *model.Video) error {
	if err := DB.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrap(err, "InsertVideo failed")
	}
	return nil
}

// GetVideo returns (nil, nil) when the video does not exist.
func GetVideo(ctx context.Context, videoId int64) (*model.Video, error) {
	var video model.Video
	err := DB.WithContext(ctx).Where("video_id = ?", videoId).First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetVideo failed")
	}
	return &video, nil
}

func GetVideosByIds(ctx context.Context, videoIds []int64) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	if len(videoIds) == 0 {
		return videos, nil
	}
	if err := DB.WithContext(ctx).Where("video_id IN (?)", videoIds).Find(&videos).Error; err != nil {
		return nil, errors.Wrap(err, "GetVideosByIds failed")
	}
	return videos, nil
}

func UpdateVideoFields(ctx context.Context, videoId int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	if err := DB.WithContext(ctx).Model(&model.Video{}).
		Where("video_id = ?", videoId).
		Updates(updates).Error; err != nil {
		return errors.Wrap(err, "UpdateVideoFields failed")
	}
	return nil
}

func DeleteVideo(ctx context.Context, videoId int64) error {
	result := DB.WithContext(ctx).Where("video_id = ?", videoId).Delete(&model.Video{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "DeleteVideo failed")
	}
	if result.RowsAffected == 0 {
		return errors.New("no rows affected")
	}
	return nil
}

// IncrementVisitCount bumps the view counter atomically in place and
// returns the new value. Every call increments; there is no per-viewer
// de-duplication.
func IncrementVisitCount(ctx context.Context, videoId int64) (int64, error) {
	if err := DB.WithContext(ctx).Model(&model.Video{}).
		Where("video_id = ?", videoId).
		UpdateColumn("visit_count", gorm.Expr("visit_count + 1")).Error; err != nil {
		return 0, errors.Wrap(err, "IncrementVisitCount failed")
	}
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Video{}).
		Where("video_id = ?", videoId).
		Select("visit_count").Scan(&count).Error; err != nil {
		return 0, errors.Wrap(err, "IncrementVisitCount readback failed")
	}
	return count, nil
}

// publicScope is the implicit filter on every public listing: blocked and
// non-public videos never appear.
func publicScope(tx *gorm.DB) *gorm.DB {
	return tx.Where("visibility = ? AND is_blocked = ?", constants.VisibilityPublic, false)
}

func ListPublic(ctx context.Context, p pagination.Params) ([]*model.Video, int64, error) {
	return listWindow(publicScope(DB.WithContext(ctx).Model(&model.Video{})), p)
}

func ListByCategory(ctx context.Context, category string, p pagination.Params) ([]*model.Video, int64, error) {
	tx := publicScope(DB.WithContext(ctx).Model(&model.Video{})).Where("category = ?", category)
	return listWindow(tx, p)
}

// ListByOwner drives both the public channel page and "my videos". The
// owner sees private and unlisted uploads; blocked videos stay hidden
// either way.
func ListByOwner(ctx context.Context, ownerId int64, includeNonPublic bool, p pagination.Params) ([]*model.Video, int64, error) {
	tx := DB.WithContext(ctx).Model(&model.Video{}).
		Where("user_id = ? AND is_blocked = ?", ownerId, false)
	if !includeNonPublic {
		tx = tx.Where("visibility = ?", constants.VisibilityPublic)
	}
	return listWindow(tx, p)
}

func CountByOwner(ctx context.Context, ownerId int64) (int64, error) {
	var count int64
	if err := publicScope(DB.WithContext(ctx).Model(&model.Video{})).
		Where("user_id = ?", ownerId).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountByOwner failed")
	}
	return count, nil
}

func listWindow(tx *gorm.DB, p pagination.Params) ([]*model.Video, int64, error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "listing count failed")
	}
	videos := make([]*model.Video, 0)
	if err := tx.Order("created_at DESC, video_id DESC").
		Offset(int(p.Offset())).Limit(int(p.Limit)).
		Find(&videos).Error; err != nil {
		return nil, 0, errors.Wrap(err, "listing query failed")
	}
	return videos, total, nil
}

// Trending ranks public videos by views, breaking ties on like count.
func Trending(ctx context.Context, limit int64) ([]*model.Video, error) {
	videos := make([]*model.Video, 0)
	if err := publicScope(DB.WithContext(ctx).Model(&model.Video{})).
		Select("videos.*, (SELECT COUNT(*) FROM video_reactions r WHERE r.video_id = videos.video_id AND r.reaction = ?) AS like_count", constants.ReactionLike).
		Order("visit_count DESC, like_count DESC").
		Limit(int(limit)).
		Find(&videos).Error; err != nil {
		return nil, errors.Wrap(err, "Trending failed")
	}
	return videos, nil
}

// SearchLike is the LIKE-based fallback used when elasticsearch is not
// configured. Ordering approximates relevance with view count.
func SearchLike(ctx context.Context, keyword, category string, p pagination.Params) ([]*model.Video, int64, error) {
	tx := publicScope(DB.WithContext(ctx).Model(&model.Video{}))
	if keyword != "" {
		pattern := "%" + keyword + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ? OR tags LIKE ?", pattern, pattern, pattern)
	}
	if category != "" && category != "all" {
		tx = tx.Where("category = ?", category)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "SearchLike count failed")
	}
	videos := make([]*model.Video, 0)
	if err := tx.Order("visit_count DESC, video_id DESC").
		Offset(int(p.Offset())).Limit(int(p.Limit)).
		Find(&videos).Error; err != nil {
		return nil, 0, errors.Wrap(err, "SearchLike query failed")
	}
	return videos, total, nil
}
