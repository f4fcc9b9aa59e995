package db

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vistream/vistream/cmd/model"
)

func AddWatchHistory(ctx context.Context, entry *model.WatchHistory) error {
	if err := DB.WithContext(ctx).Create(entry).Error; err != nil {
		return errors.Wrap(err, "AddWatchHistory failed")
	}
	return nil
}

// GetWatchHistory returns the user's history newest first.
func GetWatchHistory(ctx context.Context, userId int64) ([]*model.WatchHistory, error) {
	entries := make([]*model.WatchHistory, 0)
	if err := DB.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("watched_at DESC, watch_history_id DESC").
		Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, "GetWatchHistory failed")
	}
	return entries, nil
}

// ClearWatchHistory removes every entry; the log is only clearable in full.
func ClearWatchHistory(ctx context.Context, userId int64) error {
	if err := DB.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.WatchHistory{}).Error; err != nil {
		return errors.Wrap(err, "ClearWatchHistory failed")
	}
	return nil
}
