package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vistream/vistream/cmd/model"
	"github.com/vistream/vistream/cmd/user/dal/db"
	videodb "github.com/vistream/vistream/cmd/video/dal/db"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/mq"
)

// HistoryEntry pairs a history row with the video it points at. Video is
// nil when the video has since been deleted.
type HistoryEntry struct {
	WatchHistoryId int64        `json:"watch_history_id"`
	WatchedAt      string       `json:"watched_at"`
	Video          *model.Video `json:"video"`
}

// GetWatchHistory returns the full viewing log, most recent first.
func (s *UserService) GetWatchHistory(userId int64) ([]*HistoryEntry, error) {
	rows, err := db.GetWatchHistory(s.ctx, userId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	videoIds := make([]int64, 0, len(rows))
	for _, r := range rows {
		videoIds = append(videoIds, r.VideoId)
	}
	videos, err := videodb.GetVideosByIds(s.ctx, videoIds)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	byId := make(map[int64]*model.Video, len(videos))
	for _, v := range videos {
		byId[v.VideoId] = v
	}
	entries := make([]*HistoryEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, &HistoryEntry{
			WatchHistoryId: r.WatchHistoryId,
			WatchedAt:      r.WatchedAt,
			Video:          byId[r.VideoId],
		})
	}
	return entries, nil
}

// ClearWatchHistory wipes the log. Single entries cannot be removed.
func (s *UserService) ClearWatchHistory(userId int64) error {
	if err := db.ClearWatchHistory(s.ctx, userId); err != nil {
		return errno.ConvertErr(err)
	}
	return nil
}

// HandleWatchEvent is the queue consumer callback that appends a history
// row for each published view.
func HandleWatchEvent(ctx context.Context, event *mq.WatchEvent) error {
	entry := &model.WatchHistory{
		UserId:    event.UserID,
		VideoId:   event.VideoID,
		WatchedAt: event.WatchedAt,
	}
	if err := db.AddWatchHistory(ctx, entry); err != nil {
		logrus.Errorf("watch event %s: history write failed: %v", event.EventID, err)
		return err
	}
	return nil
}
