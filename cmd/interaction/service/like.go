package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vistream/vistream/cmd/interaction/dal/db"
	"github.com/vistream/vistream/cmd/model"
	videodb "github.com/vistream/vistream/cmd/video/dal/db"
	"github.com/vistream/vistream/pkg/cache"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/lock"
)

type LikeService struct {
	ctx context.Context
}

func NewLikeService(ctx context.Context) *LikeService {
	return &LikeService{ctx: ctx}
}

// ReactionState is what the client needs to redraw the like/dislike
// buttons after a toggle.
type ReactionState struct {
	Likes        int64  `json:"likes"`
	Dislikes     int64  `json:"dislikes"`
	UserReaction string `json:"user_reaction"`
}

func reactionLockKey(videoId, userId int64) string {
	return fmt.Sprintf("reaction:%d:%d", videoId, userId)
}

// ToggleVideoReaction applies a like or dislike request. Repeating the
// current reaction removes it; requesting the other kind switches the
// single row, so a user never holds both at once.
func (s *LikeService) ToggleVideoReaction(videoId, userId int64, kind string) (*ReactionState, error) {
	if kind != constants.ReactionLike && kind != constants.ReactionDislike {
		return nil, errno.ParamErr.WithMessage("reaction must be like or dislike")
	}
	video, err := videodb.GetVideo(s.ctx, videoId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	if video == nil || video.IsBlocked {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}

	var state *ReactionState
	err = lock.WithKeyedLock(s.ctx, reactionLockKey(videoId, userId), func() error {
		current, err := db.GetReaction(s.ctx, videoId, userId)
		if err != nil {
			return errno.ConvertErr(err)
		}
		currentKind := ""
		if current != nil {
			currentKind = current.Reaction
		}

		switch ToggleTransition(currentKind, kind) {
		case ActionCreate:
			reaction := &model.VideoReaction{
				VideoId:   videoId,
				UserId:    userId,
				Reaction:  kind,
				CreatedAt: time.Now().Format(constants.TimeFormat),
			}
			if err := db.CreateReaction(s.ctx, reaction); err != nil {
				return errno.ConvertErr(err)
			}
		case ActionDelete:
			if err := db.DeleteReaction(s.ctx, videoId, userId); err != nil {
				return errno.ConvertErr(err)
			}
		case ActionSwitch:
			if err := db.UpdateReaction(s.ctx, videoId, userId, kind); err != nil {
				return errno.ConvertErr(err)
			}
		}

		likes, dislikes, err := db.CountReactions(s.ctx, videoId)
		if err != nil {
			return errno.ConvertErr(err)
		}
		cache.SetVideoReactionCounts(s.ctx, videoId, likes, dislikes)
		state = &ReactionState{
			Likes:        likes,
			Dislikes:     dislikes,
			UserReaction: reactionAfter(currentKind, kind),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// VideoReactionCounts serves the counters cache-aside from redis, falling
// back to a reaction-table count.
func (s *LikeService) VideoReactionCounts(videoId int64) (likes, dislikes int64, err error) {
	if likes, dislikes, ok := cache.GetVideoReactionCounts(s.ctx, videoId); ok {
		return likes, dislikes, nil
	}
	likes, dislikes, err = db.CountReactions(s.ctx, videoId)
	if err != nil {
		return 0, 0, errno.ConvertErr(err)
	}
	cache.SetVideoReactionCounts(s.ctx, videoId, likes, dislikes)
	return likes, dislikes, nil
}

// UserReaction returns the caller's current reaction on a video, "" when
// none.
func (s *LikeService) UserReaction(videoId, userId int64) (string, error) {
	reaction, err := db.GetReaction(s.ctx, videoId, userId)
	if err != nil {
		return "", errno.ConvertErr(err)
	}
	if reaction == nil {
		return "", nil
	}
	return reaction.Reaction, nil
}

// ListLikedVideos returns the videos the user has liked, most recent like
// first. Blocked and since-deleted videos drop out of the result.
func (s *LikeService) ListLikedVideos(userId int64) ([]*model.Video, error) {
	ids, err := db.ListLikedVideoIds(s.ctx, userId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	videos, err := videodb.GetVideosByIds(s.ctx, ids)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	byId := make(map[int64]*model.Video, len(videos))
	for _, v := range videos {
		byId[v.VideoId] = v
	}
	ordered := make([]*model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byId[id]; ok && !v.IsBlocked {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}
