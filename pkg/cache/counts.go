package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const countTTL = 10 * time.Minute

func videoReactionKey(videoId int64) string {
	return fmt.Sprintf("video:reactions:%d", videoId)
}

func subscriberCountKey(channelId int64) string {
	return fmt.Sprintf("channel:subscribers:%d", channelId)
}

// GetVideoReactionCounts returns cached like/dislike counts. ok is false
// on a miss or when redis is unavailable; callers fall back to the DB.
func GetVideoReactionCounts(ctx context.Context, videoId int64) (likes, dislikes int64, ok bool) {
	if RDB == nil {
		return 0, 0, false
	}
	vals, err := RDB.HMGet(ctx, videoReactionKey(videoId), "likes", "dislikes").Result()
	if err != nil || vals[0] == nil || vals[1] == nil {
		return 0, 0, false
	}
	likes, err1 := toInt64(vals[0])
	dislikes, err2 := toInt64(vals[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return likes, dislikes, true
}

func SetVideoReactionCounts(ctx context.Context, videoId, likes, dislikes int64) {
	if RDB == nil {
		return
	}
	key := videoReactionKey(videoId)
	pipe := RDB.Pipeline()
	pipe.HSet(ctx, key, "likes", likes, "dislikes", dislikes)
	pipe.Expire(ctx, key, countTTL)
	_, _ = pipe.Exec(ctx)
}

func InvalidateVideoReactions(ctx context.Context, videoId int64) {
	if RDB == nil {
		return
	}
	_ = RDB.Del(ctx, videoReactionKey(videoId)).Err()
}

func GetSubscriberCount(ctx context.Context, channelId int64) (int64, bool) {
	if RDB == nil {
		return 0, false
	}
	val, err := RDB.Get(ctx, subscriberCountKey(channelId)).Int64()
	if err != nil {
		return 0, false
	}
	return val, true
}

func SetSubscriberCount(ctx context.Context, channelId, count int64) {
	if RDB == nil {
		return
	}
	_ = RDB.Set(ctx, subscriberCountKey(channelId), count, countTTL).Err()
}

func InvalidateSubscriberCount(ctx context.Context, channelId int64) {
	if RDB == nil {
		return
	}
	_ = RDB.Del(ctx, subscriberCountKey(channelId)).Err()
}

func toInt64(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, redis.Nil
	}
	var n int64
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
