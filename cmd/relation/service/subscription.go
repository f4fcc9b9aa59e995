package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vistream/vistream/cmd/model"
	"github.com/vistream/vistream/cmd/relation/dal/db"
	userdb "github.com/vistream/vistream/cmd/user/dal/db"
	"github.com/vistream/vistream/pkg/cache"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/lock"
	"github.com/vistream/vistream/pkg/pagination"
)

type SubscriptionService struct {
	ctx context.Context
}

func NewSubscriptionService(ctx context.Context) *SubscriptionService {
	return &SubscriptionService{ctx: ctx}
}

// ChannelCard is the projection of a user returned by subscription
// listings.
type ChannelCard struct {
	UserId          int64  `json:"user_id"`
	Username        string `json:"username"`
	ChannelName     string `json:"channel_name"`
	AvatarUrl       string `json:"avatar_url"`
	IsVerified      bool   `json:"is_verified"`
	SubscriberCount int64  `json:"subscriber_count"`
}

func subscriptionLockKey(subscriberId, channelId int64) string {
	return fmt.Sprintf("subscription:%d:%d", subscriberId, channelId)
}

// Subscribe adds the (subscriber, channel) pair to the ledger. A second
// subscribe to the same channel is a conflict, not a no-op.
func (s *SubscriptionService) Subscribe(subscriberId, channelId int64) error {
	if err := subscribeOutcome(subscriberId, channelId, false); err != nil {
		return err
	}
	exists, err := userdb.CheckUserExistById(s.ctx, channelId)
	if err != nil {
		return errno.ConvertErr(err)
	}
	if !exists {
		return errno.NotFoundErr.WithMessage("channel not found")
	}

	return lock.WithKeyedLock(s.ctx, subscriptionLockKey(subscriberId, channelId), func() error {
		subscribed, err := db.IsSubscribed(s.ctx, subscriberId, channelId)
		if err != nil {
			return errno.ConvertErr(err)
		}
		if err := subscribeOutcome(subscriberId, channelId, subscribed); err != nil {
			return err
		}
		sub := &model.Subscription{
			SubscriberId: subscriberId,
			ChannelId:    channelId,
			CreatedAt:    time.Now().Format(constants.TimeFormat),
		}
		if err := db.CreateSubscription(s.ctx, sub); err != nil {
			return errno.ConvertErr(err)
		}
		cache.InvalidateSubscriberCount(s.ctx, channelId)
		logrus.Infof("user %d subscribed to channel %d", subscriberId, channelId)
		return nil
	})
}

// Unsubscribe removes the pair from the ledger. Unsubscribing from a
// channel the user never subscribed to is an error.
func (s *SubscriptionService) Unsubscribe(subscriberId, channelId int64) error {
	return lock.WithKeyedLock(s.ctx, subscriptionLockKey(subscriberId, channelId), func() error {
		removed, err := db.DeleteSubscription(s.ctx, subscriberId, channelId)
		if err != nil {
			return errno.ConvertErr(err)
		}
		if err := unsubscribeOutcome(removed); err != nil {
			return err
		}
		cache.InvalidateSubscriberCount(s.ctx, channelId)
		logrus.Infof("user %d unsubscribed from channel %d", subscriberId, channelId)
		return nil
	})
}

func (s *SubscriptionService) IsSubscribed(subscriberId, channelId int64) (bool, error) {
	subscribed, err := db.IsSubscribed(s.ctx, subscriberId, channelId)
	if err != nil {
		return false, errno.ConvertErr(err)
	}
	return subscribed, nil
}

// SubscriberCount serves the channel counter cache-aside: redis first,
// then a ledger count that repopulates the cache.
func (s *SubscriptionService) SubscriberCount(channelId int64) (int64, error) {
	if count, ok := cache.GetSubscriberCount(s.ctx, channelId); ok {
		return count, nil
	}
	count, err := db.CountSubscribers(s.ctx, channelId)
	if err != nil {
		return 0, errno.ConvertErr(err)
	}
	cache.SetSubscriberCount(s.ctx, channelId, count)
	return count, nil
}

// ListSubscriptions returns the channels the user subscribes to, newest
// subscription first.
func (s *SubscriptionService) ListSubscriptions(subscriberId int64, p pagination.Params) ([]*ChannelCard, pagination.Meta, error) {
	channelIds, total, err := db.ListSubscriptionChannelIds(s.ctx, subscriberId, p)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}
	cards, err := s.buildCards(channelIds)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return cards, pagination.NewMeta(p, total), nil
}

// ListSubscribers returns the users subscribed to a channel, newest first.
func (s *SubscriptionService) ListSubscribers(channelId int64, p pagination.Params) ([]*ChannelCard, pagination.Meta, error) {
	exists, err := userdb.CheckUserExistById(s.ctx, channelId)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}
	if !exists {
		return nil, pagination.Meta{}, errno.NotFoundErr.WithMessage("channel not found")
	}
	subscriberIds, total, err := db.ListSubscriberIds(s.ctx, channelId, p)
	if err != nil {
		return nil, pagination.Meta{}, errno.ConvertErr(err)
	}
	cards, err := s.buildCards(subscriberIds)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return cards, pagination.NewMeta(p, total), nil
}

// buildCards hydrates user rows in the order of ids, skipping any user
// deleted since the subscription was written.
func (s *SubscriptionService) buildCards(userIds []int64) ([]*ChannelCard, error) {
	users, err := userdb.GetUsersByIds(s.ctx, userIds)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	byId := make(map[int64]*model.User, len(users))
	for _, u := range users {
		byId[u.UserId] = u
	}
	cards := make([]*ChannelCard, 0, len(userIds))
	for _, id := range userIds {
		u, ok := byId[id]
		if !ok {
			continue
		}
		count, err := s.SubscriberCount(u.UserId)
		if err != nil {
			return nil, err
		}
		cards = append(cards, &ChannelCard{
			UserId:          u.UserId,
			Username:        u.Username,
			ChannelName:     u.ChannelName,
			AvatarUrl:       u.AvatarUrl,
			IsVerified:      u.IsVerified,
			SubscriberCount: count,
		})
	}
	return cards, nil
}
