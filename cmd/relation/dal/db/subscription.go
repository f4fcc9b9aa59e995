package db

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vistream/vistream/cmd/model"
	"github.com/vistream/vistream/pkg/pagination"
)

// The subscriptions table is the only record of who subscribes to whom.
// Counts and membership checks always query it directly.

func CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := DB.WithContext(ctx).Create(sub).Error; err != nil {
		return errors.Wrap(err, "CreateSubscription failed")
	}
	return nil
}

// DeleteSubscription reports how many rows it removed so callers can tell
// "unsubscribed" from "was never subscribed".
func DeleteSubscription(ctx context.Context, subscriberId, channelId int64) (int64, error) {
	result := DB.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "DeleteSubscription failed")
	}
	return result.RowsAffected, nil
}

func IsSubscribed(ctx context.Context, subscriberId, channelId int64) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "IsSubscribed failed")
	}
	return count > 0, nil
}

// ListSubscriptionChannelIds returns the channels a user subscribes to,
// most recent subscription first.
func ListSubscriptionChannelIds(ctx context.Context, subscriberId int64, p pagination.Params) ([]int64, int64, error) {
	tx := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberId)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListSubscriptionChannelIds count failed")
	}
	var ids []int64
	if err := tx.Order("subscription_id DESC").
		Offset(int(p.Offset())).Limit(int(p.Limit)).
		Pluck("channel_id", &ids).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListSubscriptionChannelIds query failed")
	}
	return ids, total, nil
}

// ListSubscriberIds returns the users subscribed to a channel, most recent
// first.
func ListSubscriberIds(ctx context.Context, channelId int64, p pagination.Params) ([]int64, int64, error) {
	tx := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelId)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListSubscriberIds count failed")
	}
	var ids []int64
	if err := tx.Order("subscription_id DESC").
		Offset(int(p.Offset())).Limit(int(p.Limit)).
		Pluck("subscriber_id", &ids).Error; err != nil {
		return nil, 0, errors.Wrap(err, "ListSubscriberIds query failed")
	}
	return ids, total, nil
}

func CountSubscribers(ctx context.Context, channelId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelId).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountSubscribers failed")
	}
	return count, nil
}

func CountSubscriptions(ctx context.Context, subscriberId int64) (int64, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberId).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "CountSubscriptions failed")
	}
	return count, nil
}
