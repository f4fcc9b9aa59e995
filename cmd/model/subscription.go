package model

// Subscription is the ledger of active subscriber→channel relations and
// the only source of truth for them. At most one row exists per
// (subscriber, channel) pair; self-subscriptions are rejected before a
// row is ever written.
type Subscription struct {
	SubscriptionId int64  `gorm:"column:subscription_id;primaryKey;autoIncrement" json:"subscription_id"`
	SubscriberId   int64  `gorm:"column:subscriber_id;uniqueIndex:idx_subscriber_channel" json:"subscriber_id"`
	ChannelId      int64  `gorm:"column:channel_id;uniqueIndex:idx_subscriber_channel;index" json:"channel_id"`
	CreatedAt      string `gorm:"column:created_at" json:"created_at"`
}

func (Subscription) TableName() string { return "subscriptions" }
