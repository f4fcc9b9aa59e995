package model

// User is a viewer and, at the same time, a channel other users can
// subscribe to. Subscriber/subscription relations live in the
// subscriptions table only; counts are computed by query, never cached
// on the user row.
type User struct {
	UserId             int64  `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username           string `gorm:"column:username;uniqueIndex;size:30" json:"username"`
	Email              string `gorm:"column:email;uniqueIndex;size:255" json:"email"`
	Password           string `gorm:"column:password" json:"-"`
	ChannelName        string `gorm:"column:channel_name;size:100" json:"channel_name"`
	ChannelDescription string `gorm:"column:channel_description;size:500" json:"channel_description"`
	AvatarUrl          string `gorm:"column:avatar_url" json:"avatar_url"`
	IsVerified         bool   `gorm:"column:is_verified" json:"is_verified"`
	CreatedAt          string `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          string `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// WatchHistory is an append-only log of videos a user has viewed.
// There is no cap on its length; users can only clear it in full.
type WatchHistory struct {
	WatchHistoryId int64  `gorm:"column:watch_history_id;primaryKey;autoIncrement" json:"watch_history_id"`
	UserId         int64  `gorm:"column:user_id;index" json:"user_id"`
	VideoId        int64  `gorm:"column:video_id" json:"video_id"`
	WatchedAt      string `gorm:"column:watched_at" json:"watched_at"`
}

func (WatchHistory) TableName() string { return "watch_histories" }
