package model

type Video struct {
	VideoId     int64  `gorm:"column:video_id;primaryKey;autoIncrement" json:"video_id"`
	UserId      int64  `gorm:"column:user_id;index" json:"user_id"`
	Title       string `gorm:"column:title;size:100" json:"title"`
	Description string `gorm:"column:description;size:5000" json:"description"`
	VideoUrl    string `gorm:"column:video_url" json:"video_url"`
	CoverUrl    string `gorm:"column:cover_url" json:"cover_url"`
	// Duration is in seconds.
	Duration   int64  `gorm:"column:duration" json:"duration"`
	VisitCount int64  `gorm:"column:visit_count" json:"visit_count"`
	Tags       string `gorm:"column:tags" json:"tags"`
	Category   string `gorm:"column:category;index" json:"category"`
	Visibility string `gorm:"column:visibility;index" json:"visibility"`
	IsBlocked  bool   `gorm:"column:is_blocked" json:"is_blocked"`
	CreatedAt  string `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  string `gorm:"column:updated_at" json:"updated_at"`
}

func (Video) TableName() string { return "videos" }

// VideoReaction holds one row per (video, user) pair, so a user can never
// hold a like and a dislike on the same video at once.
type VideoReaction struct {
	ReactionId int64  `gorm:"column:reaction_id;primaryKey;autoIncrement" json:"reaction_id"`
	VideoId    int64  `gorm:"column:video_id;uniqueIndex:idx_video_user" json:"video_id"`
	UserId     int64  `gorm:"column:user_id;uniqueIndex:idx_video_user" json:"user_id"`
	// Reaction is "like" or "dislike".
	Reaction  string `gorm:"column:reaction;size:10" json:"reaction"`
	CreatedAt string `gorm:"column:created_at" json:"created_at"`
}

func (VideoReaction) TableName() string { return "video_reactions" }
