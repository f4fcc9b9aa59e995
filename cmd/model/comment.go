package model

// Comment belongs to a video; ParentId of 0 marks a top-level comment,
// otherwise it points at the comment this one replies to.
type Comment struct {
	CommentId int64  `gorm:"column:comment_id;primaryKey;autoIncrement" json:"comment_id"`
	VideoId   int64  `gorm:"column:video_id;index" json:"video_id"`
	UserId    int64  `gorm:"column:user_id" json:"user_id"`
	ParentId  int64  `gorm:"column:parent_id;index" json:"parent_id"`
	Content   string `gorm:"column:content;size:1000" json:"content"`
	IsEdited  bool   `gorm:"column:is_edited" json:"is_edited"`
	CreatedAt string `gorm:"column:created_at" json:"created_at"`
	UpdatedAt string `gorm:"column:updated_at" json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

type CommentLike struct {
	CommentLikeId int64  `gorm:"column:comment_like_id;primaryKey;autoIncrement" json:"comment_like_id"`
	CommentId     int64  `gorm:"column:comment_id;uniqueIndex:idx_comment_user" json:"comment_id"`
	UserId        int64  `gorm:"column:user_id;uniqueIndex:idx_comment_user" json:"user_id"`
	CreatedAt     string `gorm:"column:created_at" json:"created_at"`
}

func (CommentLike) TableName() string { return "comment_likes" }
