package handlers

import (
	"github.com/cloudwego/hertz/pkg/app"

	"github.com/vistream/vistream/pkg/errno"
)

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(errno.HTTPStatus(Err.ErrCode), Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

type CreateCommentParam struct {
	VideoId  int64  `path:"video_id" vd:"$>0"`
	ParentId int64  `json:"parent_comment" form:"parent_comment"`
	Content  string `json:"content" form:"content"`
}

type EditCommentParam struct {
	CommentId int64  `path:"comment_id" vd:"$>0"`
	Content   string `json:"content" form:"content"`
}

type CommentParam struct {
	CommentId int64 `path:"comment_id" vd:"$>0"`
}

type ListCommentParam struct {
	VideoId int64 `path:"video_id" vd:"$>0"`
	Page    int64 `query:"page"`
	Limit   int64 `query:"limit"`
}

type VideoParam struct {
	VideoId int64 `path:"video_id" vd:"$>0"`
}
