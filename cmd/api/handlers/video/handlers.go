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

type PublishParam struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Tags        string `form:"tags"`
	Visibility  string `form:"visibility"`
}

type VideoParam struct {
	VideoId int64 `path:"video_id" vd:"$>0"`
}

type UpdateVideoParam struct {
	VideoId     int64   `path:"video_id" vd:"$>0"`
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Category    *string `json:"category" form:"category"`
	Tags        *string `json:"tags" form:"tags"`
	Visibility  *string `json:"visibility" form:"visibility"`
}

type FeedParam struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}

type CategoryFeedParam struct {
	Category string `path:"category"`
	Page     int64  `query:"page"`
	Limit    int64  `query:"limit"`
}

type ChannelVideosParam struct {
	Username string `path:"username"`
	Page     int64  `query:"page"`
	Limit    int64  `query:"limit"`
}

type SearchParam struct {
	Keyword  string `query:"q"`
	Category string `query:"category"`
	Page     int64  `query:"page"`
	Limit    int64  `query:"limit"`
}
