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

type ChannelParam struct {
	ChannelId int64 `path:"channel_id" vd:"$>0"`
}

type PageParam struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}

type SubscriberListParam struct {
	ChannelId int64 `path:"channel_id" vd:"$>0"`
	Page      int64 `query:"page"`
	Limit     int64 `query:"limit"`
}
