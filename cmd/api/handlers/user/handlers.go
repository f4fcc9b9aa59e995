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

// SendResponse packs the standard envelope; the HTTP status follows the
// error code.
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(errno.HTTPStatus(Err.ErrCode), Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

type RegisterParam struct {
	Username    string `json:"username" form:"username"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	ChannelName string `json:"channel_name" form:"channel_name"`
}

type LoginParam struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type UpdateProfileParam struct {
	ChannelName        *string `json:"channel_name" form:"channel_name"`
	ChannelDescription *string `json:"channel_description" form:"channel_description"`
}

type ChangePasswordParam struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

type ProfileParam struct {
	Username string `path:"username"`
}
