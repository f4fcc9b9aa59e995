package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/vistream/vistream/cmd/user/service"
	"github.com/vistream/vistream/pkg/errno"
)

func Register(ctx context.Context, c *app.RequestContext) {
	var param RegisterParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.Info(err)
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	user, err := service.NewUserService(ctx).Register(&service.RegisterRequest{
		Username:    param.Username,
		Email:       param.Email,
		Password:    param.Password,
		ChannelName: param.ChannelName,
	})
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, user)
}

// Authenticate backs the jwt login route: it binds the credentials and
// returns the user id for the token payload.
func Authenticate(ctx context.Context, c *app.RequestContext) (interface{}, error) {
	var param LoginParam
	if err := c.BindAndValidate(&param); err != nil {
		return nil, err
	}
	user, err := service.NewUserService(ctx).Login(param.Email, param.Password)
	if err != nil {
		return nil, err
	}
	return user.UserId, nil
}
