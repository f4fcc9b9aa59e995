package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/vistream/vistream/cmd/user/service"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/jwt"
)

func GetWatchHistory(ctx context.Context, c *app.RequestContext) {
	entries, err := service.NewUserService(ctx).GetWatchHistory(jwt.GetUserID(ctx, c))
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, entries)
}

func ClearWatchHistory(ctx context.Context, c *app.RequestContext) {
	if err := service.NewUserService(ctx).ClearWatchHistory(jwt.GetUserID(ctx, c)); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}
