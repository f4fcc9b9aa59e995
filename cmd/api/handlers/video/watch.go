package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/vistream/vistream/cmd/video/service"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/jwt"
)

func viewerID(ctx context.Context, c *app.RequestContext) int64 {
	return jwt.GetUserID(ctx, c)
}

// GetVideo serves the watch page with engagement counters and, when a
// token is present, the viewer's own state.
func GetVideo(ctx context.Context, c *app.RequestContext) {
	var param VideoParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	detail, err := service.NewVideoService(ctx).Get(param.VideoId, viewerID(ctx, c))
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, detail)
}

// RecordView counts a view and, for signed-in viewers, queues the
// watch-history append.
func RecordView(ctx context.Context, c *app.RequestContext) {
	var param VideoParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	count, err := service.NewVideoService(ctx).RecordView(param.VideoId, viewerID(ctx, c))
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]int64{"views": count})
}
