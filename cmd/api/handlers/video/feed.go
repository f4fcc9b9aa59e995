package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/vistream/vistream/cmd/video/service"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/pagination"
)

// Feed lists public videos, newest first.
func Feed(ctx context.Context, c *app.RequestContext) {
	var param FeedParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	p := pagination.Normalize(param.Page, param.Limit, constants.DefaultVideoLimit, constants.MaxPageLimit)
	cards, meta, err := service.NewVideoService(ctx).Feed(p)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{
		"videos":     cards,
		"pagination": meta,
	})
}

func FeedByCategory(ctx context.Context, c *app.RequestContext) {
	var param CategoryFeedParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	p := pagination.Normalize(param.Page, param.Limit, constants.DefaultVideoLimit, constants.MaxPageLimit)
	cards, meta, err := service.NewVideoService(ctx).FeedByCategory(param.Category, p)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{
		"videos":     cards,
		"pagination": meta,
	})
}

func Trending(ctx context.Context, c *app.RequestContext) {
	cards, err := service.NewVideoService(ctx).Trending()
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{"videos": cards})
}

func Search(ctx context.Context, c *app.RequestContext) {
	var param SearchParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	p := pagination.Normalize(param.Page, param.Limit, constants.DefaultVideoLimit, constants.MaxPageLimit)
	cards, meta, err := service.NewVideoService(ctx).Search(param.Keyword, param.Category, p)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{
		"videos":     cards,
		"pagination": meta,
	})
}

// ChannelVideos lists one channel's uploads; the owner also sees private
// and unlisted ones.
func ChannelVideos(ctx context.Context, c *app.RequestContext) {
	var param ChannelVideosParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	p := pagination.Normalize(param.Page, param.Limit, constants.DefaultVideoLimit, constants.MaxPageLimit)
	cards, meta, err := service.NewVideoService(ctx).ChannelVideos(
		param.Username, viewerID(ctx, c), p)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{
		"videos":     cards,
		"pagination": meta,
	})
}
