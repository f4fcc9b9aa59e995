package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/vistream/vistream/cmd/relation/service"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/jwt"
	"github.com/vistream/vistream/pkg/pagination"
)

func Subscribe(ctx context.Context, c *app.RequestContext) {
	var param ChannelParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	err := service.NewSubscriptionService(ctx).Subscribe(jwt.GetUserID(ctx, c), param.ChannelId)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}

func Unsubscribe(ctx context.Context, c *app.RequestContext) {
	var param ChannelParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	err := service.NewSubscriptionService(ctx).Unsubscribe(jwt.GetUserID(ctx, c), param.ChannelId)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}

// SubscriptionStatus reports whether the caller subscribes to a channel,
// together with the channel's subscriber count.
func SubscriptionStatus(ctx context.Context, c *app.RequestContext) {
	var param ChannelParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	svc := service.NewSubscriptionService(ctx)
	subscribed, err := svc.IsSubscribed(jwt.GetUserID(ctx, c), param.ChannelId)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	count, err := svc.SubscriberCount(param.ChannelId)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{
		"is_subscribed":    subscribed,
		"subscriber_count": count,
	})
}

func ListSubscriptions(ctx context.Context, c *app.RequestContext) {
	var param PageParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	p := pagination.Normalize(param.Page, param.Limit, constants.DefaultListLimit, constants.MaxPageLimit)
	cards, meta, err := service.NewSubscriptionService(ctx).ListSubscriptions(jwt.GetUserID(ctx, c), p)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{
		"channels":   cards,
		"pagination": meta,
	})
}

func ListSubscribers(ctx context.Context, c *app.RequestContext) {
	var param SubscriberListParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	p := pagination.Normalize(param.Page, param.Limit, constants.DefaultListLimit, constants.MaxPageLimit)
	cards, meta, err := service.NewSubscriptionService(ctx).ListSubscribers(param.ChannelId, p)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{
		"subscribers": cards,
		"pagination":  meta,
	})
}
