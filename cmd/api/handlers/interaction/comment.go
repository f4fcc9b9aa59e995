package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/vistream/vistream/cmd/interaction/service"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/jwt"
	"github.com/vistream/vistream/pkg/pagination"
)

func CreateComment(ctx context.Context, c *app.RequestContext) {
	var param CreateCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.Info(err)
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	comment, err := service.NewCommentService(ctx).AddComment(
		param.VideoId, jwt.GetUserID(ctx, c), param.ParentId, param.Content)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, comment)
}

func EditComment(ctx context.Context, c *app.RequestContext) {
	var param EditCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	comment, err := service.NewCommentService(ctx).EditComment(
		param.CommentId, jwt.GetUserID(ctx, c), param.Content)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, comment)
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	var param CommentParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	deleted, err := service.NewCommentService(ctx).DeleteComment(param.CommentId, jwt.GetUserID(ctx, c))
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]int64{"deleted": deleted})
}

func ListComments(ctx context.Context, c *app.RequestContext) {
	var param ListCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	p := pagination.Normalize(param.Page, param.Limit, constants.DefaultListLimit, constants.MaxPageLimit)
	comments, meta, err := service.NewCommentService(ctx).ListComments(param.VideoId, p)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{
		"comments":   comments,
		"pagination": meta,
	})
}

func ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	var param CommentParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	liked, count, err := service.NewCommentService(ctx).ToggleCommentLike(param.CommentId, jwt.GetUserID(ctx, c))
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{
		"liked":      liked,
		"like_count": count,
	})
}
