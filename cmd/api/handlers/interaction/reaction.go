package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/vistream/vistream/cmd/interaction/service"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/jwt"
)

// LikeVideo toggles the caller's like. Repeating it removes the like;
// liking while a dislike is held replaces it.
func LikeVideo(ctx context.Context, c *app.RequestContext) {
	toggleReaction(ctx, c, constants.ReactionLike)
}

// DislikeVideo toggles the caller's dislike, mirroring LikeVideo.
func DislikeVideo(ctx context.Context, c *app.RequestContext) {
	toggleReaction(ctx, c, constants.ReactionDislike)
}

func toggleReaction(ctx context.Context, c *app.RequestContext, kind string) {
	var param VideoParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	state, err := service.NewLikeService(ctx).ToggleVideoReaction(
		param.VideoId, jwt.GetUserID(ctx, c), kind)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, state)
}

// ListLikedVideos returns the caller's liked videos, most recent first.
func ListLikedVideos(ctx context.Context, c *app.RequestContext) {
	videos, err := service.NewLikeService(ctx).ListLikedVideos(jwt.GetUserID(ctx, c))
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]interface{}{"videos": videos})
}
