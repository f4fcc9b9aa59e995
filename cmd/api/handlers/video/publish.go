package handlers

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"

	"github.com/vistream/vistream/cmd/video/service"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/jwt"
)

// Publish accepts a multipart upload, spools the media file to disk and
// hands it to the video service.
func Publish(ctx context.Context, c *app.RequestContext) {
	var param PublishParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.Info(err)
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	fileHeader, err := c.FormFile("video")
	if err != nil {
		SendResponse(c, errno.ParamErr.WithMessage("video file is required"), nil)
		return
	}

	tmpDir, err := os.MkdirTemp("", "upload-"+uuid.NewString())
	if err != nil {
		SendResponse(c, errno.ServiceErr, nil)
		return
	}
	defer os.RemoveAll(tmpDir)
	tmpPath := filepath.Join(tmpDir, fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		hlog.Errorf("spooling upload: %v", err)
		SendResponse(c, errno.ServiceErr, nil)
		return
	}

	var tags []string
	if param.Tags != "" {
		tags = strings.Split(param.Tags, ",")
	}
	video, err := service.NewVideoService(ctx).Publish(&service.PublishRequest{
		UserId:      jwt.GetUserID(ctx, c),
		FilePath:    tmpPath,
		Title:       param.Title,
		Description: param.Description,
		Category:    param.Category,
		Tags:        tags,
		Visibility:  param.Visibility,
	})
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, video)
}

func UpdateVideo(ctx context.Context, c *app.RequestContext) {
	var param UpdateVideoParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	updates := map[string]interface{}{}
	if param.Title != nil {
		updates["title"] = *param.Title
	}
	if param.Description != nil {
		updates["description"] = *param.Description
	}
	if param.Category != nil {
		updates["category"] = *param.Category
	}
	if param.Tags != nil {
		updates["tags"] = *param.Tags
	}
	if param.Visibility != nil {
		updates["visibility"] = *param.Visibility
	}
	if len(updates) == 0 {
		SendResponse(c, errno.ParamErr.WithMessage("nothing to update"), nil)
		return
	}
	video, err := service.NewVideoService(ctx).Update(param.VideoId, jwt.GetUserID(ctx, c), updates)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, video)
}

func DeleteVideo(ctx context.Context, c *app.RequestContext) {
	var param VideoParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	if err := service.NewVideoService(ctx).Delete(param.VideoId, jwt.GetUserID(ctx, c)); err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}
