package handlers

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"github.com/vistream/vistream/cmd/user/service"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/jwt"
)

// GetProfile serves the public channel page. The viewer id widens the
// response with subscription state when a token is present.
func GetProfile(ctx context.Context, c *app.RequestContext) {
	var param ProfileParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	profile, err := service.NewUserService(ctx).GetProfileByUsername(param.Username, jwt.GetUserID(ctx, c))
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, profile)
}

// Me returns the caller's own profile.
func Me(ctx context.Context, c *app.RequestContext) {
	uid := jwt.GetUserID(ctx, c)
	profile, err := service.NewUserService(ctx).GetProfile(uid, uid)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, profile)
}

func UpdateProfile(ctx context.Context, c *app.RequestContext) {
	var param UpdateProfileParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	user, err := service.NewUserService(ctx).UpdateProfile(
		jwt.GetUserID(ctx, c), param.ChannelName, param.ChannelDescription)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, user)
}

func UploadAvatar(ctx context.Context, c *app.RequestContext) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		SendResponse(c, errno.ParamErr.WithMessage("avatar file is required"), nil)
		return
	}
	data, contentType, err := readUpload(fileHeader)
	if err != nil {
		hlog.Info(err)
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	url, err := service.NewUserService(ctx).UploadAvatar(jwt.GetUserID(ctx, c), data, contentType)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, map[string]string{"avatar_url": url})
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, fileHeader.Header.Get("Content-Type"), nil
}

func ChangePassword(ctx context.Context, c *app.RequestContext) {
	var param ChangePasswordParam
	if err := c.BindAndValidate(&param); err != nil {
		SendResponse(c, errno.ParamErr, nil)
		return
	}
	err := service.NewUserService(ctx).ChangePassword(
		jwt.GetUserID(ctx, c), param.OldPassword, param.NewPassword)
	if err != nil {
		SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	SendResponse(c, errno.Success, nil)
}
