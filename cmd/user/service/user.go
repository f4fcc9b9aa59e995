package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vistream/vistream/cmd/model"
	relationdb "github.com/vistream/vistream/cmd/relation/dal/db"
	"github.com/vistream/vistream/cmd/user/dal/db"
	videodb "github.com/vistream/vistream/cmd/video/dal/db"
	"github.com/vistream/vistream/pkg/constants"
	"github.com/vistream/vistream/pkg/errno"
	"github.com/vistream/vistream/pkg/oss"
	"github.com/vistream/vistream/pkg/utils"
)

type UserService struct {
	ctx context.Context
}

func NewUserService(ctx context.Context) *UserService {
	return &UserService{ctx: ctx}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	ChannelName string `json:"channel_name"`
}

func validateRegister(req *RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Username) < constants.MinUsernameLength || len(req.Username) > constants.MaxUsernameLength {
		return errno.ParamErr.WithMessage("username must be 3 to 30 characters")
	}
	if !emailPattern.MatchString(req.Email) {
		return errno.ParamErr.WithMessage("invalid email address")
	}
	if len(req.Password) < constants.MinPasswordLength {
		return errno.ParamErr.WithMessage("password must be at least 6 characters")
	}
	if req.ChannelName == "" {
		req.ChannelName = req.Username
	}
	return nil
}

// Register creates an account. The channel name defaults to the username.
func (s *UserService) Register(req *RegisterRequest) (*model.User, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}
	taken, err := db.UsernameOrEmailTaken(s.ctx, req.Username, req.Email)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	if taken {
		return nil, errno.ConflictErr.WithMessage("username or email already in use")
	}
	hashed, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	now := time.Now().Format(constants.TimeFormat)
	user := &model.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    hashed,
		ChannelName: req.ChannelName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.CreateUser(s.ctx, user); err != nil {
		return nil, errno.ConvertErr(err)
	}
	logrus.Infof("user %d registered as %s", user.UserId, user.Username)
	return user, nil
}

// Login checks credentials by email and returns the user on success.
func (s *UserService) Login(email, password string) (*model.User, error) {
	user, err := db.GetUserByEmail(s.ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	if user == nil || !utils.VerifyPassword(password, user.Password) {
		return nil, errno.AuthorizationErr.WithMessage("wrong email or password")
	}
	return user, nil
}

// Profile is the public channel page: the user row plus derived counts
// and, for a signed-in viewer, their subscription state.
type Profile struct {
	*model.User
	SubscriberCount   int64 `json:"subscriber_count"`
	SubscriptionCount int64 `json:"subscription_count"`
	VideoCount        int64 `json:"video_count"`
	IsSubscribed      bool  `json:"is_subscribed"`
}

func (s *UserService) GetProfile(userId, viewerId int64) (*Profile, error) {
	user, err := db.GetUserByID(s.ctx, userId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	return s.buildProfile(user, viewerId)
}

// GetProfileByUsername serves the public channel page addressed by
// handle.
func (s *UserService) GetProfileByUsername(username string, viewerId int64) (*Profile, error) {
	user, err := db.GetUserByUsername(s.ctx, username)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	return s.buildProfile(user, viewerId)
}

func (s *UserService) buildProfile(user *model.User, viewerId int64) (*Profile, error) {
	if user == nil {
		return nil, errno.NotFoundErr.WithMessage("user not found")
	}
	userId := user.UserId
	subscriberCount, err := relationdb.CountSubscribers(s.ctx, userId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	subscriptionCount, err := relationdb.CountSubscriptions(s.ctx, userId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	videoCount, err := videodb.CountByOwner(s.ctx, userId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	profile := &Profile{
		User:              user,
		SubscriberCount:   subscriberCount,
		SubscriptionCount: subscriptionCount,
		VideoCount:        videoCount,
	}
	if viewerId != 0 && viewerId != userId {
		if profile.IsSubscribed, err = relationdb.IsSubscribed(s.ctx, viewerId, userId); err != nil {
			return nil, errno.ConvertErr(err)
		}
	}
	return profile, nil
}

// UpdateProfile edits channel metadata. Usernames stay immutable.
func (s *UserService) UpdateProfile(userId int64, channelName, channelDescription *string) (*model.User, error) {
	updates := map[string]interface{}{}
	if channelName != nil {
		if strings.TrimSpace(*channelName) == "" {
			return nil, errno.ParamErr.WithMessage("channel name is empty")
		}
		updates["channel_name"] = strings.TrimSpace(*channelName)
	}
	if channelDescription != nil {
		if len(*channelDescription) > constants.MaxChannelDescLength {
			return nil, errno.ParamErr.WithMessage("channel description too long")
		}
		updates["channel_description"] = *channelDescription
	}
	if len(updates) == 0 {
		return nil, errno.ParamErr.WithMessage("nothing to update")
	}
	updates["updated_at"] = time.Now().Format(constants.TimeFormat)
	if err := db.UpdateProfile(s.ctx, userId, updates); err != nil {
		return nil, errno.ConvertErr(err)
	}
	user, err := db.GetUserByID(s.ctx, userId)
	if err != nil {
		return nil, errno.ConvertErr(err)
	}
	return user, nil
}

// UploadAvatar stores the image and points the profile at it.
func (s *UserService) UploadAvatar(userId int64, data []byte, contentType string) (string, error) {
	user, err := db.GetUserByID(s.ctx, userId)
	if err != nil {
		return "", errno.ConvertErr(err)
	}
	if user == nil {
		return "", errno.NotFoundErr.WithMessage("user not found")
	}
	url, err := oss.UploadAvatar(s.ctx, data, fmt.Sprint(userId), contentType)
	if err != nil {
		return "", errno.ParamErr.WithMessage(err.Error())
	}
	if err := db.UpdateProfile(s.ctx, userId, map[string]interface{}{
		"avatar_url": url,
		"updated_at": time.Now().Format(constants.TimeFormat),
	}); err != nil {
		return "", errno.ConvertErr(err)
	}
	return url, nil
}

func (s *UserService) ChangePassword(userId int64, oldPassword, newPassword string) error {
	if len(newPassword) < constants.MinPasswordLength {
		return errno.ParamErr.WithMessage("password must be at least 6 characters")
	}
	user, err := db.GetUserByID(s.ctx, userId)
	if err != nil {
		return errno.ConvertErr(err)
	}
	if user == nil {
		return errno.NotFoundErr.WithMessage("user not found")
	}
	if !utils.VerifyPassword(oldPassword, user.Password) {
		return errno.AuthorizationErr.WithMessage("wrong password")
	}
	hashed, err := utils.Crypt(newPassword)
	if err != nil {
		return errno.ConvertErr(err)
	}
	if err := db.UpdateUserPassword(s.ctx, userId, hashed, time.Now().Format(constants.TimeFormat)); err != nil {
		return errno.ConvertErr(err)
	}
	logrus.Infof("user %d changed password", userId)
	return nil
}
