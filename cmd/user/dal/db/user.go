package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vistream/vistream/cmd/model"
)

func CreateUser(ctx context.Context, user *model.User) error {
	if err := DB.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrap(err, "CreateUser failed")
	}
	return nil
}

// GetUserByEmail returns (nil, nil) when no such user exists.
func GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetUserByEmail failed")
	}
	return &user, nil
}

func GetUserByID(ctx context.Context, userId int64) (*model.User, error) {
	var user model.User
	err := DB.WithContext(ctx).Where("user_id = ?", userId).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetUserByID failed")
	}
	return &user, nil
}

func GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetUserByUsername failed")
	}
	return &user, nil
}

func GetUsersByIds(ctx context.Context, userIds []int64) ([]*model.User, error) {
	var users []*model.User
	if len(userIds) == 0 {
		return users, nil
	}
	if err := DB.WithContext(ctx).Where("user_id IN (?)", userIds).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "GetUsersByIds failed")
	}
	return users, nil
}

func CheckUserExistById(ctx context.Context, userId int64) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "CheckUserExistById failed")
	}
	return count > 0, nil
}

// UsernameOrEmailTaken is the registration uniqueness check.
func UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := DB.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "UsernameOrEmailTaken failed")
	}
	return count > 0, nil
}

func UpdateProfile(ctx context.Context, userId int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	if err := DB.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userId).
		Updates(updates).Error; err != nil {
		return errors.Wrap(err, "UpdateProfile failed")
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, userId int64, hashedPassword, updatedAt string) error {
	if err := DB.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"password":   hashedPassword,
			"updated_at": updatedAt,
		}).Error; err != nil {
		return errors.Wrap(err, "UpdateUserPassword failed")
	}
	return nil
}
