package oss

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
)

const (
	videoBucket   = "videos"
	pictureBucket = "pictures"
	region        = "us-east-1"
)

func ensureBucket(ctx context.Context, bucketName string) error {
	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		err = minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: region})
		if err != nil {
			return fmt.Errorf("create bucket error: %w", err)
		}
	}
	return nil
}

func objectURL(bucketName, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", publicURL, bucketName, objectName)
}

// UploadAvatar replaces the previous avatar for uid, if any, before
// storing the new one.
func UploadAvatar(ctx context.Context, data []byte, uid string, contentType string) (string, error) {
	var suffix string
	switch contentType {
	case "image/jpeg", "image/jpg":
		suffix = ".jpg"
	case "image/png":
		suffix = ".png"
	default:
		return "", fmt.Errorf("unsupported image format: %s", contentType)
	}

	if err := ensureBucket(ctx, pictureBucket); err != nil {
		return "", err
	}
	deleteAvatar(ctx, uid)

	objectName := "avatars/" + uid + suffix
	_, err := minioClient.PutObject(ctx, pictureBucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return objectURL(pictureBucket, objectName), nil
}

func deleteAvatar(ctx context.Context, uid string) {
	for _, suffix := range []string{".jpg", ".png"} {
		_ = minioClient.RemoveObject(ctx, pictureBucket,
			"avatars/"+uid+suffix, minio.RemoveObjectOptions{})
	}
}

func UploadVideo(ctx context.Context, path, vid string) (string, error) {
	if err := ensureBucket(ctx, videoBucket); err != nil {
		return "", err
	}
	objectName := "video/" + vid + "/video.mp4"
	_, err := minioClient.FPutObject(ctx, videoBucket, objectName, path,
		minio.PutObjectOptions{ContentType: "video/mp4"})
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}
	return objectURL(videoBucket, objectName), nil
}

func UploadThumbnail(ctx context.Context, path, vid string) (string, error) {
	if err := ensureBucket(ctx, pictureBucket); err != nil {
		return "", err
	}
	objectName := "covers/" + vid + "/cover.jpg"
	_, err := minioClient.FPutObject(ctx, pictureBucket, objectName, path,
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", fmt.Errorf("failed to upload thumbnail: %w", err)
	}
	return objectURL(pictureBucket, objectName), nil
}

// DeleteVideoObjects removes the stored media for a deleted video.
func DeleteVideoObjects(ctx context.Context, vid string) {
	_ = minioClient.RemoveObject(ctx, videoBucket,
		"video/"+vid+"/video.mp4", minio.RemoveObjectOptions{})
	_ = minioClient.RemoveObject(ctx, pictureBucket,
		"covers/"+vid+"/cover.jpg", minio.RemoveObjectOptions{})
}
