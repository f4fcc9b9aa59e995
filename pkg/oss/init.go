package oss

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/vistream/vistream/config"
)

var (
	minioClient *minio.Client
	publicURL   string
)

func InitMinio() error {
	cfg := config.ConfigInfo.Minio
	publicURL = cfg.PublicURL

	var err error
	minioClient, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logrus.Errorf("failed to create minio client: %v", err)
		return err
	}

	logrus.Infof("connected to minio at %s", cfg.Endpoint)
	return nil
}
