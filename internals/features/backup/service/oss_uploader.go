// file: internals/features/backup/service/oss_uploader.go
package service

import (
	"fmt"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"eduanalytics_backend/internals/configs"
)

// OSSUploader copies finished archives to an OSS bucket so a lost disk does
// not mean lost backups.
type OSSUploader struct {
	bucket *oss.Bucket
	prefix string
}

func NewOSSUploader(cfg configs.OSSConfig) (*OSSUploader, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", cfg.Bucket, err)
	}
	return &OSSUploader{bucket: bucket, prefix: "backups/"}, nil
}

func (u *OSSUploader) Upload(localPath, objectKey string) error {
	return u.bucket.PutObjectFromFile(u.prefix+objectKey, localPath)
}
