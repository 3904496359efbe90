package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ==================== 配置 ====================

type StorageConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 自定义端点 (MinIO 等 S3 兼容存储)
	BasePath  string // 基础路径前缀
}

// Configured 是否配置了可用的存储
func (c *StorageConfig) Configured() bool {
	return c != nil && c.Bucket != ""
}

// ==================== 存储服务 ====================

// StorageService 媒体文件对象存储 (S3)
// 未配置时构造函数返回 nil，媒体导入退化为只存元数据
type StorageService struct {
	client   *s3.Client
	bucket   string
	region   string
	basePath string
}

// NewStorageService 创建存储服务，未配置 bucket 时返回 (nil, nil)
func NewStorageService(cfg *StorageConfig) (*StorageService, error) {
	if !cfg.Configured() {
		return nil, nil
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &StorageService{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		basePath: cfg.BasePath,
	}, nil
}

// Upload 上传媒体二进制，返回对象 key
// key 按媒体 code 定位，同一文件重复导入覆盖同一对象
func (s *StorageService) Upload(ctx context.Context, code, filename, contentType string, data []byte) (string, error) {
	key := s.objectKey(code, filename)

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}

	return key, nil
}

// Delete 删除对象
func (s *StorageService) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// GetSignedURL 获取签名下载 URL (私有 bucket)
func (s *StorageService) GetSignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	presigned, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}

func (s *StorageService) objectKey(code, filename string) string {
	name := path.Base(filename)
	if name == "." || name == "/" || name == "" {
		name = code
	}
	if s.basePath != "" {
		return fmt.Sprintf("%s/media/%s/%s", s.basePath, code, name)
	}
	return fmt.Sprintf("media/%s/%s", code, name)
}
