package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"casemall_v1_202608/pkg/config"
)

// ==================== 接口定义 ====================

// 上传子目录，目录实体和壳实体的文件分开存放
const (
	MediaDirProducts = "products"
	MediaDirCases    = "cases"
)

// StorageProvider 媒体存储提供者接口
type StorageProvider interface {
	// Upload 上传文件，dir 为子目录，返回可回写到实体行的路径
	Upload(ctx context.Context, dir string, data []byte, filename string, contentType string) (path string, err error)

	// Delete 删除文件，文件不存在视为成功
	Delete(ctx context.Context, path string) error
}

// NewStorageProvider 按配置选择存储实现
func NewStorageProvider(cfg *config.Config) (StorageProvider, error) {
	switch cfg.StorageProvider {
	case "s3":
		return NewS3Storage(cfg)
	case "local", "":
		return NewLocalStorage(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.StorageProvider)
	}
}

// ==================== 本地存储 ====================

// LocalStorage 本地磁盘存储，路径即对外静态路径
type LocalStorage struct {
	basePath string
}

// NewLocalStorage 创建本地存储，预建上传目录
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if basePath == "" {
		basePath = "static"
	}
	for _, dir := range []string{MediaDirProducts, MediaDirCases} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0o755); err != nil {
			return nil, fmt.Errorf("创建上传目录失败: %w", err)
		}
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, dir string, data []byte, filename string, contentType string) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String(), sanitizeFilename(filename))
	path := filepath.Join(s.basePath, dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	return filepath.ToSlash(path), nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.FromSlash(path))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitizeFilename 去掉路径成分，防止越出上传目录
func sanitizeFilename(filename string) string {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	return strings.ReplaceAll(name, " ", "_")
}

// ==================== S3 实现 ====================

// S3Storage AWS S3 存储
type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
}

// NewS3Storage 创建 S3 存储
func NewS3Storage(cfg *config.Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	return &S3Storage{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.S3Bucket,
		region:    cfg.S3Region,
		cdnDomain: cfg.S3CDNDomain,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, dir string, data []byte, filename string, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s_%s", dir, uuid.New().String(), sanitizeFilename(filename))

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

	return s.publicURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, path string) error {
	key := s.extractKey(path)
	if key == "" {
		return fmt.Errorf("无法解析文件路径: %s", path)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) publicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Storage) extractKey(url string) string {
	if s.cdnDomain != "" && strings.Contains(url, s.cdnDomain) {
		return strings.TrimPrefix(url, fmt.Sprintf("https://%s/", s.cdnDomain))
	}
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	return strings.TrimPrefix(url, prefix)
}
