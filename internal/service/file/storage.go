package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ashwinyue/thesis-hub/internal/config"
)

// Storage 文件存储接口
type Storage interface {
	// Save 保存文件，返回存储路径
	Save(ctx context.Context, req *SaveRequest) (string, error)
	// Get 获取文件内容
	Get(ctx context.Context, filePath string) (io.ReadCloser, error)
	// Delete 删除文件，不存在时不报错
	Delete(ctx context.Context, filePath string) error
	// GetURL 获取文件的访问URL
	GetURL(filePath string) string
}

// SaveRequest 保存文件请求
type SaveRequest struct {
	FileName    string
	ContentType string
	Size        int64 // 未知时为 -1
	Reader      io.Reader
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeMinIO StorageType = "minio"
)

// NewStorage 根据配置创建存储
func NewStorage(ctx context.Context, cfg config.StorageConfig) (Storage, StorageType, error) {
	switch StorageType(strings.ToLower(cfg.Type)) {
	case StorageTypeLocal, "":
		s, err := NewLocalStorage(cfg.BasePath, cfg.URLPrefix)
		return s, StorageTypeLocal, err
	case StorageTypeMinIO:
		s, err := NewMinIOStorage(ctx, cfg.MinIO)
		return s, StorageTypeMinIO, err
	default:
		return nil, "", fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// objectKey 生成存储路径: {yyyy}/{mm}/{uuid}{ext}
func objectKey(fileName, contentType string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = extensionByContentType(contentType)
	}
	return path.Join(now.Format("2006"), now.Format("01"), uuid.New().String()+ext)
}

// extensionByContentType 根据内容类型返回扩展名
func extensionByContentType(contentType string) string {
	ct := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	switch ct {
	case "application/pdf":
		return ".pdf"
	case "application/msword":
		return ".doc"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return ".xlsx"
	case "application/vnd.openxmlformats-officedocument.presentationml.presentation":
		return ".pptx"
	case "application/zip":
		return ".zip"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "text/plain", "text/csv":
		return ".txt"
	case "text/markdown":
		return ".md"
	default:
		return ".bin"
	}
}
