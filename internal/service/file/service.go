// Package file 附件上传与业务实体关联
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ashwinyue/thesis-hub/internal/errs"
	"github.com/ashwinyue/thesis-hub/internal/model"
	"github.com/ashwinyue/thesis-hub/internal/repository"
	"github.com/ashwinyue/thesis-hub/internal/validation"
)

// DefaultMaxSize 默认单文件上限 50MB
const DefaultMaxSize int64 = 50 << 20

var (
	ErrFileNotFound   = errs.NotFound("file not found")
	ErrLinkNotFound   = errs.NotFound("file is not linked to entity")
	ErrAlreadyLinked  = errs.Conflict("file already linked to entity")
	ErrFileInUse      = errs.Conflict("file is still linked to entities")
	ErrEmptyFile      = errs.BadRequest("file is empty")
	ErrFileTooLarge   = errs.New(413, "file too large")
	ErrUnknownEntity  = errs.BadRequest("unsupported entity type")
	ErrMissingEntity  = errs.BadRequest("entity id is required")
	ErrMissingFileKey = errs.BadRequest("file name is required")
)

// Service 文件服务
type Service struct {
	files       repository.FileRepository
	storage     Storage
	storageType StorageType
	maxSize     int64
	log         logrus.FieldLogger
}

// NewService 创建文件服务
func NewService(files repository.FileRepository, storage Storage, storageType StorageType, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		files:       files,
		storage:     storage,
		storageType: storageType,
		maxSize:     DefaultMaxSize,
		log:         log,
	}
}

// MaxSize 单文件上限
func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// UploadRequest 上传请求
type UploadRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
	UploadedBy  string
}

// LinkRequest 关联请求
type LinkRequest struct {
	EntityType string `json:"entity_type" binding:"required"`
	EntityID   string `json:"entity_id" binding:"required"`
}

// Upload 保存内容并写入文件记录
func (s *Service) Upload(ctx context.Context, req *UploadRequest) (*model.StoredFile, error) {
	name := filepath.Base(strings.TrimSpace(req.FileName))
	if name == "" || name == "." || name == "/" {
		return nil, ErrMissingFileKey
	}
	if req.Size == 0 || req.Reader == nil {
		return nil, ErrEmptyFile
	}
	if req.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	filePath, err := s.storage.Save(ctx, &SaveRequest{
		FileName:    name,
		ContentType: contentType,
		Size:        req.Size,
		Reader:      req.Reader,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	stored := &model.StoredFile{
		FileName:    name,
		FileSize:    req.Size,
		ContentType: contentType,
		StorageType: string(s.storageType),
		FilePath:    filePath,
		UploadedBy:  req.UploadedBy,
	}
	stored.EnsureID()

	if err := s.files.Create(ctx, stored); err != nil {
		// 记录写入失败时删除已保存的内容
		if derr := s.storage.Delete(ctx, filePath); derr != nil {
			s.log.WithError(derr).WithField("path", filePath).Warn("failed to clean up stored file")
		}
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return stored, nil
}

// Get 获取文件信息
func (s *Service) Get(ctx context.Context, id string) (*model.StoredFile, error) {
	f, err := s.files.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return f, nil
}

// Open 获取文件信息和内容，调用方负责关闭
func (s *Service) Open(ctx context.Context, id string) (*model.StoredFile, io.ReadCloser, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.storage.Get(ctx, f.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get file content: %w", err)
	}
	return f, reader, nil
}

// URL 文件访问地址
func (s *Service) URL(ctx context.Context, id string) (string, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetURL(f.FilePath), nil
}

// Delete 软删除文件记录，仍有关联时拒绝
// 存储中的内容保留，记录恢复后仍可访问
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.files.CountLinks(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count links: %w", err)
	}
	if n > 0 {
		return ErrFileInUse
	}

	if err := s.files.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Link 关联文件与实体
func (s *Service) Link(ctx context.Context, fileID string, req *LinkRequest) (*model.FileLink, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	entityType, entityID, err := normalizeEntity(req.EntityType, req.EntityID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, fileID); err != nil {
		return nil, err
	}

	if _, err := s.files.GetLink(ctx, fileID, entityType, entityID); err == nil {
		return nil, ErrAlreadyLinked
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check link: %w", err)
	}

	link := &model.FileLink{FileID: fileID, EntityType: entityType, EntityID: entityID}
	if err := s.files.CreateLink(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to link file: %w", err)
	}
	return link, nil
}

// Unlink 解除关联
func (s *Service) Unlink(ctx context.Context, fileID, entityType, entityID string) error {
	entityType, entityID, err := normalizeEntity(entityType, entityID)
	if err != nil {
		return err
	}
	if err := s.files.DeleteLink(ctx, fileID, entityType, entityID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return fmt.Errorf("failed to unlink file: %w", err)
	}
	return nil
}

// ListByEntity 实体关联的文件
func (s *Service) ListByEntity(ctx context.Context, entityType, entityID string) ([]*model.StoredFile, error) {
	entityType, entityID, err := normalizeEntity(entityType, entityID)
	if err != nil {
		return nil, err
	}
	files, err := s.files.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	if files == nil {
		files = []*model.StoredFile{}
	}
	return files, nil
}

func normalizeEntity(entityType, entityID string) (string, string, error) {
	entityType = strings.ToLower(strings.TrimSpace(entityType))
	entityID = strings.TrimSpace(entityID)

	known := false
	for _, e := range model.LinkableEntities {
		if e == entityType {
			known = true
			break
		}
	}
	if !known {
		return "", "", ErrUnknownEntity
	}
	if entityID == "" {
		return "", "", ErrMissingEntity
	}
	return entityType, entityID, nil
}
