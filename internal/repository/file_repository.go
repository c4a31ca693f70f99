package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ashwinyue/thesis-hub/internal/model"
)

// fileRepository 文件仓库实现
type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建文件仓库
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

// Create 创建文件记录
func (r *fileRepository) Create(ctx context.Context, file *model.StoredFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// GetByID 根据 ID 获取
func (r *fileRepository) GetByID(ctx context.Context, id string) (*model.StoredFile, error) {
	var file model.StoredFile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, translate(err)
	}
	return &file, nil
}

// Delete 软删除文件记录
func (r *fileRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.StoredFile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateLink 创建文件与实体的关联
func (r *fileRepository) CreateLink(ctx context.Context, link *model.FileLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// GetLink 获取关联
func (r *fileRepository) GetLink(ctx context.Context, fileID, entityType, entityID string) (*model.FileLink, error) {
	var link model.FileLink
	err := r.db.WithContext(ctx).
		Where("file_id = ? AND entity_type = ? AND entity_id = ?", fileID, entityType, entityID).
		First(&link).Error
	if err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

// DeleteLink 删除关联
func (r *fileRepository) DeleteLink(ctx context.Context, fileID, entityType, entityID string) error {
	res := r.db.WithContext(ctx).
		Where("file_id = ? AND entity_type = ? AND entity_id = ?", fileID, entityType, entityID).
		Delete(&model.FileLink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByEntity 实体关联的文件
func (r *fileRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]*model.StoredFile, error) {
	var files []*model.StoredFile
	err := r.db.WithContext(ctx).
		Joins("JOIN file_links ON file_links.file_id = stored_files.id").
		Where("file_links.entity_type = ? AND file_links.entity_id = ?", entityType, entityID).
		Order("file_links.created_at ASC").
		Find(&files).Error
	return files, err
}

// CountLinks 文件的关联数
func (r *fileRepository) CountLinks(ctx context.Context, fileID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.FileLink{}).Where("file_id = ?", fileID).Count(&n).Error
	return n, err
}
