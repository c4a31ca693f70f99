package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 文件可以关联的实体类型
const (
	EntityTopic    = "topic"
	EntitySemester = "semester"
	EntityPhase    = "phase"
	EntityAccount  = "account"
)

// LinkableEntities 允许关联文件的实体类型
var LinkableEntities = []string{EntityTopic, EntitySemester, EntityPhase, EntityAccount}

// StoredFile 存储的文件信息
type StoredFile struct {
	Base
	FileName    string `json:"file_name" gorm:"size:255;not null"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type" gorm:"size:128"`
	StorageType string `json:"storage_type" gorm:"size:32"` // local, minio
	FilePath    string `json:"file_path" gorm:"size:500"`   // 存储路径或对象名
	UploadedBy  string `json:"uploaded_by,omitempty" gorm:"type:varchar(36);index"`
}

// TableName 指定表名
func (StoredFile) TableName() string {
	return "stored_files"
}

// FileLink 文件与业务实体的关联
type FileLink struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FileID     string    `json:"file_id" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_file_entity"`
	EntityType string    `json:"entity_type" gorm:"size:32;not null;uniqueIndex:idx_file_entity;index:idx_entity"`
	EntityID   string    `json:"entity_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_file_entity;index:idx_entity"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (FileLink) TableName() string {
	return "file_links"
}

// BeforeCreate GORM 钩子
func (l *FileLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
