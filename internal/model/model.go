// Package model 定义持久化实体
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base 实体公共字段，DeletedAt 非空即为软删除
type Base struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate GORM 钩子，创建前生成 UUID
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// EnsureID 在写入前补全 ID，供不经过 GORM 钩子的场景使用
func (b *Base) EnsureID() string {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return b.ID
}
