package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在（含已软删除）
var ErrNotFound = errors.New("record not found")

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB            *gorm.DB // 直接访问数据库
	Account       AccountRepository
	Role          RoleRepository
	File          FileRepository
	Semester      SemesterRepository
	PhaseType     PhaseTypeRepository
	TopicCategory TopicCategoryRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:            db,
		Account:       NewAccountRepository(db),
		Role:          NewRoleRepository(db),
		File:          NewFileRepository(db),
		Semester:      NewSemesterRepository(db),
		PhaseType:     NewPhaseTypeRepository(db),
		TopicCategory: NewTopicCategoryRepository(db),
	}
}

// ListQuery 分页查询参数
type ListQuery struct {
	Page     int
	PageSize int
	Keyword  string
}

// Normalize 规范分页参数：page 从 1 开始，pageSize 默认 20、最大 100
func (q ListQuery) Normalize() ListQuery {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	q.Keyword = strings.TrimSpace(q.Keyword)
	return q
}

// Offset 分页偏移
func (q ListQuery) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// translate 把 gorm 的未找到错误转换为 ErrNotFound
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// likePattern 构造忽略大小写的 LIKE 模式
func likePattern(keyword string) string {
	return "%" + strings.ToLower(keyword) + "%"
}
