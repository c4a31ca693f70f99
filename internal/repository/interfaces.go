// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"context"

	"github.com/ashwinyue/thesis-hub/internal/model"
)

// ========== 目录类仓库 ==========

// CatalogRepository 按名称唯一的目录实体的通用操作
// 所有查询只针对未软删除的记录
type CatalogRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	// GetByName 忽略大小写按名称查找
	GetByName(ctx context.Context, name string) (*T, error)
	List(ctx context.Context, q ListQuery) ([]*T, int64, error)
	// Delete 软删除
	Delete(ctx context.Context, id string) error
}

// SemesterRepository 学期仓库
type SemesterRepository interface {
	CatalogRepository[model.Semester]
	CountPhases(ctx context.Context, semesterID string) (int64, error)
}

// PhaseTypeRepository 阶段类型仓库
type PhaseTypeRepository interface {
	CatalogRepository[model.PhaseType]
	CountPhases(ctx context.Context, phaseTypeID string) (int64, error)
}

// TopicCategoryRepository 选题分类仓库
type TopicCategoryRepository interface {
	CatalogRepository[model.TopicCategory]
	CountTopics(ctx context.Context, categoryID string) (int64, error)
}

// ========== 账号 ==========

// AccountQuery 账号查询条件
type AccountQuery struct {
	ListQuery
	Role   string
	Active *bool
}

// AccountRepository 账号仓库，返回的用户都预加载了 Roles
type AccountRepository interface {
	// Create 在一个事务内写入用户和 Roles 关联（角色必须已存在）
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, q AccountQuery) ([]*model.User, int64, error)
	AddRole(ctx context.Context, userID string, role *model.Role) error
	RemoveRole(ctx context.Context, userID string, role *model.Role) error
	// CountActiveWithRole 统计拥有角色且未锁定的账号数
	CountActiveWithRole(ctx context.Context, roleName string) (int64, error)
}

// RoleRepository 角色仓库
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*model.Role, error)
	List(ctx context.Context) ([]*model.Role, error)
	// EnsureDefaults 确保角色存在，已存在的不修改
	EnsureDefaults(ctx context.Context, names []string) error
}

// ========== 文件 ==========

// FileRepository 文件仓库
type FileRepository interface {
	Create(ctx context.Context, file *model.StoredFile) error
	GetByID(ctx context.Context, id string) (*model.StoredFile, error)
	Delete(ctx context.Context, id string) error

	CreateLink(ctx context.Context, link *model.FileLink) error
	GetLink(ctx context.Context, fileID, entityType, entityID string) (*model.FileLink, error)
	DeleteLink(ctx context.Context, fileID, entityType, entityID string) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*model.StoredFile, error)
	CountLinks(ctx context.Context, fileID string) (int64, error)
}

// 确保实现了接口
var (
	_ SemesterRepository      = (*semesterRepository)(nil)
	_ PhaseTypeRepository     = (*phaseTypeRepository)(nil)
	_ TopicCategoryRepository = (*topicCategoryRepository)(nil)
	_ AccountRepository       = (*accountRepository)(nil)
	_ RoleRepository          = (*roleRepository)(nil)
	_ FileRepository          = (*fileRepository)(nil)
)
