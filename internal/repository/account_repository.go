package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashwinyue/thesis-hub/internal/model"
)

// accountRepository 账号仓库实现
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账号仓库
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create 创建账号，角色只写关联表
func (r *accountRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles.*").Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

// Update 更新账号字段，不改动角色
func (r *accountRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// GetByID 根据 ID 获取
func (r *accountRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail 根据邮箱获取
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
}

// GetByUsername 根据用户名获取
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username)))
}

func (r *accountRepository) first(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Roles").Where(cond, arg).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// List 分页查询账号
func (r *accountRepository) List(ctx context.Context, q AccountQuery) ([]*model.User, int64, error) {
	q.ListQuery = q.ListQuery.Normalize()

	var (
		users []*model.User
		total int64
	)

	query := r.db.WithContext(ctx).Model(&model.User{})
	if q.Keyword != "" {
		p := likePattern(q.Keyword)
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?", p, p, p)
	}
	if role := strings.TrimSpace(q.Role); role != "" {
		sub := r.db.Table("user_roles").
			Select("user_roles.user_id").
			Joins("JOIN roles ON roles.id = user_roles.role_id").
			Where("LOWER(roles.name) = ?", strings.ToLower(role))
		query = query.Where("id IN (?)", sub)
	}
	if q.Active != nil {
		query = query.Where("is_active = ?", *q.Active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	err := query.Preload("Roles").
		Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&users).Error
	return users, total, err
}

// AddRole 追加角色
func (r *accountRepository) AddRole(ctx context.Context, userID string, role *model.Role) error {
	user := &model.User{Base: model.Base{ID: userID}}
	return r.db.WithContext(ctx).Model(user).Omit("Roles.*").Association("Roles").Append(role)
}

// RemoveRole 移除角色关联，角色本身保留
func (r *accountRepository) RemoveRole(ctx context.Context, userID string, role *model.Role) error {
	user := &model.User{Base: model.Base{ID: userID}}
	return r.db.WithContext(ctx).Model(user).Association("Roles").Delete(role)
}

// CountActiveWithRole 统计拥有角色且启用的账号
func (r *accountRepository) CountActiveWithRole(ctx context.Context, roleName string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("LOWER(roles.name) = ? AND users.is_active = ?", strings.ToLower(roleName), true).
		Count(&n).Error
	return n, err
}

// roleRepository 角色仓库实现
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository 创建角色仓库
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// GetByName 忽略大小写按名称获取
func (r *roleRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&role).Error
	if err != nil {
		return nil, translate(err)
	}
	return &role, nil
}

// List 全部角色
func (r *roleRepository) List(ctx context.Context) ([]*model.Role, error) {
	var roles []*model.Role
	err := r.db.WithContext(ctx).Order("name ASC").Find(&roles).Error
	return roles, err
}

// EnsureDefaults 初始化角色
func (r *roleRepository) EnsureDefaults(ctx context.Context, names []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			var role model.Role
			err := tx.Where(model.Role{Name: name}).
				Attrs(model.Role{ID: uuid.New().String()}).
				FirstOrCreate(&role).Error
			if err != nil {
				return fmt.Errorf("failed to ensure role %s: %w", name, err)
			}
		}
		return nil
	})
}
