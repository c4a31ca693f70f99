package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 内置角色
const (
	RoleAdmin     = "Admin"
	RoleLecturer  = "Lecturer"
	RoleStudent   = "Student"
	RoleModerator = "Moderator"
)

// DefaultRoles migrate 时写入的角色
var DefaultRoles = []string{RoleAdmin, RoleLecturer, RoleStudent, RoleModerator}

// Role 角色
type Role struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Role) TableName() string {
	return "roles"
}

// BeforeCreate GORM 钩子
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// User 账号
type User struct {
	Base
	Username     string  `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	FullName     string  `gorm:"size:255" json:"full_name"`
	Phone        string  `gorm:"size:32" json:"phone,omitempty"`
	Avatar       string  `gorm:"size:500" json:"avatar,omitempty"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
	Roles        []*Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// RoleNames 角色名列表
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole 是否拥有角色（忽略大小写）
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if equalFold(r.Name, name) {
			return true
		}
	}
	return false
}

// UserInfo 用户信息（不含敏感数据）
type UserInfo struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserInfo 转换为 UserInfo
func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
