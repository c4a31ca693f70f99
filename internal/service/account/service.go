// Package account 账号与角色管理
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ashwinyue/thesis-hub/internal/config"
	"github.com/ashwinyue/thesis-hub/internal/errs"
	"github.com/ashwinyue/thesis-hub/internal/model"
	"github.com/ashwinyue/thesis-hub/internal/repository"
	"github.com/ashwinyue/thesis-hub/internal/service/types"
	"github.com/ashwinyue/thesis-hub/internal/validation"
)

var (
	ErrAccountNotFound     = errs.NotFound("account not found")
	ErrRoleNotFound        = errs.NotFound("role not found")
	ErrRoleNotAssigned     = errs.NotFound("role not assigned to account")
	ErrEmailTaken          = errs.Conflict("email already in use")
	ErrUsernameTaken       = errs.Conflict("username already in use")
	ErrRoleAlreadyAssigned = errs.Conflict("role already assigned to account")
	ErrLastAdmin           = errs.Conflict("cannot remove the last active admin")
	ErrInvalidCredentials  = errs.Unauthorized("invalid email or password")
	ErrAccountLocked       = errs.Forbidden("account is locked")
	ErrWrongPassword       = errs.BadRequest("old password is incorrect")
)

// Service 账号服务
type Service struct {
	accounts repository.AccountRepository
	roles    repository.RoleRepository
	tokens   *TokenIssuer
	cost     int
}

// Option 服务选项
type Option func(*Service)

// WithBcryptCost 设置 bcrypt 强度，测试中使用 bcrypt.MinCost
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// NewService 创建账号服务
func NewService(accounts repository.AccountRepository, roles repository.RoleRepository, cfg config.JWTConfig, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		roles:    roles,
		tokens:   NewTokenIssuer(cfg),
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tokens 令牌签发器
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// CreateRequest 创建账号请求
type CreateRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	FullName string   `json:"full_name" binding:"max=255"`
	Phone    string   `json:"phone" binding:"max=32"`
	Roles    []string `json:"roles"`
}

// UpdateRequest 更新账号请求，空字段不修改
type UpdateRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"full_name" binding:"max=255"`
	Phone    string `json:"phone" binding:"max=32"`
	Avatar   string `json:"avatar" binding:"max=500"`
}

// ListRequest 账号列表请求
type ListRequest struct {
	types.PageRequest
	Role   string `form:"role"`
	Active *bool  `form:"active"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      *model.UserInfo `json:"user"`
}

// Create 创建账号
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.UserInfo, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	roles, err := s.resolveRoles(ctx, req.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
		IsActive:     true,
		Roles:        roles,
	}
	user.EnsureID()

	if err := s.accounts.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return user.ToUserInfo(), nil
}

// Get 获取账号
func (s *Service) Get(ctx context.Context, id string) (*model.UserInfo, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToUserInfo(), nil
}

// List 分页查询账号
func (s *Service) List(ctx context.Context, req *ListRequest) (*types.Page[*model.UserInfo], error) {
	q := req.Query()
	users, total, err := s.accounts.List(ctx, repository.AccountQuery{
		ListQuery: q,
		Role:      req.Role,
		Active:    req.Active,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	items := make([]*model.UserInfo, 0, len(users))
	for _, u := range users {
		items = append(items, u.ToUserInfo())
	}
	return types.NewPage(items, total, q), nil
}

// Update 更新账号资料
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*model.UserInfo, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != user.Email {
		if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if v := strings.TrimSpace(req.FullName); v != "" {
		user.FullName = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		user.Phone = v
	}
	if v := strings.TrimSpace(req.Avatar); v != "" {
		user.Avatar = v
	}

	if err := s.accounts.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return user.ToUserInfo(), nil
}

// SetActive 锁定或解锁账号
func (s *Service) SetActive(ctx context.Context, id string, active bool) (*model.UserInfo, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user.ToUserInfo(), nil
	}
	if !active && user.HasRole(model.RoleAdmin) {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}

	user.IsActive = active
	if err := s.accounts.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return user.ToUserInfo(), nil
}

// ChangePassword 修改密码
func (s *Service) ChangePassword(ctx context.Context, id string, req *ChangePasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.accounts.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetRoles 账号的角色名
func (s *Service) GetRoles(ctx context.Context, id string) ([]string, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.RoleNames(), nil
}

// AssignRole 分配角色
func (s *Service) AssignRole(ctx context.Context, id, roleName string) ([]string, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	role, err := s.role(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if user.HasRole(role.Name) {
		return nil, ErrRoleAlreadyAssigned
	}

	if err := s.accounts.AddRole(ctx, user.ID, role); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}
	user.Roles = append(user.Roles, role)
	return user.RoleNames(), nil
}

// RemoveRole 移除角色，不能移除最后一个启用的管理员
func (s *Service) RemoveRole(ctx context.Context, id, roleName string) ([]string, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var held *model.Role
	for _, r := range user.Roles {
		if strings.EqualFold(r.Name, strings.TrimSpace(roleName)) {
			held = r
			break
		}
	}
	if held == nil {
		return nil, ErrRoleNotAssigned
	}
	if held.Name == model.RoleAdmin && user.IsActive {
		if err := s.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}

	if err := s.accounts.RemoveRole(ctx, user.ID, held); err != nil {
		return nil, fmt.Errorf("failed to remove role: %w", err)
	}

	remaining := make([]*model.Role, 0, len(user.Roles))
	for _, r := range user.Roles {
		if r.ID != held.ID {
			remaining = append(remaining, r)
		}
	}
	user.Roles = remaining
	return user.RoleNames(), nil
}

// ListRoles 全部角色
func (s *Service) ListRoles(ctx context.Context) ([]*model.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// Login 邮箱密码登录，返回访问令牌
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.accounts.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountLocked
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &LoginResponse{Token: token, ExpiresAt: expiresAt, User: user.ToUserInfo()}, nil
}

func (s *Service) get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return user, nil
}

func (s *Service) role(ctx context.Context, name string) (*model.Role, error) {
	role, err := s.roles.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, strings.TrimSpace(name))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// resolveRoles 查找初始角色并去重
func (s *Service) resolveRoles(ctx context.Context, names []string) ([]*model.Role, error) {
	roles := make([]*model.Role, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		role, err := s.role(ctx, name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != selfID {
		return ErrEmailTaken
	}
	return nil
}

func (s *Service) ensureNotLastAdmin(ctx context.Context) error {
	n, err := s.accounts.CountActiveWithRole(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if n <= 1 {
		return ErrLastAdmin
	}
	return nil
}
