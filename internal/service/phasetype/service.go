// Package phasetype 阶段类型管理
package phasetype

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ashwinyue/thesis-hub/internal/cache"
	"github.com/ashwinyue/thesis-hub/internal/errs"
	"github.com/ashwinyue/thesis-hub/internal/model"
	"github.com/ashwinyue/thesis-hub/internal/repository"
	"github.com/ashwinyue/thesis-hub/internal/service/types"
	"github.com/ashwinyue/thesis-hub/internal/validation"
)

const cachePrefix = "phase-types:"

var (
	ErrPhaseTypeNotFound = errs.NotFound("phase type not found")
	ErrNameTaken         = errs.Conflict("phase type name already exists")
	ErrPhaseTypeInUse    = errs.Conflict("phase type is used by phases")
)

// Service 阶段类型服务
type Service struct {
	repo  repository.PhaseTypeRepository
	cache *cache.Store
}

// NewService 创建阶段类型服务
func NewService(repo repository.PhaseTypeRepository, store *cache.Store) *Service {
	return &Service{repo: repo, cache: store}
}

// CreateRequest 创建请求
type CreateRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order" binding:"min=0"`
}

// UpdateRequest 更新请求
type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=128"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order" binding:"omitempty,min=0"`
}

// Create 创建阶段类型
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.PhaseType, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	pt := &model.PhaseType{
		Name:        name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	pt.EnsureID()

	if err := s.repo.Create(ctx, pt); err != nil {
		return nil, fmt.Errorf("failed to create phase type: %w", err)
	}
	s.cache.Invalidate(ctx, cachePrefix)
	return pt, nil
}

// Get 获取阶段类型
func (s *Service) Get(ctx context.Context, id string) (*model.PhaseType, error) {
	pt, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPhaseTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get phase type: %w", err)
	}
	return pt, nil
}

// List 分页查询
func (s *Service) List(ctx context.Context, req types.PageRequest) (*types.Page[*model.PhaseType], error) {
	q := req.Query()
	key := fmt.Sprintf("%slist:%d:%d:%s", cachePrefix, q.Page, q.PageSize, strings.ToLower(q.Keyword))

	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*types.Page[*model.PhaseType], error) {
		items, total, err := s.repo.List(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to list phase types: %w", err)
		}
		return types.NewPage(items, total, q), nil
	})
}

// Update 更新阶段类型
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*model.PhaseType, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	pt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errs.BadRequest("name is required")
		}
		if !strings.EqualFold(name, pt.Name) {
			if err := s.ensureNameFree(ctx, name, pt.ID); err != nil {
				return nil, err
			}
		}
		pt.Name = name
	}
	if req.Description != nil {
		pt.Description = *req.Description
	}
	if req.SortOrder != nil {
		pt.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, pt); err != nil {
		return nil, fmt.Errorf("failed to update phase type: %w", err)
	}
	s.cache.Invalidate(ctx, cachePrefix)
	return pt, nil
}

// Delete 软删除，仍被阶段使用时拒绝
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountPhases(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count phases: %w", err)
	}
	if n > 0 {
		return ErrPhaseTypeInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhaseTypeNotFound
		}
		return fmt.Errorf("failed to delete phase type: %w", err)
	}
	s.cache.Invalidate(ctx, cachePrefix)
	return nil
}

func (s *Service) ensureNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check name: %w", err)
	}
	if existing.ID != selfID {
		return ErrNameTaken
	}
	return nil
}
