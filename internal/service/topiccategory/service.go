// Package topiccategory 选题分类管理
package topiccategory

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

const cachePrefix = "topic-categories:"

var (
	ErrCategoryNotFound = errs.NotFound("topic category not found")
	ErrNameTaken        = errs.Conflict("topic category name already exists")
	ErrCategoryInUse    = errs.Conflict("topic category still has topics")
)

// Service 选题分类服务
type Service struct {
	repo  repository.TopicCategoryRepository
	cache *cache.Store
}

// NewService 创建选题分类服务
func NewService(repo repository.TopicCategoryRepository, store *cache.Store) *Service {
	return &Service{repo: repo, cache: store}
}

// CreateRequest 创建请求
type CreateRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description"`
}

// UpdateRequest 更新请求
type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=128"`
	Description *string `json:"description"`
}

// Create 创建分类
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.TopicCategory, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	category := &model.TopicCategory{Name: name, Description: req.Description}
	category.EnsureID()

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create topic category: %w", err)
	}
	s.cache.Invalidate(ctx, cachePrefix)
	return category, nil
}

// Get 获取分类
func (s *Service) Get(ctx context.Context, id string) (*model.TopicCategory, error) {
	category, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic category: %w", err)
	}
	return category, nil
}

// List 分页查询
func (s *Service) List(ctx context.Context, req types.PageRequest) (*types.Page[*model.TopicCategory], error) {
	q := req.Query()
	key := fmt.Sprintf("%slist:%d:%d:%s", cachePrefix, q.Page, q.PageSize, strings.ToLower(q.Keyword))

	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*types.Page[*model.TopicCategory], error) {
		items, total, err := s.repo.List(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to list topic categories: %w", err)
		}
		return types.NewPage(items, total, q), nil
	})
}

// Update 更新分类
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*model.TopicCategory, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errs.BadRequest("name is required")
		}
		if !strings.EqualFold(name, category.Name) {
			if err := s.ensureNameFree(ctx, name, category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update topic category: %w", err)
	}
	s.cache.Invalidate(ctx, cachePrefix)
	return category, nil
}

// Delete 软删除，仍有选题时拒绝
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountTopics(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count topics: %w", err)
	}
	if n > 0 {
		return ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete topic category: %w", err)
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
