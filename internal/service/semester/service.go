// Package semester 学期管理
package semester

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ashwinyue/thesis-hub/internal/cache"
	"github.com/ashwinyue/thesis-hub/internal/errs"
	"github.com/ashwinyue/thesis-hub/internal/model"
	"github.com/ashwinyue/thesis-hub/internal/repository"
	"github.com/ashwinyue/thesis-hub/internal/service/types"
	"github.com/ashwinyue/thesis-hub/internal/validation"
)

// cachePrefix 学期列表缓存前缀
const cachePrefix = "semesters:"

var (
	ErrSemesterNotFound = errs.NotFound("semester not found")
	ErrNameTaken        = errs.Conflict("semester name already exists")
	ErrInvalidDates     = errs.BadRequest("start_date must be before end_date")
	ErrSemesterInUse    = errs.Conflict("semester still has phases")
)

// Service 学期服务
type Service struct {
	repo  repository.SemesterRepository
	cache *cache.Store
}

// NewService 创建学期服务
func NewService(repo repository.SemesterRepository, store *cache.Store) *Service {
	return &Service{repo: repo, cache: store}
}

// CreateRequest 创建学期请求
type CreateRequest struct {
	Name        string    `json:"name" binding:"required,max=128"`
	Code        string    `json:"code" binding:"max=32"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description"`
}

// UpdateRequest 更新学期请求，nil 字段不修改
type UpdateRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=128"`
	Code        *string    `json:"code" binding:"omitempty,max=32"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description"`
}

// Create 创建学期
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*model.Semester, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := checkDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	semester := &model.Semester{
		Name:        name,
		Code:        strings.TrimSpace(req.Code),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	semester.EnsureID()

	if err := s.repo.Create(ctx, semester); err != nil {
		return nil, fmt.Errorf("failed to create semester: %w", err)
	}
	s.cache.Invalidate(ctx, cachePrefix)
	return semester, nil
}

// Get 获取学期
func (s *Service) Get(ctx context.Context, id string) (*model.Semester, error) {
	semester, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSemesterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get semester: %w", err)
	}
	return semester, nil
}

// List 分页查询，结果带缓存
func (s *Service) List(ctx context.Context, req types.PageRequest) (*types.Page[*model.Semester], error) {
	q := req.Query()
	key := fmt.Sprintf("%slist:%d:%d:%s", cachePrefix, q.Page, q.PageSize, strings.ToLower(q.Keyword))

	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*types.Page[*model.Semester], error) {
		items, total, err := s.repo.List(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to list semesters: %w", err)
		}
		return types.NewPage(items, total, q), nil
	})
}

// Update 更新学期
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*model.Semester, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	semester, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errs.BadRequest("name is required")
		}
		if !strings.EqualFold(name, semester.Name) {
			if err := s.ensureNameFree(ctx, name, semester.ID); err != nil {
				return nil, err
			}
		}
		semester.Name = name
	}
	if req.Code != nil {
		semester.Code = strings.TrimSpace(*req.Code)
	}
	if req.StartDate != nil {
		semester.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		semester.EndDate = *req.EndDate
	}
	if req.Description != nil {
		semester.Description = *req.Description
	}
	if err := checkDates(semester.StartDate, semester.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, semester); err != nil {
		return nil, fmt.Errorf("failed to update semester: %w", err)
	}
	s.cache.Invalidate(ctx, cachePrefix)
	return semester, nil
}

// Delete 软删除学期，存在阶段时拒绝
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountPhases(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count phases: %w", err)
	}
	if n > 0 {
		return ErrSemesterInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSemesterNotFound
		}
		return fmt.Errorf("failed to delete semester: %w", err)
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

func checkDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errs.BadRequest("start_date and end_date are required")
	}
	if !start.Before(end) {
		return ErrInvalidDates
	}
	return nil
}
