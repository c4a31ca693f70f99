package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ashwinyue/thesis-hub/internal/model"
)

// catalogRepository 目录实体的通用 GORM 实现
type catalogRepository[T any] struct {
	db      *gorm.DB
	orderBy string
}

// Create 创建记录
func (r *catalogRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Update 更新记录
func (r *catalogRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// GetByID 根据 ID 获取
func (r *catalogRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

// GetByName 根据名称获取（忽略大小写）
func (r *catalogRepository[T]) GetByName(ctx context.Context, name string) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&entity).Error
	if err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

// List 分页查询
func (r *catalogRepository[T]) List(ctx context.Context, q ListQuery) ([]*T, int64, error) {
	q = q.Normalize()

	var (
		items []*T
		total int64
		zero  T
	)

	query := r.db.WithContext(ctx).Model(&zero)
	if q.Keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(q.Keyword))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count: %w", err)
	}

	err := query.Order(r.orderBy).Offset(q.Offset()).Limit(q.PageSize).Find(&items).Error
	return items, total, err
}

// Delete 软删除
func (r *catalogRepository[T]) Delete(ctx context.Context, id string) error {
	var zero T
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&zero)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// countChildren 统计未删除的子记录
func (r *catalogRepository[T]) countChildren(ctx context.Context, child interface{}, column, parentID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(child).Where(column+" = ?", parentID).Count(&n).Error
	return n, err
}

// ========== 学期 ==========

type semesterRepository struct {
	catalogRepository[model.Semester]
}

// NewSemesterRepository 创建学期仓库
func NewSemesterRepository(db *gorm.DB) SemesterRepository {
	return &semesterRepository{catalogRepository[model.Semester]{db: db, orderBy: "start_date DESC, created_at DESC"}}
}

// CountPhases 学期下的阶段数
func (r *semesterRepository) CountPhases(ctx context.Context, semesterID string) (int64, error) {
	return r.countChildren(ctx, &model.Phase{}, "semester_id", semesterID)
}

// ========== 阶段类型 ==========

type phaseTypeRepository struct {
	catalogRepository[model.PhaseType]
}

// NewPhaseTypeRepository 创建阶段类型仓库
func NewPhaseTypeRepository(db *gorm.DB) PhaseTypeRepository {
	return &phaseTypeRepository{catalogRepository[model.PhaseType]{db: db, orderBy: "sort_order ASC, created_at ASC"}}
}

// CountPhases 使用该类型的阶段数
func (r *phaseTypeRepository) CountPhases(ctx context.Context, phaseTypeID string) (int64, error) {
	return r.countChildren(ctx, &model.Phase{}, "phase_type_id", phaseTypeID)
}

// ========== 选题分类 ==========

type topicCategoryRepository struct {
	catalogRepository[model.TopicCategory]
}

// NewTopicCategoryRepository 创建选题分类仓库
func NewTopicCategoryRepository(db *gorm.DB) TopicCategoryRepository {
	return &topicCategoryRepository{catalogRepository[model.TopicCategory]{db: db, orderBy: "name ASC"}}
}

// CountTopics 分类下的选题数
func (r *topicCategoryRepository) CountTopics(ctx context.Context, categoryID string) (int64, error) {
	return r.countChildren(ctx, &model.Topic{}, "category_id", categoryID)
}
