package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/ashwinyue/thesis-hub/internal/repository"
)

// FakeCatalog 内存版目录仓库，按插入顺序返回副本
type FakeCatalog[T any] struct {
	mu       sync.Mutex
	items    []*T
	id       func(*T) string
	name     func(*T) string
	children map[string]int64

	// Err 非空时所有操作返回该错误
	Err error
}

// NewFakeCatalog 创建内存仓库，id 和 name 用于读取实体字段
func NewFakeCatalog[T any](id, name func(*T) string) *FakeCatalog[T] {
	return &FakeCatalog[T]{id: id, name: name, children: make(map[string]int64)}
}

// SetChildren 设置某个实体的子记录数
func (f *FakeCatalog[T]) SetChildren(id string, n int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.children[id] = n
}

// Children 子记录数
func (f *FakeCatalog[T]) Children(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	return f.children[id], nil
}

// Len 当前记录数
func (f *FakeCatalog[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func (f *FakeCatalog[T]) Create(_ context.Context, entity *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	c := *entity
	f.items = append(f.items, &c)
	return nil
}

func (f *FakeCatalog[T]) Update(_ context.Context, entity *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	for i, item := range f.items {
		if f.id(item) == f.id(entity) {
			c := *entity
			f.items[i] = &c
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *FakeCatalog[T]) GetByID(_ context.Context, id string) (*T, error) {
	return f.find(func(item *T) bool { return f.id(item) == id })
}

func (f *FakeCatalog[T]) GetByName(_ context.Context, name string) (*T, error) {
	return f.find(func(item *T) bool { return strings.EqualFold(f.name(item), strings.TrimSpace(name)) })
}

func (f *FakeCatalog[T]) find(match func(*T) bool) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for _, item := range f.items {
		if match(item) {
			c := *item
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeCatalog[T]) List(_ context.Context, q repository.ListQuery) ([]*T, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, 0, f.Err
	}
	q = q.Normalize()

	var matched []*T
	for _, item := range f.items {
		if q.Keyword == "" || strings.Contains(strings.ToLower(f.name(item)), strings.ToLower(q.Keyword)) {
			c := *item
			matched = append(matched, &c)
		}
	}

	total := int64(len(matched))
	start := q.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *FakeCatalog[T]) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	for i, item := range f.items {
		if f.id(item) == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
