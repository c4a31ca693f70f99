// Package types 定义服务层共享的类型
package types

import "github.com/ashwinyue/thesis-hub/internal/repository"

// PageRequest 分页请求
type PageRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	Keyword  string `form:"keyword" json:"keyword"`
}

// Query 转换为仓库查询参数
func (r PageRequest) Query() repository.ListQuery {
	return repository.ListQuery{Page: r.Page, PageSize: r.PageSize, Keyword: r.Keyword}.Normalize()
}

// Page 分页结果
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// NewPage 构造分页结果，Items 不为 nil
func NewPage[T any](items []T, total int64, q repository.ListQuery) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize}
}
