package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/thesis-hub/internal/service/phasetype"
	"github.com/ashwinyue/thesis-hub/internal/service/semester"
	"github.com/ashwinyue/thesis-hub/internal/service/topiccategory"
	"github.com/ashwinyue/thesis-hub/internal/service/types"
)

// ========== 学期 ==========

// SemesterHandler 学期处理器
type SemesterHandler struct {
	svc *semester.Service
}

// NewSemesterHandler 创建学期处理器
func NewSemesterHandler(svc *semester.Service) *SemesterHandler {
	return &SemesterHandler{svc: svc}
}

// Create 创建学期
// POST /api/v1/semesters
func (h *SemesterHandler) Create(c *gin.Context) {
	var req semester.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	s, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	created(c, s)
}

// Get 获取学期
// GET /api/v1/semesters/:id
func (h *SemesterHandler) Get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, s)
}

// List 学期列表
// GET /api/v1/semesters
func (h *SemesterHandler) List(c *gin.Context) {
	var req types.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	page, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, page)
}

// Update 更新学期
// PUT /api/v1/semesters/:id
func (h *SemesterHandler) Update(c *gin.Context) {
	var req semester.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	s, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, s)
}

// Delete 删除学期
// DELETE /api/v1/semesters/:id
func (h *SemesterHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}
	success(c, nil)
}

// ========== 阶段类型 ==========

// PhaseTypeHandler 阶段类型处理器
type PhaseTypeHandler struct {
	svc *phasetype.Service
}

// NewPhaseTypeHandler 创建阶段类型处理器
func NewPhaseTypeHandler(svc *phasetype.Service) *PhaseTypeHandler {
	return &PhaseTypeHandler{svc: svc}
}

// Create POST /api/v1/phase-types
func (h *PhaseTypeHandler) Create(c *gin.Context) {
	var req phasetype.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	pt, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	created(c, pt)
}

// Get GET /api/v1/phase-types/:id
func (h *PhaseTypeHandler) Get(c *gin.Context) {
	pt, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, pt)
}

// List GET /api/v1/phase-types
func (h *PhaseTypeHandler) List(c *gin.Context) {
	var req types.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	page, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, page)
}

// Update PUT /api/v1/phase-types/:id
func (h *PhaseTypeHandler) Update(c *gin.Context) {
	var req phasetype.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	pt, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, pt)
}

// Delete DELETE /api/v1/phase-types/:id
func (h *PhaseTypeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}
	success(c, nil)
}

// ========== 选题分类 ==========

// TopicCategoryHandler 选题分类处理器
type TopicCategoryHandler struct {
	svc *topiccategory.Service
}

// NewTopicCategoryHandler 创建选题分类处理器
func NewTopicCategoryHandler(svc *topiccategory.Service) *TopicCategoryHandler {
	return &TopicCategoryHandler{svc: svc}
}

// Create POST /api/v1/topic-categories
func (h *TopicCategoryHandler) Create(c *gin.Context) {
	var req topiccategory.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tc, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	created(c, tc)
}

// Get GET /api/v1/topic-categories/:id
func (h *TopicCategoryHandler) Get(c *gin.Context) {
	tc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, tc)
}

// List GET /api/v1/topic-categories
func (h *TopicCategoryHandler) List(c *gin.Context) {
	var req types.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	page, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, page)
}

// Update PUT /api/v1/topic-categories/:id
func (h *TopicCategoryHandler) Update(c *gin.Context) {
	var req topiccategory.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tc, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, tc)
}

// Delete DELETE /api/v1/topic-categories/:id
func (h *TopicCategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}
	success(c, nil)
}
