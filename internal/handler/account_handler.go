package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/thesis-hub/internal/service/account"
)

// AccountHandler 账号处理器
type AccountHandler struct {
	svc *account.Service
}

// NewAccountHandler 创建账号处理器
func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Login 用户登录
// @Summary      登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body account.LoginRequest true "邮箱和密码"
// @Success      200  {object}  Response
// @Failure      401  {object}  Response
// @Router       /auth/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, resp)
}

// Create 创建账号
// POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req account.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	created(c, info)
}

// Get 获取账号
// GET /api/v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	info, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, info)
}

// List 账号列表
// GET /api/v1/accounts?page=&page_size=&keyword=&role=&active=
func (h *AccountHandler) List(c *gin.Context) {
	var req account.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, page)
}

// Update 更新账号资料
// PUT /api/v1/accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	var req account.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, info)
}

// setActiveRequest 锁定/解锁请求
type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive 锁定或解锁账号
// PUT /api/v1/accounts/:id/status
func (h *AccountHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.svc.SetActive(c.Request.Context(), c.Param("id"), *req.Active)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, info)
}

// ChangePassword 修改密码
// PUT /api/v1/accounts/:id/password
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req account.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), c.Param("id"), &req); err != nil {
		errorResponse(c, err)
		return
	}
	success(c, nil)
}

// GetRoles 账号角色
// GET /api/v1/accounts/:id/roles
func (h *AccountHandler) GetRoles(c *gin.Context) {
	roles, err := h.svc.GetRoles(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"roles": roles})
}

// roleRequest 分配角色请求
type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AssignRole 分配角色
// POST /api/v1/accounts/:id/roles
func (h *AccountHandler) AssignRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	roles, err := h.svc.AssignRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"roles": roles})
}

// RemoveRole 移除角色
// DELETE /api/v1/accounts/:id/roles/:role
func (h *AccountHandler) RemoveRole(c *gin.Context) {
	roles, err := h.svc.RemoveRole(c.Request.Context(), c.Param("id"), c.Param("role"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"roles": roles})
}

// ListRoles 全部角色
// GET /api/v1/roles
func (h *AccountHandler) ListRoles(c *gin.Context) {
	roles, err := h.svc.ListRoles(c.Request.Context())
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"roles": roles})
}
