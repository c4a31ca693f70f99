package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/thesis-hub/internal/middleware"
	filesvc "github.com/ashwinyue/thesis-hub/internal/service/file"
)

// FileHandler 文件处理器
type FileHandler struct {
	fileSvc *filesvc.Service
}

// NewFileHandler 创建文件处理器
func NewFileHandler(fileSvc *filesvc.Service) *FileHandler {
	return &FileHandler{
		fileSvc: fileSvc,
	}
}

// Upload 上传文件
// @Summary      上传文件
// @Description  上传文件到存储服务
// @Tags         文件管理
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData file   true  "文件"
// @Param        uploaded_by  formData string false "上传人ID"
// @Success      201  {object}  Response  "上传成功"
// @Failure      400  {object}  Response  "参数错误"
// @Router       /files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.fileSvc.MaxSize()+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, err)
		return
	}
	defer f.Close()

	// 未指定上传人时使用令牌中的用户
	uploadedBy := c.PostForm("uploaded_by")
	if uploadedBy == "" {
		uploadedBy = c.GetString(middleware.ContextUserID)
	}

	stored, err := h.fileSvc.Upload(c.Request.Context(), &filesvc.UploadRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      f,
		UploadedBy:  uploadedBy,
	})
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, stored)
}

// Get 获取文件信息
// GET /api/v1/files/:id
func (h *FileHandler) Get(c *gin.Context) {
	stored, err := h.fileSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, stored)
}

// Download 获取文件内容
// @Summary      下载文件
// @Tags         文件管理
// @Produce      octet-stream
// @Param        id   path      string  true "文件ID"
// @Success      200  {file}    file    "文件内容"
// @Failure      404  {object}  Response  "文件不存在"
// @Router       /files/{id}/content [get]
func (h *FileHandler) Download(c *gin.Context) {
	stored, reader, err := h.fileSvc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", stored.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stored.FileName))
	c.Header("Content-Length", strconv.FormatInt(stored.FileSize, 10))
	c.Status(http.StatusOK)

	// 响应头已写出，复制失败只能中断连接
	if _, err := io.Copy(c.Writer, reader); err != nil {
		_ = c.Error(err)
	}
}

// URL 获取文件访问URL
// GET /api/v1/files/:id/url
func (h *FileHandler) URL(c *gin.Context) {
	url, err := h.fileSvc.URL(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"url": url})
}

// Delete 删除文件
// DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.fileSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}
	success(c, nil)
}

// Link 关联文件到实体
// POST /api/v1/files/:id/links
func (h *FileHandler) Link(c *gin.Context) {
	var req filesvc.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	link, err := h.fileSvc.Link(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		errorResponse(c, err)
		return
	}
	created(c, link)
}

// Unlink 解除关联
// DELETE /api/v1/files/:id/links/:entity_type/:entity_id
func (h *FileHandler) Unlink(c *gin.Context) {
	err := h.fileSvc.Unlink(c.Request.Context(), c.Param("id"), c.Param("entity_type"), c.Param("entity_id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, nil)
}

// ListByEntity 实体关联的文件
// GET /api/v1/files?entity_type=&entity_id=
func (h *FileHandler) ListByEntity(c *gin.Context) {
	files, err := h.fileSvc.ListByEntity(c.Request.Context(), c.Query("entity_type"), c.Query("entity_id"))
	if err != nil {
		errorResponse(c, err)
		return
	}
	success(c, gin.H{"files": files})
}
