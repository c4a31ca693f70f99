package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// KeywordExtractor 关键词提取
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, title, description string, maxKeywords int) ([]string, error)
}

// KeywordHandler 关键词处理器
type KeywordHandler struct {
	extractor KeywordExtractor
}

// NewKeywordHandler 创建关键词处理器
func NewKeywordHandler(extractor KeywordExtractor) *KeywordHandler {
	return &KeywordHandler{extractor: extractor}
}

// ExtractKeywordsRequest 提取请求，max_keywords 缺省为 20
type ExtractKeywordsRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	MaxKeywords int    `json:"max_keywords" binding:"omitempty,min=0,max=100"`
}

// Extract 从标题和描述中提取关键词
// @Summary      提取关键词
// @Tags         关键词
// @Accept       json
// @Produce      json
// @Param        request body ExtractKeywordsRequest true "标题与描述"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response
// @Router       /keywords/extract [post]
func (h *KeywordHandler) Extract(c *gin.Context) {
	var req ExtractKeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(c, "title is required")
		return
	}

	keywords, err := h.extractor.ExtractKeywords(c.Request.Context(), req.Title, req.Description, req.MaxKeywords)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"keywords": keywords})
}
