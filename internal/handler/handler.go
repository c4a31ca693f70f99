// Package handler HTTP 处理器
package handler

import (
	"github.com/ashwinyue/thesis-hub/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	System        *SystemHandler
	Account       *AccountHandler
	File          *FileHandler
	Semester      *SemesterHandler
	PhaseType     *PhaseTypeHandler
	TopicCategory *TopicCategoryHandler
	Keyword       *KeywordHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services, db Pinger) *Handlers {
	return &Handlers{
		System:        NewSystemHandler(db, svc.Config.App.Version, svc.Keyword),
		Account:       NewAccountHandler(svc.Account),
		File:          NewFileHandler(svc.File),
		Semester:      NewSemesterHandler(svc.Semester),
		PhaseType:     NewPhaseTypeHandler(svc.PhaseType),
		TopicCategory: NewTopicCategoryHandler(svc.TopicCategory),
		Keyword:       NewKeywordHandler(svc.Keyword),
	}
}
