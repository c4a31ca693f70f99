package model

import "time"

// Semester 学期
type Semester struct {
	Base
	Name        string    `json:"name" gorm:"size:128;not null;index"`
	Code        string    `json:"code,omitempty" gorm:"size:32"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
}

// TableName 指定表名
func (Semester) TableName() string {
	return "semesters"
}

// PhaseType 阶段类型（如选题、中期检查、答辩）
type PhaseType struct {
	Base
	Name        string `json:"name" gorm:"size:128;not null;index"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	SortOrder   int    `json:"sort_order" gorm:"default:0"`
}

// TableName 指定表名
func (PhaseType) TableName() string {
	return "phase_types"
}

// Phase 学期内的一个阶段，是 Semester 和 PhaseType 的子记录
type Phase struct {
	Base
	SemesterID  string    `json:"semester_id" gorm:"type:varchar(36);not null;index"`
	PhaseTypeID string    `json:"phase_type_id" gorm:"type:varchar(36);not null;index"`
	Name        string    `json:"name" gorm:"size:128"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// TableName 指定表名
func (Phase) TableName() string {
	return "phases"
}
