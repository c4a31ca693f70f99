package model

// TopicCategory 选题分类
type TopicCategory struct {
	Base
	Name        string `json:"name" gorm:"size:128;not null;index"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

// TableName 指定表名
func (TopicCategory) TableName() string {
	return "topic_categories"
}

// Topic 选题，是 TopicCategory 的子记录
type Topic struct {
	Base
	Title        string `json:"title" gorm:"size:500;not null"`
	Description  string `json:"description,omitempty" gorm:"type:text"`
	CategoryID   string `json:"category_id" gorm:"type:varchar(36);not null;index"`
	SemesterID   string `json:"semester_id,omitempty" gorm:"type:varchar(36);index"`
	SupervisorID string `json:"supervisor_id,omitempty" gorm:"type:varchar(36);index"`
}

// TableName 指定表名
func (Topic) TableName() string {
	return "topics"
}
