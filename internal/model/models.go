package model

import "strings"

// AllModels 所有模型的统一导入点，用于 AutoMigrate
var AllModels = []interface{}{
	&Role{},
	&User{},
	&StoredFile{},
	&FileLink{},
	&Semester{},
	&PhaseType{},
	&Phase{},
	&TopicCategory{},
	&Topic{},
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
