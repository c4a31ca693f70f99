package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, LogLevel(true))
	assert.Equal(t, gormlogger.Silent, LogLevel(false))
}
