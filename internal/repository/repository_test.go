package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestListQuery_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListQuery
		want ListQuery
	}{
		{"defaults", ListQuery{}, ListQuery{Page: 1, PageSize: 20}},
		{"cap page size", ListQuery{Page: 2, PageSize: 500}, ListQuery{Page: 2, PageSize: 100}},
		{"trim keyword", ListQuery{Page: 1, PageSize: 10, Keyword: "  ai "}, ListQuery{Page: 1, PageSize: 10, Keyword: "ai"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, ListQuery{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, ListQuery{Page: 3, PageSize: 20}.Offset())
	assert.Equal(t, 0, ListQuery{Page: 0, PageSize: 20}.Offset())
}

func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)

	other := errors.New("conn reset")
	assert.Equal(t, other, translate(other))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%khoa học%", likePattern("Khoa Học"))
}
