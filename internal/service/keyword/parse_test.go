package keyword

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain array",
			text: `["a", "b"]`,
			want: []string{"a", "b"},
		},
		{
			name: "surrounding whitespace",
			text: "\n\t  [\"học máy\", \"IoT\"]  \n",
			want: []string{"học máy", "IoT"},
		},
		{
			name: "json fence",
			text: "```json\n[\"a\", \"b\"]\n```",
			want: []string{"a", "b"},
		},
		{
			name: "bare fence",
			text: "```\n[\"a\"]\n```",
			want: []string{"a"},
		},
		{
			name: "fence with trailing prose",
			text: "```json\n[\"a\", \"b\"]\n```\nHope this helps [really]",
			want: []string{},
		},
		{
			name: "fence without array",
			text: "```json\n{\"keywords\": 1}\n```",
			want: []string{},
		},
		{
			name: "fence with reversed brackets",
			text: "```] nothing [",
			want: []string{},
		},
		{
			name: "case-insensitive duplicates keep first",
			text: `["Machine Learning", "machine learning", "AI"]`,
			want: []string{"Machine Learning", "AI"},
		},
		{
			name: "blank and padded entries",
			text: `["  Blockchain ", "", "   ", "blockchain", "Smart Contract"]`,
			want: []string{"Blockchain", "Smart Contract"},
		},
		{
			name: "null entries dropped",
			text: `["a", null, "b"]`,
			want: []string{"a", "b"},
		},
		{
			name: "prose refusal",
			text: "Sorry, I cannot help.",
			want: []string{},
		},
		{
			name: "prose around array without fence",
			text: `Here you go: ["a", "b"]`,
			want: []string{},
		},
		{
			name: "object instead of array",
			text: `{"keywords": ["a"]}`,
			want: []string{},
		},
		{
			name: "array of numbers",
			text: `[1, 2, 3]`,
			want: []string{},
		},
		{
			name: "json null",
			text: `null`,
			want: []string{},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
		{
			name: "vietnamese case folding",
			text: `["Học Máy", "học máy", "HỌC MÁY"]`,
			want: []string{"Học Máy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKeywords(tt.text)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeywords_Idempotent(t *testing.T) {
	clean := `["Deep Learning", "Computer Vision", "Edge AI"]`

	first := ParseKeywords(clean)
	second := Normalize(first)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Deep Learning", "Computer Vision", "Edge AI"}, first)
}

func TestParseKeywords_NoTruncation(t *testing.T) {
	items := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, `"k`+strings.Repeat("x", i)+`"`)
	}
	got := ParseKeywords("[" + strings.Join(items, ",") + "]")
	assert.Len(t, got, 30)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("  Hệ thống quản lý đề tài  ", "  Ứng dụng web  ", 7)

	assert.Contains(t, prompt, "Hệ thống quản lý đề tài\nỨng dụng web")
	assert.Contains(t, prompt, "tối đa 7 từ khóa")
	assert.Contains(t, prompt, "mảng JSON")
}

func TestBuildPrompt_DefaultsAndEmptyDescription(t *testing.T) {
	prompt := BuildPrompt("Blockchain", "", 0)

	assert.Contains(t, prompt, "tối đa 20 từ khóa")
	assert.Contains(t, prompt, "---\nBlockchain\n---")
}
