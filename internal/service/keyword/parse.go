package keyword

import (
	"encoding/json"
	"strings"
)

// codeFence Markdown 代码块标记
const codeFence = "```"

// ParseKeywords 解析模型返回的文本
// 文本以代码块开头时只取第一个 '[' 到最后一个 ']' 之间的内容；
// 任何解析失败都返回空列表
func ParseKeywords(text string) []string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, codeFence) {
		start := strings.Index(text, "[")
		end := strings.LastIndex(text, "]")
		if start < 0 || end < start {
			return []string{}
		}
		text = text[start : end+1]
	}

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return []string{}
	}

	return Normalize(raw)
}

// Normalize 去除首尾空白、丢弃空项，并按忽略大小写去重（保留首次出现的写法和顺序）
// 不截断数量
func Normalize(keywords []string) []string {
	result := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))

	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		key := strings.ToLower(k)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, k)
	}

	return result
}
