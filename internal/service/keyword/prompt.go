package keyword

import (
	"fmt"
	"strings"
)

// DefaultMaxKeywords 未指定数量时提示模型返回的最大关键词数
const DefaultMaxKeywords = 20

// BuildPrompt 构建关键词提取提示词
// 要求模型只返回 JSON 字符串数组；maxKeywords 只作为提示写入文本
func BuildPrompt(title, description string, maxKeywords int) string {
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}

	content := strings.TrimSpace(strings.TrimSpace(title) + "\n" + strings.TrimSpace(description))

	var sb strings.Builder
	sb.WriteString("Bạn là trợ lý trích xuất từ khóa cho đề tài khóa luận, luận văn đại học.\n")
	sb.WriteString("Hãy phân tích tên đề tài và mô tả dưới đây, sau đó CHỈ trả về một mảng JSON ")
	sb.WriteString("gồm các từ khóa ngắn gọn, mỗi từ khóa dài từ 1 đến 3 từ.\n\n")
	sb.WriteString("Yêu cầu:\n")
	sb.WriteString("- Không đưa vào các từ dừng (stopwords) hoặc ký tự đặc biệt.\n")
	sb.WriteString(fmt.Sprintf("- Trả về tối đa %d từ khóa.\n", maxKeywords))
	sb.WriteString("- Không giải thích, không thêm bất kỳ nội dung nào ngoài mảng JSON.\n")
	sb.WriteString(`Ví dụ: ["học máy", "xử lý ảnh", "IoT"]`)
	sb.WriteString("\n\n")
	sb.WriteString("Nội dung cần phân tích:\n")
	sb.WriteString("---\n")
	sb.WriteString(content)
	sb.WriteString("\n---")

	return sb.String()
}
