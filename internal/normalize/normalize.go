package normalize

import (
	"strings"
	"time"
	"unicode"
)

// 后端的时间字段既可能是纯日期（2024-01-01），也可能是完整的RFC3339时间戳
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ParseInstant 解析后端返回的时间字符串
func ParseInstant(s string) (time.Time, error) {
	var err error
	for _, layout := range instantLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// FormatDisplayDate 将ISO时间字符串格式化为 DD-MM-YYYY 展示格式
// 只能对原始ISO时间调用一次，输出不是合法的ISO输入
func FormatDisplayDate(s string) string {
	t, err := ParseInstant(s)
	if err != nil {
		// 本层不防御畸形输入，原样返回交给上层展示
		return s
	}
	return t.Format("02-01-2006")
}

// TitleCase 将项目slug转换为展示名称
// clean-water-initiative -> Clean Water Initiative
func TitleCase(slug string) string {
	if slug == "" {
		return ""
	}

	segments := strings.Split(strings.ToLower(slug), "-")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		runes := []rune(segment)
		runes[0] = unicode.ToUpper(runes[0])
		segments[i] = string(runes)
	}

	return strings.Join(segments, " ")
}

// ToProjectID 根据项目标题生成slug形式的项目ID
func ToProjectID(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}
