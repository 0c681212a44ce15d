package errors

import (
	"strings"

	"github.com/tangzhangming/pylex/internal/i18n"
)

// ============================================================================
// 修复建议
// ============================================================================

// SuggestionGenerator 根据错误码生成修复建议
type SuggestionGenerator struct{}

// NewSuggestionGenerator 创建建议生成器
func NewSuggestionGenerator() *SuggestionGenerator {
	return &SuggestionGenerator{}
}

// GetSuggestions 获取错误码对应的修复建议
//
// context 可以携带 "char"（相关字符）等额外信息。
func (g *SuggestionGenerator) GetSuggestions(code string, context map[string]interface{}) []string {
	info, ok := GetErrorInfo(code)
	if !ok {
		return nil
	}

	suggestions := []string{i18n.T(info.HintID)}

	// 常见的误用字符
	if code == E0005 {
		if ch, ok := context["char"].(rune); ok {
			if alt, ok := confusables[ch]; ok {
				suggestions = append(suggestions, alt)
			}
		}
	}

	return suggestions
}

// confusables 其他语言中常见、但 Python 不支持的写法
var confusables = map[rune]string{
	'$':      "Python identifiers do not start with '$'",
	'?':      "use 'x if cond else y' instead of 'cond ? x : y'",
	'!':      "use 'not' for logical negation; '!' is only valid in '!='",
	'`':      "use repr(x) instead of backticks",
	'\u201c': "replace the typographic quote with '\"'",
	'\u201d': "replace the typographic quote with '\"'",
	'\u2018': "replace the typographic quote with \"'\"",
	'\u2019': "replace the typographic quote with \"'\"",
	'\u00a0': "replace the non-breaking space with a normal space",
}

// ============================================================================
// 相似名称查找
// ============================================================================

// FindSimilar 查找相似的名称
func FindSimilar(name string, candidates []string, maxDistance int) string {
	if len(candidates) == 0 {
		return ""
	}

	bestMatch := ""
	bestDistance := maxDistance + 1

	for _, candidate := range candidates {
		distance := levenshteinDistance(name, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = candidate
		}
	}

	if bestDistance <= maxDistance {
		return bestMatch
	}
	return ""
}

// levenshteinDistance 计算 Levenshtein 编辑距离（忽略大小写）
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(strings.ToLower(s1))
	r2 := []rune(strings.ToLower(s2))

	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// 创建距离矩阵
	d := make([][]int, len(r1)+1)
	for i := range d {
		d[i] = make([]int, len(r2)+1)
	}

	// 初始化第一行和第一列
	for i := 0; i <= len(r1); i++ {
		d[i][0] = i
	}
	for j := 0; j <= len(r2); j++ {
		d[0][j] = j
	}

	// 填充矩阵
	for i := 1; i <= len(r1); i++ {
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // 删除
				d[i][j-1]+1,      // 插入
				d[i-1][j-1]+cost, // 替换
			)
		}
	}

	return d[len(r1)][len(r2)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// ============================================================================
// 全局实例
// ============================================================================

var defaultSuggestionGenerator = NewSuggestionGenerator()

// GetSuggestions 使用默认生成器获取建议
func GetSuggestions(code string, context map[string]interface{}) []string {
	return defaultSuggestionGenerator.GetSuggestions(code, context)
}
