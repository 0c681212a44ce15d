package lsp

import (
	"strings"

	"go.lsp.dev/protocol"

	"github.com/tangzhangming/pylex/internal/token"
)

// Semantic token types（下标与 SemanticTokenTypes 一致）
const (
	TokenTypeKeyword = iota
	TokenTypeVariable
	TokenTypeNumber
	TokenTypeString
	TokenTypeOperator
)

// SemanticTokenTypes 语义token类型列表
var SemanticTokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenVariable,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenString,
	protocol.SemanticTokenOperator,
}

// semanticToken 表示单个语义token（单行）
type semanticToken struct {
	Line      uint32
	StartChar uint32
	Length    uint32
	TokenType uint32
	Modifiers uint32
}

// semanticTokenType 返回 token 对应的语义类型，合成 token 没有语义类型
func semanticTokenType(t token.TokenType) (uint32, bool) {
	switch {
	case token.IsKeyword(t):
		return TokenTypeKeyword, true
	case t == token.IDENT:
		return TokenTypeVariable, true
	case t == token.INT || t == token.FLOAT || t == token.IMAGINARY:
		return TokenTypeNumber, true
	case t == token.STRING:
		return TokenTypeString, true
	case token.IsOperator(t):
		return TokenTypeOperator, true
	}
	return 0, false
}

// collectSemanticTokens 把文档的 token 序列转换为语义 token
//
// 跨行的三引号字符串按物理行拆成多段。词法分析失败的文档没有语义 token。
func collectSemanticTokens(doc *Document) []semanticToken {
	var result []semanticToken

	for _, tok := range doc.Tokens {
		typ, ok := semanticTokenType(tok.Type)
		if !ok {
			continue
		}

		start := doc.lines.Position(tok.Pos)
		line, char := start.Line, start.Character

		for i, segment := range splitPhysicalLines(tok.Literal) {
			if i > 0 {
				line++
				char = 0
			}
			length := utf16Len([]rune(segment))
			if length == 0 {
				continue
			}
			result = append(result, semanticToken{
				Line:      line,
				StartChar: char,
				Length:    length,
				TokenType: typ,
			})
		}
	}

	return result
}

// splitPhysicalLines 按 \n、\r\n、\r 切分文本
func splitPhysicalLines(s string) []string {
	if !strings.ContainsAny(s, "\r\n") {
		return []string{s}
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// encodeSemanticTokens 将语义tokens编码为LSP格式
// LSP使用差值编码: [deltaLine, deltaStartChar, length, tokenType, tokenModifiers]
func encodeSemanticTokens(tokens []semanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevChar uint32 = 0, 0

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		var deltaChar uint32
		if deltaLine == 0 {
			deltaChar = tok.StartChar - prevChar
		} else {
			deltaChar = tok.StartChar
		}

		data = append(data,
			deltaLine,
			deltaChar,
			tok.Length,
			tok.TokenType,
			tok.Modifiers,
		)

		prevLine = tok.Line
		prevChar = tok.StartChar
	}

	return data
}

// SemanticTokensProviderOptions 语义tokens提供者选项
type SemanticTokensProviderOptions struct {
	Legend protocol.SemanticTokensLegend `json:"legend"`
	Full   bool                          `json:"full,omitempty"`
	Range  bool                          `json:"range,omitempty"`
}

// getSemanticTokensLegend 获取语义tokens图例
func getSemanticTokensLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes:     SemanticTokenTypes,
		TokenModifiers: []protocol.SemanticTokenModifiers{},
	}
}

// getSemanticTokensProviderOptions 获取语义tokens提供者选项
func getSemanticTokensProviderOptions() SemanticTokensProviderOptions {
	return SemanticTokensProviderOptions{
		Legend: getSemanticTokensLegend(),
		Full:   true,
	}
}
