package lsp

import (
	"go.lsp.dev/protocol"

	diag "github.com/tangzhangming/pylex/internal/errors"
	"github.com/tangzhangming/pylex/internal/token"
)

// ============================================================================
// 位置转换
// ============================================================================
//
// 词法分析器的列号按字符计（从 1 开始），LSP 的列号按 UTF-16 码元计
// （从 0 开始）。基本平面以外的字符占两个码元。
//
// ============================================================================

// lineIndex 按行保存文档字符，用于列号转换
type lineIndex struct {
	lines [][]rune
}

func newLineIndex(content string) *lineIndex {
	split := diag.SplitLines(content)
	lines := make([][]rune, len(split))
	for i, line := range split {
		lines[i] = []rune(line)
	}
	return &lineIndex{lines: lines}
}

// utf16Len 返回字符序列的 UTF-16 码元数
func utf16Len(runes []rune) uint32 {
	var n uint32
	for _, r := range runes {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// character 把行内字符下标（从 0 开始）转换为 UTF-16 偏移
func (li *lineIndex) character(line, col int) uint32 {
	if line < 0 || line >= len(li.lines) {
		return uint32(col)
	}
	runes := li.lines[line]
	if col > len(runes) {
		return utf16Len(runes) + uint32(col-len(runes))
	}
	return utf16Len(runes[:col])
}

// Position 把词法分析器的位置转换为 LSP 位置
func (li *lineIndex) Position(pos token.Position) protocol.Position {
	line := pos.Line - 1
	if line < 0 {
		line = 0
	}
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	return protocol.Position{
		Line:      uint32(line),
		Character: li.character(line, col),
	}
}

// LineLength 返回指定行（从 0 开始）的 UTF-16 长度
func (li *lineIndex) LineLength(line int) uint32 {
	if line < 0 || line >= len(li.lines) {
		return 0
	}
	return utf16Len(li.lines[line])
}
