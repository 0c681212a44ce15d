package lexer

import (
	"github.com/tangzhangming/pylex/internal/i18n"
	"github.com/tangzhangming/pylex/internal/token"
)

// ============================================================================
// 缩进处理
// ============================================================================
//
// 缩进栈 indents 从底到顶严格递增，栈底永远是 0。
// 只有在括号深度为 0 的逻辑行开头才会计算缩进：
//   - 宽度更大：压栈，生成一个 INDENT
//   - 宽度更小：逐层弹栈，每弹一层生成一个 DEDENT，直到栈顶等于新宽度
//   - 弹栈后找不到相等的宽度：InconsistentDedent
//
// 空白行和只有注释的行不参与缩进计算。
//
// ============================================================================

// measureIndent 计算当前物理行开头的缩进宽度
//
// 返回缩进宽度和空白字符的个数，不移动游标。
// 空格宽度为 1，制表符补齐到下一个 tabSize 的倍数，换页符把宽度清零。
func (l *Lexer) measureIndent() (width, n int) {
	for {
		switch l.cur.peek(n) {
		case ' ':
			width++
		case '\t':
			width = (width/l.tabSize + 1) * l.tabSize
		case '\f':
			width = 0
		default:
			return width, n
		}
		n++
	}
}

// lineStart 处理一个物理行的开头（括号深度为 0）
func (l *Lexer) lineStart() error {
	width, n := l.measureIndent()

	switch ch := l.cur.peek(n); {
	case ch == eof:
		l.cur.advance(n)
		return l.finish()

	case ch == '#':
		// 只有注释的行：丢弃，不影响缩进
		l.cur.advance(n)
		l.skipComment()
		return l.skipBlankLine()

	case ch == '\n' || ch == '\r':
		l.cur.advance(n)
		return l.skipBlankLine()
	}

	l.cur.advance(n)
	if err := l.applyIndent(width); err != nil {
		return err
	}
	l.state = stateInLine
	return nil
}

// skipBlankLine 跳过空白行末尾的换行，留在 stateLineStart
func (l *Lexer) skipBlankLine() error {
	if n := l.cur.lineBreakLen(0); n > 0 {
		l.cur.advance(n)
		return nil
	}
	return l.finish()
}

// applyIndent 比较缩进宽度与栈顶，生成 INDENT / DEDENT
//
// 调用时游标位于行内第一个非空白字符，INDENT 和 DEDENT 都是该处的零宽 token。
func (l *Lexer) applyIndent(width int) error {
	top := l.indents[len(l.indents)-1]

	switch {
	case width == top:
		return nil

	case width > top:
		l.indents = append(l.indents, width)
		l.emitSynthetic(token.INDENT)
		return nil
	}

	// 先确认目标宽度在栈中，再生成 DEDENT
	found := false
	for _, w := range l.indents {
		if w == width {
			found = true
			break
		}
	}
	if !found {
		return l.errorAt(InconsistentDedent, l.cur.offset(), 0, i18n.ErrInconsistentDedent, width)
	}

	for l.indents[len(l.indents)-1] > width {
		l.indents = l.indents[:len(l.indents)-1]
		l.emitSynthetic(token.DEDENT)
	}
	return nil
}
