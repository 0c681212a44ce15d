package lexer

import (
	"errors"

	"github.com/tangzhangming/pylex/internal/i18n"
	"github.com/tangzhangming/pylex/internal/token"
)

// ============================================================================
// Lexer - 词法分析器
// ============================================================================
//
// 词法分析器把已经解码的 Python 源代码转换为 Token 序列。
//
// 驱动状态机：
//   - stateLineStart：括号深度为 0，准备计算缩进
//   - stateInLine：在逻辑行内扫描 token
//   - stateInBrackets：括号深度大于 0，物理换行不再有意义
//   - stateAtEOF：终止状态
//
// 每次 Tokenize 都从头扫描整个缓冲区，遇到第一个错误立即返回。
// 缩进栈、括号栈都是 Lexer 自己的字段，不同的 Lexer 之间不共享
// 任何可变状态，可以在多个 goroutine 中分别使用。
//
// ============================================================================

// ErrInvalidTabSize 制表符宽度必须为正数
var ErrInvalidTabSize = errors.New("lexer: tab size must be positive")

// DefaultTabSize 默认制表符宽度
const DefaultTabSize = 8

type state int

const (
	stateLineStart state = iota
	stateInLine
	stateInBrackets
	stateAtEOF
)

// bracket 括号栈中的一项：左括号字符及其偏移
type bracket struct {
	char   rune
	offset int
}

// Lexer 词法分析器结构体
type Lexer struct {
	src      []rune // 源代码字符（构造后只读）
	filename string // 源文件名（只用于 Position）
	tabSize  int    // 制表符宽度，只用于缩进计算

	cur      *cursor       // 当前扫描游标
	tokens   []token.Token // 已生成的 token
	indents  []int         // 缩进栈，栈底为 0
	brackets []bracket     // 未闭合的括号
	state    state
}

// Option 配置 Lexer 的可选参数
type Option func(*Lexer)

// WithFilename 设置 Position 中使用的文件名
func WithFilename(filename string) Option {
	return func(l *Lexer) {
		l.filename = filename
	}
}

// ============================================================================
// 构造函数
// ============================================================================

// New 创建一个新的词法分析器
//
// 参数:
//   - source: 已解码的源代码
//   - tabSize: 制表符宽度（必须为正数，在 Tokenize 时检查）
func New(source string, tabSize int, opts ...Option) *Lexer {
	l := &Lexer{
		src:     []rune(source),
		tabSize: tabSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize 是对 New(source, tabSize).Tokenize() 的简写
func Tokenize(source string, tabSize int) ([]token.Token, error) {
	return New(source, tabSize).Tokenize()
}

// ============================================================================
// 公共方法
// ============================================================================

// Tokenize 扫描整个缓冲区并返回完整的 Token 序列
//
// 最后一个 Token 总是 EOF。出错时返回 nil 和 *Error，不返回部分结果。
// 同一个 Lexer 可以重复调用，每次都从头开始，结果相同。
func (l *Lexer) Tokenize() ([]token.Token, error) {
	if l.tabSize <= 0 {
		return nil, ErrInvalidTabSize
	}

	l.reset()

	for l.state != stateAtEOF {
		var err error
		if l.state == stateLineStart {
			err = l.lineStart()
		} else {
			err = l.scanToken()
		}
		if err != nil {
			l.tokens = nil
			return nil, err
		}
	}

	tokens := l.tokens
	l.tokens = nil
	return tokens, nil
}

// reset 为一次新的扫描准备状态
func (l *Lexer) reset() {
	// 经验值：平均每 4 个字符产生一个 token
	estimated := len(l.src) / 4
	if estimated < 16 {
		estimated = 16
	}

	l.cur = newCursor(l.src, l.filename)
	l.tokens = make([]token.Token, 0, estimated)
	l.indents = []int{0}
	l.brackets = l.brackets[:0]
	l.state = stateLineStart
}

// ============================================================================
// 核心扫描逻辑
// ============================================================================

// scanToken 在逻辑行内扫描一个 token（或跳过空白、注释、续行）
func (l *Lexer) scanToken() error {
	ch := l.cur.peek(0)

	switch {
	case ch == ' ' || ch == '\t' || ch == '\f':
		l.cur.advance(1)
		return nil

	case ch == '\n' || ch == '\r':
		return l.scanLineBreak()

	case ch == '#':
		l.skipComment()
		return nil

	case ch == '\\':
		// 反斜杠续行
		if n := l.cur.lineBreakLen(1); n > 0 {
			l.cur.advance(1 + n)
			return nil
		}
		err := l.errorAt(UnrecognizedCharacter, l.cur.offset(), ch, i18n.ErrStrayBackslash)
		// 缓冲区末尾的反斜杠等待下一行
		err.Incomplete = l.cur.peek(1) == eof
		return err

	case ch == eof:
		return l.finish()

	case isIdentStart(ch):
		return l.scanIdentifier()

	case isDigit(ch) || (ch == '.' && isDigit(l.cur.peek(1))):
		return l.scanNumber()

	case ch == '\'' || ch == '"':
		return l.scanString(l.cur.offset(), 0, 0)
	}

	return l.scanOperator()
}

// scanLineBreak 处理物理换行
//
// 括号内的换行直接跳过；深度为 0 时生成 NEWLINE，回到行首状态。
func (l *Lexer) scanLineBreak() error {
	start := l.cur.offset()
	n := l.cur.lineBreakLen(0)
	l.cur.advance(n)

	if l.state == stateInBrackets {
		return nil
	}

	l.emit(token.NEWLINE, start, nil)
	l.state = stateLineStart
	return nil
}

// skipComment 跳过 # 到行尾（不含换行符）
func (l *Lexer) skipComment() {
	n := 0
	for {
		ch := l.cur.peek(n)
		if ch == eof || ch == '\n' || ch == '\r' {
			break
		}
		n++
	}
	l.cur.advance(n)
}

// finish 处理缓冲区末尾：检查括号，补齐 DEDENT，生成 EOF
func (l *Lexer) finish() error {
	if len(l.brackets) > 0 {
		open := l.brackets[len(l.brackets)-1]
		err := l.errorAt(UnmatchedBracket, open.offset, open.char, i18n.ErrUnclosedBracket, open.char)
		err.Incomplete = true
		return err
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emitSynthetic(token.DEDENT)
	}
	l.emitSynthetic(token.EOF)
	l.state = stateAtEOF
	return nil
}

// ============================================================================
// Token 生成
// ============================================================================

// emit 生成覆盖 [start, 当前偏移) 的 token
func (l *Lexer) emit(typ token.TokenType, start int, value interface{}) {
	end := l.cur.offset()
	l.tokens = append(l.tokens, token.NewWithValue(
		typ,
		l.cur.text(start, end),
		value,
		token.Span{Start: start, End: end},
		l.cur.positionAt(start),
	))
}

// emitSynthetic 在当前偏移生成零宽的合成 token（INDENT、DEDENT、EOF）
func (l *Lexer) emitSynthetic(typ token.TokenType) {
	at := l.cur.offset()
	l.tokens = append(l.tokens, token.New(
		typ,
		"",
		token.Span{Start: at, End: at},
		l.cur.positionAt(at),
	))
}
