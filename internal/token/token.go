package token

import (
	"fmt"
	"strings"
)

// ============================================================================
// Token 类型定义
// ============================================================================
//
// TokenType 使用 iota 自动编号，按类别分组：
// 1. 特殊标记（ILLEGAL, EOF, NEWLINE, INDENT, DEDENT）
// 2. 字面量（标识符、整数、浮点数、虚数、字符串）
// 3. 运算符（算术、比较、位运算、增强赋值）
// 4. 分隔符（括号、逗号、冒号等）
// 5. 关键字（35 个保留字）
//
// ============================================================================

// TokenType 表示 Token 的类型
type TokenType int

const (
	// ----------------------------------------------------------
	// 特殊标记
	// ----------------------------------------------------------
	ILLEGAL TokenType = iota // 非法字符
	EOF                      // 文件结束（终止符）
	NEWLINE                  // 逻辑行结束
	INDENT                   // 缩进增加
	DEDENT                   // 缩进减少

	// ----------------------------------------------------------
	// 字面量
	// ----------------------------------------------------------
	literal_beg
	IDENT     // 标识符
	INT       // 整数字面量
	FLOAT     // 浮点数字面量
	IMAGINARY // 虚数字面量 (1j)
	STRING    // 字符串字面量 (含 bytes / f-string)
	literal_end

	// ----------------------------------------------------------
	// 算术运算符
	// ----------------------------------------------------------
	operator_beg
	PLUS         // +
	MINUS        // -
	STAR         // *
	DOUBLE_STAR  // **
	SLASH        // /
	DOUBLE_SLASH // //
	PERCENT      // %
	AT           // @

	// ----------------------------------------------------------
	// 位运算符
	// ----------------------------------------------------------
	LEFT_SHIFT  // <<
	RIGHT_SHIFT // >>
	BIT_AND     // &
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_NOT     // ~

	// ----------------------------------------------------------
	// 比较运算符
	// ----------------------------------------------------------
	LT // <
	GT // >
	LE // <=
	GE // >=
	EQ // ==
	NE // !=

	// ----------------------------------------------------------
	// 赋值运算符
	// ----------------------------------------------------------
	ASSIGN              // =
	WALRUS              // :=
	PLUS_ASSIGN         // +=
	MINUS_ASSIGN        // -=
	STAR_ASSIGN         // *=
	SLASH_ASSIGN        // /=
	DOUBLE_SLASH_ASSIGN // //=
	PERCENT_ASSIGN      // %=
	AT_ASSIGN           // @=
	AND_ASSIGN          // &=
	OR_ASSIGN           // |=
	XOR_ASSIGN          // ^=
	RIGHT_SHIFT_ASSIGN  // >>=
	LEFT_SHIFT_ASSIGN   // <<=
	DOUBLE_STAR_ASSIGN  // **=

	// ----------------------------------------------------------
	// 分隔符
	// ----------------------------------------------------------
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	COLON     // :
	SEMICOLON // ;
	DOT       // .
	ARROW     // ->
	ELLIPSIS  // ...
	operator_end

	// ----------------------------------------------------------
	// 关键字 - 值
	// ----------------------------------------------------------
	keyword_beg // 关键字起始标记（不是实际 token）
	FALSE       // False
	NONE        // None
	TRUE        // True

	// ----------------------------------------------------------
	// 关键字 - 逻辑与成员
	// ----------------------------------------------------------
	AND // and
	OR  // or
	NOT // not
	IN  // in
	IS  // is

	// ----------------------------------------------------------
	// 关键字 - 声明与导入
	// ----------------------------------------------------------
	AS       // as
	CLASS    // class
	DEF      // def
	DEL      // del
	FROM     // from
	GLOBAL   // global
	IMPORT   // import
	LAMBDA   // lambda
	NONLOCAL // nonlocal

	// ----------------------------------------------------------
	// 关键字 - 控制流
	// ----------------------------------------------------------
	IF       // if
	ELIF     // elif
	ELSE     // else
	FOR      // for
	WHILE    // while
	BREAK    // break
	CONTINUE // continue
	PASS     // pass
	RETURN   // return
	YIELD    // yield
	WITH     // with

	// ----------------------------------------------------------
	// 关键字 - 异常处理
	// ----------------------------------------------------------
	TRY     // try
	EXCEPT  // except
	FINALLY // finally
	RAISE   // raise
	ASSERT  // assert

	// ----------------------------------------------------------
	// 关键字 - 协程
	// ----------------------------------------------------------
	ASYNC       // async
	AWAIT       // await
	keyword_end // 关键字结束标记（不是实际 token）
)

// ============================================================================
// Token 类型名称映射
// ============================================================================

var tokenNames = [...]string{
	// 特殊标记
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	NEWLINE: "NEWLINE",
	INDENT:  "INDENT",
	DEDENT:  "DEDENT",

	// 字面量
	IDENT:     "IDENT",
	INT:       "INT",
	FLOAT:     "FLOAT",
	IMAGINARY: "IMAGINARY",
	STRING:    "STRING",

	// 算术运算符
	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	DOUBLE_STAR:  "**",
	SLASH:        "/",
	DOUBLE_SLASH: "//",
	PERCENT:      "%",
	AT:           "@",

	// 位运算符
	LEFT_SHIFT:  "<<",
	RIGHT_SHIFT: ">>",
	BIT_AND:     "&",
	BIT_OR:      "|",
	BIT_XOR:     "^",
	BIT_NOT:     "~",

	// 比较运算符
	LT: "<",
	GT: ">",
	LE: "<=",
	GE: ">=",
	EQ: "==",
	NE: "!=",

	// 赋值运算符
	ASSIGN:              "=",
	WALRUS:              ":=",
	PLUS_ASSIGN:         "+=",
	MINUS_ASSIGN:        "-=",
	STAR_ASSIGN:         "*=",
	SLASH_ASSIGN:        "/=",
	DOUBLE_SLASH_ASSIGN: "//=",
	PERCENT_ASSIGN:      "%=",
	AT_ASSIGN:           "@=",
	AND_ASSIGN:          "&=",
	OR_ASSIGN:           "|=",
	XOR_ASSIGN:          "^=",
	RIGHT_SHIFT_ASSIGN:  ">>=",
	LEFT_SHIFT_ASSIGN:   "<<=",
	DOUBLE_STAR_ASSIGN:  "**=",

	// 分隔符
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",
	COMMA:     ",",
	COLON:     ":",
	SEMICOLON: ";",
	DOT:       ".",
	ARROW:     "->",
	ELLIPSIS:  "...",

	// 关键字
	FALSE:    "False",
	NONE:     "None",
	TRUE:     "True",
	AND:      "and",
	OR:       "or",
	NOT:      "not",
	IN:       "in",
	IS:       "is",
	AS:       "as",
	CLASS:    "class",
	DEF:      "def",
	DEL:      "del",
	FROM:     "from",
	GLOBAL:   "global",
	IMPORT:   "import",
	LAMBDA:   "lambda",
	NONLOCAL: "nonlocal",
	IF:       "if",
	ELIF:     "elif",
	ELSE:     "else",
	FOR:      "for",
	WHILE:    "while",
	BREAK:    "break",
	CONTINUE: "continue",
	PASS:     "pass",
	RETURN:   "return",
	YIELD:    "yield",
	WITH:     "with",
	TRY:      "try",
	EXCEPT:   "except",
	FINALLY:  "finally",
	RAISE:    "raise",
	ASSERT:   "assert",
	ASYNC:    "async",
	AWAIT:    "await",
}

// ============================================================================
// 关键字查找表
// ============================================================================
//
// keywords 将保留字映射到对应的 TokenType。
// 表在包初始化后只读，多个 Lexer 并发查询无需加锁。
//
// ============================================================================

var keywords = map[string]TokenType{
	"False":    FALSE,
	"None":     NONE,
	"True":     TRUE,
	"and":      AND,
	"as":       AS,
	"assert":   ASSERT,
	"async":    ASYNC,
	"await":    AWAIT,
	"break":    BREAK,
	"class":    CLASS,
	"continue": CONTINUE,
	"def":      DEF,
	"del":      DEL,
	"elif":     ELIF,
	"else":     ELSE,
	"except":   EXCEPT,
	"finally":  FINALLY,
	"for":      FOR,
	"from":     FROM,
	"global":   GLOBAL,
	"if":       IF,
	"import":   IMPORT,
	"in":       IN,
	"is":       IS,
	"lambda":   LAMBDA,
	"nonlocal": NONLOCAL,
	"not":      NOT,
	"or":       OR,
	"pass":     PASS,
	"raise":    RAISE,
	"return":   RETURN,
	"try":      TRY,
	"while":    WHILE,
	"with":     WITH,
	"yield":    YIELD,
}

// ============================================================================
// 关键字查找函数
// ============================================================================

// LookupIdent 查找标识符是否为关键字
//
// 只做大小写敏感的精确匹配，结果与位置和上下文无关。
// match / case / type / _ 等软关键字一律按标识符处理。
//
// 优化说明:
//   - 2-3 字符的关键字（if, in, is, or, as, def, for ...）最常见，
//     先用 switch 匹配，避免哈希计算
//   - 其余关键字走 map 查找
func LookupIdent(ident string) TokenType {
	switch len(ident) {
	case 2:
		switch ident {
		case "if":
			return IF
		case "in":
			return IN
		case "is":
			return IS
		case "or":
			return OR
		case "as":
			return AS
		}
		return IDENT

	case 3:
		switch ident {
		case "def":
			return DEF
		case "for":
			return FOR
		case "and":
			return AND
		case "not":
			return NOT
		case "del":
			return DEL
		case "try":
			return TRY
		}
		return IDENT
	}

	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords 返回全部保留字（按 TokenType 顺序）
func Keywords() []string {
	words := make([]string, 0, keyword_end-keyword_beg-1)
	for t := keyword_beg + 1; t < keyword_end; t++ {
		words = append(words, tokenNames[t])
	}
	return words
}

// IsKeyword 判断 TokenType 是否为关键字
func IsKeyword(t TokenType) bool {
	return t > keyword_beg && t < keyword_end
}

// IsOperator 判断 TokenType 是否为运算符或分隔符
func IsOperator(t TokenType) bool {
	return t > operator_beg && t < operator_end
}

// IsSynthesized 判断 TokenType 是否由词法分析器合成（不覆盖源码文本）
//
// NEWLINE 覆盖换行符，但换行符本身属于被丢弃的空白，因此也算合成。
func IsSynthesized(t TokenType) bool {
	switch t {
	case EOF, NEWLINE, INDENT, DEDENT:
		return true
	}
	return false
}

// String 返回 TokenType 的字符串表示
func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// ============================================================================
// Position - 源代码位置
// ============================================================================

// Position 表示源代码中的位置
type Position struct {
	Filename string // 文件名
	Line     int    // 行号 (从1开始)
	Column   int    // 列号 (从1开始，按字符计)
	Offset   int    // 字符偏移量 (从0开始)
}

// String 返回位置的字符串表示，格式为 "filename:line:column"
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ============================================================================
// Span - 源代码范围
// ============================================================================

// Span 表示源码中的半开区间 [Start, End)，单位是字符偏移
//
// 合成 token（INDENT、DEDENT、EOF）的 Span 宽度为零。
type Span struct {
	Start int
	End   int
}

// String 返回 Span 的字符串表示
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// ============================================================================
// StringFlags - 字符串前缀标志
// ============================================================================

// StringFlags 记录字符串字面量的前缀和引号风格
type StringFlags uint8

const (
	FlagRaw       StringFlags = 1 << iota // r / R
	FlagBytes                             // b / B
	FlagFormatted                         // f / F
	FlagUnicode                           // u / U
	FlagTriple                            // ''' 或 """
)

// Has 检查是否包含指定标志
func (f StringFlags) Has(flag StringFlags) bool {
	return f&flag != 0
}

// String 返回标志的可读形式，如 "raw|bytes"
func (f StringFlags) String() string {
	if f == 0 {
		return ""
	}
	var parts []string
	if f.Has(FlagRaw) {
		parts = append(parts, "raw")
	}
	if f.Has(FlagBytes) {
		parts = append(parts, "bytes")
	}
	if f.Has(FlagFormatted) {
		parts = append(parts, "formatted")
	}
	if f.Has(FlagUnicode) {
		parts = append(parts, "unicode")
	}
	if f.Has(FlagTriple) {
		parts = append(parts, "triple")
	}
	return strings.Join(parts, "|")
}

// ============================================================================
// Token - 词法单元
// ============================================================================

// Token 表示一个词法单元
//
// Token 是词法分析的产物，包含：
// - Type: token 类型（如 IDENT, INT, IF 等）
// - Literal: Span 覆盖的原始源码文本
// - Value: 解析后的值
//   - INT:       *big.Int
//   - FLOAT:     float64
//   - IMAGINARY: float64（虚部）
//   - STRING:    string，bytes 字面量为 []byte
// - Span: 字符偏移区间
// - Pos: 起始位置（行列号，用于诊断）
// - Flags: 字符串前缀标志
type Token struct {
	Type    TokenType
	Literal string
	Value   interface{}
	Span    Span
	Pos     Position
	Flags   StringFlags
}

// String 返回 Token 的字符串表示（用于调试）
func (t Token) String() string {
	switch t.Type {
	case IDENT, INT, FLOAT, IMAGINARY, STRING:
		return fmt.Sprintf("%s(%s) at %s", t.Type, t.Literal, t.Pos)
	default:
		return fmt.Sprintf("%s at %s", t.Type, t.Pos)
	}
}

// ============================================================================
// Token 构造函数
// ============================================================================

// New 创建一个新的 Token
func New(tokenType TokenType, literal string, span Span, pos Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Span:    span,
		Pos:     pos,
	}
}

// NewWithValue 创建一个带值的 Token
//
// 用于数字和字符串字面量，value 参数存储解析后的实际值。
func NewWithValue(tokenType TokenType, literal string, value interface{}, span Span, pos Position) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
		Value:   value,
		Span:    span,
		Pos:     pos,
	}
}
