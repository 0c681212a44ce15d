package lexer

import (
	"github.com/tangzhangming/pylex/internal/i18n"
	"github.com/tangzhangming/pylex/internal/token"
)

// ============================================================================
// 运算符与分隔符查找表
// ============================================================================
//
// 三张表都是只读的静态数据，按最长匹配的顺序查询：
// 先三字符，再两字符，最后单字符。
//
// ============================================================================

var threeCharOps = map[[3]rune]token.TokenType{
	{'*', '*', '='}: token.DOUBLE_STAR_ASSIGN,
	{'/', '/', '='}: token.DOUBLE_SLASH_ASSIGN,
	{'<', '<', '='}: token.LEFT_SHIFT_ASSIGN,
	{'>', '>', '='}: token.RIGHT_SHIFT_ASSIGN,
	{'.', '.', '.'}: token.ELLIPSIS,
}

var twoCharOps = map[[2]rune]token.TokenType{
	{'*', '*'}: token.DOUBLE_STAR,
	{'/', '/'}: token.DOUBLE_SLASH,
	{'<', '<'}: token.LEFT_SHIFT,
	{'>', '>'}: token.RIGHT_SHIFT,
	{'<', '='}: token.LE,
	{'>', '='}: token.GE,
	{'=', '='}: token.EQ,
	{'!', '='}: token.NE,
	{'-', '>'}: token.ARROW,
	{':', '='}: token.WALRUS,
	{'+', '='}: token.PLUS_ASSIGN,
	{'-', '='}: token.MINUS_ASSIGN,
	{'*', '='}: token.STAR_ASSIGN,
	{'/', '='}: token.SLASH_ASSIGN,
	{'%', '='}: token.PERCENT_ASSIGN,
	{'@', '='}: token.AT_ASSIGN,
	{'&', '='}: token.AND_ASSIGN,
	{'|', '='}: token.OR_ASSIGN,
	{'^', '='}: token.XOR_ASSIGN,
}

var oneCharOps = map[rune]token.TokenType{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'@': token.AT,
	'&': token.BIT_AND,
	'|': token.BIT_OR,
	'^': token.BIT_XOR,
	'~': token.BIT_NOT,
	'<': token.LT,
	'>': token.GT,
	'=': token.ASSIGN,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	'{': token.LBRACE,
	'}': token.RBRACE,
	',': token.COMMA,
	':': token.COLON,
	';': token.SEMICOLON,
	'.': token.DOT,
}

// closers 右括号到对应左括号的映射
var closers = map[token.TokenType]rune{
	token.RPAREN:   '(',
	token.RBRACKET: '[',
	token.RBRACE:   '{',
}

// MatchOperator 对 c0 c1 c2 做最长匹配
//
// 返回匹配到的 token 类型和消耗的字符数（1、2 或 3）。
// c0 不是任何运算符的开头时返回 (ILLEGAL, 0)。
// 这是纯函数，不依赖任何 Lexer 状态。
func MatchOperator(c0, c1, c2 rune) (token.TokenType, int) {
	if t, ok := threeCharOps[[3]rune{c0, c1, c2}]; ok {
		return t, 3
	}
	if t, ok := twoCharOps[[2]rune{c0, c1}]; ok {
		return t, 2
	}
	if t, ok := oneCharOps[c0]; ok {
		return t, 1
	}
	return token.ILLEGAL, 0
}

// scanOperator 扫描运算符或分隔符，并维护括号栈
func (l *Lexer) scanOperator() error {
	start := l.cur.offset()
	c0 := l.cur.peek(0)

	typ, width := MatchOperator(c0, l.cur.peek(1), l.cur.peek(2))
	if width == 0 {
		return l.errorAt(UnrecognizedCharacter, start, c0, i18n.ErrUnexpectedChar, c0, c0)
	}

	switch typ {
	case token.LPAREN, token.LBRACKET, token.LBRACE:
		l.brackets = append(l.brackets, bracket{char: c0, offset: start})
		l.state = stateInBrackets

	case token.RPAREN, token.RBRACKET, token.RBRACE:
		if len(l.brackets) == 0 {
			return l.errorAt(UnmatchedBracket, start, c0, i18n.ErrUnmatchedCloser, c0)
		}
		open := l.brackets[len(l.brackets)-1]
		if open.char != closers[typ] {
			return l.errorAt(UnmatchedBracket, start, c0, i18n.ErrMismatchedCloser, c0, open.char)
		}
		l.brackets = l.brackets[:len(l.brackets)-1]
		if len(l.brackets) == 0 {
			l.state = stateInLine
		}
	}

	l.cur.advance(width)
	l.emit(typ, start, nil)
	return nil
}
