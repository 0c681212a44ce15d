package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/tangzhangming/pylex/internal/i18n"
	"github.com/tangzhangming/pylex/internal/token"
)

// ============================================================================
// 字符串处理
// ============================================================================
//
// 支持的形式：
//   - 单引号 / 双引号：'abc'、"abc"，不能跨行（转义的换行除外）
//   - 三引号：'''abc'''、"""abc"""，可以跨行
//   - 前缀：r（原始）、b（字节）、f（格式化）、u 以及 rb / fr 等组合
//
// 非原始字符串处理以下转义：
//   \<换行> \\ \' \" \a \b \f \n \r \t \v \ooo \xhh
//   文本字符串额外支持 \uXXXX \UXXXXXXXX \N{name}
// 未知转义保留反斜杠，与 Python 一致。
//
// 原始字符串中反斜杠仍然可以"保护"后面的引号或反斜杠不结束字符串，
// 但两个字符都原样保留在结果中。
//
// ============================================================================

// literalBuilder 构建字符串的解码结果
//
// 文本字符串构建 string，bytes 字符串构建 []byte。
type literalBuilder struct {
	bytes bool
	sb    strings.Builder
	buf   []byte
}

// writeRune 写入一个源码字符；bytes 字面量只允许 ASCII
func (b *literalBuilder) writeRune(r rune) bool {
	if b.bytes {
		if r >= utf8.RuneSelf {
			return false
		}
		b.buf = append(b.buf, byte(r))
		return true
	}
	b.sb.WriteRune(r)
	return true
}

// writeValue 写入转义得到的码值：bytes 中是字节，文本中是码点
//
// 代理区码点（\ud800 等）无法用合法 UTF-8 表示，按 WTF-8 写入三个字节，
// 码点值不丢失；成对的代理也各自写入，不合并。
func (b *literalBuilder) writeValue(v rune) {
	if b.bytes {
		b.buf = append(b.buf, byte(v))
		return
	}
	if isSurrogate(v) {
		b.sb.WriteByte(byte(0xE0 | v>>12))
		b.sb.WriteByte(byte(0x80 | (v>>6)&0x3F))
		b.sb.WriteByte(byte(0x80 | v&0x3F))
		return
	}
	b.sb.WriteRune(v)
}

func isSurrogate(v rune) bool {
	return v >= 0xD800 && v <= 0xDFFF
}

// writeString 原样写入一段 ASCII 文本
func (b *literalBuilder) writeString(s string) {
	if b.bytes {
		b.buf = append(b.buf, s...)
		return
	}
	b.sb.WriteString(s)
}

func (b *literalBuilder) value() interface{} {
	if b.bytes {
		if b.buf == nil {
			return []byte{}
		}
		return b.buf
	}
	return b.sb.String()
}

// scanString 处理字符串字面量
//
// start 是字面量起始偏移（包含前缀），prefixLen 是前缀长度，
// flags 是前缀解析出的标志。调用时游标位于 start。
func (l *Lexer) scanString(start, prefixLen int, flags token.StringFlags) error {
	l.cur.advance(prefixLen)

	quote := l.cur.peek(0)
	triple := l.cur.peek(1) == quote && l.cur.peek(2) == quote
	if triple {
		flags |= token.FlagTriple
		l.cur.advance(3)
	} else {
		l.cur.advance(1)
	}

	raw := flags.Has(token.FlagRaw)
	b := &literalBuilder{bytes: flags.Has(token.FlagBytes)}

	for {
		ch := l.cur.peek(0)

		switch {
		case ch == eof:
			return l.unterminated(start, triple)

		case ch == quote:
			if !triple {
				l.cur.advance(1)
				return l.finishString(start, flags, b)
			}
			if l.cur.peek(1) == quote && l.cur.peek(2) == quote {
				l.cur.advance(3)
				return l.finishString(start, flags, b)
			}
			b.writeRune(ch)
			l.cur.advance(1)

		case ch == '\n' || ch == '\r':
			if !triple {
				return l.unterminated(start, triple)
			}
			// 三引号中的换行统一解码为 \n
			l.cur.advance(l.cur.lineBreakLen(0))
			b.writeRune('\n')

		case ch == '\\':
			var err error
			if raw {
				err = l.rawEscape(start, triple, b)
			} else {
				err = l.escape(start, quote, triple, b)
			}
			if err != nil {
				return err
			}

		default:
			if !b.writeRune(ch) {
				return l.errorAt(MalformedStringLiteral, l.cur.offset(), ch, i18n.ErrNonASCIIBytes)
			}
			l.cur.advance(1)
		}
	}
}

// finishString 生成 STRING token
func (l *Lexer) finishString(start int, flags token.StringFlags, b *literalBuilder) error {
	l.emit(token.STRING, start, b.value())
	l.tokens[len(l.tokens)-1].Flags = flags
	return nil
}

// unterminated 报告未闭合的字符串，位置是字面量起始处
func (l *Lexer) unterminated(start int, triple bool) error {
	if triple {
		err := l.errorAt(UnterminatedString, start, 0, i18n.ErrUnterminatedTriple)
		err.Incomplete = true
		return err
	}
	return l.errorAt(UnterminatedString, start, 0, i18n.ErrUnterminatedString)
}

// rawEscape 处理原始字符串中的反斜杠：两个字符都保留
func (l *Lexer) rawEscape(start int, triple bool, b *literalBuilder) error {
	next := l.cur.peek(1)
	if next == eof {
		return l.unterminated(start, triple)
	}

	b.writeRune('\\')
	l.cur.advance(1)

	if n := l.cur.lineBreakLen(0); n > 0 {
		l.cur.advance(n)
		b.writeRune('\n')
		return nil
	}
	if !b.writeRune(next) {
		return l.errorAt(MalformedStringLiteral, l.cur.offset(), next, i18n.ErrNonASCIIBytes)
	}
	l.cur.advance(1)
	return nil
}

// simpleEscapes 单字符转义表
var simpleEscapes = map[rune]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// escape 处理非原始字符串中的转义序列，游标位于反斜杠
func (l *Lexer) escape(start int, quote rune, triple bool, b *literalBuilder) error {
	at := l.cur.offset()
	next := l.cur.peek(1)

	if next == eof {
		return l.unterminated(start, triple)
	}

	// 反斜杠加换行：续行，不产生字符
	if n := l.cur.lineBreakLen(1); n > 0 {
		l.cur.advance(1 + n)
		return nil
	}

	if v, ok := simpleEscapes[next]; ok {
		l.cur.advance(2)
		b.writeValue(v)
		return nil
	}

	switch {
	case isOctDigit(next):
		// 最多三位八进制数字
		n, v := 0, rune(0)
		for n < 3 && isOctDigit(l.cur.peek(1+n)) {
			v = v*8 + (l.cur.peek(1+n) - '0')
			n++
		}
		if b.bytes && v > 0xFF {
			return l.errorAt(MalformedStringLiteral, at, next, i18n.ErrEscapeOutOfRange, l.cur.text(at+1, at+1+n))
		}
		l.cur.advance(1 + n)
		b.writeValue(v)
		return nil

	case next == 'x':
		return l.hexEscape(at, 2, b)

	case next == 'u' && !b.bytes:
		return l.hexEscape(at, 4, b)

	case next == 'U' && !b.bytes:
		return l.hexEscape(at, 8, b)

	case next == 'N' && !b.bytes:
		return l.namedEscape(at, quote, b)
	}

	// 未知转义：保留反斜杠和后面的字符
	if b.bytes && next >= utf8.RuneSelf {
		return l.errorAt(MalformedStringLiteral, at+1, next, i18n.ErrNonASCIIBytes)
	}
	b.writeRune('\\')
	b.writeRune(next)
	l.cur.advance(2)
	return nil
}

// hexEscape 处理 \x \u \U，digits 是必须出现的十六进制位数
func (l *Lexer) hexEscape(at, digits int, b *literalBuilder) error {
	kind := l.cur.peek(1)

	var v uint32
	for i := 0; i < digits; i++ {
		ch := l.cur.peek(2 + i)
		if !isHexDigit(ch) {
			return l.errorAt(MalformedStringLiteral, at, kind, i18n.ErrTruncatedEscape, kind)
		}
		v = v*16 + uint32(hexValue(ch))
	}

	if v > utf8.MaxRune {
		return l.errorAt(MalformedStringLiteral, at, kind, i18n.ErrEscapeOutOfRange, l.cur.text(at+1, at+2+digits))
	}

	l.cur.advance(2 + digits)
	b.writeValue(rune(v))
	return nil
}

// namedEscape 处理 \N{name}
//
// 不携带 Unicode 名称数据库，转义序列原样保留在结果中。
func (l *Lexer) namedEscape(at int, quote rune, b *literalBuilder) error {
	if l.cur.peek(2) != '{' {
		return l.errorAt(MalformedStringLiteral, at, 'N', i18n.ErrTruncatedEscape, 'N')
	}

	i := 3
	for {
		ch := l.cur.peek(i)
		if ch == '}' {
			break
		}
		if ch == eof || ch == '\n' || ch == '\r' || ch == quote {
			return l.errorAt(MalformedStringLiteral, at, 'N', i18n.ErrTruncatedEscape, 'N')
		}
		i++
	}
	if i == 3 {
		return l.errorAt(MalformedStringLiteral, at, 'N', i18n.ErrTruncatedEscape, 'N')
	}

	b.writeString(l.cur.text(at, at+i+1))
	l.cur.advance(i + 1)
	return nil
}

func hexValue(ch rune) rune {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}
