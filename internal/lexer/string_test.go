package lexer

import (
	"bytes"
	"testing"

	"github.com/tangzhangming/pylex/internal/token"
)

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		value interface{} // 文本字符串为 string，bytes 字符串为 []byte
		flags token.StringFlags
	}{
		{`'abc'`, "abc", 0},
		{`"abc"`, "abc", 0},
		{`''`, "", 0},
		{`'a"b'`, `a"b`, 0},
		{`'a\'b'`, "a'b", 0},
		{`"a\nb\tc"`, "a\nb\tc", 0},
		{`'\\'`, `\`, 0},
		{`'\a\b\f\r\v'`, "\a\b\f\r\v", 0},
		{`'\x41\101\u00e9\U0001F600'`, "AAé😀", 0},
		{`'\0'`, "\x00", 0},
		{`'\777'`, string(rune(0o777)), 0},
		{`'\N{EM DASH}'`, `\N{EM DASH}`, 0},
		{`'\q\d'`, `\q\d`, 0},
		{"'a\\\nb'", "ab", 0},
		{"'héllo 世界'", "héllo 世界", 0},
		{`'\ud800'`, "\xed\xa0\x80", 0},
		{`'a\uDFFFb'`, "a\xed\xbf\xbfb", 0},
		{`'\ud83d\ude00'`, "\xed\xa0\xbd\xed\xb8\x80", 0},
		{`'\U0000d800'`, "\xed\xa0\x80", 0},

		{`r'a\nb'`, `a\nb`, token.FlagRaw},
		{`R'a\'b'`, `a\'b`, token.FlagRaw},
		{`r'\\'`, `\\`, token.FlagRaw},
		{`f'{x!r}'`, "{x!r}", token.FlagFormatted},
		{`Rf'\d{x}'`, `\d{x}`, token.FlagFormatted | token.FlagRaw},
		{`u'x'`, "x", token.FlagUnicode},

		{`b'ab\x00'`, []byte{'a', 'b', 0}, token.FlagBytes},
		{`b''`, []byte{}, token.FlagBytes},
		{`B'\377'`, []byte{0xFF}, token.FlagBytes},
		{`b'\u1234\N{X}'`, []byte(`\u1234\N{X}`), token.FlagBytes},
		{`rb'\x00'`, []byte(`\x00`), token.FlagBytes | token.FlagRaw},
		{`bR'a'`, []byte("a"), token.FlagBytes | token.FlagRaw},

		{"'''a\nb'''", "a\nb", token.FlagTriple},
		{"'''a\r\nb'''", "a\nb", token.FlagTriple},
		{`"""a""b"""`, `a""b`, token.FlagTriple},
		{`"""a'''b"""`, "a'''b", token.FlagTriple},
		{"r'''\\n\n'''", "\\n\n", token.FlagRaw | token.FlagTriple},
		{"b'''x\ny'''", []byte("x\ny"), token.FlagBytes | token.FlagTriple},
	}

	for _, tt := range tests {
		tokens := tokenize(t, tt.input, DefaultTabSize)

		if len(tokens) != 2 {
			t.Errorf("%q: token count mismatch: got %d, want 2 (%v)", tt.input, len(tokens), tokenTypes(tokens))
			continue
		}

		tok := tokens[0]
		if tok.Type != token.STRING {
			t.Errorf("%q: type mismatch: got %s, want STRING", tt.input, tok.Type)
			continue
		}
		if tok.Literal != tt.input {
			t.Errorf("%q: literal mismatch: got %q", tt.input, tok.Literal)
		}
		if tok.Flags != tt.flags {
			t.Errorf("%q: flags mismatch: got %q, want %q", tt.input, tok.Flags, tt.flags)
		}

		switch want := tt.value.(type) {
		case string:
			if got, ok := tok.Value.(string); !ok || got != want {
				t.Errorf("%q: value mismatch: got %#v, want %q", tt.input, tok.Value, want)
			}
		case []byte:
			if got, ok := tok.Value.([]byte); !ok || !bytes.Equal(got, want) {
				t.Errorf("%q: value mismatch: got %#v, want %q", tt.input, tok.Value, want)
			}
		}
	}
}

func TestLexerStringSpans(t *testing.T) {
	tokens := tokenize(t, "'é' + rb'x'", DefaultTabSize)

	expected := []struct {
		typ  token.TokenType
		span token.Span
	}{
		{token.STRING, token.Span{Start: 0, End: 3}},
		{token.PLUS, token.Span{Start: 4, End: 5}},
		{token.STRING, token.Span{Start: 6, End: 11}},
		{token.EOF, token.Span{Start: 11, End: 11}},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("token count mismatch: got %d, want %d", len(tokens), len(expected))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp.typ || tokens[i].Span != exp.span {
			t.Errorf("token[%d] mismatch: got %s %s, want %s %s",
				i, tokens[i].Type, tokens[i].Span, exp.typ, exp.span)
		}
	}
}

func TestLexerStringPrefixes(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.TokenType
	}{
		// ur 不是合法前缀
		{"ur'x'", []token.TokenType{token.IDENT, token.STRING, token.EOF}},
		{"bb'x'", []token.TokenType{token.IDENT, token.STRING, token.EOF}},
		// 前缀和引号之间有空白
		{"r 'x'", []token.TokenType{token.IDENT, token.STRING, token.EOF}},
		{"rb", []token.TokenType{token.IDENT, token.EOF}},
	}

	for _, tt := range tests {
		expectTypes(t, tt.input, DefaultTabSize, tt.expected)
	}
}

func TestLexerStringErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   ErrorKind
		offset int
	}{
		{"eof in single quote", `'abc`, UnterminatedString, 0},
		{"newline in single quote", "'ab\ncd'", UnterminatedString, 0},
		{"eof in triple quote", `"""abc""`, UnterminatedString, 0},
		{"escaped closing quote", `'abc\'`, UnterminatedString, 0},
		{"raw escaped closing quote", `r'abc\'`, UnterminatedString, 0},
		{"prefix included in offset", `x = b"abc`, UnterminatedString, 4},
		{"truncated hex escape", `'\x4'`, MalformedStringLiteral, 1},
		{"truncated unicode escape", `'\u12'`, MalformedStringLiteral, 1},
		{"out of range unicode escape", `'\U00110000'`, MalformedStringLiteral, 1},
		{"named escape without braces", `'\N'`, MalformedStringLiteral, 1},
		{"unclosed named escape", `'\N{DASH'`, MalformedStringLiteral, 1},
		{"octal out of range in bytes", `b'\400'`, MalformedStringLiteral, 2},
		{"non ascii in bytes", "b'é'", MalformedStringLiteral, 2},
		{"non ascii in raw bytes", "rb'\\é'", MalformedStringLiteral, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.input, tt.kind, tt.offset)
		})
	}
}
