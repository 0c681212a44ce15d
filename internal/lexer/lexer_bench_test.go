package lexer

import (
	"strings"
	"testing"
)

// ============================================================================
// Lexer 基准测试
// ============================================================================
//
// 运行基准测试：
//   go test -bench=. -benchmem ./internal/lexer/...
//
// 对比两个版本：
//   go test -bench=. -benchmem -count=5 ./internal/lexer/... > new.txt
//   benchstat old.txt new.txt
//
// ============================================================================

// 测试源码样本：模拟真实的 Python 代码
var benchSource = `
# 这是一个基准测试用的示例代码
# 包含各种常见的语法结构

import os
from typing import Dict, List, Optional


class UserController(BaseController):
    """处理用户登录和查询"""

    max_retries: int = 3

    def __init__(self, auth_service):
        self.auth_service = auth_service
        self._cache: Dict[str, "User"] = {}

    def login(self, username: str, password: str) -> bool:
        # 验证输入
        if username == "" or password == "":
            return False

        # 尝试登录
        for i in range(self.max_retries):
            result = self.auth_service.authenticate(username, password)
            if result is not None:
                return True

        return False

    async def get_user(self, user_id: int) -> Optional["User"]:
        if (user := self._cache.get(str(user_id))) is not None:
            return user
        return await User.find(user_id)

    def calculate_score(self, base: float, multiplier: int) -> float:
        score = base * multiplier
        bonus = 1.5e2 + 0x10 + 0b1010 + 1_000j
        score **= 2
        return score + bonus.real

    def format_message(self, template: str, params: Dict[str, str]) -> str:
        message = f"Hello, {params['name']}! Your score is {params['score']}."
        return message + r'\d+' + b'\x00\xff'.hex() + '\u00e9\n'
`

// BenchmarkLexer 测试完整的词法分析性能
func BenchmarkLexer(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchSource)))

	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(benchSource, DefaultTabSize); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLexerLargeFile 测试大文件的词法分析性能
func BenchmarkLexerLargeFile(b *testing.B) {
	// 重复源码创建一个较大的文件
	largeSource := strings.Repeat(benchSource, 100)

	b.ReportAllocs()
	b.SetBytes(int64(len(largeSource)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(largeSource, DefaultTabSize); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLexerReuse 测试重复使用同一个 Lexer 的性能
func BenchmarkLexerReuse(b *testing.B) {
	l := New(benchSource, DefaultTabSize)

	b.ReportAllocs()
	b.SetBytes(int64(len(benchSource)))

	for i := 0; i < b.N; i++ {
		if _, err := l.Tokenize(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLexerIndentation 测试深层缩进与空白行
func BenchmarkLexerIndentation(b *testing.B) {
	var sb strings.Builder
	for depth := 0; depth < 50; depth++ {
		sb.WriteString(strings.Repeat("    ", depth))
		sb.WriteString("if x:\n\n")
	}
	sb.WriteString(strings.Repeat("    ", 50))
	sb.WriteString("pass\n")
	source := strings.Repeat(sb.String(), 10)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(source, DefaultTabSize); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLexerStrings 测试字符串解析性能
func BenchmarkLexerStrings(b *testing.B) {
	source := `"simple string" 'another string' """yet another"""` +
		strings.Repeat(` "string with content number 123"`, 100)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(source, DefaultTabSize); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLexerStringsWithEscape 测试带转义的字符串解析性能
func BenchmarkLexerStringsWithEscape(b *testing.B) {
	source := strings.Repeat(`"hello\nworld\t\"escaped\"\x41\u00e9" `, 100)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(source, DefaultTabSize); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLexerNumbers 测试数字解析性能
func BenchmarkLexerNumbers(b *testing.B) {
	source := strings.Repeat("123 456 789 0 1 2 3 4 5 6 7 8 9 ", 50) +
		strings.Repeat("3.14 2.718 1.0e10 .5 1j ", 30) +
		strings.Repeat("0xFF 0x1234 0b1010 0o777 1_000_000 ", 20)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(source, DefaultTabSize); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLexerIdentifiers 测试标识符解析性能
func BenchmarkLexerIdentifiers(b *testing.B) {
	source := strings.Repeat("foo bar baz qux identifier variable ", 50) +
		strings.Repeat("if else for while return def class ", 30) +
		strings.Repeat("None True False lambda nonlocal ", 20)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(source, DefaultTabSize); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLexerOperators 测试运算符解析性能
func BenchmarkLexerOperators(b *testing.B) {
	source := strings.Repeat("+ - * / % = == != < <= > >= ** // ", 50) +
		strings.Repeat("+= -= *= /= **= //= := -> ", 30) +
		strings.Repeat("& | ^ ~ << >> ... @ ", 20)

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(source, DefaultTabSize); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLexerComments 测试注释跳过性能
func BenchmarkLexerComments(b *testing.B) {
	source := strings.Repeat("# single line comment\n", 50) +
		strings.Repeat("x = 1  # trailing comment\n", 30) +
		"identifier"

	b.ReportAllocs()
	b.SetBytes(int64(len(source)))

	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(source, DefaultTabSize); err != nil {
			b.Fatal(err)
		}
	}
}
