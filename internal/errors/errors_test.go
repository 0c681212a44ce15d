package errors

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tangzhangming/pylex/internal/i18n"
)

func plainFormatter() *Formatter {
	f := NewFormatter()
	f.Colors = false
	return f
}

// stripColors 移除 ANSI 颜色代码
func stripColors(s string) string {
	for _, code := range ansiCodes {
		s = strings.ReplaceAll(s, code, "")
	}
	return s
}

func TestFormatCompileError(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)

	err := &CompileError{
		Code:      E0005,
		Level:     LevelError,
		Message:   "invalid character '$' (U+0024)",
		File:      "bad.py",
		Line:      2,
		Column:    5,
		EndColumn: 6,
		Hints:     []string{"remove it"},
	}
	lines := []string{"x = 1", "y = $"}

	out := plainFormatter().FormatCompileError(err, lines)

	expected := []string{
		"error[E0005]: invalid character '$' (U+0024)",
		" --> bad.py:2:5",
		"  |",
		"2 | y = $",
		"        ^",
		" = help: remove it",
	}
	got := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(got) != len(expected) {
		t.Fatalf("line count mismatch: got %d, want %d\n%s", len(got), len(expected), out)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("line %d mismatch:\n got  %q\n want %q", i, got[i], expected[i])
		}
	}
}

func TestFormatCompileErrorTabsAndUnicode(t *testing.T) {
	err := &CompileError{Code: E0001, Level: LevelError, Message: "m", File: "f.py", Line: 1, Column: 4}
	out := plainFormatter().FormatCompileError(err, []string{"\té'x"})

	// Tab 展开为 4 个空格，é 占一列，^ 指向第 4 个字符 x
	if !strings.Contains(out, "1 |     é'x\n") {
		t.Errorf("source line mismatch:\n%s", out)
	}
	if !strings.Contains(out, "\n"+strings.Repeat(" ", 1+3+6)+"^\n") {
		t.Errorf("caret position mismatch:\n%s", out)
	}
}

func TestFormatterColors(t *testing.T) {
	f := NewFormatter()
	f.Colors = true
	err := &CompileError{Code: E0002, Level: LevelError, Message: "bad number", File: "f.py", Line: 1, Column: 1}
	out := f.FormatCompileError(err, []string{"if 1x: pass"})

	if !strings.Contains(out, "\033[") {
		t.Errorf("expected ANSI codes in colored output")
	}
	if !strings.Contains(stripColors(out), "error[E0002]: bad number") {
		t.Errorf("stripped output mismatch:\n%s", stripColors(out))
	}
}

func TestFormatCompileErrors(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)

	errs := []*CompileError{
		{Code: E0001, Level: LevelError, Message: "unterminated string literal", File: "a.py", Line: 1, Column: 5},
		{Code: E0004, Level: LevelError, Message: "'(' was never closed", File: "b.py", Line: 2, Column: 3},
	}
	sources := map[string][]string{
		"a.py": {"x = 'abc"},
		"b.py": {"pass", "f((1)"},
	}
	out := plainFormatter().FormatCompileErrors(errs, sources)

	for _, want := range []string{"error[E0001]", "a.py:1:5", "1 | x = 'abc", "error[E0004]", "2 | f((1)", "found 2 error(s)\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "E0001") > strings.Index(out, "E0004") {
		t.Errorf("diagnostics out of order:\n%s", out)
	}

	if out := plainFormatter().FormatCompileErrors(nil, nil); out != "" {
		t.Errorf("no diagnostics should produce no output, got %q", out)
	}
}

func TestColorHelpers(t *testing.T) {
	defer SetColorMode("never")

	SetColorMode("never")
	for _, paintFn := range []func(string) string{Red, Green, Yellow, Cyan} {
		if got := paintFn("ok"); got != "ok" {
			t.Errorf("colors disabled, got %q", got)
		}
	}

	SetColorMode("always")
	if !ColorsEnabled() {
		t.Fatal("always should enable colors")
	}
	tests := []struct {
		paint func(string) string
		code  string
	}{
		{Red, "\033[31m"},
		{Green, "\033[32m"},
		{Yellow, "\033[33m"},
		{Cyan, "\033[36m"},
	}
	for _, tt := range tests {
		got := tt.paint("ok")
		if !strings.HasPrefix(got, tt.code) || stripColors(got) != "ok" {
			t.Errorf("colored output mismatch: %q", got)
		}
	}
}

func TestErrorInfo(t *testing.T) {
	codes := []string{E0001, E0002, E0003, E0004, E0005, E0006}
	for _, code := range codes {
		info, ok := GetErrorInfo(code)
		if !ok {
			t.Errorf("%s: missing error info", code)
			continue
		}
		if info.Code != code || info.Level != LevelError || info.HintID == "" {
			t.Errorf("%s: unexpected info %+v", code, info)
		}
	}
	if _, ok := GetErrorInfo("E9999"); ok {
		t.Errorf("E9999 should not have error info")
	}
}

func TestSuggestions(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)

	hints := GetSuggestions(E0005, map[string]interface{}{"char": '?'})
	if len(hints) != 2 {
		t.Fatalf("hint count mismatch: got %d, want 2 (%v)", len(hints), hints)
	}
	if !strings.Contains(hints[1], "if cond else") {
		t.Errorf("confusable hint mismatch: %q", hints[1])
	}

	if hints := GetSuggestions("E9999", nil); hints != nil {
		t.Errorf("unknown code should have no hints, got %v", hints)
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"tokens", "check", "keywords", "version", "help"}

	tests := []struct {
		name     string
		expected string
	}{
		{"token", "tokens"},
		{"chek", "check"},
		{"KEYWORD", "keywords"},
		{"xyzzy", ""},
	}

	for _, tt := range tests {
		if got := FindSimilar(tt.name, candidates, 2); got != tt.expected {
			t.Errorf("FindSimilar(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.formatter = plainFormatter()
	r.SetSource("a.py", "x = 1\r\ny = )\n")

	r.ReportError(&CompileError{Code: E0004, Message: "unmatched ')'", File: "a.py", Line: 2, Column: 5})

	if r.ErrorCount() != 1 || !r.HasErrors() {
		t.Errorf("error count mismatch: %d", r.ErrorCount())
	}
	if !strings.Contains(buf.String(), "2 | y = )") {
		t.Errorf("report output missing source line:\n%s", buf.String())
	}
	if len(r.Errors()[0].Hints) == 0 {
		t.Errorf("expected default hints to be filled in")
	}

	r.Clear()
	if r.HasErrors() {
		t.Errorf("Clear did not remove errors")
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\rc\nd")
	expected := []string{"a", "b", "c", "d"}
	if len(got) != len(expected) {
		t.Fatalf("line count mismatch: got %v", got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("line %d mismatch: got %q, want %q", i, got[i], expected[i])
		}
	}
}
