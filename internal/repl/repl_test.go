package repl

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	diag "github.com/tangzhangming/pylex/internal/errors"
)

func runREPL(t *testing.T, input string) string {
	t.Helper()
	diag.SetColorMode("never")
	var out bytes.Buffer
	if err := New(DefaultConfig(), strings.NewReader(input), &out).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestREPLSingleLine(t *testing.T) {
	out := runREPL(t, "x = 0x1F\n")
	for _, want := range []string{"IDENT", "=> 31", "NEWLINE", "EOF", "Bye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestREPLMultiline(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prompt int // 续行提示符出现次数
	}{
		{"open bracket", "x = (1,\n2)\n", 1},
		{"triple quoted string", "s = '''a\n\nb'''\n", 2},
		{"backslash", "x = 1 + \\\n2\n", 1},
		{"compound statement", "if x:\n    y = 1\n\n", 2},
		{"nested block", "def f():\n    if a:\n        pass\n\n", 3},
		{"colon inside brackets", "d = {1:\n2}\n", 1},
		{"backslash in comment", "x = 1  # C:\\dir\\\n", 0},
		{"colon in comment", "x = 1  # note:\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runREPL(t, tt.input)
			if got := strings.Count(out, "... "); got != tt.prompt {
				t.Errorf("continuation prompts: got %d, want %d\n%s", got, tt.prompt, out)
			}
			if strings.Contains(out, "error[") {
				t.Errorf("unexpected error:\n%s", out)
			}
		})
	}
}

func TestREPLBlockProducesIndent(t *testing.T) {
	out := runREPL(t, "for i in x:\n\tpass\n\n")
	if !strings.Contains(out, "INDENT") || !strings.Contains(out, "DEDENT") {
		t.Errorf("block should be tokenized as a whole:\n%s", out)
	}
}

func TestREPLError(t *testing.T) {
	out := runREPL(t, "a $ b\ny = 1\n")
	if !strings.Contains(out, "error[E0005]") || !strings.Contains(out, "<repl>:1:3") {
		t.Errorf("missing diagnostic:\n%s", out)
	}
	// 出错之后继续接受输入
	if !strings.Contains(out, "=> 1") {
		t.Errorf("input after error was not tokenized:\n%s", out)
	}
}

func TestREPLUnfinishedInputAtEOF(t *testing.T) {
	out := runREPL(t, "x = [1,\n")
	if !strings.Contains(out, "error[E0004]") {
		t.Errorf("unfinished input should be reported at end of input:\n%s", out)
	}
}

func TestREPLCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.py")
	if err := os.WriteFile(path, []byte("pass\n"), 0644); err != nil {
		t.Fatal(err)
	}

	input := strings.Join([]string{
		":help",
		":tab 4",
		":tab",
		":tab zero",
		":span",
		"x",
		"x",
		"y",
		":history",
		":load " + path,
		":hsitory",
		":quit",
		"z = 1",
	}, "\n") + "\n"
	out := runREPL(t, input)

	for _, want := range []string{
		"Available commands:",
		"Tab size set to 4.",
		"Tab size is 4.",
		"Usage: :tab <positive number>",
		"Spans on.",
		"[0,1)",
		"   1  x\n   2  y\n",
		"pass",
		"Did you mean :history?",
		"Bye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"z"`) {
		t.Errorf("input after :quit should not be read:\n%s", out)
	}
}

func TestREPLErrorsCommand(t *testing.T) {
	out := runREPL(t, ":errors\na $ b\n:errors\n:reset\n:errors\n")
	if got := strings.Count(out, "No errors."); got != 2 {
		t.Errorf("want 2 empty listings, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "   1  <repl>:1:3 [E0005]") {
		t.Errorf(":errors did not list the reported error:\n%s", out)
	}
}
