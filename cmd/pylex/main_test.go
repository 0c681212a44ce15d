package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"

	"github.com/tangzhangming/pylex/internal/config"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func runCLI(stdin string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--lang", "en"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestKeywords(t *testing.T) {
	code, out, _ := runCLI("", "keywords")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 35 {
		t.Errorf("expected 35 keywords, got %d", len(lines))
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCLI("", "chek")
	if code != 2 {
		t.Errorf("exit code mismatch: got %d, want 2", code)
	}
	if !strings.Contains(errOut, "unknown command: chek") {
		t.Errorf("missing unknown command message:\n%s", errOut)
	}
	if !strings.Contains(errOut, `did you mean "check"?`) {
		t.Errorf("missing suggestion:\n%s", errOut)
	}
}

func TestTokensText(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.py", "if x:\n\ty = 0o17\n")

	code, out, errOut := runCLI("", "tokens", "-tab", "4", "-color", "never", path)
	if code != 0 {
		t.Fatalf("exit code %d:\n%s", code, errOut)
	}
	for _, want := range []string{"if ", "INDENT", "DEDENT", "=> 15"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTokensJSONFromStdin(t *testing.T) {
	code, out, errOut := runCLI("print('hi')\n", "tokens", "-format", "json", "-color", "never", "-")
	if code != 0 {
		t.Fatalf("exit code %d:\n%s", code, errOut)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(records) != 6 {
		t.Fatalf("expected 6 tokens, got %d", len(records))
	}
	if records[2]["value"] != "hi" {
		t.Errorf("string value mismatch: %v", records[2]["value"])
	}
}

func TestTokensError(t *testing.T) {
	code, _, errOut := runCLI("x = 'abc\n", "tokens", "-color", "never", "-")
	if code != 1 {
		t.Errorf("exit code mismatch: got %d, want 1", code)
	}
	if !strings.Contains(errOut, "error[E0001]") || !strings.Contains(errOut, "<stdin>:1:5") {
		t.Errorf("diagnostic mismatch:\n%s", errOut)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.py", "def f(a, b):\n    return a + b\n")
	bad := writeSource(t, dir, "bad.py", "def f(:\n    pass\n")
	missing := filepath.Join(dir, "missing.py")

	code, out, errOut := runCLI("", "check", "-color", "never", "-workers", "2", good, bad, missing)
	if code != 1 {
		t.Errorf("exit code mismatch: got %d, want 1", code)
	}
	if !strings.Contains(out, good+": ok") {
		t.Errorf("missing ok line for good file:\n%s", out)
	}
	if strings.Contains(out, bad) {
		t.Errorf("bad file should not be reported ok:\n%s", out)
	}
	if !strings.Contains(errOut, "error[E0004]") {
		t.Errorf("missing bracket diagnostic:\n%s", errOut)
	}
	if !strings.Contains(errOut, "cannot read "+missing) {
		t.Errorf("missing read error:\n%s", errOut)
	}
	if !strings.Contains(errOut, "found 1 error(s)") {
		t.Errorf("missing diagnostic count:\n%s", errOut)
	}
	if !strings.Contains(errOut, "2 of 3 file(s) failed") {
		t.Errorf("missing summary:\n%s", errOut)
	}
}

func TestCheckTwice(t *testing.T) {
	path := writeSource(t, t.TempDir(), "ok.py", "class A:\n    x = b'\\x00' + rb'\\d'\n")

	code, out, errOut := runCLI("", "check", "-twice", "-color", "never", path)
	if code != 0 {
		t.Fatalf("exit code %d:\n%s", code, errOut)
	}
	if !strings.Contains(out, ": ok") {
		t.Errorf("missing ok line:\n%s", out)
	}
}

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "pylex.toml", "[lexer]\ntab_size = 0\n")
	path := writeSource(t, dir, "a.py", "pass\n")

	code, _, errOut := runCLI("", "check", path)
	if code != 2 {
		t.Errorf("invalid config should fail with exit code 2, got %d", code)
	}
	if !strings.Contains(errOut, "cannot load config") {
		t.Errorf("missing config error:\n%s", errOut)
	}
}

func TestPreprocessArgs(t *testing.T) {
	c := &cli{}
	got := c.preprocessArgs([]string{"--lang", "zh", "check", "-lang=en", "a.py"})
	if strings.Join(got, " ") != "check a.py" {
		t.Errorf("args mismatch: %v", got)
	}
	if c.lang != "en" {
		t.Errorf("last --lang should win, got %q", c.lang)
	}
}

func TestRepl(t *testing.T) {
	code, out, errOut := runCLI("while True:\n    break\n\n:quit\n", "repl", "-tab", "4", "-color", "never")
	if code != 0 {
		t.Fatalf("exit code %d:\n%s", code, errOut)
	}
	for _, want := range []string{"while", "INDENT", "break", "Bye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)

	code, out, errOut := runCLI("", "init", "-dir", dir, "-tab", "4")
	if code != 0 {
		t.Fatalf("exit code %d:\n%s", code, errOut)
	}
	if !strings.Contains(out, "created "+path) {
		t.Errorf("missing created message:\n%s", out)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Lexer.TabSize != 4 || cfg.Output.Language != "en" {
		t.Errorf("config mismatch: %+v", cfg)
	}

	// 已存在时拒绝覆盖
	code, _, errOut = runCLI("", "init", "-dir", dir)
	if code != 1 || !strings.Contains(errOut, "already exists") {
		t.Errorf("existing config should be kept: code %d\n%s", code, errOut)
	}

	var stdout, stderr bytes.Buffer
	code = run([]string{"--lang", "zh", "init", "-dir", dir, "-force"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("-force exit code %d:\n%s", code, stderr.String())
	}
	cfg, err = config.Load(path)
	if err != nil {
		t.Fatalf("load after -force: %v", err)
	}
	if cfg.Lexer.TabSize != 8 || cfg.Output.Language != "zh" {
		t.Errorf("config after -force mismatch: %+v", cfg)
	}
}

func TestInitRejectsBadTab(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := runCLI("", "init", "-dir", dir, "-tab", "-2")
	if code != 2 {
		t.Errorf("exit code mismatch: got %d, want 2", code)
	}
	if _, err := os.Stat(filepath.Join(dir, config.ConfigFileName)); err == nil {
		t.Errorf("invalid config should not be written")
	}
}
