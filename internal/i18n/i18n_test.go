package i18n

import (
	"strings"
	"testing"
)

func TestTablesComplete(t *testing.T) {
	for id := range messagesEN {
		if _, ok := messagesZH[id]; !ok {
			t.Errorf("%s: missing Chinese translation", id)
		}
	}
	for id := range messagesZH {
		if _, ok := messagesEN[id]; !ok {
			t.Errorf("%s: missing English message", id)
		}
	}
}

func TestFormatVerbsMatch(t *testing.T) {
	// 两种语言的格式化动词必须一致，否则参数会错位
	for id, en := range messagesEN {
		zh := messagesZH[id]
		if strings.Count(en, "%") != strings.Count(zh, "%") {
			t.Errorf("%s: verb count differs:\n en %q\n zh %q", id, en, zh)
		}
	}
}

func TestT(t *testing.T) {
	defer SetLanguage(GetLanguage())

	SetLanguage(LangEnglish)
	if got := T(ErrUnmatchedCloser, ')'); got != "unmatched ')'" {
		t.Errorf("English message mismatch: %q", got)
	}

	SetLanguage(LangChinese)
	if got := T(MsgErrorCount, 2); got != "发现 2 个错误" {
		t.Errorf("Chinese message mismatch: %q", got)
	}

	if got := T("no.such.id"); got != "no.such.id" {
		t.Errorf("unknown ID should be returned as-is, got %q", got)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
	}{
		{"zh", LangChinese},
		{"ZH-CN", LangChinese},
		{" chinese ", LangChinese},
		{"en", LangEnglish},
		{"fr", LangEnglish},
		{"", LangEnglish},
	}
	for _, tt := range tests {
		if got := ParseLanguage(tt.input); got != tt.expected {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "zh_CN.UTF-8")
	if got := DetectLanguage(); got != LangChinese {
		t.Errorf("expected Chinese from LANG, got %q", got)
	}

	t.Setenv("LC_ALL", "C")
	if got := DetectLanguage(); got != LangEnglish {
		t.Errorf("LC_ALL should take precedence, got %q", got)
	}
}
