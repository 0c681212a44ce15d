// Package i18n 提供诊断消息和命令行文本的中英文翻译
package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Language 语言类型
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// 全局语言设置
var (
	currentLang = LangEnglish
	mu          sync.RWMutex
)

// SetLanguage 设置当前语言
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	currentLang = lang
}

// ParseLanguage 把配置或命令行中的语言名解析为 Language
//
// 无法识别的名字一律回退到英文。
func ParseLanguage(lang string) Language {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "zh", "zh-cn", "zh_cn", "zh-tw", "zh-hk", "chinese":
		return LangChinese
	default:
		return LangEnglish
	}
}

// SetLanguageFromString 从字符串设置语言
func SetLanguageFromString(lang string) {
	SetLanguage(ParseLanguage(lang))
}

// DetectLanguage 根据 LC_ALL / LANG 环境变量推断语言
func DetectLanguage() Language {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			if strings.HasPrefix(strings.ToLower(v), "zh") {
				return LangChinese
			}
			return LangEnglish
		}
	}
	return LangEnglish
}

// GetLanguage 获取当前语言
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// T 翻译消息（支持格式化参数）
func T(msgID string, args ...interface{}) string {
	return TIn(GetLanguage(), msgID, args...)
}

// TIn 使用指定语言翻译消息，不读取全局设置
func TIn(lang Language, msgID string, args ...interface{}) string {
	messages := messagesEN
	if lang == LangChinese {
		messages = messagesZH
	}

	msg, ok := messages[msgID]
	if !ok {
		// 回退到英文
		msg, ok = messagesEN[msgID]
	}
	if !ok {
		// 找不到翻译则返回原始 ID
		return msgID
	}

	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
