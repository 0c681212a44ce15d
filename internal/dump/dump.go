// Package dump 输出 token 流：文本表格、JSON 以及内容指纹
package dump

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
	"golang.org/x/crypto/blake2b"

	"github.com/tangzhangming/pylex/internal/token"
)

// ============================================================================
// 文本输出
// ============================================================================

// TextOptions 文本输出选项
type TextOptions struct {
	ShowSpan  bool // 输出字符偏移区间
	ShowValue bool // 输出字面量解析后的值
}

// Text 每行输出一个 token：line:col  TYPE  literal
func Text(w io.Writer, tokens []token.Token, opts TextOptions) error {
	for _, tok := range tokens {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%-8s %-10s", fmt.Sprintf("%d:%d", tok.Pos.Line, tok.Pos.Column), tok.Type)
		if opts.ShowSpan {
			fmt.Fprintf(&sb, " %-12s", tok.Span)
		}
		if tok.Literal != "" {
			sb.WriteString(" ")
			sb.WriteString(strconv.Quote(tok.Literal))
		}
		if opts.ShowValue && tok.Value != nil {
			sb.WriteString("  => ")
			sb.WriteString(formatValue(tok))
		}
		if flags := tok.Flags.String(); flags != "" {
			sb.WriteString("  [")
			sb.WriteString(flags)
			sb.WriteString("]")
		}
		sb.WriteString("\n")

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// formatValue 返回字面量值的可读形式
func formatValue(tok token.Token) string {
	switch v := tok.Value.(type) {
	case *big.Int:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	case []byte:
		return "b" + strconv.Quote(string(v))
	default:
		return fmt.Sprint(v)
	}
}

// ============================================================================
// JSON 输出
// ============================================================================

// Record 一个 token 的 JSON 表示
type Record struct {
	Type    string      `json:"type"`
	Literal string      `json:"literal"`
	Value   interface{} `json:"value,omitempty"`
	Start   int         `json:"start"`
	End     int         `json:"end"`
	Line    int         `json:"line"`
	Column  int         `json:"column"`
	Flags   string      `json:"flags,omitempty"`
}

// NewRecord 把 token 转换为 JSON 记录
//
// 整数值按十进制字符串输出，避免超出 JSON 数字精度；
// 非有限浮点数输出为 "inf"/"-inf"/"nan"；bytes 按 Latin-1 映射为字符串。
func NewRecord(tok token.Token) Record {
	rec := Record{
		Type:    tok.Type.String(),
		Literal: tok.Literal,
		Start:   tok.Span.Start,
		End:     tok.Span.End,
		Line:    tok.Pos.Line,
		Column:  tok.Pos.Column,
		Flags:   tok.Flags.String(),
	}

	switch v := tok.Value.(type) {
	case *big.Int:
		rec.Value = v.String()
	case float64:
		switch {
		case math.IsInf(v, 1):
			rec.Value = "inf"
		case math.IsInf(v, -1):
			rec.Value = "-inf"
		case math.IsNaN(v):
			rec.Value = "nan"
		default:
			rec.Value = v
		}
	case []byte:
		runes := make([]rune, len(v))
		for i, b := range v {
			runes[i] = rune(b)
		}
		rec.Value = string(runes)
	case string:
		rec.Value = v
	}

	return rec
}

// JSON 以缩进的 JSON 数组输出 token 流
func JSON(w io.Writer, tokens []token.Token) error {
	records := make([]Record, len(tokens))
	for i, tok := range tokens {
		records[i] = NewRecord(tok)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}
	return nil
}

// ============================================================================
// 指纹
// ============================================================================

// Fingerprint 计算 token 流的 BLAKE2b-256 摘要
//
// 摘要覆盖类型、区间和原始文本。两次分析同一源码得到的指纹必须相同。
func Fingerprint(tokens []token.Token) string {
	h, _ := blake2b.New256(nil)

	var buf [8]byte
	writeInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		h.Write(buf[:])
	}

	for _, tok := range tokens {
		writeInt(int(tok.Type))
		writeInt(tok.Span.Start)
		writeInt(tok.Span.End)
		writeInt(len(tok.Literal))
		io.WriteString(h, tok.Literal)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// HashSource 计算源码文本的 BLAKE2b-256 摘要
func HashSource(source string) string {
	sum := blake2b.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
