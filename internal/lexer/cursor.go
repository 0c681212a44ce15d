package lexer

import (
	"sort"

	"github.com/tangzhangming/pylex/internal/token"
)

// eof 是越过缓冲区末尾时 peek 返回的哨兵值
const eof rune = -1

// ============================================================================
// cursor - 字符游标
// ============================================================================
//
// cursor 持有解码后的完整字符序列（构造后只读）和当前读取下标。
// 下标只能向前移动，没有任何回退操作。
//
// 行号信息按需记录：advance 每越过一个换行，就把新行的起始偏移
// 追加到 lineStarts，positionAt 通过二分查找把偏移换算成行列号。
//
// ============================================================================

type cursor struct {
	src        []rune // 源代码字符
	pos        int    // 当前读取下标（字符偏移）
	filename   string // 文件名（仅用于 Position）
	lineStarts []int  // 每一行的起始偏移，lineStarts[0] == 0
}

func newCursor(src []rune, filename string) *cursor {
	return &cursor{
		src:        src,
		filename:   filename,
		lineStarts: []int{0},
	}
}

// peek 返回 pos+offset 处的字符，越界时返回 eof，不移动游标
func (c *cursor) peek(offset int) rune {
	i := c.pos + offset
	if i < 0 || i >= len(c.src) {
		return eof
	}
	return c.src[i]
}

// advance 前进 n 个字符并返回被消费的切片
//
// 同时维护换行表：\r\n 和单独的 \r 都只算一次换行。
func (c *cursor) advance(n int) []rune {
	end := c.pos + n
	if end > len(c.src) {
		end = len(c.src)
	}
	consumed := c.src[c.pos:end]

	for i := c.pos; i < end; i++ {
		switch c.src[i] {
		case '\n':
			c.lineStarts = append(c.lineStarts, i+1)
		case '\r':
			if i+1 >= len(c.src) || c.src[i+1] != '\n' {
				c.lineStarts = append(c.lineStarts, i+1)
			}
		}
	}

	c.pos = end
	return consumed
}

// offset 返回当前读取下标
func (c *cursor) offset() int {
	return c.pos
}

// atEnd 检查是否到达缓冲区末尾
func (c *cursor) atEnd() bool {
	return c.pos >= len(c.src)
}

// text 返回 [start, end) 区间的源码文本
func (c *cursor) text(start, end int) string {
	return string(c.src[start:end])
}

// positionAt 把已经扫描过的偏移换算为行列号（均从 1 开始）
func (c *cursor) positionAt(offset int) token.Position {
	line := sort.Search(len(c.lineStarts), func(i int) bool {
		return c.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return token.Position{
		Filename: c.filename,
		Line:     line + 1,
		Column:   offset - c.lineStarts[line] + 1,
		Offset:   offset,
	}
}

// lineBreakLen 返回 offset 处换行符的长度（\r\n 为 2，\n 或 \r 为 1，否则为 0）
func (c *cursor) lineBreakLen(offset int) int {
	switch c.peek(offset) {
	case '\n':
		return 1
	case '\r':
		if c.peek(offset+1) == '\n' {
			return 2
		}
		return 1
	}
	return 0
}
