package lsp

import (
	"errors"
	"strings"
	"sync"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/atomic"

	"github.com/tangzhangming/pylex/internal/dump"
	"github.com/tangzhangming/pylex/internal/lexer"
	"github.com/tangzhangming/pylex/internal/token"
)

// Document 表示一个打开的文档及其最近一次的词法分析结果
type Document struct {
	URI     protocol.DocumentURI
	Version int32
	Content string
	Hash    string // 内容的 BLAKE2b 摘要

	Tokens []token.Token // 分析成功时的 token 序列
	Err    *lexer.Error  // 分析失败时的词法错误

	lines *lineIndex
}

// DocumentStore 文档管理器
//
// 每次打开或修改都重新分析整个缓冲区；内容摘要与上一次相同时复用结果。
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[protocol.DocumentURI]*Document
	tabSize   int

	analyzed atomic.Int64 // 实际执行词法分析的次数
	reused   atomic.Int64 // 命中摘要缓存的次数
}

// NewDocumentStore 创建文档管理器
func NewDocumentStore(tabSize int) *DocumentStore {
	if tabSize <= 0 {
		tabSize = lexer.DefaultTabSize
	}
	return &DocumentStore{
		documents: make(map[protocol.DocumentURI]*Document),
		tabSize:   tabSize,
	}
}

// Open 打开文档并立即分析
func (s *DocumentStore) Open(docURI protocol.DocumentURI, version int32, content string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.analyze(docURI, version, content, nil)
	s.documents[docURI] = doc
	return doc
}

// Update 用完整内容替换文档；文档未打开时等同于 Open
func (s *DocumentStore) Update(docURI protocol.DocumentURI, version int32, content string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.analyze(docURI, version, content, s.documents[docURI])
	s.documents[docURI] = doc
	return doc
}

// Close 关闭文档
func (s *DocumentStore) Close(docURI protocol.DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, docURI)
}

// Get 获取文档，未打开时返回 nil
func (s *DocumentStore) Get(docURI protocol.DocumentURI) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[docURI]
}

// Len 返回打开的文档数
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// StoreStats 文档管理器统计信息
type StoreStats struct {
	Analyzed int64
	Reused   int64
}

// Stats 返回统计信息
func (s *DocumentStore) Stats() StoreStats {
	return StoreStats{
		Analyzed: s.analyzed.Load(),
		Reused:   s.reused.Load(),
	}
}

// analyze 分析内容并构造新的 Document（调用方持有写锁）
func (s *DocumentStore) analyze(docURI protocol.DocumentURI, version int32, content string, prev *Document) *Document {
	hash := dump.HashSource(content)
	if prev != nil && prev.Hash == hash {
		s.reused.Inc()
		doc := *prev
		doc.Version = version
		return &doc
	}

	s.analyzed.Inc()
	doc := &Document{
		URI:     docURI,
		Version: version,
		Content: content,
		Hash:    hash,
		lines:   newLineIndex(content),
	}

	tokens, err := lexer.New(content, s.tabSize, lexer.WithFilename(displayName(docURI))).Tokenize()
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			doc.Err = lexErr
		}
		return doc
	}
	doc.Tokens = tokens
	return doc
}

// displayName 把 file URI 转换为文件路径，其他 URI 原样返回
func displayName(docURI protocol.DocumentURI) string {
	if strings.HasPrefix(string(docURI), uri.FileScheme+"://") {
		return uri.URI(docURI).Filename()
	}
	return string(docURI)
}
