// Package lsp 把词法分析器包装为语言服务器
//
// 服务器只提供词法层面的能力：打开或修改文档时发布词法错误诊断，
// 以及基于 token 的语义高亮。文档同步方式为全量同步。
package lsp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/tangzhangming/pylex/internal/logger"
)

// ServerName 服务器名称
const ServerName = "pylexls"

// ErrExitWithoutShutdown 客户端未发送 shutdown 就发送了 exit
var ErrExitWithoutShutdown = errors.New("lsp: exit received before shutdown")

// Options 服务器参数
type Options struct {
	TabSize int         // 制表符宽度
	Version string      // 服务器版本，出现在 initialize 响应中
	Logger  *zap.Logger // 为 nil 时不输出日志
}

// Server LSP 服务器
type Server struct {
	// 文档管理
	documents *DocumentStore

	// 连接
	conn jsonrpc2.Conn

	logger  *zap.Logger
	version string

	// 服务器状态
	initialized atomic.Bool
	shutdown    atomic.Bool
	exited      atomic.Bool
}

// NewServer 创建 LSP 服务器
func NewServer(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		documents: NewDocumentStore(opts.TabSize),
		logger:    log,
		version:   opts.Version,
	}
}

// Documents 返回文档管理器
func (s *Server) Documents() *DocumentStore {
	return s.documents
}

// Serve 在 rwc 上运行服务器，直到连接关闭、收到 exit 或 ctx 取消
//
// 收到 shutdown 之后的 exit 返回 nil；没有 shutdown 的 exit 返回
// ErrExitWithoutShutdown。
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	s.conn = jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	s.conn.Go(ctx, s.handle)
	s.logger.Info("pylex language server started")

	select {
	case <-ctx.Done():
		s.conn.Close()
		<-s.conn.Done()
		return ctx.Err()
	case <-s.conn.Done():
	}

	if s.exited.Load() {
		s.logger.Info("server exited", zap.Bool("shutdown", s.shutdown.Load()))
		if !s.shutdown.Load() {
			return ErrExitWithoutShutdown
		}
		return nil
	}

	err := s.conn.Err()
	if errors.Is(err, io.EOF) {
		s.logger.Info("client disconnected")
		return nil
	}
	return err
}

// handle 处理收到的消息
//
// jsonrpc2 按顺序逐条调用 handle，文档事件不会乱序。
func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	method := req.Method()
	s.logger.Debug("received", zap.String("method", method))

	switch method {
	case protocol.MethodInitialize:
		return s.handleInitialize(ctx, reply, req)
	case protocol.MethodExit:
		s.handleExit()
		return reply(ctx, nil, nil)
	}

	if !s.initialized.Load() {
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.ServerNotInitialized, "server not initialized"))
	}
	if s.shutdown.Load() {
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, "server is shutting down"))
	}

	switch method {
	case protocol.MethodInitialized:
		s.logger.Info("client initialized")
		return reply(ctx, nil, nil)
	case protocol.MethodShutdown:
		s.shutdown.Store(true)
		s.logger.Info("shutdown requested")
		return reply(ctx, nil, nil)
	case protocol.MethodTextDocumentDidOpen:
		return s.handleDidOpen(ctx, reply, req)
	case protocol.MethodTextDocumentDidChange:
		return s.handleDidChange(ctx, reply, req)
	case protocol.MethodTextDocumentDidClose:
		return s.handleDidClose(ctx, reply, req)
	case protocol.MethodSemanticTokensFull:
		return s.handleSemanticTokensFull(ctx, reply, req)
	}

	s.logger.Debug("unknown method", zap.String("method", method))
	return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
}

// decodeParams 解析请求参数
func decodeParams(req jsonrpc2.Request, v interface{}) error {
	if err := json.Unmarshal(req.Params(), v); err != nil {
		return jsonrpc2.NewError(jsonrpc2.ParseError, fmt.Sprintf("invalid %s params: %v", req.Method(), err))
	}
	return nil
}

// handleInitialize 处理初始化请求
func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := decodeParams(req, &params); err != nil {
		return reply(ctx, nil, err)
	}
	if s.initialized.Load() {
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.InvalidRequest, "server already initialized"))
	}

	if params.ClientInfo != nil {
		s.logger.Info("initialize", zap.String("client", params.ClientInfo.Name), zap.String("clientVersion", params.ClientInfo.Version))
	}

	result := protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			// 文档同步：全量同步
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			// 语义高亮
			SemanticTokensProvider: getSemanticTokensProviderOptions(),
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    ServerName,
			Version: s.version,
		},
	}

	s.initialized.Store(true)
	return reply(ctx, result, nil)
}

// handleExit 处理退出通知
func (s *Server) handleExit() {
	s.exited.Store(true)
	s.logger.Info("exit notification received")
	// 关闭连接，读循环随之结束
	s.conn.Close()
}

// handleDidOpen 处理文档打开
func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		s.logger.Warn("bad didOpen params", zap.Error(err))
		return reply(ctx, nil, err)
	}

	item := params.TextDocument
	doc := s.documents.Open(item.URI, item.Version, item.Text)
	s.logger.Debug("document opened", zap.String("uri", string(item.URI)), zap.Int("tokens", len(doc.Tokens)), zap.Int("open", s.documents.Len()))

	return s.publishAndReply(ctx, reply, doc)
}

// handleDidChange 处理文档变更（全量同步，取最后一次变更的完整内容）
func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		s.logger.Warn("bad didChange params", zap.Error(err))
		return reply(ctx, nil, err)
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	doc := s.documents.Update(params.TextDocument.URI, params.TextDocument.Version, text)

	return s.publishAndReply(ctx, reply, doc)
}

// handleDidClose 处理文档关闭
func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := decodeParams(req, &params); err != nil {
		s.logger.Warn("bad didClose params", zap.Error(err))
		return reply(ctx, nil, err)
	}

	docURI := params.TextDocument.URI
	s.documents.Close(docURI)
	s.logger.Debug("document closed", zap.String("uri", string(docURI)), zap.Int("open", s.documents.Len()))

	// 清除诊断
	if err := s.notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: []protocol.Diagnostic{},
	}); err != nil {
		return err
	}
	return reply(ctx, nil, nil)
}

// handleSemanticTokensFull 处理全量语义tokens请求
func (s *Server) handleSemanticTokensFull(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.SemanticTokensParams
	if err := decodeParams(req, &params); err != nil {
		return reply(ctx, nil, err)
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return reply(ctx, protocol.SemanticTokens{Data: []uint32{}}, nil)
	}

	data := encodeSemanticTokens(collectSemanticTokens(doc))
	return reply(ctx, protocol.SemanticTokens{Data: data}, nil)
}

// publishAndReply 发布文档诊断后回复请求
func (s *Server) publishAndReply(ctx context.Context, reply jsonrpc2.Replier, doc *Document) error {
	diagnostics := getDiagnostics(doc)
	if doc.Err != nil {
		s.logger.Debug("lexical error", zap.String("uri", string(doc.URI)), zap.Stringer("kind", doc.Err.Kind))
	}

	if err := s.notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version),
		Diagnostics: diagnostics,
	}); err != nil {
		return err
	}
	return reply(ctx, nil, nil)
}

// notify 发送通知
func (s *Server) notify(ctx context.Context, method string, params interface{}) error {
	if err := s.conn.Notify(ctx, method, params); err != nil {
		s.logger.Error("failed to send notification", zap.String("method", method), zap.Error(err))
		return fmt.Errorf("notify %s: %w", method, err)
	}
	return nil
}
