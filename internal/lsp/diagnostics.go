package lsp

import (
	"go.lsp.dev/protocol"
)

// diagnosticSource 诊断来源名称
const diagnosticSource = "pylex"

// getDiagnostics 获取文档的诊断信息
//
// 词法错误是致命的，每个文档最多一条诊断。
func getDiagnostics(doc *Document) []protocol.Diagnostic {
	if doc.Err == nil {
		return []protocol.Diagnostic{}
	}

	err := doc.Err
	start := doc.lines.Position(err.Pos)

	// 标出出错的字符；位于行尾或文件末尾时退化为零宽
	end := start
	if start.Character < doc.lines.LineLength(int(start.Line)) {
		end.Character = doc.lines.character(int(start.Line), err.Pos.Column)
	}

	return []protocol.Diagnostic{{
		Range:    protocol.Range{Start: start, End: end},
		Severity: protocol.DiagnosticSeverityError,
		Code:     err.Kind.Code(),
		Source:   diagnosticSource,
		Message:  err.Message,
	}}
}
