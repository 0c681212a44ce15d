package i18n

var messagesZH = map[string]string{
	// ========== 词法分析器 ==========
	ErrUnterminatedString:  "未闭合的字符串",
	ErrUnterminatedTriple:  "未闭合的三引号字符串",
	ErrMalformedNumber:     "无效的数字字面量: %s",
	ErrTrailingUnderscore:  "无效的数字字面量 %s: '_' 分隔符位置错误",
	ErrLeadingZeros:        "十进制整数不允许前导零: %s",
	ErrInvalidDigit:        "%[2]s 字面量中的无效数字 '%[1]c'",
	ErrMissingDigits:       "无效的 %s 字面量: 缺少数字",
	ErrInvalidExponent:     "无效的浮点数 %s: 需要指数部分",
	ErrInvalidNumberSuffix: "无效的数字字面量: 数字后出现 '%c'",
	ErrInconsistentDedent:  "取消缩进与任何外层缩进级别都不匹配（宽度 %d）",
	ErrUnmatchedCloser:     "多余的 '%c'",
	ErrMismatchedCloser:    "右括号 '%c' 与左括号 '%c' 不匹配",
	ErrUnclosedBracket:     "'%c' 没有闭合",
	ErrUnexpectedChar:      "非法字符 '%c' (U+%04X)",
	ErrStrayBackslash:      "续行符后出现意外字符",
	ErrTruncatedEscape:     "不完整的 \\%c 转义",
	ErrEscapeOutOfRange:    "转义序列 \\%s 超出范围",
	ErrNonASCIIBytes:       "bytes 字面量只能包含 ASCII 字符",

	// ========== 命令行 ==========
	MsgUsage:         "用法: pylex <命令> [选项] 文件...",
	MsgUnknownCmd:    "未知命令: %s",
	MsgNoInput:       "没有输入文件",
	MsgReadFailed:    "无法读取 %s: %v",
	MsgConfigFailed:  "无法加载配置: %v",
	MsgCheckOK:       "%s: 通过（%d 个 token）",
	MsgCheckFailed:   "%d / %d 个文件失败",
	MsgNotIdempotent: "%s: 两次分析结果不一致",
	MsgErrorCount:    "发现 %d 个错误",
	MsgDidYouMean:    "你是不是想输入 %q？",
	MsgCommands:      "命令:",
	MsgCmdTokens:     "输出每个文件的 token 序列",
	MsgCmdCheck:      "检查文件中的词法错误",
	MsgCmdKeywords:   "列出保留关键字",
	MsgCmdRepl:       "启动交互式词法分析",
	MsgCmdInit:       "生成默认的 pylex.toml",
	MsgCmdVersion:    "显示版本信息",
	MsgCmdHelp:       "显示帮助",
	MsgOptTab:        "缩进计算使用的制表符宽度（默认取配置）",
	MsgOptFormat:     "输出格式: text 或 json",
	MsgOptConfig:     "pylex.toml 路径",
	MsgOptColor:      "颜色模式: auto、always 或 never",
	MsgOptSpan:       "同时输出字符区间",
	MsgOptTwice:      "每个文件分析两次并比较指纹",
	MsgOptWorkers:    "并行检查的文件数（0 表示 CPU 核数）",
	MsgOptLog:        "语言服务器日志文件",
	MsgOptDir:        "配置文件所在目录",
	MsgOptForce:      "覆盖已有的配置文件",
	MsgInitCreated:   "已创建 %s",
	MsgConfigExists:  "%s 已存在（使用 -force 覆盖）",

	// ========== 修复建议 ==========
	HintUnterminatedString: "补上结束引号，多行文本请使用三引号字符串",
	HintMalformedNumber:    "检查数字、进制前缀和 '_' 分隔符",
	HintInconsistentDedent: "取消缩进到某个外层代码块的宽度",
	HintUnmatchedBracket:   "检查每个 '('、'[' 和 '{' 是否都有对应的右括号",
	HintUnexpectedChar:     "删除该字符，或把它放进字符串中",
	HintMalformedString:    "检查字符串中的转义序列",
}
