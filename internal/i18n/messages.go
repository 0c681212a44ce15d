package i18n

// 消息 ID 定义
const (
	// ========== 词法分析器 ==========
	ErrUnterminatedString  = "lexer.unterminated_string"
	ErrUnterminatedTriple  = "lexer.unterminated_triple_string"
	ErrMalformedNumber     = "lexer.malformed_number"
	ErrTrailingUnderscore  = "lexer.trailing_underscore"
	ErrLeadingZeros        = "lexer.leading_zeros"
	ErrInvalidDigit        = "lexer.invalid_digit"
	ErrMissingDigits       = "lexer.missing_digits"
	ErrInvalidExponent     = "lexer.invalid_exponent"
	ErrInvalidNumberSuffix = "lexer.invalid_number_suffix"
	ErrInconsistentDedent  = "lexer.inconsistent_dedent"
	ErrUnmatchedCloser     = "lexer.unmatched_closer"
	ErrMismatchedCloser    = "lexer.mismatched_closer"
	ErrUnclosedBracket     = "lexer.unclosed_bracket"
	ErrUnexpectedChar      = "lexer.unexpected_char"
	ErrStrayBackslash      = "lexer.stray_backslash"
	ErrTruncatedEscape     = "lexer.truncated_escape"
	ErrEscapeOutOfRange    = "lexer.escape_out_of_range"
	ErrNonASCIIBytes       = "lexer.non_ascii_bytes"

	// ========== 命令行 ==========
	MsgUsage         = "cli.usage"
	MsgUnknownCmd    = "cli.unknown_command"
	MsgNoInput       = "cli.no_input"
	MsgReadFailed    = "cli.read_failed"
	MsgConfigFailed  = "cli.config_failed"
	MsgCheckOK       = "cli.check_ok"
	MsgCheckFailed   = "cli.check_failed"
	MsgNotIdempotent = "cli.not_idempotent"
	MsgErrorCount    = "cli.error_count"
	MsgDidYouMean    = "cli.did_you_mean"
	MsgCommands      = "cli.commands"
	MsgCmdTokens     = "cli.cmd_tokens"
	MsgCmdCheck      = "cli.cmd_check"
	MsgCmdKeywords   = "cli.cmd_keywords"
	MsgCmdRepl       = "cli.cmd_repl"
	MsgCmdInit       = "cli.cmd_init"
	MsgCmdVersion    = "cli.cmd_version"
	MsgCmdHelp       = "cli.cmd_help"
	MsgOptTab        = "cli.opt_tab"
	MsgOptFormat     = "cli.opt_format"
	MsgOptConfig     = "cli.opt_config"
	MsgOptColor      = "cli.opt_color"
	MsgOptSpan       = "cli.opt_span"
	MsgOptTwice      = "cli.opt_twice"
	MsgOptWorkers    = "cli.opt_workers"
	MsgOptLog        = "cli.opt_log"
	MsgOptDir        = "cli.opt_dir"
	MsgOptForce      = "cli.opt_force"
	MsgInitCreated   = "cli.init_created"
	MsgConfigExists  = "cli.config_exists"

	// ========== 修复建议 ==========
	HintUnterminatedString = "hint.unterminated_string"
	HintMalformedNumber    = "hint.malformed_number"
	HintInconsistentDedent = "hint.inconsistent_dedent"
	HintUnmatchedBracket   = "hint.unmatched_bracket"
	HintUnexpectedChar     = "hint.unexpected_char"
	HintMalformedString    = "hint.malformed_string"
)
