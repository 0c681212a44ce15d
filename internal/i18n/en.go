package i18n

var messagesEN = map[string]string{
	// ========== Lexer ==========
	ErrUnterminatedString:  "unterminated string literal",
	ErrUnterminatedTriple:  "unterminated triple-quoted string literal",
	ErrMalformedNumber:     "invalid numeric literal: %s",
	ErrTrailingUnderscore:  "invalid numeric literal %s: misplaced '_' separator",
	ErrLeadingZeros:        "leading zeros in decimal integer literals are not permitted: %s",
	ErrInvalidDigit:        "invalid digit '%c' in %s literal",
	ErrMissingDigits:       "invalid %s literal: missing digits",
	ErrInvalidExponent:     "invalid float literal %s: expected exponent digits",
	ErrInvalidNumberSuffix: "invalid numeric literal: unexpected '%c' after number",
	ErrInconsistentDedent:  "unindent does not match any outer indentation level (width %d)",
	ErrUnmatchedCloser:     "unmatched '%c'",
	ErrMismatchedCloser:    "closing parenthesis '%c' does not match opening parenthesis '%c'",
	ErrUnclosedBracket:     "'%c' was never closed",
	ErrUnexpectedChar:      "invalid character '%c' (U+%04X)",
	ErrStrayBackslash:      "unexpected character after line continuation character",
	ErrTruncatedEscape:     "truncated \\%c escape",
	ErrEscapeOutOfRange:    "escape sequence \\%s is out of range",
	ErrNonASCIIBytes:       "bytes can only contain ASCII literal characters",

	// ========== CLI ==========
	MsgUsage:         "usage: pylex <command> [options] file...",
	MsgUnknownCmd:    "unknown command: %s",
	MsgNoInput:       "no input files",
	MsgReadFailed:    "cannot read %s: %v",
	MsgConfigFailed:  "cannot load config: %v",
	MsgCheckOK:       "%s: ok (%d tokens)",
	MsgCheckFailed:   "%d of %d file(s) failed",
	MsgNotIdempotent: "%s: tokenizing twice produced different streams",
	MsgErrorCount:    "found %d error(s)",
	MsgDidYouMean:    "did you mean %q?",
	MsgCommands:      "commands:",
	MsgCmdTokens:     "print the token stream of each file",
	MsgCmdCheck:      "check files for lexical errors",
	MsgCmdKeywords:   "list the reserved keywords",
	MsgCmdRepl:       "start an interactive tokenizer",
	MsgCmdInit:       "write a default pylex.toml",
	MsgCmdVersion:    "print version information",
	MsgCmdHelp:       "show this help",
	MsgOptTab:        "tab width used for indentation (default from config)",
	MsgOptFormat:     "output format: text or json",
	MsgOptConfig:     "path to pylex.toml",
	MsgOptColor:      "color mode: auto, always or never",
	MsgOptSpan:       "also print character spans",
	MsgOptTwice:      "tokenize each file twice and compare fingerprints",
	MsgOptWorkers:    "number of files checked in parallel (0 = CPU count)",
	MsgOptLog:        "write server log to this file",
	MsgOptDir:        "directory to create the config file in",
	MsgOptForce:      "overwrite an existing config file",
	MsgInitCreated:   "created %s",
	MsgConfigExists:  "%s already exists (use -force to overwrite)",

	// ========== Hints ==========
	HintUnterminatedString: "add the closing quote, or use a triple-quoted string for multi-line text",
	HintMalformedNumber:    "check the digits, the base prefix and the '_' separators",
	HintInconsistentDedent: "dedent to the width of an enclosing block",
	HintUnmatchedBracket:   "check that every '(', '[' and '{' has a matching closer",
	HintUnexpectedChar:     "remove the character or put it inside a string",
	HintMalformedString:    "check the escape sequences of the string",
}
