package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tangzhangming/pylex/internal/config"
	"github.com/tangzhangming/pylex/internal/i18n"
)

// cmdInit 在目录中生成默认配置文件
func (c *cli) cmdInit(args []string) int {
	fs := c.newFlagSet("init")
	dir := fs.String("dir", ".", i18n.T(i18n.MsgOptDir))
	tabSize := fs.Int("tab", 0, i18n.T(i18n.MsgOptTab))
	force := fs.Bool("force", false, i18n.T(i18n.MsgOptForce))
	fs.Usage = func() {
		fmt.Fprintln(c.stderr, "usage: pylex init [options]")
		fmt.Fprintln(c.stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	// 检查是否已存在配置文件
	configPath := filepath.Join(*dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !*force {
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgConfigExists, configPath))
		return 1
	}

	// 生成默认配置，应用命令行参数
	cfg := config.Default()
	if *tabSize != 0 {
		cfg.Lexer.TabSize = *tabSize
	}
	if c.lang != "" {
		cfg.Output.Language = string(i18n.ParseLanguage(c.lang))
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(c.stderr, i18n.T(i18n.MsgConfigFailed, err))
		return 2
	}

	if err := cfg.Save(configPath); err != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(c.stdout, i18n.T(i18n.MsgInitCreated, configPath))
	return 0
}
