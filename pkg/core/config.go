package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docsync/pkg/notebook"
)

const (
	DefaultSourceDir = "source"
	DefaultTargetDir = "_source"
	DefaultDebounce  = 300 * time.Millisecond
)

// SyncConfig 表示一次同步任务的配置
type SyncConfig struct {
	SourceRoot string
	TargetRoot string
	Converter  notebook.ConverterConfig
	Excludes   []string
	DryRun     bool
	LogFile    string
	LogLevel   string
	LogFormat  string
	NoProgress bool
	Debounce   time.Duration

	// NotebookConverter 不为空时替代按 Converter 构建的 jupytext 转换器
	NotebookConverter notebook.Converter
	// Stdout 为空时使用 os.Stdout
	Stdout io.Writer
}

// DefaultConfig 返回与 docs 构建脚本一致的默认配置
func DefaultConfig() *SyncConfig {
	return &SyncConfig{
		SourceRoot: DefaultSourceDir,
		TargetRoot: DefaultTargetDir,
		Converter:  notebook.ConverterConfig{}.WithDefaults(),
		LogLevel:   "info",
		LogFormat:  "text",
		Debounce:   DefaultDebounce,
	}
}

// Validate 填充默认值、规范化路径并检查源目录
func (c *SyncConfig) Validate() error {
	if strings.TrimSpace(c.SourceRoot) == "" {
		c.SourceRoot = DefaultSourceDir
	}
	if strings.TrimSpace(c.TargetRoot) == "" {
		c.TargetRoot = DefaultTargetDir
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	c.Converter = c.Converter.WithDefaults()

	src, err := filepath.Abs(c.SourceRoot)
	if err != nil {
		return err
	}
	dst, err := filepath.Abs(c.TargetRoot)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("源目录不可用: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("源路径不是目录: %s", src)
	}
	// 源目录为符号链接时遍历其指向的目录
	if src, err = filepath.EvalSymlinks(src); err != nil {
		return fmt.Errorf("源目录不可用: %w", err)
	}
	c.SourceRoot, c.TargetRoot = src, dst

	resolvedDst := resolveExisting(dst)
	if src == resolvedDst {
		return fmt.Errorf("源目录与目标目录相同: %s", src)
	}
	if rel, err := filepath.Rel(src, resolvedDst); err == nil && !isOutside(rel) {
		return fmt.Errorf("目标目录不能位于源目录内: %s", dst)
	}
	return nil
}

// resolveExisting 解析路径中已存在部分的符号链接，其余部分原样拼接
func resolveExisting(path string) string {
	dir, rest := path, ""
	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return path
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}

func isOutside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
