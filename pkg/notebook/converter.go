package notebook

import (
	"context"
	"strings"
)

const (
	DefaultProgram = "jupytext"
	DefaultFrom    = "myst"
	DefaultTo      = "ipynb"
)

// Converter 把给定路径的文件就地转换为 notebook
type Converter interface {
	Convert(ctx context.Context, path string) error
}

// ConverterConfig 描述外部转换命令
type ConverterConfig struct {
	Program string `yaml:"program"`
	From    string `yaml:"from"`
	To      string `yaml:"to"`
}

// WithDefaults 为空字段填充 jupytext 的默认参数
func (c ConverterConfig) WithDefaults() ConverterConfig {
	if strings.TrimSpace(c.Program) == "" {
		c.Program = DefaultProgram
	}
	if strings.TrimSpace(c.From) == "" {
		c.From = DefaultFrom
	}
	if strings.TrimSpace(c.To) == "" {
		c.To = DefaultTo
	}
	return c
}

// JupytextConverter 调用 `<program> --from <from> --to <to> <path>`
type JupytextConverter struct {
	cfg    ConverterConfig
	runner Runner
}

// NewJupytextConverter 创建转换器，runner 为 nil 时使用 ExecRunner
func NewJupytextConverter(cfg ConverterConfig, runner Runner) *JupytextConverter {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &JupytextConverter{cfg: cfg.WithDefaults(), runner: runner}
}

// Args 返回传给转换程序的参数
func (j *JupytextConverter) Args(path string) []string {
	return []string{"--from", j.cfg.From, "--to", j.cfg.To, path}
}

func (j *JupytextConverter) Convert(ctx context.Context, path string) error {
	result, err := j.runner.Run(ctx, j.cfg.Program, j.Args(path)...)
	if err == nil && result != nil && result.ExitCode == 0 {
		return nil
	}
	convErr := &ConversionError{Path: path, ExitCode: -1, Err: err}
	if result != nil {
		convErr.ExitCode = result.ExitCode
		convErr.Output = strings.TrimSpace(result.Combined)
	}
	return convErr
}
