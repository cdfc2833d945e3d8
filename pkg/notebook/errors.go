package notebook

import (
	"errors"
	"fmt"
)

// ConversionError 表示外部转换工具执行失败（非零退出或无法启动）
type ConversionError struct {
	Path     string
	ExitCode int
	Output   string
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("转换 notebook 失败: %s (exit code %d)", e.Path, e.ExitCode)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// AsConversionError 从错误链中取出 ConversionError
func AsConversionError(err error) (*ConversionError, bool) {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return convErr, true
	}
	return nil, false
}
