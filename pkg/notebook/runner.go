package notebook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// RunResult 保存一次子进程执行的输出
type RunResult struct {
	Combined string
	ExitCode int
}

// Runner 执行外部命令，便于在测试中替换
type Runner interface {
	Run(ctx context.Context, program string, args ...string) (*RunResult, error)
}

// ExecRunner 通过 os/exec 执行命令，合并捕获 stdout 与 stderr
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, program string, args ...string) (*RunResult, error) {
	cmd := exec.CommandContext(ctx, program, args...)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	result := &RunResult{Combined: combined.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
	}
	if err != nil {
		return result, fmt.Errorf("command execution failed: %w", err)
	}
	return result, nil
}
