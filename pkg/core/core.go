package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"docsync/pkg/endpoint"
	"docsync/pkg/logging"
	"docsync/pkg/notebook"
	"docsync/pkg/transfer"
	"docsync/pkg/ui"
)

// Synchronizer 把源目录镜像到目标目录，并转换带 jupytext 元数据的 Markdown
type Synchronizer struct {
	cfg       *SyncConfig
	srcFS     endpoint.FileSystem
	dstFS     endpoint.FileSystem
	matcher   *endpoint.Matcher
	converter notebook.Converter
	logger    *logging.Logger
	progress  ui.Progress
}

// NewSynchronizer 校验配置并准备日志、进度与转换器
func NewSynchronizer(cfg *SyncConfig) (*Synchronizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	var progress ui.Progress
	stdWriter := stdout
	if cfg.NoProgress {
		progress = ui.NoopProgress{}
	} else {
		bar := ui.NewBarProgress(stdout)
		progress = bar
		stdWriter = bar.WrapWriter(stdout)
	}
	writers := []io.Writer{stdWriter}
	if cfg.LogFile != "" {
		file, err := os.Create(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}, writers...)
	if err != nil {
		for _, w := range writers[1:] {
			w.(io.Closer).Close()
		}
		return nil, err
	}
	converter := cfg.NotebookConverter
	if converter == nil {
		converter = notebook.NewJupytextConverter(cfg.Converter, nil)
	}
	return &Synchronizer{
		cfg:       cfg,
		srcFS:     endpoint.NewLocalFS(cfg.SourceRoot),
		dstFS:     endpoint.NewLocalFS(cfg.TargetRoot),
		matcher:   endpoint.NewMatcher(cfg.Excludes),
		converter: converter,
		logger:    logger,
		progress:  progress,
	}, nil
}

// Close 释放日志文件
func (s *Synchronizer) Close() error {
	return s.logger.Close()
}

// Sync 执行一次完整的遍历。转换失败时立即返回 *notebook.ConversionError。
func (s *Synchronizer) Sync(ctx context.Context) (transfer.Result, error) {
	s.logger.Debug("开始扫描源目录", "source", s.cfg.SourceRoot, "exclude", s.matcher.Patterns())
	entries, err := s.srcFS.List(s.matcher)
	if err != nil {
		return transfer.Result{}, fmt.Errorf("扫描源目录失败: %w", err)
	}
	plan, err := BuildPlan(entries, s.srcFS, s.dstFS)
	if err != nil {
		return transfer.Result{}, err
	}

	if s.cfg.DryRun {
		s.logger.Info("Dry-run 模式，只展示计划", "files", plan.TotalFiles, "bytes", plan.TotalBytes)
		for _, item := range plan.Items {
			if item.Action == transfer.ActionSkip {
				continue
			}
			s.logger.Info("计划条目", "action", item.Action, "path", item.RelPath, "size", item.Meta.Size, "reason", item.Reason)
		}
		return transfer.Result{}, nil
	}

	executor := transfer.Executor{
		SourceFS:  s.srcFS,
		DestFS:    s.dstFS,
		Converter: s.converter,
		Logger:    s.logger.Logger,
		Progress:  s.progress,
	}
	result, err := executor.Execute(ctx, plan)
	if err != nil {
		return result, err
	}
	s.logger.Info("同步完成",
		"source", s.cfg.SourceRoot,
		"target", s.cfg.TargetRoot,
		"copied", len(result.Copied),
		"skipped", len(result.Skipped),
		"converted", len(result.Converted))
	return result, nil
}

// Run 执行一次同步
func Run(ctx context.Context, cfg *SyncConfig) (transfer.Result, error) {
	s, err := NewSynchronizer(cfg)
	if err != nil {
		return transfer.Result{}, err
	}
	defer s.Close()
	return s.Sync(ctx)
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
