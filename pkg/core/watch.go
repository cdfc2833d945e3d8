package core

import (
	"context"

	"docsync/pkg/notebook"
	"docsync/pkg/watch"
)

// Watch 先同步一次，随后监听源目录变化并重新同步，直到 ctx 结束。
// 转换失败只记录日志，其余错误终止监听。
func Watch(ctx context.Context, cfg *SyncConfig) error {
	s, err := NewSynchronizer(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.syncTolerant(ctx); err != nil {
		return err
	}

	w, err := watch.New(cfg.SourceRoot, watch.Options{
		Debounce: cfg.Debounce,
		Matcher:  s.matcher,
		Logger:   s.logger.Logger,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	s.logger.Info("开始监听源目录", "source", cfg.SourceRoot, "debounce", cfg.Debounce)
	return w.Run(ctx, func(ctx context.Context, changes []string) error {
		s.logger.Info("检测到源目录变化", "changes", len(changes))
		return s.syncTolerant(ctx)
	})
}

func (s *Synchronizer) syncTolerant(ctx context.Context) error {
	_, err := s.Sync(ctx)
	if convErr, ok := notebook.AsConversionError(err); ok {
		s.logger.Warn("notebook 转换失败，等待下一次变化", "path", convErr.Path, "exit_code", convErr.ExitCode, "output", convErr.Output)
		return nil
	}
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
