// Package watch 监听目录树变化，合并短时间内的事件后回调
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"docsync/pkg/endpoint"
)

// Options 配置 Watcher
type Options struct {
	Debounce time.Duration
	Matcher  *endpoint.Matcher
	Logger   *slog.Logger
}

// Handler 接收一批变化的相对路径（斜杠分隔、已排序）
type Handler func(ctx context.Context, changes []string) error

// Watcher 递归监听 root 下的所有目录
type Watcher struct {
	root string
	fsw  *fsnotify.Watcher
	opts Options
}

// New 创建 Watcher 并注册 root 下所有未被排除的目录
func New(root string, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{root: root, fsw: fsw, opts: opts}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close 停止底层 fsnotify
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run 阻塞处理事件。ctx 结束时返回 nil，handler 返回错误时原样返回。
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			rel, accepted := w.handleEvent(event)
			if !accepted {
				continue
			}
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			timerC = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("监听出错", "err", err)
		case <-timerC:
			timerC = nil
			changes := make([]string, 0, len(pending))
			for rel := range pending {
				changes = append(changes, rel)
			}
			clear(pending)
			sort.Strings(changes)
			if err := handler(ctx, changes); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	if event.Op == fsnotify.Chmod {
		return "", false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	created := event.Op&fsnotify.Create == fsnotify.Create
	dir := created && isDir(event.Name)
	if w.opts.Matcher.Excluded(rel, dir) {
		return "", false
	}
	if dir {
		if err := w.addTree(event.Name); err != nil {
			w.opts.Logger.Warn("无法监听新目录", "path", event.Name, "err", err)
		}
	}
	return rel, true
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && w.opts.Matcher.Excluded(rel, true) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
