package endpoint

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalFS 实现 FileSystem 接口，用于本地文件系统
type LocalFS struct {
	root string
}

// NewLocalFS 创建一个 LocalFS
func NewLocalFS(root string) *LocalFS {
	return &LocalFS{root: root}
}

func (l *LocalFS) Root() string {
	return l.root
}

func (l *LocalFS) FullPath(relPath string) string {
	return filepath.Join(l.root, filepath.FromSlash(relPath))
}

// List 按遍历顺序（字典序，目录先于其内容）返回根目录及其下所有条目。
// 根目录自身以 "." 出现在第一位。指向普通文件的符号链接以目标的大小、权限与修改时间列出。
func (l *LocalFS) List(matcher *Matcher) ([]FileMeta, error) {
	var metas []FileMeta
	err := filepath.WalkDir(l.root, func(fullPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(l.root, fullPath)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel != "." && matcher.Excluded(rel, entry.IsDir()) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			// 文件链接按目标内容复制，目录链接不展开
			target, statErr := os.Stat(fullPath)
			switch {
			case statErr != nil:
				// 悬空链接保留在计划中，复制时按顺序报错
				metas = append(metas, metaFromInfo(rel, info))
				return nil
			case target.Mode().IsRegular():
				info = target
			default:
				return nil
			}
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}
		metas = append(metas, metaFromInfo(rel, info))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return metas, nil
}

func (l *LocalFS) Open(relPath string) (io.ReadCloser, error) {
	return os.Open(l.FullPath(relPath))
}

func (l *LocalFS) Create(relPath string, perm fs.FileMode) (io.WriteCloser, error) {
	full := l.FullPath(relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
}

func (l *LocalFS) MkdirAll(relPath string) error {
	return os.MkdirAll(l.FullPath(relPath), 0o755)
}

func (l *LocalFS) Stat(relPath string) (FileMeta, error) {
	info, err := os.Stat(l.FullPath(relPath))
	if err != nil {
		return FileMeta{}, fmt.Errorf("stat %s: %w", relPath, err)
	}
	return metaFromInfo(relPath, info), nil
}

// SetMeta 同步权限位与修改时间，对应复制时保留元数据
func (l *LocalFS) SetMeta(relPath string, perm fs.FileMode, modTime time.Time) error {
	full := l.FullPath(relPath)
	if err := os.Chmod(full, perm); err != nil {
		return err
	}
	return os.Chtimes(full, modTime, modTime)
}
