package endpoint

import (
	"io"
	"io/fs"
	"time"
)

// FileSystem 抽象化的目录树读写能力
type FileSystem interface {
	Root() string
	List(matcher *Matcher) ([]FileMeta, error)
	Open(relPath string) (io.ReadCloser, error)
	Create(relPath string, perm fs.FileMode) (io.WriteCloser, error)
	MkdirAll(relPath string) error
	Stat(relPath string) (FileMeta, error)
	SetMeta(relPath string, perm fs.FileMode, modTime time.Time) error
	FullPath(relPath string) string
}
