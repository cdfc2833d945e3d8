package endpoint

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// SameContent 逐字节比较 src 与 dst 中同一相对路径的文件。
// dst 中文件不存在时返回 (false, nil)。
func SameContent(src, dst FileSystem, relPath string) (bool, error) {
	dstMeta, err := dst.Stat(relPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if dstMeta.IsDir {
		return false, fmt.Errorf("目标路径是目录: %s", relPath)
	}
	srcMeta, err := src.Stat(relPath)
	if err != nil {
		return false, err
	}
	if srcMeta.Size != dstMeta.Size {
		return false, nil
	}
	srcData, err := readAll(src, relPath)
	if err != nil {
		return false, err
	}
	dstData, err := readAll(dst, relPath)
	if err != nil {
		return false, err
	}
	return bytes.Equal(srcData, dstData), nil
}

// ReadFile 读取整个文件
func ReadFile(fsys FileSystem, relPath string) ([]byte, error) {
	return readAll(fsys, relPath)
}

func readAll(fsys FileSystem, relPath string) ([]byte, error) {
	reader, err := fsys.Open(relPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
