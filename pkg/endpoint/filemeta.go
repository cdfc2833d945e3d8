package endpoint

import (
	"io/fs"
	"time"
)

// FileMeta 描述目录树中的一个条目
type FileMeta struct {
	RelPath string    `json:"rel_path"`
	Size    int64     `json:"size"`
	Mode    uint32    `json:"mode"`
	ModTime time.Time `json:"mod_time"`
	IsDir   bool      `json:"is_dir,omitempty"`
}

// Perm 返回权限位，未知时回退到 0o644
func (m FileMeta) Perm() fs.FileMode {
	perm := fs.FileMode(m.Mode).Perm()
	if perm == 0 {
		return 0o644
	}
	return perm
}

func metaFromInfo(rel string, info fs.FileInfo) FileMeta {
	return FileMeta{
		RelPath: rel,
		Size:    info.Size(),
		Mode:    uint32(info.Mode()),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
}
