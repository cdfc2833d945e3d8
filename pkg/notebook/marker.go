// Package notebook 识别带 jupytext 元数据的 Markdown 文件，并调用外部工具转换为 notebook
package notebook

import (
	"bytes"
	"path"
	"strings"
)

const (
	// Marker 出现在文件内容中即视为 MyST notebook
	Marker = "---\njupytext:"
	// MarkdownExt 只有该后缀的文件才会检查 Marker
	MarkdownExt = ".md"
)

// IsMarkdown 判断文件名是否以 .md 结尾（区分大小写）
func IsMarkdown(name string) bool {
	return strings.HasSuffix(name, MarkdownExt)
}

// HasMarker 判断内容中是否包含 Marker
func HasMarker(content []byte) bool {
	return bytes.Contains(content, []byte(Marker))
}

// ArtifactPath 返回转换后产物的路径：a/c.md -> a/c.ipynb
func ArtifactPath(p string, to string) string {
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext) + "." + strings.TrimPrefix(to, ".")
}
