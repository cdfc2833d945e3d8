package endpoint

import (
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// Matcher 使用 gitignore 语法判断条目是否需要跳过
type Matcher struct {
	patterns []string
	ignore   *ignore.GitIgnore
}

// NewMatcher 编译排除模式，空模式会被忽略
func NewMatcher(patterns []string) *Matcher {
	var lines []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		lines = append(lines, p)
	}
	if len(lines) == 0 {
		return nil
	}
	return &Matcher{
		patterns: lines,
		ignore:   ignore.CompileIgnoreLines(lines...),
	}
}

// Patterns 返回生效的模式
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.patterns...)
}

// Excluded 判断相对路径（斜杠分隔）是否被排除。nil Matcher 不排除任何条目。
func (m *Matcher) Excluded(rel string, isDir bool) bool {
	if m == nil {
		return false
	}
	if isDir && m.ignore.MatchesPath(rel+"/") {
		return true
	}
	return m.ignore.MatchesPath(rel)
}
