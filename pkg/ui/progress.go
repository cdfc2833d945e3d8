package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/schollz/progressbar/v3"
)

// Progress 定义统一的进度更新接口
type Progress interface {
	Start(totalFiles int, totalBytes int64)
	NextFile(path string, size int64)
	AddBytes(n int64)
	Finish()
}

const (
	progressWidth = 30
	maxDescLen    = 50
)

// BarProgress 基于 progressbar 的单行进度条，并与日志输出互斥
type BarProgress struct {
	mu             sync.Mutex
	writer         io.Writer
	bar            *progressbar.ProgressBar
	totalFiles     int
	completedFiles int
}

// NewBarProgress 创建进度条实例
func NewBarProgress(writer io.Writer) *BarProgress {
	return &BarProgress{writer: writer}
}

func (p *BarProgress) Start(totalFiles int, totalBytes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.totalFiles = totalFiles
	p.completedFiles = 0
	if totalFiles == 0 {
		p.bar = nil
		return
	}
	p.bar = progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetWidth(progressWidth),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetDescription(p.describe("")),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(p.writer, "\n")
		}),
	)
}

func (p *BarProgress) NextFile(path string, size int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		return
	}
	p.completedFiles++
	p.bar.Describe(p.describe(shortenPath(path, maxDescLen)))
}

func (p *BarProgress) AddBytes(n int64) {
	if n == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		return
	}
	_ = p.bar.Add64(n)
}

func (p *BarProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}

// WrapWriter 返回一个 writer，保证日志输出前清除进度条，结束后重新绘制
func (p *BarProgress) WrapWriter(w io.Writer) io.Writer {
	if p == nil {
		return w
	}
	return &progressAwareWriter{
		progress: p,
		writer:   w,
	}
}

func (p *BarProgress) describe(current string) string {
	desc := fmt.Sprintf("%d/%d files", p.completedFiles, p.totalFiles)
	if current != "" {
		desc += " " + current
	}
	return desc
}

// NoopProgress 在 --no-progress 下使用
type NoopProgress struct{}

func (n NoopProgress) Start(totalFiles int, totalBytes int64) {}
func (n NoopProgress) NextFile(path string, size int64)       {}
func (n NoopProgress) AddBytes(delta int64)                   {}
func (n NoopProgress) Finish()                                {}

type progressAwareWriter struct {
	progress *BarProgress
	writer   io.Writer
}

func (pw *progressAwareWriter) Write(b []byte) (int, error) {
	pw.progress.mu.Lock()
	defer pw.progress.mu.Unlock()
	bar := pw.progress.bar
	if bar != nil {
		_ = bar.Clear()
	}
	n, err := pw.writer.Write(b)
	if bar != nil {
		_ = bar.RenderBlank()
	}
	return n, err
}

func shortenPath(path string, maxLen int) string {
	clean := strings.NewReplacer("\n", " ", "\r", " ").Replace(path)
	if utf8.RuneCountInString(clean) <= maxLen {
		return clean
	}
	runes := []rune(clean)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	keep := maxLen - 3
	head := keep / 2
	tail := keep - head
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}
