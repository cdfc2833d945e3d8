package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"docsync/pkg/endpoint"
	"docsync/pkg/notebook"
	"docsync/pkg/ui"
)

// Executor 顺序执行计划，遇到第一个错误立即返回
type Executor struct {
	SourceFS  endpoint.FileSystem
	DestFS    endpoint.FileSystem
	Converter notebook.Converter
	Logger    *slog.Logger
	Progress  ui.Progress
}

// Result 描述执行结果
type Result struct {
	Dirs      []string
	Copied    map[string]endpoint.FileMeta
	Skipped   []string
	Converted []string
}

func newResult() Result {
	return Result{Copied: make(map[string]endpoint.FileMeta)}
}

// Execute 执行计划。失败时已复制的文件保留在目标目录，不做回滚。
func (e *Executor) Execute(ctx context.Context, plan Plan) (Result, error) {
	result := newResult()
	e.Progress.Start(plan.TotalFiles, plan.TotalBytes)
	defer e.Progress.Finish()
	for _, item := range plan.Items {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		switch item.Action {
		case ActionMkdir:
			if err := e.DestFS.MkdirAll(item.RelPath); err != nil {
				return result, fmt.Errorf("创建目录失败 %s: %w", item.RelPath, err)
			}
			result.Dirs = append(result.Dirs, item.RelPath)
		case ActionCopy:
			e.Progress.NextFile(item.RelPath, item.Meta.Size)
			if err := e.copyFile(item); err != nil {
				e.Logger.Error("复制失败", "path", item.RelPath, "err", err)
				return result, err
			}
			result.Copied[item.RelPath] = item.Meta
			e.Logger.Info("Copied",
				"source", e.SourceFS.FullPath(item.RelPath),
				"target", e.DestFS.FullPath(item.RelPath),
				"reason", item.Reason)
			converted, err := e.convertIfNotebook(ctx, item.RelPath)
			if err != nil {
				return result, err
			}
			if converted {
				result.Converted = append(result.Converted, item.RelPath)
			}
		case ActionSkip:
			result.Skipped = append(result.Skipped, item.RelPath)
			e.Logger.Debug("跳过未变化文件", "path", item.RelPath, "reason", item.Reason)
		}
	}
	return result, nil
}

func (e *Executor) copyFile(item TransferItem) error {
	reader, err := e.SourceFS.Open(item.RelPath)
	if err != nil {
		return fmt.Errorf("读取源文件失败: %w", err)
	}
	defer reader.Close()

	perm := item.Meta.Perm()
	writer, err := e.DestFS.Create(item.RelPath, perm)
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}
	multi := io.MultiWriter(writer, progressWriter{progress: e.Progress})
	if _, err := io.Copy(multi, reader); err != nil {
		writer.Close()
		return fmt.Errorf("写入目标文件失败: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入目标文件失败: %w", err)
	}
	if err := e.DestFS.SetMeta(item.RelPath, perm, item.Meta.ModTime); err != nil {
		return fmt.Errorf("保留文件元数据失败: %w", err)
	}
	return nil
}

// convertIfNotebook 读取刚复制的目标文件，带 Marker 的 Markdown 交给转换器
func (e *Executor) convertIfNotebook(ctx context.Context, relPath string) (bool, error) {
	if !notebook.IsMarkdown(relPath) {
		return false, nil
	}
	content, err := endpoint.ReadFile(e.DestFS, relPath)
	if err != nil {
		return false, fmt.Errorf("读取目标文件失败: %w", err)
	}
	if !notebook.HasMarker(content) {
		return false, nil
	}
	target := e.DestFS.FullPath(relPath)
	attrs := []any{"path", target}
	if md, err := notebook.ParseMetadata(content); err != nil {
		e.Logger.Debug("无法解析 jupytext 元数据", "path", relPath, "err", err)
	} else {
		attrs = append(attrs, "format", md.FormatName, "kernel", md.KernelName)
	}
	e.Logger.Info("转换 notebook", attrs...)
	if err := e.Converter.Convert(ctx, target); err != nil {
		e.Logger.Error("转换 notebook 失败", "path", target, "err", err)
		return false, err
	}
	return true, nil
}

type progressWriter struct {
	progress ui.Progress
}

func (p progressWriter) Write(b []byte) (int, error) {
	p.progress.AddBytes(int64(len(b)))
	return len(b), nil
}
