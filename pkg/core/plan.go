package core

import (
	"docsync/pkg/endpoint"
	"docsync/pkg/transfer"
)

// BuildPlan 按遍历顺序生成计划：目录一律 mkdir，文件按内容是否一致决定 copy 或 skip。
// 无法比较的文件计划为 copy（原因 unverified），错误在执行到该条目时才返回，
// 之前的条目照常复制。
func BuildPlan(entries []endpoint.FileMeta, src, dst endpoint.FileSystem) (transfer.Plan, error) {
	plan := transfer.Plan{}
	for _, meta := range entries {
		if meta.IsDir {
			plan.AddItem(transfer.TransferItem{
				RelPath: meta.RelPath,
				Meta:    meta,
				Action:  transfer.ActionMkdir,
			})
			continue
		}
		plan.AddItem(planFile(meta, src, dst))
	}
	return plan, nil
}

func planFile(meta endpoint.FileMeta, src, dst endpoint.FileSystem) transfer.TransferItem {
	item := transfer.TransferItem{RelPath: meta.RelPath, Meta: meta, Action: transfer.ActionCopy}
	if _, err := dst.Stat(meta.RelPath); err != nil {
		item.Reason = transfer.ReasonUnverified
		if isNotFound(err) {
			item.Reason = transfer.ReasonNew
		}
		return item
	}
	same, err := endpoint.SameContent(src, dst, meta.RelPath)
	switch {
	case err != nil:
		item.Reason = transfer.ReasonUnverified
	case same:
		item.Action = transfer.ActionSkip
		item.Reason = transfer.ReasonUnchanged
	default:
		item.Reason = transfer.ReasonChanged
	}
	return item
}
