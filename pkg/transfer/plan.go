package transfer

import "docsync/pkg/endpoint"

// TransferAction 定义对单个条目的动作
type TransferAction string

const (
	ActionMkdir TransferAction = "mkdir"
	ActionCopy  TransferAction = "copy"
	ActionSkip  TransferAction = "skip"
)

// 复制原因
const (
	ReasonNew       = "new"
	ReasonChanged   = "changed"
	ReasonUnchanged = "unchanged"
	// 比较失败，按复制处理，由复制步骤报告错误
	ReasonUnverified = "unverified"
)

// TransferItem 表示一次对单个条目的操作
type TransferItem struct {
	RelPath string
	Meta    endpoint.FileMeta
	Action  TransferAction
	Reason  string
}

// Plan 按遍历顺序记录所有操作
type Plan struct {
	Items      []TransferItem
	TotalBytes int64
	TotalFiles int
}

// AddItem 加入计划，仅 copy 计入总量
func (p *Plan) AddItem(item TransferItem) {
	p.Items = append(p.Items, item)
	if item.Action != ActionCopy {
		return
	}
	p.TotalFiles++
	p.TotalBytes += item.Meta.Size
}

// Count 统计某类动作的条目数
func (p Plan) Count(action TransferAction) int {
	n := 0
	for _, item := range p.Items {
		if item.Action == action {
			n++
		}
	}
	return n
}
