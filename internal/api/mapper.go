package api

import (
	"time"

	"github.com/blues/cfd/internal/model"
	"github.com/blues/cfd/internal/normalize"
)

// mapProject 将后端原始记录归一化为展示实体
// 状态必须用原始ISO时间计算，展示格式化的结果不能反馈进状态推导
func mapProject(p *model.Project, now time.Time) {
	startAt, errStart := normalize.ParseInstant(p.StartAt)
	endAt, errEnd := normalize.ParseInstant(p.EndAt)
	if errStart == nil && errEnd == nil {
		p.Status = model.DeriveStatus(now, startAt, endAt)
	}

	p.StartAt = normalize.FormatDisplayDate(p.StartAt)
	p.EndAt = normalize.FormatDisplayDate(p.EndAt)
}

// mapProjects 归一化项目列表，保持后端返回的顺序
func mapProjects(projects []model.Project, now time.Time) {
	for i := range projects {
		mapProject(&projects[i], now)
	}
}

// mapTransactions 为捐款记录补充展示用项目名称
func mapTransactions(txns []model.Transaction) {
	for i := range txns {
		txns[i].ProjectName = normalize.TitleCase(txns[i].ProjectID)
	}
}
