package model

import "time"

// ProjectStatus 项目生命周期状态
// 状态不存储，每次读取时根据时间窗口重新计算
type ProjectStatus string

const (
	StatusUpcoming ProjectStatus = "Upcoming" // 未开始
	StatusOngoing  ProjectStatus = "Ongoing"  // 进行中
	StatusFinished ProjectStatus = "Finished" // 已结束
)

// DeriveStatus 根据当前时间和项目时间窗口计算状态
// 比较是严格的，now恰好等于边界时刻按进行中处理
func DeriveStatus(now, startAt, endAt time.Time) ProjectStatus {
	if now.Before(startAt) {
		return StatusUpcoming
	}
	if now.After(endAt) {
		return StatusFinished
	}
	return StatusOngoing
}
