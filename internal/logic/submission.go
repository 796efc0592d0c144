package logic

import "github.com/blues/cfd/internal/model"

// SubmissionState 单次提交流程的状态
// 流程一次性执行，不自动重试，调用方失败后可以从Idle重新发起
type SubmissionState string

const (
	StateIdle              SubmissionState = "Idle"
	StateValidating        SubmissionState = "Validating"        // 本地校验
	StateBuilding          SubmissionState = "Building"          // 构造链交易请求
	StateAwaitingSignature SubmissionState = "AwaitingSignature" // 等待钱包签名，唯一的挂起点
	StateSubmitted         SubmissionState = "Submitted"
	StateRejected          SubmissionState = "Rejected" // 本地校验失败，未发出任何网络调用
	StateFailed            SubmissionState = "Failed"   // 远端或钱包失败
)

// Submission 一次提交尝试的终态
type Submission struct {
	State SubmissionState
	TxID  string // 链上交易ID，Submitted时非空

	// Created 创建流程中后端的回显记录
	// 链上提交失败时也可能非空，此时后端与链上数据不一致
	Created *model.Project
}

// Succeeded 判断提交是否成功
func (s *Submission) Succeeded() bool {
	return s.State == StateSubmitted
}
