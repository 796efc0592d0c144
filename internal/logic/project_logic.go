package logic

import (
	"context"
	"fmt"

	"github.com/blues/cfd/internal/api"
	"github.com/blues/cfd/internal/chain"
	"github.com/blues/cfd/internal/logger"
	"github.com/blues/cfd/internal/model"
	"github.com/blues/cfd/internal/wallet"
)

// ProjectLogic 项目创建业务逻辑
type ProjectLogic struct {
	api     *api.Client
	signer  wallet.Signer
	program *chain.Program
}

// NewProjectLogic 创建项目业务逻辑
func NewProjectLogic(apiClient *api.Client, signer wallet.Signer, program *chain.Program) *ProjectLogic {
	return &ProjectLogic{
		api:     apiClient,
		signer:  signer,
		program: program,
	}
}

// Publish 创建项目并提交链上交易
// 必须先调用后端创建记录，链上调用依赖后端生成的内容哈希；
// 后端创建成功而链上提交失败时，两边数据不一致，只记录不回滚
func (p *ProjectLogic) Publish(ctx context.Context, draft *model.ProjectDraft) (*Submission, error) {
	submission := &Submission{State: StateValidating}

	// 本地校验失败必须在任何网络调用之前短路
	sender := p.signer.Address()
	if sender == "" {
		submission.State = StateRejected
		return submission, wallet.ErrNotConnected
	}

	validated, err := draft.Validate(sender)
	if err != nil {
		submission.State = StateRejected
		return submission, err
	}

	submission.State = StateBuilding

	created, err := p.api.Create(ctx, validated)
	if err != nil {
		submission.State = StateFailed
		return submission, err
	}
	submission.Created = created

	tx := p.program.CreateProjectTransaction(sender, created.ProjectHash, created.Pool)

	submission.State = StateAwaitingSignature
	txID, err := p.signer.RequestTransaction(ctx, tx)
	if err != nil {
		// 后端记录已存在而链上提交失败，数据不一致，只记录不补偿
		logger.Error("链上提交失败，后端记录 %s 已创建: %v", created.ProjectID, err)
		submission.State = StateFailed
		return submission, fmt.Errorf("链上提交失败: %w", err)
	}

	submission.State = StateSubmitted
	submission.TxID = txID
	logger.Info("项目 %s 提交成功，交易ID: %s", created.ProjectID, txID)
	return submission, nil
}
