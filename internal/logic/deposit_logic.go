package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/blues/cfd/internal/chain"
	"github.com/blues/cfd/internal/logger"
	"github.com/blues/cfd/internal/model"
	"github.com/blues/cfd/internal/wallet"
)

var (
	ErrMissingProject = errors.New("项目信息不完整，缺少内容哈希")
	ErrInvalidAmount  = errors.New("捐款金额必须大于0")
)

// DepositLogic 捐款业务逻辑
type DepositLogic struct {
	signer  wallet.Signer
	program *chain.Program
}

// NewDepositLogic 创建捐款业务逻辑
func NewDepositLogic(signer wallet.Signer, program *chain.Program) *DepositLogic {
	return &DepositLogic{
		signer:  signer,
		program: program,
	}
}

// Deposit 向项目捐款
// 项目必须是已经从后端解析出来的记录，带有链上内容哈希
func (d *DepositLogic) Deposit(ctx context.Context, project *model.Project, amount float64) (*Submission, error) {
	submission := &Submission{State: StateValidating}

	sender := d.signer.Address()
	if sender == "" {
		submission.State = StateRejected
		return submission, wallet.ErrNotConnected
	}
	if project == nil || project.ProjectHash == "" {
		submission.State = StateRejected
		return submission, ErrMissingProject
	}
	if amount <= 0 {
		submission.State = StateRejected
		return submission, ErrInvalidAmount
	}

	submission.State = StateBuilding
	tx := d.program.DepositTransaction(sender, project.ProjectHash, project.AddressOwner, amount)

	submission.State = StateAwaitingSignature
	txID, err := d.signer.RequestTransaction(ctx, tx)
	if err != nil {
		submission.State = StateFailed
		return submission, fmt.Errorf("链上提交失败: %w", err)
	}

	submission.State = StateSubmitted
	submission.TxID = txID
	logger.Info("向项目 %s 捐款 %v 提交成功，交易ID: %s", project.ProjectID, amount, txID)
	return submission, nil
}
