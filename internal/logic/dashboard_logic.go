package logic

import (
	"context"

	"github.com/blues/cfd/internal/api"
	"github.com/blues/cfd/internal/model"
	"golang.org/x/sync/errgroup"
)

// Snapshot 一个钱包地址的仪表盘数据快照
type Snapshot struct {
	Address      string
	Projects     []model.Project
	Transactions []model.Transaction
}

// DashboardLogic 仪表盘数据聚合逻辑
type DashboardLogic struct {
	api *api.Client
}

// NewDashboardLogic 创建仪表盘数据聚合逻辑
func NewDashboardLogic(apiClient *api.Client) *DashboardLogic {
	return &DashboardLogic{api: apiClient}
}

// Load 并发拉取一个地址名下的项目和捐款记录
// 任何一路失败整体失败，两路数据都在读取时归一化
func (d *DashboardLogic) Load(ctx context.Context, address string) (*Snapshot, error) {
	snapshot := &Snapshot{Address: address}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		projects, err := d.api.ListByOwner(gctx, address)
		if err != nil {
			return err
		}
		snapshot.Projects = projects
		return nil
	})

	group.Go(func() error {
		txns, err := d.api.ListTransactions(gctx, address)
		if err != nil {
			return err
		}
		snapshot.Transactions = txns
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return snapshot, nil
}
