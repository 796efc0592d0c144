package task

import (
	"context"
	"sync"
	"time"

	"github.com/blues/cfd/internal/api"
	"github.com/blues/cfd/internal/config"
	"github.com/blues/cfd/internal/logger"
	"github.com/blues/cfd/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

// TransactionSyncJob 捐款记录同步任务
// 为配置中跟踪的每个钱包地址拉取最新的捐款记录
type TransactionSyncJob struct {
	api    *api.Client
	config *config.Config

	mu     sync.RWMutex
	latest map[string][]model.Transaction // address -> 最近一轮的记录
}

// NewTransactionSyncJob 创建捐款记录同步任务
func NewTransactionSyncJob(apiClient *api.Client, cfg *config.Config) *TransactionSyncJob {
	return &TransactionSyncJob{
		api:    apiClient,
		config: cfg,
		latest: make(map[string][]model.Transaction),
	}
}

// GetName 获取任务名称
func (j *TransactionSyncJob) GetName() string {
	return "transaction_sync"
}

// GetSchedule 获取调度配置
func (j *TransactionSyncJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *TransactionSyncJob) Execute() {
	addresses := j.config.Task.Addresses
	if len(addresses) == 0 {
		logger.Debug("No tracked addresses, skipping transaction sync")
		return
	}

	// 创建临时协程池，大小等于地址数量
	pool, err := ants.NewPool(len(addresses))
	if err != nil {
		logger.Error("Failed to create pool for %d addresses: %v", len(addresses), err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, address := range addresses {
		addr := address
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			j.syncAddress(addr)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit sync task for %s: %v", addr, err)
		}
	}
	wg.Wait()

	logger.Debug("Transaction sync completed for %d addresses", len(addresses))
}

// syncAddress 同步单个地址的捐款记录
func (j *TransactionSyncJob) syncAddress(address string) {
	txns, err := j.api.ListTransactions(context.Background(), address)
	if err != nil {
		logger.Error("Failed to sync transactions for %s: %v", address, err)
		return
	}

	j.mu.Lock()
	previous := len(j.latest[address])
	j.latest[address] = txns
	j.mu.Unlock()

	if len(txns) != previous {
		logger.Info("Address %s has %d transactions (was %d)", address, len(txns), previous)
	}
}

// Latest 查询某个地址最近一轮同步到的捐款记录
func (j *TransactionSyncJob) Latest(address string) []model.Transaction {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.latest[address]
}
