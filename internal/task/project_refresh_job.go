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
)

// ProjectRefreshJob 项目列表刷新任务
// 状态不落库，每轮刷新都在读取时重新计算，这里只负责发现状态迁移
type ProjectRefreshJob struct {
	api    *api.Client
	config *config.Config

	mu         sync.RWMutex
	lastStatus map[string]model.ProjectStatus // project_id -> 上一轮观察到的状态
}

// NewProjectRefreshJob 创建项目列表刷新任务
func NewProjectRefreshJob(apiClient *api.Client, cfg *config.Config) *ProjectRefreshJob {
	return &ProjectRefreshJob{
		api:        apiClient,
		config:     cfg,
		lastStatus: make(map[string]model.ProjectStatus),
	}
}

// GetName 获取任务名称
func (j *ProjectRefreshJob) GetName() string {
	return "project_refresh"
}

// GetSchedule 获取调度配置
func (j *ProjectRefreshJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *ProjectRefreshJob) Execute() {
	logger.Debug("Starting project refresh task")

	projects, err := j.api.ListAll(context.Background())
	if err != nil {
		logger.Error("Failed to refresh projects: %v", err)
		return
	}

	changedCount := 0
	j.mu.Lock()
	for _, project := range projects {
		previous, seen := j.lastStatus[project.ProjectID]
		if seen && previous != project.Status {
			logger.Info("Project %s status changed from %s to %s",
				project.ProjectID, previous, project.Status)
			changedCount++
		}
		j.lastStatus[project.ProjectID] = project.Status
	}
	j.mu.Unlock()

	logger.Debug("Project refresh completed. %d projects, %d status changes",
		len(projects), changedCount)
}

// Status 查询某个项目最近一轮观察到的状态
func (j *ProjectRefreshJob) Status(projectID string) (model.ProjectStatus, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	status, ok := j.lastStatus[projectID]
	return status, ok
}
