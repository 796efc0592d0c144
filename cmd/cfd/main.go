package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/blues/cfd/internal/api"
	"github.com/blues/cfd/internal/chain"
	"github.com/blues/cfd/internal/config"
	"github.com/blues/cfd/internal/logger"
	"github.com/blues/cfd/internal/logic"
	"github.com/blues/cfd/internal/model"
	"github.com/blues/cfd/internal/task"
	"github.com/blues/cfd/internal/wallet"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	logger.Setup(cfg.Log)
	defer logger.Sync()

	httpClient := &http.Client{}
	if cfg.Api.Timeout > 0 {
		httpClient.Timeout = time.Duration(cfg.Api.Timeout) * time.Second
	}

	apiClient := api.NewClient(cfg.Api.BaseURL, httpClient)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "list":
		err = runList(ctx, apiClient)
	case "my":
		err = runMy(ctx, apiClient, cfg, os.Args[2:])
	case "get":
		err = runGet(ctx, apiClient, os.Args[2:])
	case "txns":
		err = runTxns(ctx, apiClient, cfg, os.Args[2:])
	case "create":
		err = runCreate(ctx, apiClient, cfg, httpClient, os.Args[2:])
	case "deposit":
		err = runDeposit(ctx, apiClient, cfg, httpClient, os.Args[2:])
	case "watch":
		err = runWatch(apiClient, cfg)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cfd <list|my|get|txns|create|deposit|watch> [flags]")
}

// runList 列出全部项目
func runList(ctx context.Context, apiClient *api.Client) error {
	projects, err := apiClient.ListAll(ctx)
	if err != nil {
		return err
	}
	printProjects(projects)
	return nil
}

// runMy 列出指定发起人的项目
func runMy(ctx context.Context, apiClient *api.Client, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("my", flag.ExitOnError)
	address := fs.String("address", cfg.Wallet.Address, "发起人钱包地址")
	fs.Parse(args)

	projects, err := apiClient.ListByOwner(ctx, *address)
	if err != nil {
		return err
	}
	printProjects(projects)
	return nil
}

// runGet 查看单个项目详情
func runGet(ctx context.Context, apiClient *api.Client, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	projectID := fs.String("project", "", "项目ID")
	owner := fs.String("owner", "", "发起人钱包地址（可选）")
	fs.Parse(args)

	project, err := apiClient.GetByID(ctx, *projectID, *owner)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", project.Title, project.ProjectID)
	fmt.Printf("  发起人: %s (%s)\n", project.Owner, project.AddressOwner)
	fmt.Printf("  分类:   %s\n", project.Category)
	fmt.Printf("  周期:   %s ~ %s [%s]\n", project.StartAt, project.EndAt, project.Status)
	fmt.Printf("  筹款:   %v / %v (%.1f%%)\n", project.Raised, project.Pool, project.PercentFunded())
	fmt.Printf("  %s\n", project.Description)
	return nil
}

// runTxns 列出指定地址的捐款记录
func runTxns(ctx context.Context, apiClient *api.Client, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("txns", flag.ExitOnError)
	address := fs.String("address", cfg.Wallet.Address, "钱包地址")
	fs.Parse(args)

	txns, err := apiClient.ListTransactions(ctx, *address)
	if err != nil {
		return err
	}
	for _, txn := range txns {
		fmt.Printf("%-40s %12v  %s (%s)\n", txn.TxnID, txn.Amount, txn.ProjectName, txn.ProjectID)
	}
	return nil
}

// runCreate 创建项目并提交链上交易
func runCreate(ctx context.Context, apiClient *api.Client, cfg *config.Config, httpClient *http.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "项目标题")
	owner := fs.String("owner", "", "发起人名称")
	category := fs.String("category", "", "项目分类")
	description := fs.String("description", "", "项目描述")
	pool := fs.Float64("pool", 0, "目标金额")
	startAt := fs.String("start", "", "开始日期（ISO格式）")
	endAt := fs.String("end", "", "结束日期（ISO格式）")
	imgPath := fs.String("img", "", "项目图片路径")
	fs.Parse(args)

	draft := &model.ProjectDraft{
		Title:       *title,
		Owner:       *owner,
		Category:    *category,
		Description: *description,
		Pool:        *pool,
		StartAt:     *startAt,
		EndAt:       *endAt,
	}

	if *imgPath != "" {
		data, err := os.ReadFile(*imgPath)
		if err != nil {
			return fmt.Errorf("读取项目图片失败: %w", err)
		}
		draft.Image = &model.ImageFile{Name: filepath.Base(*imgPath), Data: data}
	}

	signer, err := wallet.Init(cfg.Wallet, httpClient)
	if err != nil {
		return err
	}
	program := chain.NewProgram(cfg.Chain)

	projectLogic := logic.NewProjectLogic(apiClient, signer, program)
	submission, err := projectLogic.Publish(ctx, draft)
	if err != nil {
		if submission.Created != nil {
			// 后端记录已创建，只有链上提交失败
			fmt.Printf("后端记录已创建: %s，链上提交失败\n", submission.Created.ProjectID)
		}
		return err
	}

	fmt.Printf("项目创建成功: %s\n交易ID: %s\n", submission.Created.ProjectID, submission.TxID)
	return nil
}

// runDeposit 向项目捐款
func runDeposit(ctx context.Context, apiClient *api.Client, cfg *config.Config, httpClient *http.Client, args []string) error {
	fs := flag.NewFlagSet("deposit", flag.ExitOnError)
	projectID := fs.String("project", "", "项目ID")
	amount := fs.Float64("amount", 0, "捐款金额")
	fs.Parse(args)

	project, err := apiClient.GetByID(ctx, *projectID, "")
	if err != nil {
		return err
	}

	signer, err := wallet.Init(cfg.Wallet, httpClient)
	if err != nil {
		return err
	}
	program := chain.NewProgram(cfg.Chain)

	depositLogic := logic.NewDepositLogic(signer, program)
	submission, err := depositLogic.Deposit(ctx, project, *amount)
	if err != nil {
		return err
	}

	fmt.Printf("捐款提交成功，交易ID: %s\n", submission.TxID)
	return nil
}

// runWatch 启动后台刷新任务，直到收到退出信号
func runWatch(apiClient *api.Client, cfg *config.Config) error {
	manager := task.Start(apiClient, cfg)
	defer manager.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return nil
}

func printProjects(projects []model.Project) {
	for _, project := range projects {
		fmt.Printf("%-30s %-10s %-12s %s ~ %s  %v/%v\n",
			project.ProjectID, project.Status, project.Category,
			project.StartAt, project.EndAt, project.Raised, project.Pool)
	}
}
