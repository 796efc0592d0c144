package logic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/blues/cfd/internal/api"
	"github.com/blues/cfd/internal/chain"
	"github.com/blues/cfd/internal/config"
	"github.com/blues/cfd/internal/model"
	"github.com/blues/cfd/internal/wallet"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeSigner 测试用钱包，记录收到的交易请求
type fakeSigner struct {
	address  string
	txID     string
	err      error
	requests []*chain.TransactionRequest
}

func (f *fakeSigner) Address() string {
	return f.address
}

func (f *fakeSigner) RequestTransaction(_ context.Context, tx *chain.TransactionRequest) (string, error) {
	f.requests = append(f.requests, tx)
	if f.err != nil {
		return "", f.err
	}
	return f.txID, nil
}

func testProgram() *chain.Program {
	return chain.NewProgram(config.ChainConfig{
		Network: "testnet3",
		Program: "project_crowdfunding7.aleo",
		Fee:     350000,
	})
}

// newBackendStub 启动一个计数的后端桩服务
// createHits记录 /project/add 的命中次数，用来验证本地校验短路和saga顺序
func newBackendStub(t *testing.T, createHits *int) *api.Client {
	t.Helper()

	router := gin.New()
	router.POST("/project/add", func(c *gin.Context) {
		*createHits++
		pool, _ := strconv.ParseFloat(c.PostForm("pool"), 64)
		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"project_id":    c.PostForm("project_id"),
			"project_hash":  "987654321",
			"title":         c.PostForm("title"),
			"owner":         c.PostForm("owner"),
			"address_owner": c.PostForm("address_owner"),
			"pool":          pool,
			"raised":        0,
			"category":      c.PostForm("category"),
			"description":   c.PostForm("description"),
			"start_at":      c.PostForm("start_at"),
			"end_at":        c.PostForm("end_at"),
		}})
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, server.Client())
}

func validDraft() *model.ProjectDraft {
	return &model.ProjectDraft{
		Title:       "Clean Water Initiative",
		Owner:       "Alice",
		Category:    "Environment",
		Description: "Bring clean water to remote villages",
		Pool:        5000,
		StartAt:     "2024-01-01",
		EndAt:       "2024-12-31",
		Image:       &model.ImageFile{Name: "cover.png", Data: []byte{0x89, 0x50}},
	}
}

func TestPublish(t *testing.T) {
	var createHits int
	signer := &fakeSigner{address: "aleo1owner", txID: "at1xyz"}
	projectLogic := NewProjectLogic(newBackendStub(t, &createHits), signer, testProgram())

	submission, err := projectLogic.Publish(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if !submission.Succeeded() || submission.State != StateSubmitted {
		t.Errorf("State = %v, want %v", submission.State, StateSubmitted)
	}
	if submission.TxID != "at1xyz" {
		t.Errorf("TxID = %q, want %q", submission.TxID, "at1xyz")
	}
	if createHits != 1 {
		t.Errorf("createHits = %d, want 1", createHits)
	}
	if submission.Created == nil || submission.Created.ProjectHash != "987654321" {
		t.Fatalf("Created = %+v, want server echo with hash", submission.Created)
	}

	// 链交易必须用后端生成的内容哈希构造
	if len(signer.requests) != 1 {
		t.Fatalf("signer received %d requests, want 1", len(signer.requests))
	}
	tx := signer.requests[0]
	if tx.Function != chain.FunctionCreateProject {
		t.Errorf("Function = %q, want %q", tx.Function, chain.FunctionCreateProject)
	}
	if tx.Sender != "aleo1owner" {
		t.Errorf("Sender = %q, want %q", tx.Sender, "aleo1owner")
	}
	if tx.Arguments[0] != "987654321field" || tx.Arguments[1] != "5000field" {
		t.Errorf("Arguments = %v", tx.Arguments)
	}
}

func TestPublishRejectsInvertedDates(t *testing.T) {
	var createHits int
	signer := &fakeSigner{address: "aleo1owner", txID: "at1xyz"}
	projectLogic := NewProjectLogic(newBackendStub(t, &createHits), signer, testProgram())

	draft := validDraft()
	draft.StartAt, draft.EndAt = draft.EndAt, draft.StartAt

	submission, err := projectLogic.Publish(context.Background(), draft)
	if !errors.Is(err, model.ErrDateOrder) {
		t.Errorf("Publish() error = %v, want %v", err, model.ErrDateOrder)
	}
	if submission.State != StateRejected {
		t.Errorf("State = %v, want %v", submission.State, StateRejected)
	}

	// 本地校验失败必须在任何网络调用之前短路
	if createHits != 0 {
		t.Errorf("createHits = %d, want 0", createHits)
	}
	if len(signer.requests) != 0 {
		t.Errorf("signer received %d requests, want 0", len(signer.requests))
	}
}

func TestPublishRejectsWithoutWallet(t *testing.T) {
	var createHits int
	signer := &fakeSigner{address: ""}
	projectLogic := NewProjectLogic(newBackendStub(t, &createHits), signer, testProgram())

	submission, err := projectLogic.Publish(context.Background(), validDraft())
	if !errors.Is(err, wallet.ErrNotConnected) {
		t.Errorf("Publish() error = %v, want %v", err, wallet.ErrNotConnected)
	}
	if submission.State != StateRejected {
		t.Errorf("State = %v, want %v", submission.State, StateRejected)
	}
	if createHits != 0 {
		t.Errorf("createHits = %d, want 0", createHits)
	}
}

func TestPublishChainFailureAfterCreate(t *testing.T) {
	var createHits int
	signer := &fakeSigner{address: "aleo1owner", err: errors.New("user rejected the request")}
	projectLogic := NewProjectLogic(newBackendStub(t, &createHits), signer, testProgram())

	submission, err := projectLogic.Publish(context.Background(), validDraft())
	if err == nil {
		t.Fatal("Publish() should fail when chain submission fails")
	}
	if submission.State != StateFailed {
		t.Errorf("State = %v, want %v", submission.State, StateFailed)
	}

	// 后端记录已创建，链上失败后不回滚，数据不一致由调用方感知
	if createHits != 1 {
		t.Errorf("createHits = %d, want 1", createHits)
	}
	if submission.Created == nil {
		t.Error("Created should carry the backend echo after chain failure")
	}
}

func TestPublishBackendFailure(t *testing.T) {
	router := gin.New()
	router.POST("/project/add", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id already exists"})
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	signer := &fakeSigner{address: "aleo1owner", txID: "at1xyz"}
	projectLogic := NewProjectLogic(api.NewClient(server.URL, server.Client()), signer, testProgram())

	submission, err := projectLogic.Publish(context.Background(), validDraft())
	if !api.IsKind(err, api.ErrKindServer) {
		t.Errorf("Publish() error = %v, want ErrKindServer", err)
	}
	if submission.State != StateFailed {
		t.Errorf("State = %v, want %v", submission.State, StateFailed)
	}
	// 后端创建失败时绝不能请求钱包
	if len(signer.requests) != 0 {
		t.Errorf("signer received %d requests, want 0", len(signer.requests))
	}
}

func TestDeposit(t *testing.T) {
	signer := &fakeSigner{address: "aleo1donor", txID: "at1deposit"}
	depositLogic := NewDepositLogic(signer, testProgram())

	project := &model.Project{
		ProjectID:    "clean-water-initiative",
		ProjectHash:  "987654321",
		AddressOwner: "aleo1owner",
		Status:       model.StatusOngoing,
	}

	submission, err := depositLogic.Deposit(context.Background(), project, 250)
	if err != nil {
		t.Fatalf("Deposit() error = %v", err)
	}
	if submission.State != StateSubmitted || submission.TxID != "at1deposit" {
		t.Errorf("submission = %+v", submission)
	}

	// 参数顺序：内容哈希、受益人地址（不带后缀）、金额
	tx := signer.requests[0]
	if tx.Function != chain.FunctionDeposit {
		t.Errorf("Function = %q, want %q", tx.Function, chain.FunctionDeposit)
	}
	want := []string{"987654321field", "aleo1owner", "250field"}
	for i := range want {
		if tx.Arguments[i] != want[i] {
			t.Errorf("Arguments[%d] = %q, want %q", i, tx.Arguments[i], want[i])
		}
	}
}

func TestDepositRejects(t *testing.T) {
	project := &model.Project{
		ProjectID:    "clean-water-initiative",
		ProjectHash:  "987654321",
		AddressOwner: "aleo1owner",
	}

	tests := []struct {
		name    string
		signer  *fakeSigner
		project *model.Project
		amount  float64
		wantErr error
	}{
		{"wallet not connected", &fakeSigner{}, project, 250, wallet.ErrNotConnected},
		{"nil project", &fakeSigner{address: "aleo1donor"}, nil, 250, ErrMissingProject},
		{"missing hash", &fakeSigner{address: "aleo1donor"}, &model.Project{ProjectID: "x"}, 250, ErrMissingProject},
		{"zero amount", &fakeSigner{address: "aleo1donor"}, project, 0, ErrInvalidAmount},
		{"negative amount", &fakeSigner{address: "aleo1donor"}, project, -5, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depositLogic := NewDepositLogic(tt.signer, testProgram())

			submission, err := depositLogic.Deposit(context.Background(), tt.project, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Deposit() error = %v, want %v", err, tt.wantErr)
			}
			if submission.State != StateRejected {
				t.Errorf("State = %v, want %v", submission.State, StateRejected)
			}
			if len(tt.signer.requests) != 0 {
				t.Errorf("signer received %d requests, want 0", len(tt.signer.requests))
			}
		})
	}
}

func TestDashboardLoad(t *testing.T) {
	router := gin.New()
	router.GET("/project", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []gin.H{{
			"project_id":    "clean-water-initiative",
			"address_owner": c.Query("address_owner"),
			"pool":          5000,
			"raised":        1000,
			"start_at":      "2024-01-01",
			"end_at":        "2024-12-31",
		}}})
	})
	router.GET("/transactions", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []gin.H{
			{"address": c.Query("address"), "amount": 250, "project_id": "solar-schools", "txn_id": "at1abc"},
		}})
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	dashboard := NewDashboardLogic(api.NewClient(server.URL, server.Client()))
	snapshot, err := dashboard.Load(context.Background(), "aleo1owner")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(snapshot.Projects) != 1 {
		t.Errorf("len(Projects) = %d, want 1", len(snapshot.Projects))
	}
	if len(snapshot.Transactions) != 1 {
		t.Errorf("len(Transactions) = %d, want 1", len(snapshot.Transactions))
	}
	if snapshot.Transactions[0].ProjectName != "Solar Schools" {
		t.Errorf("ProjectName = %q, want %q", snapshot.Transactions[0].ProjectName, "Solar Schools")
	}
}

func TestDashboardLoadPropagatesFailure(t *testing.T) {
	router := gin.New()
	router.GET("/project", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []gin.H{}})
	})
	router.GET("/transactions", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	dashboard := NewDashboardLogic(api.NewClient(server.URL, server.Client()))
	if _, err := dashboard.Load(context.Background(), "aleo1owner"); err == nil {
		t.Error("Load() should fail when either fetch fails")
	}
}
