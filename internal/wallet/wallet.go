package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/blues/cfd/internal/chain"
	"github.com/blues/cfd/internal/config"
	"github.com/blues/cfd/internal/logger"
)

// ErrNotConnected 钱包未连接
var ErrNotConnected = errors.New("钱包未连接")

// Signer 外部钱包能力
// 签名和广播都由钱包完成，本层只拿到交易ID或失败原因
// 作为显式依赖传入提交流程，不依赖任何环境上下文
type Signer interface {
	// Address 当前连接的钱包地址，未连接时为空
	Address() string
	// RequestTransaction 请求钱包签名并广播交易，返回链上交易ID
	// 用户拒绝、签名失败、广播失败都以错误返回，绝不自动重试
	RequestTransaction(ctx context.Context, tx *chain.TransactionRequest) (string, error)
}

// Client 本地钱包守护进程的HTTP桥接客户端
type Client struct {
	httpClient *http.Client
	endpoint   string
	address    string
}

// Init 初始化钱包桥接客户端
func Init(cfg config.WalletConfig, httpClient *http.Client) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("未配置钱包endpoint")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		address:    cfg.Address,
	}, nil
}

// Address 获取当前连接的钱包地址
func (c *Client) Address() string {
	return c.address
}

// walletResponse 钱包守护进程的响应
type walletResponse struct {
	TransactionID string `json:"transaction_id"`
	Error         string `json:"error"`
}

// RequestTransaction 把交易请求交给钱包签名并广播
func (c *Client) RequestTransaction(ctx context.Context, tx *chain.TransactionRequest) (string, error) {
	payload, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("序列化交易请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/transaction", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("构造钱包请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("请求钱包签名: %s %s", tx.Program, tx.Function)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("钱包无响应: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取钱包响应失败: %w", err)
	}

	var wr walletResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return "", fmt.Errorf("钱包响应不是合法的JSON: %s", string(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || wr.Error != "" {
		// 用户在钱包侧取消也走这条路径，表现为失败而不是挂起
		if wr.Error != "" {
			return "", fmt.Errorf("钱包拒绝交易: %s", wr.Error)
		}
		return "", fmt.Errorf("钱包返回异常状态码 %d", resp.StatusCode)
	}

	if wr.TransactionID == "" {
		return "", errors.New("钱包未返回交易ID")
	}
	return wr.TransactionID, nil
}
