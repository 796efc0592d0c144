package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/blues/cfd/internal/logger"
	"github.com/blues/cfd/internal/model"
)

// Client 后端数据访问客户端
// 每个操作执行一次网络往返，所有列表结果都经过同一个归一化步骤，
// 状态只在读取时计算，不跨调用缓存
type Client struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time // 便于测试注入当前时间
}

// NewClient 创建数据访问客户端
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
}

// envelope 后端统一的响应信封
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// ListAll 获取全部项目列表，保持后端返回顺序
func (c *Client) ListAll(ctx context.Context) ([]model.Project, error) {
	raw, err := c.getData(ctx, "/projects", nil)
	if err != nil {
		return nil, err
	}
	return c.decodeProjects(raw)
}

// ListByOwner 获取指定发起人的项目列表
func (c *Client) ListByOwner(ctx context.Context, addressOwner string) ([]model.Project, error) {
	query := url.Values{}
	query.Set("address_owner", addressOwner)

	raw, err := c.getData(ctx, "/project", query)
	if err != nil {
		return nil, err
	}
	return c.decodeProjects(raw)
}

// GetByID 获取单个项目详情
// addressOwner可以为空；后端返回空data时报告项目不存在，与网络错误区分
func (c *Client) GetByID(ctx context.Context, projectID, addressOwner string) (*model.Project, error) {
	query := url.Values{}
	query.Set("project_id", projectID)
	if addressOwner != "" {
		query.Set("address_owner", addressOwner)
	}

	raw, err := c.getData(ctx, "/project", query)
	if err != nil {
		return nil, err
	}
	if isNullData(raw) {
		return nil, notFoundErr()
	}

	var project model.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, invalidResponseErr("响应的data不是合法的项目记录")
	}

	mapProject(&project, c.now())
	return &project, nil
}

// ListTransactions 获取指定地址的捐款记录
func (c *Client) ListTransactions(ctx context.Context, address string) ([]model.Transaction, error) {
	query := url.Values{}
	query.Set("address", address)

	raw, err := c.getData(ctx, "/transactions", query)
	if err != nil {
		return nil, err
	}
	if !isJSONArray(raw) {
		return nil, invalidResponseErr("响应的data不是合法的捐款记录数组")
	}

	var txns []model.Transaction
	if err := json.Unmarshal(raw, &txns); err != nil {
		return nil, invalidResponseErr("响应的data不是合法的捐款记录数组")
	}

	mapTransactions(txns)
	return txns, nil
}

// Create 创建项目
// 以multipart表单上传，数值字段用十进制文本编码，图片作为文件部分
// 返回后端的原样回显（包含后端生成的project_hash），不做展示归一化
func (c *Client) Create(ctx context.Context, project *model.NewProject) (*model.Project, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := []struct {
		name  string
		value string
	}{
		{"title", project.Title},
		{"owner", project.Owner},
		{"project_id", project.ProjectID},
		{"address_owner", project.AddressOwner},
		{"pool", strconv.FormatFloat(project.Pool, 'f', -1, 64)},
		{"raised", strconv.FormatFloat(project.Raised, 'f', -1, 64)},
		{"category", string(project.Category)},
		{"description", project.Description},
		{"start_at", project.StartAt},
		{"end_at", project.EndAt},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, requestErr(err)
		}
	}

	part, err := writer.CreateFormFile("img", project.Image.Name)
	if err != nil {
		return nil, requestErr(err)
	}
	if _, err := part.Write(project.Image.Data); err != nil {
		return nil, requestErr(err)
	}
	if err := writer.Close(); err != nil {
		return nil, requestErr(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/project/add", &body)
	if err != nil {
		return nil, requestErr(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if isNullData(env.Data) {
		return nil, invalidResponseErr("创建响应缺少data")
	}

	var created model.Project
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return nil, invalidResponseErr("创建响应的data不是合法的项目记录")
	}

	logger.Info("项目创建成功: %s (hash: %s)", created.ProjectID, created.ProjectHash)
	return &created, nil
}

// getData 执行一次GET请求并返回data信封内容
func (c *Client) getData(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, requestErr(err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// do 执行请求并做统一的错误分流
// 网络不可达、后端拒绝、响应畸形三类错误必须可区分
func (c *Client) do(req *http.Request) (*envelope, error) {
	logger.Debug("%s %s", req.Method, req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
			// 后端带结构化错误信息时原样透出
			return nil, serverErr(env.Error)
		}
		return nil, serverErr(fmt.Sprintf("后端返回异常状态码 %d", resp.StatusCode))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, invalidResponseErr("响应不是合法的JSON")
	}
	return &env, nil
}

// decodeProjects 解析并归一化项目列表
func (c *Client) decodeProjects(raw json.RawMessage) ([]model.Project, error) {
	if !isJSONArray(raw) {
		return nil, invalidResponseErr("响应的data不是合法的项目数组")
	}

	var projects []model.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, invalidResponseErr("响应的data不是合法的项目数组")
	}

	mapProjects(projects, c.now())
	return projects, nil
}

// isJSONArray 判断data是否为JSON数组
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// isNullData 判断data是否缺失
func isNullData(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}
