package chain

import (
	"strconv"

	"github.com/blues/cfd/internal/config"
)

// 目标程序的入口函数名
const (
	FunctionCreateProject = "create_project"
	FunctionDeposit       = "deposit_project"
)

// TransactionRequest 提交给钱包签名并广播的链交易请求
// 参数顺序由目标程序的调用约定固定，打乱顺序会产生另一个调用
type TransactionRequest struct {
	Sender    string   `json:"senderAddress"`
	Network   string   `json:"network"`
	Program   string   `json:"programId"`
	Function  string   `json:"functionName"`
	Arguments []string `json:"arguments"`
	FeeLimit  int64    `json:"feeLimit"` // 执行费用上限，单位microcredit
}

// Program 目标Leo程序描述
type Program struct {
	network string // 链网络标识
	name    string // 程序名称
	fee     int64  // 固定的执行费用上限
}

// NewProgram 根据链配置创建程序描述
func NewProgram(cfg config.ChainConfig) *Program {
	return &Program{
		network: cfg.Network,
		name:    cfg.Program,
		fee:     cfg.Fee,
	}
}

// GetName 获取程序名称
func (p *Program) GetName() string {
	return p.name
}

// GetNetwork 获取链网络标识
func (p *Program) GetNetwork() string {
	return p.network
}

// CreateProjectTransaction 构造创建项目的链交易请求
// 参数顺序：内容哈希、目标金额
func (p *Program) CreateProjectTransaction(sender, projectHash string, pool float64) *TransactionRequest {
	return &TransactionRequest{
		Sender:   sender,
		Network:  p.network,
		Program:  p.name,
		Function: FunctionCreateProject,
		Arguments: []string{
			Field(projectHash),
			Field(formatAmount(pool)),
		},
		FeeLimit: p.fee,
	}
}

// DepositTransaction 构造捐款的链交易请求
// 参数顺序：内容哈希、受益人地址（地址不带类型后缀）、金额
func (p *Program) DepositTransaction(sender, projectHash, beneficiary string, amount float64) *TransactionRequest {
	return &TransactionRequest{
		Sender:   sender,
		Network:  p.network,
		Program:  p.name,
		Function: FunctionDeposit,
		Arguments: []string{
			Field(projectHash),
			beneficiary,
			Field(formatAmount(amount)),
		},
		FeeLimit: p.fee,
	}
}

// Field 给标量参数附加field元素类型后缀
func Field(value string) string {
	return value + "field"
}

// formatAmount 金额编码为十进制文本
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
