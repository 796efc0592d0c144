package model

// Transaction 链上捐款记录
type Transaction struct {
	Address   string  `json:"address"` // 捐款人钱包地址
	Amount    float64 `json:"amount"`
	ProjectID string  `json:"project_id"`
	TxnID     string  `json:"txn_id"` // 链上交易ID

	// ProjectName 展示用项目名称，由project_id推导而来，后端不存储
	ProjectName string `json:"project_name"`
}
