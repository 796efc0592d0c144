package model

// Project 众筹项目
// 字段与后端接口的JSON结构一一对应
type Project struct {
	// 标识信息
	ProjectID    string `json:"project_id"`   // slug形式的项目ID
	ProjectHash  string `json:"project_hash"` // 链上使用的内容哈希，由后端生成
	Owner        string `json:"owner"`        // 发起人展示名称
	AddressOwner string `json:"address_owner"`

	// 众筹信息
	Pool   float64 `json:"pool"`   // 目标金额
	Raised float64 `json:"raised"` // 已筹金额

	// 基本信息
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Img         string   `json:"img"`

	// 时间信息（读取后为 DD-MM-YYYY 展示格式）
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`

	// 状态（读取时根据原始时间计算，不落库）
	Status ProjectStatus `json:"status"`
}

// Category 项目分类
type Category string

const (
	CategoryEnvironment Category = "Environment" // 环境
	CategoryEducation   Category = "Education"   // 教育
	CategoryCommunity   Category = "Community"   // 社区
	CategoryBusiness    Category = "Business"    // 商业
)

// IsValid 检查分类是否合法
func (c Category) IsValid() bool {
	switch c {
	case CategoryEnvironment, CategoryEducation, CategoryCommunity, CategoryBusiness:
		return true
	}
	return false
}

// PercentFunded 计算筹款完成百分比
func (p *Project) PercentFunded() float64 {
	if p.Pool <= 0 {
		return 0
	}
	return p.Raised / p.Pool * 100
}

// CanPledge 判断指定地址当前是否可以向该项目捐款
// 发起人不能给自己的项目捐款，已超额或未在进行中的项目不接受捐款
func (p *Project) CanPledge(address string) bool {
	if address == "" || address == p.AddressOwner {
		return false
	}
	if p.Raised > p.Pool {
		return false
	}
	return p.Status == StatusOngoing
}
