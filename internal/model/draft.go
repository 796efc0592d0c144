package model

import (
	"errors"

	"github.com/blues/cfd/internal/normalize"
)

// ImageFile 内存中的项目图片资源
type ImageFile struct {
	Name string
	Data []byte
}

// ProjectDraft 创建表单的草稿状态
// 字段允许缺失，只有通过Validate才能得到可提交的NewProject
type ProjectDraft struct {
	Title       string
	Owner       string
	Category    string
	Description string
	Pool        float64
	StartAt     string // ISO时间字符串
	EndAt       string
	Image       *ImageFile
}

// NewProject 通过校验的待提交项目，生成后不再修改
type NewProject struct {
	ProjectID    string
	Title        string
	Owner        string
	AddressOwner string
	Pool         float64
	Raised       float64
	Category     Category
	Description  string
	StartAt      string
	EndAt        string
	Image        *ImageFile
}

var (
	ErrMissingDates    = errors.New("开始和结束日期不能为空")
	ErrInvalidDates    = errors.New("开始或结束日期格式不正确")
	ErrDateOrder       = errors.New("开始日期必须早于结束日期")
	ErrMissingTitle    = errors.New("项目标题不能为空")
	ErrMissingOwner    = errors.New("发起人不能为空")
	ErrInvalidCategory = errors.New("项目分类不合法")
	ErrInvalidPool     = errors.New("目标金额必须大于0")
	ErrMissingImage    = errors.New("项目图片不能为空")
)

// Validate 校验草稿并生成待提交项目
// 项目ID由标题生成，所有校验都在任何网络调用之前完成
func (d *ProjectDraft) Validate(addressOwner string) (*NewProject, error) {
	if d.StartAt == "" || d.EndAt == "" {
		return nil, ErrMissingDates
	}

	startAt, err := normalize.ParseInstant(d.StartAt)
	if err != nil {
		return nil, ErrInvalidDates
	}
	endAt, err := normalize.ParseInstant(d.EndAt)
	if err != nil {
		return nil, ErrInvalidDates
	}
	if !startAt.Before(endAt) {
		return nil, ErrDateOrder
	}

	if d.Title == "" {
		return nil, ErrMissingTitle
	}
	if d.Owner == "" {
		return nil, ErrMissingOwner
	}
	if !Category(d.Category).IsValid() {
		return nil, ErrInvalidCategory
	}
	if d.Pool <= 0 {
		return nil, ErrInvalidPool
	}
	if d.Image == nil || len(d.Image.Data) == 0 {
		return nil, ErrMissingImage
	}

	return &NewProject{
		ProjectID:    normalize.ToProjectID(d.Title),
		Title:        d.Title,
		Owner:        d.Owner,
		AddressOwner: addressOwner,
		Pool:         d.Pool,
		Raised:       0,
		Category:     Category(d.Category),
		Description:  d.Description,
		StartAt:      d.StartAt,
		EndAt:        d.EndAt,
		Image:        d.Image,
	}, nil
}
