package api

import "fmt"

// ErrKind 数据访问错误分类
type ErrKind int

const (
	ErrKindTransport       ErrKind = iota // 网络不可达，未收到任何响应
	ErrKindServer                         // 后端拒绝请求，携带后端返回的原始错误信息
	ErrKindInvalidResponse                // 2xx但data信封缺失或格式不对
	ErrKindNotFound                       // 查询单个项目时data为空
	ErrKindRequest                        // 请求构造失败，未发出网络调用
)

// Error 数据访问错误
// 每个客户端操作要么返回结果，要么返回一个带分类的错误，不存在部分失败
type Error struct {
	Kind    ErrKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind 判断错误是否为指定分类
func IsKind(err error, kind ErrKind) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == kind
}

func transportErr(err error) *Error {
	return &Error{Kind: ErrKindTransport, Message: "请求后端无响应", Err: err}
}

func serverErr(message string) *Error {
	return &Error{Kind: ErrKindServer, Message: message}
}

func invalidResponseErr(message string) *Error {
	return &Error{Kind: ErrKindInvalidResponse, Message: message}
}

func notFoundErr() *Error {
	return &Error{Kind: ErrKindNotFound, Message: "项目不存在"}
}

func requestErr(err error) *Error {
	return &Error{Kind: ErrKindRequest, Message: "构造请求失败", Err: err}
}
