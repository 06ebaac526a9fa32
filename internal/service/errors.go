package service

import "fmt"

// ==================== 错误类型 ====================

// 错误分类，对应接口层的 error.type 字段
const (
	ErrTypeValidation    = "validation_error"    // 入参校验失败，可由用户修正
	ErrTypeConfiguration = "configuration_error" // 未知线路/路线编码，属调用方 bug
	ErrTypeServer        = "server_error"        // 未预期的内部错误
)

// CalcError 计算域错误
// Field 仅在校验错误时有值，标记出错的请求字段
type CalcError struct {
	Type    string
	Field   string
	Message string
}

func (e *CalcError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Type, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// newValidationError 创建校验错误
func newValidationError(field, message string) *CalcError {
	return &CalcError{Type: ErrTypeValidation, Field: field, Message: message}
}

// newConfigurationError 创建配置错误（未知线路等）
func newConfigurationError(message string) *CalcError {
	return &CalcError{Type: ErrTypeConfiguration, Message: message}
}
