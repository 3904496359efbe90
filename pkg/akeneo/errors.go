package akeneo

import "fmt"

// ==================== 错误类型 ====================

// AuthError 授权失败 (凭据缺失/无效或远端拒绝握手)
// 属于致命错误：调用方应直接终止整轮同步
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("akeneo authorize failed [%d]: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("akeneo authorize failed: %s", e.Message)
}

// TransportError 单页拉取失败 (网络异常或非 2xx)
// 客户端不做静默重试，重试策略由调用方决定
type TransportError struct {
	Resource string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("akeneo fetch %s failed: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("akeneo fetch %s failed [%d]", e.Resource, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
