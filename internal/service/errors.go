package service

import (
	"errors"
	"fmt"

	"akeneo_bridge/internal/model"
)

// ==================== 业务错误 ====================

var (
	// ErrSyncInProgress 已有同步在跑，Idle 前置条件即互斥门
	ErrSyncInProgress = errors.New("同步任务进行中，请稍后再试")

	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("账号已停用")
	ErrInvalidToken       = errors.New("无效的 Token")

	ErrDisplayGroupsDisabled = errors.New("展示组功能未启用")
)

// ==================== 导入错误类型 ====================

// ValidationError 单条远端数据不合法 (缺必填字段/格式错误)
// 记入失败清单后跳过该条，不中断整轮
type ValidationError struct {
	Kind    model.Kind
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s[%s] 数据校验失败: %s", e.Kind, e.Key, e.Message)
}

// PersistenceError 单条写库被拒
// 同样记入失败清单后跳过，前面已成功的条目不回滚
type PersistenceError struct {
	Kind model.Kind
	Key  string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s[%s] 写入失败: %v", e.Kind, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
