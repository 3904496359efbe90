package service

import (
	"fmt"
	"time"

	"akeneo_bridge/internal/model"
)

// ==================== 运行状态 ====================

// RunState 一轮同步的状态机
// Idle → Authorizing → Importing (逐种类) → Completed | Failed
type RunState int32

const (
	RunStateIdle RunState = iota
	RunStateAuthorizing
	RunStateImporting
	RunStateCompleted
	RunStateFailed
)

func (s RunState) String() string {
	switch s {
	case RunStateIdle:
		return "idle"
	case RunStateAuthorizing:
		return "authorizing"
	case RunStateImporting:
		return "importing"
	case RunStateCompleted:
		return "completed"
	case RunStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ==================== 运行报告 ====================

// ImportOptions 单轮同步选项
type ImportOptions struct {
	// Verbose 为 true 时每条成功导入追加一行摘要
	Verbose bool `json:"verbose"`
}

// KindReport 单实体种类的计数与失败清单
type KindReport struct {
	Kind     model.Kind `json:"kind"`
	Seen     int        `json:"seen"`
	Created  int        `json:"created"`
	Updated  int        `json:"updated"`
	Failed   int        `json:"failed"`
	Failures []string   `json:"failures,omitempty"`
}

// Fail 记录一条失败
func (r *KindReport) Fail(key string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, fmt.Sprintf("%s: %v", key, err))
}

// ImportReport 整轮同步报告 (仅内存，不落库)
// Completed 不等于零失败，只代表没有致命错误
type ImportReport struct {
	RunID      string        `json:"run_id"`
	State      RunState      `json:"-"`
	StateLabel string        `json:"state"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Kinds      []*KindReport `json:"kinds"`
	// verbose 模式下每条成功导入一行
	Output []string `json:"output,omitempty"`
	// 非致命告警：残留的占位桩、远端已消失的本地记录等
	Warnings []string `json:"warnings,omitempty"`
	// 致命错误 (授权失败)，State=Failed 时非空
	FatalError string `json:"fatal_error,omitempty"`
}

// KindReport 取某种类的分报告，不存在则追加
func (r *ImportReport) KindReport(kind model.Kind) *KindReport {
	for _, kr := range r.Kinds {
		if kr.Kind == kind {
			return kr
		}
	}
	kr := &KindReport{Kind: kind}
	r.Kinds = append(r.Kinds, kr)
	return kr
}

// HasFailures 是否存在逐条失败
func (r *ImportReport) HasFailures() bool {
	for _, kr := range r.Kinds {
		if kr.Failed > 0 {
			return true
		}
	}
	return false
}

func (r *ImportReport) finish(state RunState) {
	r.State = state
	r.StateLabel = state.String()
	r.FinishedAt = time.Now()
}
