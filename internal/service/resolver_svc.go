package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
)

// identifierColumn 各种类自然键所在的列
func identifierColumn(kind model.Kind) string {
	if kind == model.KindProduct {
		return "identifier"
	}
	return "code"
}

// ==================== 引用解析器 ====================

// ReferenceResolver 把远端引用 (种类+自然键) 解析为本地 ID
// 远端不保证被引用实体先于引用方出现，首次见到的引用立即落一条
// 占位桩，保证同一轮内的前向引用解析结果一致，免去二次扫描
type ReferenceResolver struct {
	records repository.RecordRepository

	mu sync.Mutex
	// 本轮创建过的占位桩，运行结束后核对是否已被补全
	placeholders []PlaceholderRef
}

// PlaceholderRef 占位桩的种类 + 自然键
type PlaceholderRef struct {
	Kind model.Kind
	Code string
}

// NewReferenceResolver 创建解析器 (每轮同步一个实例)
func NewReferenceResolver(records repository.RecordRepository) *ReferenceResolver {
	return &ReferenceResolver{records: records}
}

// Resolve 按自然键查本地记录，缺失则创建占位桩并立即持久化
func (r *ReferenceResolver) Resolve(ctx context.Context, kind model.Kind, code string) (int64, error) {
	if code == "" {
		return 0, fmt.Errorf("%s 的引用 code 为空", kind)
	}

	rec, err := r.records.FindOneByField(ctx, kind, identifierColumn(kind), code)
	if err != nil {
		return 0, err
	}
	if rec != nil {
		return rec.GetID(), nil
	}

	// 占位桩：只填自然键，Updated 保持 false，
	// 等该种类自己被导入时由真实数据补全
	stub, ok := repository.NewRecordOfKind(kind)
	if !ok {
		return 0, fmt.Errorf("未注册的实体种类: %s", kind)
	}
	stub.SetNaturalKey(code)

	if err := r.records.Save(ctx, stub); err != nil {
		return 0, err
	}

	log.Printf("[Resolver] 前向引用 %s[%s] 不存在，已创建占位记录 #%d", kind, code, stub.GetID())

	r.mu.Lock()
	r.placeholders = append(r.placeholders, PlaceholderRef{Kind: kind, Code: code})
	r.mu.Unlock()

	return stub.GetID(), nil
}

// Placeholders 本轮创建过的占位桩清单
func (r *ReferenceResolver) Placeholders() []PlaceholderRef {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PlaceholderRef, len(r.placeholders))
	copy(out, r.placeholders)
	return out
}
