package service

import (
	"context"
	"testing"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
)

func TestResolve_CreatesPlaceholderOnce(t *testing.T) {
	db := setupSyncTestDB(t)
	records := repository.NewRecordRepository(db)
	resolver := NewReferenceResolver(records)
	ctx := context.Background()

	// 第一次解析：目标不存在，落占位桩
	id1, err := resolver.Resolve(ctx, model.KindCategory, "winter")
	if err != nil {
		t.Fatalf("首次解析失败: %v", err)
	}
	if id1 <= 0 {
		t.Fatalf("占位桩 ID 非法: %d", id1)
	}

	// 第二次解析同一引用：复用同一条记录
	id2, err := resolver.Resolve(ctx, model.KindCategory, "winter")
	if err != nil {
		t.Fatalf("二次解析失败: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("同一引用解析出不同 ID: %d != %d", id1, id2)
	}

	var count int64
	db.Model(&model.ProductCategory{}).Count(&count)
	if count != 1 {
		t.Fatalf("期望 1 条分类记录，实际 %d", count)
	}

	// 占位桩 Updated 保持 false
	rec, _ := records.FindOneByField(ctx, model.KindCategory, "code", "winter")
	if rec.WasUpdated() {
		t.Error("占位桩不应带 Updated 标记")
	}

	placeholders := resolver.Placeholders()
	if len(placeholders) != 1 {
		t.Fatalf("占位桩清单应只有 1 条，实际 %d", len(placeholders))
	}
}

func TestResolve_ExistingRecordNotDuplicated(t *testing.T) {
	db := setupSyncTestDB(t)
	records := repository.NewRecordRepository(db)
	resolver := NewReferenceResolver(records)
	ctx := context.Background()

	existing := &model.Family{}
	existing.SetNaturalKey("shoes")
	existing.MarkUpdated(true)
	if err := records.Save(ctx, existing); err != nil {
		t.Fatalf("预置记录失败: %v", err)
	}

	id, err := resolver.Resolve(ctx, model.KindFamily, "shoes")
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if id != existing.ID {
		t.Fatalf("应解析到已有记录 %d，实际 %d", existing.ID, id)
	}
	if len(resolver.Placeholders()) != 0 {
		t.Error("命中已有记录时不应登记占位桩")
	}
}

func TestResolve_ProductUsesIdentifierColumn(t *testing.T) {
	db := setupSyncTestDB(t)
	records := repository.NewRecordRepository(db)
	resolver := NewReferenceResolver(records)
	ctx := context.Background()

	id, err := resolver.Resolve(ctx, model.KindProduct, "SKU-001")
	if err != nil {
		t.Fatalf("解析产品引用失败: %v", err)
	}

	rec, err := records.FindOneByField(ctx, model.KindProduct, "identifier", "SKU-001")
	if err != nil || rec == nil {
		t.Fatalf("按 identifier 查不到占位产品: %v", err)
	}
	if rec.GetID() != id {
		t.Fatalf("ID 不一致: %d != %d", rec.GetID(), id)
	}
}

func TestResolve_EmptyCodeRejected(t *testing.T) {
	db := setupSyncTestDB(t)
	resolver := NewReferenceResolver(repository.NewRecordRepository(db))

	if _, err := resolver.Resolve(context.Background(), model.KindCategory, ""); err == nil {
		t.Fatal("空 code 应该报错")
	}
}
