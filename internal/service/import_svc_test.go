package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
	"akeneo_bridge/pkg/akeneo"
)

func rawItems(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item))
	}
	return out
}

// ==================== 前向引用场景 ====================

// 两页分类：A 引用了只在第二页出现的父分类 C
// 期望：C 先以占位桩落库，真实数据到达后按同一自然键补全，总数不变
func TestRun_CategoryForwardReference(t *testing.T) {
	db := setupSyncTestDB(t)
	seedTestConfig(t, db)

	fake := newFakeClient()
	fake.addPages("locales", &akeneo.Page{
		Items: rawItems(`{"code":"en_US","enabled":true}`),
	})
	fake.addPages("categories",
		&akeneo.Page{Items: rawItems(
			`{"code":"A","parent":"C","labels":{"en_US":"Alpha"}}`,
			`{"code":"B","labels":{"en_US":"Beta"}}`,
		)},
		&akeneo.Page{Items: rawItems(
			`{"code":"C","labels":{"en_US":"Gamma"}}`,
		)},
	)

	svc := newTestImportService(db, fake)
	report, err := svc.Run(context.Background(), ImportOptions{})
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}
	if report.State != RunStateCompleted {
		t.Fatalf("期望 Completed，实际 %s", report.StateLabel)
	}

	var count int64
	db.Model(&model.ProductCategory{}).Count(&count)
	if count != 3 {
		t.Fatalf("期望 3 条分类 (无重复)，实际 %d", count)
	}

	records := repository.NewRecordRepository(db)
	ctx := context.Background()

	a, _ := records.FindOneByField(ctx, model.KindCategory, "code", "A")
	c, _ := records.FindOneByField(ctx, model.KindCategory, "code", "C")
	if a == nil || c == nil {
		t.Fatal("A 或 C 未落库")
	}
	if a.(*model.ProductCategory).ParentID != c.GetID() {
		t.Errorf("A 的父引用应指向 C (#%d)，实际 %d", c.GetID(), a.(*model.ProductCategory).ParentID)
	}
	if !c.WasUpdated() {
		t.Error("C 被真实数据补全后应带 Updated 标记")
	}

	kr := report.KindReport(model.KindCategory)
	if kr.Seen != 3 || kr.Failed != 0 {
		t.Errorf("分类计数错误: seen=%d failed=%d", kr.Seen, kr.Failed)
	}
	// A、B 新建；C 先由解析器落占位桩，条目到达时按已有记录更新
	if kr.Created != 2 || kr.Updated != 1 {
		t.Errorf("created/updated 计数错误: created=%d updated=%d", kr.Created, kr.Updated)
	}

	// 占位桩已补全，不应再出现在告警里
	for _, warning := range report.Warnings {
		if strings.Contains(warning, "category[C]") {
			t.Errorf("已补全的占位桩不应告警: %s", warning)
		}
	}

	// 分类排序按本轮全局序号
	catA := a.(*model.ProductCategory)
	if catA.Sort != 0 {
		t.Errorf("A 的排序应为 0，实际 %d", catA.Sort)
	}
}

// ==================== 逐条失败隔离 ====================

func TestRun_PerItemFailureIsolation(t *testing.T) {
	db := setupSyncTestDB(t)
	seedTestConfig(t, db)

	fake := newFakeClient()
	fake.addPages("categories", &akeneo.Page{
		Items: rawItems(
			`{"code":"ok_1"}`,
			`{"parent":"x"}`, // 缺 code
			`{"code":"ok_2"}`,
		),
	})

	svc := newTestImportService(db, fake)
	report, err := svc.Run(context.Background(), ImportOptions{})
	if err != nil {
		t.Fatalf("同步不应整体失败: %v", err)
	}
	if report.State != RunStateCompleted {
		t.Fatalf("有逐条失败也应 Completed，实际 %s", report.StateLabel)
	}

	kr := report.KindReport(model.KindCategory)
	if kr.Seen != 3 || kr.Failed != 1 || kr.Created != 2 {
		t.Errorf("计数错误: seen=%d created=%d failed=%d", kr.Seen, kr.Created, kr.Failed)
	}
	if len(kr.Failures) != 1 {
		t.Fatalf("失败清单应有 1 条，实际 %d", len(kr.Failures))
	}
	if !report.HasFailures() {
		t.Error("HasFailures 应为 true")
	}

	var count int64
	db.Model(&model.ProductCategory{}).Count(&count)
	if count != 2 {
		t.Fatalf("合法条目应照常落库，期望 2 实际 %d", count)
	}
}

// ==================== 页请求失败 ====================

func TestRun_TransportErrorSkipsResource(t *testing.T) {
	db := setupSyncTestDB(t)
	seedTestConfig(t, db)

	fake := newFakeClient()
	fake.fetchErr["categories"] = &akeneo.TransportError{Resource: "categories", Status: 502}
	fake.addPages("locales", &akeneo.Page{
		Items: rawItems(`{"code":"en_US","enabled":true}`),
	})

	svc := newTestImportService(db, fake)
	report, err := svc.Run(context.Background(), ImportOptions{})
	if err != nil {
		t.Fatalf("页失败不应导致整轮失败: %v", err)
	}
	if report.State != RunStateCompleted {
		t.Fatalf("期望 Completed，实际 %s", report.StateLabel)
	}

	if report.KindReport(model.KindCategory).Failed != 1 {
		t.Error("分类资源失败应记入失败清单")
	}
	if report.KindReport(model.KindLocale).Created != 1 {
		t.Error("其他种类应不受影响")
	}
}

// ==================== 授权失败 ====================

func TestRun_AuthFailureIsFatal(t *testing.T) {
	db := setupSyncTestDB(t)
	seedTestConfig(t, db)

	fake := newFakeClient()
	fake.authErr = &akeneo.AuthError{Status: 401, Message: "bad credentials"}

	svc := newTestImportService(db, fake)
	report, err := svc.Run(context.Background(), ImportOptions{})
	if err == nil {
		t.Fatal("授权失败应返回错误")
	}
	if report.State != RunStateFailed {
		t.Fatalf("期望 Failed，实际 %s", report.StateLabel)
	}
	if report.FatalError == "" {
		t.Error("FatalError 应非空")
	}
	if !IsFatal(err) {
		t.Error("授权错误应判定为致命")
	}

	// 失败后状态机必须回 Idle，下一轮可以再触发
	if svc.State() != RunStateIdle {
		t.Errorf("运行结束后状态应回 Idle，实际 %s", svc.State())
	}
}

// ==================== 互斥 ====================

func TestRun_MutualExclusion(t *testing.T) {
	db := setupSyncTestDB(t)
	seedTestConfig(t, db)

	svc := newTestImportService(db, newFakeClient())

	// 模拟另一轮在跑
	atomic.StoreInt32(&svc.state, int32(RunStateImporting))

	_, err := svc.Run(context.Background(), ImportOptions{})
	if !errors.Is(err, ErrSyncInProgress) {
		t.Fatalf("期望 ErrSyncInProgress，实际 %v", err)
	}

	atomic.StoreInt32(&svc.state, int32(RunStateIdle))
	if _, err := svc.Run(context.Background(), ImportOptions{}); err != nil {
		t.Fatalf("回到 Idle 后应可再触发: %v", err)
	}
}

// ==================== 幂等 ====================

func TestRun_SecondRunUpdatesInPlace(t *testing.T) {
	db := setupSyncTestDB(t)
	seedTestConfig(t, db)

	fake := newFakeClient()
	fake.addPages("categories", &akeneo.Page{
		Items: rawItems(`{"code":"A"}`, `{"code":"B"}`),
	})

	svc := newTestImportService(db, fake)
	if _, err := svc.Run(context.Background(), ImportOptions{}); err != nil {
		t.Fatalf("首轮失败: %v", err)
	}
	report, err := svc.Run(context.Background(), ImportOptions{})
	if err != nil {
		t.Fatalf("二轮失败: %v", err)
	}

	kr := report.KindReport(model.KindCategory)
	if kr.Created != 0 || kr.Updated != 2 {
		t.Errorf("二轮应全部就地更新: created=%d updated=%d", kr.Created, kr.Updated)
	}

	var count int64
	db.Model(&model.ProductCategory{}).Count(&count)
	if count != 2 {
		t.Fatalf("重复导入不应产生新记录，期望 2 实际 %d", count)
	}
}

// ==================== 陈旧检测 ====================

func TestRun_StaleRecordsWarned(t *testing.T) {
	db := setupSyncTestDB(t)
	seedTestConfig(t, db)

	records := repository.NewRecordRepository(db)
	gone := &model.ProductCategory{}
	gone.SetNaturalKey("discontinued")
	gone.MarkUpdated(true)
	if err := records.Save(context.Background(), gone); err != nil {
		t.Fatalf("预置记录失败: %v", err)
	}

	fake := newFakeClient()
	fake.addPages("categories", &akeneo.Page{
		Items: rawItems(`{"code":"A"}`),
	})

	svc := newTestImportService(db, fake)
	report, err := svc.Run(context.Background(), ImportOptions{})
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}

	found := false
	for _, warning := range report.Warnings {
		if strings.Contains(warning, "discontinued") {
			found = true
		}
	}
	if !found {
		t.Error("远端消失的记录应出现在告警里")
	}

	// 只告警不删除
	rec, _ := records.FindOneByField(context.Background(), model.KindCategory, "code", "discontinued")
	if rec == nil {
		t.Fatal("陈旧记录不应被删除")
	}
	if rec.WasUpdated() {
		t.Error("陈旧记录的 Updated 应已清零")
	}
}

// ==================== verbose 输出 ====================

func TestRun_VerboseOutputsSummaries(t *testing.T) {
	db := setupSyncTestDB(t)
	seedTestConfig(t, db)

	fake := newFakeClient()
	fake.addPages("locales", &akeneo.Page{
		Items: rawItems(`{"code":"en_US","enabled":true}`),
	})
	fake.addPages("categories", &akeneo.Page{
		Items: rawItems(`{"code":"A","labels":{"en_US":"Alpha"}}`),
	})

	svc := newTestImportService(db, fake)
	report, err := svc.Run(context.Background(), ImportOptions{Verbose: true})
	if err != nil {
		t.Fatalf("同步失败: %v", err)
	}

	if len(report.Output) == 0 {
		t.Fatal("verbose 模式应有逐条输出")
	}
	found := false
	for _, line := range report.Output {
		if strings.Contains(line, "Alpha") {
			found = true
		}
	}
	if !found {
		t.Errorf("摘要里应包含分类标签，实际: %v", report.Output)
	}
}
