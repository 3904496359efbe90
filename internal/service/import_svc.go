package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== 导入服务 ====================

// ImportService 整轮同步的编排器
// 同一时刻只允许一轮在跑：状态机 Idle → Authorizing → Importing →
// Completed | Failed，非 Idle 时再触发直接拒绝
type ImportService struct {
	records      repository.RecordRepository
	catalog      repository.CatalogRepository
	translations repository.TranslationRepository
	configRepo   repository.ConfigRepository
	storage      *StorageService

	// newClient 可注入，测试时替换为假客户端
	newClient func(akeneo.Credentials) akeneo.Client

	state int32 // RunState，原子读写

	mu         sync.Mutex
	lastReport *ImportReport
}

// NewImportService 创建导入服务
func NewImportService(
	records repository.RecordRepository,
	catalog repository.CatalogRepository,
	translations repository.TranslationRepository,
	configRepo repository.ConfigRepository,
	storage *StorageService,
) *ImportService {
	return &ImportService{
		records:      records,
		catalog:      catalog,
		translations: translations,
		configRepo:   configRepo,
		storage:      storage,
		newClient:    akeneo.NewClient,
	}
}

// State 当前运行状态
func (s *ImportService) State() RunState {
	return RunState(atomic.LoadInt32(&s.state))
}

// LastReport 最近一轮的报告 (没跑过返回 nil)
func (s *ImportService) LastReport() *ImportReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}

// Run 执行一轮全量同步
// 授权失败是唯一的致命错误；逐条失败只记入报告，整轮照常 Completed
func (s *ImportService) Run(ctx context.Context, opts ImportOptions) (*ImportReport, error) {
	// 互斥门：只有 Idle 能进
	if !atomic.CompareAndSwapInt32(&s.state, int32(RunStateIdle), int32(RunStateAuthorizing)) {
		return nil, ErrSyncInProgress
	}
	defer atomic.StoreInt32(&s.state, int32(RunStateIdle))

	report := &ImportReport{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	defer func() {
		s.mu.Lock()
		s.lastReport = report
		s.mu.Unlock()
	}()

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		report.FatalError = err.Error()
		report.finish(RunStateFailed)
		return report, err
	}

	client := s.newClient(akeneo.Credentials{
		BaseURL:  cfg.AkeneoURL,
		ClientID: cfg.AkeneoClientID,
		Secret:   cfg.AkeneoSecret,
		Username: cfg.AkeneoUsername,
		Password: cfg.AkeneoPassword,
	})

	log.Printf("[Import] 同步开始 run=%s channel=%q", report.RunID, cfg.AkeneoChannel)

	if err := client.Authorize(ctx); err != nil {
		log.Printf("[Import] 授权失败: %v", err)
		report.FatalError = err.Error()
		report.finish(RunStateFailed)
		return report, err
	}

	atomic.StoreInt32(&s.state, int32(RunStateImporting))

	resolver := NewReferenceResolver(s.records)
	deps := &importerDeps{
		records:      s.records,
		catalog:      s.catalog,
		translations: s.translations,
		resolver:     resolver,
		client:       client,
		storage:      s.storage,
		channel:      cfg.AkeneoChannel,
	}
	labels := NewLabelSynchronizer(resolver, s.translations)

	importers := buildImporters(deps)
	for _, imp := range importers {
		s.importKind(ctx, imp, client, labels, report, opts)
	}

	// 收尾告警：残留占位桩 + 远端未触达的本地记录
	// 占位桩如果后来被同种类的真实数据补全 (Updated=true) 就不算残留
	for _, ref := range resolver.Placeholders() {
		rec, err := s.records.FindOneByField(ctx, ref.Kind, identifierColumn(ref.Kind), ref.Code)
		if err != nil || rec == nil {
			continue
		}
		if !rec.WasUpdated() {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("占位记录 %s[%s] 在本轮结束后仍未被真实数据补全", ref.Kind, ref.Code))
		}
	}
	for _, imp := range importers {
		s.staleWarnings(ctx, imp.Kind(), report)
	}

	report.finish(RunStateCompleted)
	log.Printf("[Import] 同步完成 run=%s 逐条失败=%v 耗时=%s",
		report.RunID, report.HasFailures(), report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	return report, nil
}

// importKind 导入单一种类：逐资源、逐页、逐条
// 页请求失败放弃该资源余下的页，种类内其他资源与后续种类照常
func (s *ImportService) importKind(ctx context.Context, imp EntityImporter, client akeneo.Client, labels *LabelSynchronizer, report *ImportReport, opts ImportOptions) {
	kind := imp.Kind()
	kr := report.KindReport(kind)

	if err := s.records.ResetUpdated(ctx, kind); err != nil {
		kr.Fail(string(kind), err)
		return
	}

	resources, err := imp.Resources(ctx)
	if err != nil {
		kr.Fail(string(kind), err)
		return
	}

	// position 跨资源跨页连续，分类排序依赖它
	position := 0

	for _, resource := range resources {
		pageURL := ""
		for {
			page, err := client.FetchPage(ctx, resource, pageURL)
			if err != nil {
				kr.Fail(resource, err)
				break
			}

			for _, raw := range page.Items {
				s.importItem(ctx, imp, labels, resource, raw, position, kr, report, opts)
				position++
			}

			if page.NextURL == "" {
				break
			}
			pageURL = page.NextURL
		}
	}

	log.Printf("[Import] %s: seen=%d created=%d updated=%d failed=%d",
		kind, kr.Seen, kr.Created, kr.Updated, kr.Failed)
}

// importItem 导入单条：找或建 → 解析引用 → 填充 → 落库 → 标签 → 后处理
// 任一步失败只记入该条的失败清单，已落库的部分不回滚
func (s *ImportService) importItem(ctx context.Context, imp EntityImporter, labels *LabelSynchronizer, resource string, raw []byte, position int, kr *KindReport, report *ImportReport, opts ImportOptions) {
	kind := imp.Kind()
	kr.Seen++

	key, err := imp.Identifier(raw)
	if err != nil {
		kr.Fail("?", err)
		return
	}

	rec, err := s.records.FindOneByField(ctx, kind, imp.IdentifierField(), key)
	if err != nil {
		kr.Fail(key, &PersistenceError{Kind: kind, Key: key, Err: err})
		return
	}

	// 自然键对账：命中就地更新 (占位桩在这里被真实数据补全)，
	// 未命中才新建，绝不按远端自增 ID 匹配
	created := rec == nil
	if created {
		rec, _ = repository.NewRecordOfKind(kind)
		rec.SetNaturalKey(key)
	}

	refs, err := imp.ResolveReferences(ctx, resource, raw)
	if err != nil {
		kr.Fail(key, err)
		return
	}

	if err := imp.Populate(ctx, rec, raw, refs, position); err != nil {
		kr.Fail(key, err)
		return
	}

	if err := s.records.Save(ctx, rec); err != nil {
		kr.Fail(key, &PersistenceError{Kind: kind, Key: key, Err: err})
		return
	}

	if labelMap := imp.Labels(raw); len(labelMap) > 0 {
		if err := labels.SyncLabels(ctx, rec, labelMap); err != nil {
			kr.Fail(key, err)
			return
		}
	}

	if ps, ok := imp.(postSaver); ok {
		if err := ps.AfterSave(ctx, rec); err != nil {
			kr.Fail(key, err)
			return
		}
	}

	if created {
		kr.Created++
	} else {
		kr.Updated++
	}

	if opts.Verbose {
		report.Output = append(report.Output, imp.Summary(ctx, rec))
	}
}

// staleWarnings 远端本轮没触达的本地记录只告警不删，删除交给人工
func (s *ImportService) staleWarnings(ctx context.Context, kind model.Kind, report *ImportReport) {
	keys, err := s.records.StaleKeys(ctx, kind)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%s 陈旧记录检查失败: %v", kind, err))
		return
	}
	for _, key := range keys {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("%s[%s] 本轮未在远端出现，可能已被删除", kind, key))
	}
}

// IsFatal 错误是否致命 (授权失败)
func IsFatal(err error) bool {
	var authErr *akeneo.AuthError
	return errors.As(err, &authErr)
}
