package task

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"akeneo_bridge/internal/service"
)

// ==================== 定时同步任务 ====================

// ImportTask 每日全量同步
// 互斥由 ImportService 的状态机保证：撞上手动触发的同步时本轮直接跳过
type ImportTask struct {
	importSvc *service.ImportService
	Cron      *cron.Cron

	// 单轮同步超时
	timeout time.Duration
	// cron 表达式 (秒级)，默认每天 03:00
	schedule string
}

// NewImportTask 创建定时同步任务
func NewImportTask(importSvc *service.ImportService) *ImportTask {
	return &ImportTask{
		importSvc: importSvc,
		Cron:      cron.New(cron.WithSeconds()),
		timeout:   2 * time.Hour,
		schedule:  "0 0 3 * * *",
	}
}

// SetSchedule 覆盖默认执行时间
func (t *ImportTask) SetSchedule(spec string) {
	t.schedule = spec
}

// Start 启动定时任务
func (t *ImportTask) Start() {
	_, err := t.Cron.AddFunc(t.schedule, func() {
		t.runJob()
	})
	if err != nil {
		log.Fatalf("无法启动 Akeneo 定时同步任务: %v", err)
	}

	t.Cron.Start()
	log.Printf("[Task] Akeneo 定时同步已启动 (cron=%q)", t.schedule)
}

// Stop 停止调度 (等待在跑的任务自然结束)
func (t *ImportTask) Stop() {
	t.Cron.Stop()
}

func (t *ImportTask) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	log.Println("[Task] 定时同步触发")
	report, err := t.importSvc.Run(ctx, service.ImportOptions{})
	if errors.Is(err, service.ErrSyncInProgress) {
		log.Println("[Task] 已有同步在跑，本轮跳过")
		return
	}
	if err != nil {
		log.Printf("[Task] 定时同步失败: %v", err)
		return
	}
	log.Printf("[Task] 定时同步结束 run=%s state=%s", report.RunID, report.StateLabel)
}
