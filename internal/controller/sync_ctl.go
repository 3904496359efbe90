package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"akeneo_bridge/internal/service"
)

// SyncController 同步触发与状态查询
type SyncController struct {
	importSvc *service.ImportService
}

func NewSyncController(importSvc *service.ImportService) *SyncController {
	return &SyncController{importSvc: importSvc}
}

// TriggerSync 手动触发一轮全量同步 (同步执行，完成后返回报告)
// 成功时响应头带 X-Status: Synced；已有同步在跑返回 409
func (c *SyncController) TriggerSync(ctx *gin.Context) {
	var opts service.ImportOptions
	if ctx.Query("verbose") == "1" || ctx.Query("verbose") == "true" {
		opts.Verbose = true
	}

	report, err := c.importSvc.Run(ctx.Request.Context(), opts)
	if errors.Is(err, service.ErrSyncInProgress) {
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		// 致命错误 (授权失败)，报告里带 fatal_error
		ctx.JSON(http.StatusBadGateway, report)
		return
	}

	ctx.Header("X-Status", "Synced")
	ctx.JSON(http.StatusOK, report)
}

// GetReport 最近一轮完整报告，尚未跑过返回 404
func (c *SyncController) GetReport(ctx *gin.Context) {
	report := c.importSvc.LastReport()
	if report == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "尚无同步记录"})
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// GetStatus 当前运行状态 + 最近一轮报告
func (c *SyncController) GetStatus(ctx *gin.Context) {
	resp := gin.H{
		"state": c.importSvc.State().String(),
	}
	if report := c.importSvc.LastReport(); report != nil {
		resp["last_report"] = report
	}
	ctx.JSON(http.StatusOK, resp)
}
