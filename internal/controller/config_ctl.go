package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"akeneo_bridge/internal/service"
	"akeneo_bridge/pkg/akeneo"
)

// ConfigController 站点配置管理
type ConfigController struct {
	configSvc *service.ConfigService
}

func NewConfigController(configSvc *service.ConfigService) *ConfigController {
	return &ConfigController{configSvc: configSvc}
}

// GetConfig 读取当前配置 (密钥字段不回显)
func (c *ConfigController) GetConfig(ctx *gin.Context) {
	cfg, err := c.configSvc.Get(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// UpdateConfig 部分更新配置，未提交的密钥字段保留原值
func (c *ConfigController) UpdateConfig(ctx *gin.Context) {
	var req service.ConfigUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	cfg, err := c.configSvc.Update(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// ListChannels 拉取远端渠道列表 (配置界面选 scope 用)
func (c *ConfigController) ListChannels(ctx *gin.Context) {
	channels, err := c.configSvc.ListRemoteChannels(ctx.Request.Context())
	if err != nil {
		var authErr *akeneo.AuthError
		if errors.As(err, &authErr) {
			ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"channels": channels})
}
