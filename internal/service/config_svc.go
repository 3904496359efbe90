package service

import (
	"context"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== 配置服务 ====================

// ConfigService 站点配置读写 + 渠道列表查询
type ConfigService struct {
	configRepo repository.ConfigRepository
	newClient  func(akeneo.Credentials) akeneo.Client
}

// NewConfigService 创建配置服务
func NewConfigService(configRepo repository.ConfigRepository) *ConfigService {
	return &ConfigService{
		configRepo: configRepo,
		newClient:  akeneo.NewClient,
	}
}

// Get 读取站点配置
func (s *ConfigService) Get(ctx context.Context) (*model.SiteConfig, error) {
	return s.configRepo.Get(ctx)
}

// ConfigUpdate 可更新字段，密钥类字段为 nil 表示保留原值
type ConfigUpdate struct {
	AkeneoURL           *string `json:"akeneo_url"`
	AkeneoClientID      *string `json:"akeneo_client_id"`
	AkeneoSecret        *string `json:"akeneo_secret"`
	AkeneoUsername      *string `json:"akeneo_username"`
	AkeneoPassword      *string `json:"akeneo_password"`
	AkeneoChannel       *string `json:"akeneo_channel"`
	EnableDisplayGroups *bool   `json:"enable_display_groups"`
}

// Update 部分更新站点配置
func (s *ConfigService) Update(ctx context.Context, upd ConfigUpdate) (*model.SiteConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if upd.AkeneoURL != nil {
		cfg.AkeneoURL = *upd.AkeneoURL
	}
	if upd.AkeneoClientID != nil {
		cfg.AkeneoClientID = *upd.AkeneoClientID
	}
	if upd.AkeneoSecret != nil {
		cfg.AkeneoSecret = *upd.AkeneoSecret
	}
	if upd.AkeneoUsername != nil {
		cfg.AkeneoUsername = *upd.AkeneoUsername
	}
	if upd.AkeneoPassword != nil {
		cfg.AkeneoPassword = *upd.AkeneoPassword
	}
	if upd.AkeneoChannel != nil {
		cfg.AkeneoChannel = *upd.AkeneoChannel
	}
	if upd.EnableDisplayGroups != nil {
		cfg.EnableDisplayGroups = *upd.EnableDisplayGroups
	}

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ListRemoteChannels 拉取远端全部渠道 (配置界面选 scope 用)
func (s *ConfigService) ListRemoteChannels(ctx context.Context) ([]akeneo.ChannelItem, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	client := s.newClient(akeneo.Credentials{
		BaseURL:  cfg.AkeneoURL,
		ClientID: cfg.AkeneoClientID,
		Secret:   cfg.AkeneoSecret,
		Username: cfg.AkeneoUsername,
		Password: cfg.AkeneoPassword,
	})
	if err := client.Authorize(ctx); err != nil {
		return nil, err
	}
	return client.GetChannels(ctx)
}

// DisplayGroupsEnabled 展示组功能是否开启
func (s *ConfigService) DisplayGroupsEnabled(ctx context.Context) (bool, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	return cfg.EnableDisplayGroups, nil
}
