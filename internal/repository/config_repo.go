package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"akeneo_bridge/internal/model"
)

// ConfigRepository 站点配置仓储 (单行记录)
type ConfigRepository interface {
	// Get 读取配置，不存在时返回空配置 (ID=0)
	Get(ctx context.Context) (*model.SiteConfig, error)
	Save(ctx context.Context, cfg *model.SiteConfig) error
}

type configRepo struct {
	db *gorm.DB
}

// NewConfigRepository 创建配置仓储
func NewConfigRepository(db *gorm.DB) ConfigRepository {
	return &configRepo{db: db}
}

func (r *configRepo) Get(ctx context.Context) (*model.SiteConfig, error) {
	var cfg model.SiteConfig
	err := r.db.WithContext(ctx).Order("id").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.SiteConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepo) Save(ctx context.Context, cfg *model.SiteConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}
