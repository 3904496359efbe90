package model

// SiteConfig Akeneo 连接配置 (单行记录，后台可编辑)
type SiteConfig struct {
	BaseModel
	AkeneoURL      string `gorm:"size:255" json:"akeneo_url"`
	AkeneoClientID string `gorm:"size:255" json:"akeneo_client_id"`
	AkeneoSecret   string `gorm:"size:100" json:"-"`
	AkeneoUsername string `gorm:"size:100" json:"akeneo_username"`
	AkeneoPassword string `gorm:"size:100" json:"-"`
	// 选中的同步渠道 (scope)，为空则不限定
	AkeneoChannel string `gorm:"size:100" json:"akeneo_channel"`
	// 展示组功能开关，关闭时相关后台接口整体不可见
	EnableDisplayGroups bool `gorm:"default:false" json:"enable_display_groups"`
}

func (SiteConfig) TableName() string {
	return "akeneo_site_config"
}

// HasCredentials 凭据五要素是否齐备
func (c *SiteConfig) HasCredentials() bool {
	return c.AkeneoURL != "" &&
		c.AkeneoClientID != "" &&
		c.AkeneoSecret != "" &&
		c.AkeneoUsername != "" &&
		c.AkeneoPassword != ""
}
