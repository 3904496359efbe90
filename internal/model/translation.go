package model

// LabelTranslation 本地化标签行
// 归属唯一的 (OwnerType, OwnerID) 记录和唯一的 Locale，
// 每次同步按远端 labels 做集合对账：新增/更新/删除全量对齐
type LabelTranslation struct {
	BaseModel
	OwnerType string `gorm:"size:50;not null;uniqueIndex:idx_owner_locale" json:"owner_type"`
	OwnerID   int64  `gorm:"not null;uniqueIndex:idx_owner_locale" json:"owner_id"`
	LocaleID  int64  `gorm:"not null;uniqueIndex:idx_owner_locale" json:"locale_id"`
	Locale    *Locale `gorm:"foreignKey:LocaleID" json:"locale,omitempty"`
	Label     string  `gorm:"size:255" json:"label"`
}

func (LabelTranslation) TableName() string {
	return "akeneo_label_translations"
}
