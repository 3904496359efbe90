package model

// Locale 语言区域 (如 en_US)，被翻译行和渠道引用
type Locale struct {
	BaseModel
	AkeneoRecord
	Enabled bool `gorm:"default:false" json:"enabled"`
}

func (Locale) TableName() string {
	return "akeneo_locales"
}

func (*Locale) RecordKind() Kind {
	return KindLocale
}
