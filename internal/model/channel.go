package model

import "github.com/lib/pq"

// Channel 销售渠道 (Akeneo scope)，决定产品取值的作用域
type Channel struct {
	BaseModel
	AkeneoRecord
	// 远端原始的 locale / currency code 列表
	LocaleCodes   pq.StringArray `gorm:"type:text[]" json:"locale_codes"`
	CurrencyCodes pq.StringArray `gorm:"type:text[]" json:"currency_codes"`
	// 渠道树根分类
	CategoryTreeID int64            `gorm:"default:0" json:"category_tree_id"`
	Translations   []LabelTranslation `gorm:"polymorphic:Owner;polymorphicValue:channel" json:"translations,omitempty"`
}

func (Channel) TableName() string {
	return "akeneo_channels"
}

func (*Channel) RecordKind() Kind {
	return KindChannel
}
