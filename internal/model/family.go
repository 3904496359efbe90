package model

import "github.com/lib/pq"

// ==================== 产品族 ====================

// Family 产品族，定义一组产品共享的属性集合
type Family struct {
	BaseModel
	AkeneoRecord
	// 用作产品展示名的属性 code
	AttributeAsLabel string `gorm:"size:255" json:"attribute_as_label"`
	// 远端原始属性 code 列表
	AttributeCodes pq.StringArray `gorm:"type:text[]" json:"attribute_codes"`

	Translations []LabelTranslation `gorm:"polymorphic:Owner;polymorphicValue:family" json:"translations,omitempty"`
}

func (Family) TableName() string {
	return "akeneo_families"
}

func (*Family) RecordKind() Kind {
	return KindFamily
}

// ==================== 产品族变体 ====================

// FamilyVariant 族内变体结构 (决定 product model 的轴属性)
type FamilyVariant struct {
	BaseModel
	AkeneoRecord

	FamilyID int64   `gorm:"index;default:0" json:"family_id"`
	Family   *Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`

	Translations []LabelTranslation `gorm:"polymorphic:Owner;polymorphicValue:family_variant" json:"translations,omitempty"`
}

func (FamilyVariant) TableName() string {
	return "akeneo_family_variants"
}

func (*FamilyVariant) RecordKind() Kind {
	return KindFamilyVariant
}
