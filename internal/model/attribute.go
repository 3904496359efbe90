package model

// ==================== 属性组 ====================

// ProductAttributeGroup 属性分组，属性的归属容器
type ProductAttributeGroup struct {
	BaseModel
	AkeneoRecord
	Sort         int                `gorm:"default:0" json:"sort"`
	Translations []LabelTranslation `gorm:"polymorphic:Owner;polymorphicValue:attribute_group" json:"translations,omitempty"`
}

func (ProductAttributeGroup) TableName() string {
	return "akeneo_product_attribute_groups"
}

func (*ProductAttributeGroup) RecordKind() Kind {
	return KindAttributeGroup
}

// ==================== 属性 ====================

// ProductAttribute 产品属性定义
type ProductAttribute struct {
	BaseModel
	AkeneoRecord
	// Akeneo 属性类型，如 pim_catalog_text / pim_catalog_simpleselect
	Type        string `gorm:"size:100" json:"type"`
	Localizable bool   `gorm:"default:false" json:"localizable"`
	Scopable    bool   `gorm:"default:false" json:"scopable"`
	Sort        int    `gorm:"default:0" json:"sort"`

	GroupID int64                  `gorm:"index;default:0" json:"group_id"`
	Group   *ProductAttributeGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`

	Translations []LabelTranslation `gorm:"polymorphic:Owner;polymorphicValue:attribute" json:"translations,omitempty"`
}

func (ProductAttribute) TableName() string {
	return "akeneo_product_attributes"
}

func (*ProductAttribute) RecordKind() Kind {
	return KindAttribute
}

// ==================== 属性选项 ====================

// ProductAttributeOption select 类属性的可选值
type ProductAttributeOption struct {
	BaseModel
	AkeneoRecord
	Sort int `gorm:"default:0" json:"sort"`

	AttributeID int64             `gorm:"index;default:0" json:"attribute_id"`
	Attribute   *ProductAttribute `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"`

	Translations []LabelTranslation `gorm:"polymorphic:Owner;polymorphicValue:attribute_option" json:"translations,omitempty"`
}

func (ProductAttributeOption) TableName() string {
	return "akeneo_product_attribute_options"
}

func (*ProductAttributeOption) RecordKind() Kind {
	return KindAttributeOption
}
