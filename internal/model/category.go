package model

// ProductCategory 产品分类树
// Sort 来自远端分页中的出现位置，整轮全量导入后即为全局顺序
type ProductCategory struct {
	BaseModel
	AkeneoRecord
	Sort int `gorm:"default:0" json:"sort"`

	ParentID int64            `gorm:"index;default:0" json:"parent_id"`
	Parent   *ProductCategory `gorm:"foreignKey:ParentID" json:"parent,omitempty"`

	Translations []LabelTranslation `gorm:"polymorphic:Owner;polymorphicValue:category" json:"translations,omitempty"`
}

func (ProductCategory) TableName() string {
	return "akeneo_product_categories"
}

func (*ProductCategory) RecordKind() Kind {
	return KindCategory
}
