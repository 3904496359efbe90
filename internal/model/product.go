package model

import (
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ==================== 产品模型 ====================

// ProductModel 带变体的产品聚合 (Akeneo product model)
type ProductModel struct {
	BaseModel
	AkeneoRecord

	FamilyVariantID int64          `gorm:"index;default:0" json:"family_variant_id"`
	FamilyVariant   *FamilyVariant `gorm:"foreignKey:FamilyVariantID" json:"family_variant,omitempty"`

	// 上级 product model (两级变体时存在)
	ParentID int64         `gorm:"index;default:0" json:"parent_id"`
	Parent   *ProductModel `gorm:"foreignKey:ParentID" json:"parent,omitempty"`

	// 远端原始分类 code 列表 + 解析后的关联
	CategoryCodes pq.StringArray    `gorm:"type:text[]" json:"category_codes"`
	Categories    []ProductCategory `gorm:"many2many:akeneo_product_model_categories" json:"categories,omitempty"`

	// 渠道作用域下的属性值原始负载
	Values datatypes.JSON `gorm:"type:jsonb" json:"values"`

	Translations []LabelTranslation `gorm:"polymorphic:Owner;polymorphicValue:product_model" json:"translations,omitempty"`
}

func (ProductModel) TableName() string {
	return "akeneo_product_models"
}

func (*ProductModel) RecordKind() Kind {
	return KindProductModel
}

// ==================== 产品 ====================

// Product 可售产品
// 自然键是 Identifier (Akeneo 侧 SKU)，不是 code
type Product struct {
	BaseModel
	Identifier string `gorm:"size:255;uniqueIndex;not null" json:"identifier"`
	Updated    bool   `gorm:"default:false" json:"updated"`
	Enabled    bool   `gorm:"default:false" json:"enabled"`

	FamilyID int64   `gorm:"index;default:0" json:"family_id"`
	Family   *Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`

	// 所属 product model (无变体产品为 0)
	ParentID int64         `gorm:"index;default:0" json:"parent_id"`
	Parent   *ProductModel `gorm:"foreignKey:ParentID" json:"parent,omitempty"`

	CategoryCodes pq.StringArray    `gorm:"type:text[]" json:"category_codes"`
	Categories    []ProductCategory `gorm:"many2many:akeneo_product_categories_link" json:"categories,omitempty"`

	Values datatypes.JSON `gorm:"type:jsonb" json:"values"`
}

func (Product) TableName() string {
	return "akeneo_products"
}

func (*Product) RecordKind() Kind {
	return KindProduct
}

func (p *Product) NaturalKey() string        { return p.Identifier }
func (p *Product) SetNaturalKey(code string) { p.Identifier = code }
func (p *Product) MarkUpdated(updated bool)  { p.Updated = updated }
func (p *Product) WasUpdated() bool          { return p.Updated }
