package model

// ==================== 实体种类 ====================

// Kind 标识一类被同步的 Akeneo 实体
// 注意：顺序约束在 service 层定义 (被引用的种类必须先导入)
type Kind string

const (
	KindLocale          Kind = "locale"
	KindChannel         Kind = "channel"
	KindAttributeGroup  Kind = "attribute_group"
	KindAttribute       Kind = "attribute"
	KindAttributeOption Kind = "attribute_option"
	KindFamily          Kind = "family"
	KindFamilyVariant   Kind = "family_variant"
	KindCategory        Kind = "category"
	KindProductModel    Kind = "product_model"
	KindProduct         Kind = "product"
	KindMediaFile       Kind = "media_file"
)

// ==================== 记录抽象 ====================

// Record 本地记录的统一抽象，存储层按 Kind 路由到具体表
type Record interface {
	GetID() int64
	RecordKind() Kind
}

// ImportableRecord 参与 Akeneo 同步的记录
// 自然键 (Code / Identifier) 是远端与本地的唯一匹配依据，
// 本地自增 ID 不参与匹配
type ImportableRecord interface {
	Record
	NaturalKey() string
	SetNaturalKey(code string)
	MarkUpdated(updated bool)
	WasUpdated() bool
}

// AkeneoRecord 同步记录的公共字段
// Updated 在每轮导入前清零，导入后仍为 false 的记录即远端已不存在
type AkeneoRecord struct {
	Code    string `gorm:"size:255;uniqueIndex;not null" json:"code"`
	Updated bool   `gorm:"default:false" json:"updated"`
}

func (r *AkeneoRecord) NaturalKey() string         { return r.Code }
func (r *AkeneoRecord) SetNaturalKey(code string)  { r.Code = code }
func (r *AkeneoRecord) MarkUpdated(updated bool)   { r.Updated = updated }
func (r *AkeneoRecord) WasUpdated() bool           { return r.Updated }
