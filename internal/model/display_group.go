package model

// ==================== 展示组 ====================

// DisplayGroup 属性展示分组，本地维护的层级结构 (不从 Akeneo 同步)
// IsRootGroup 由父边数量推导，每次保存重算，禁止直接设置
type DisplayGroup struct {
	BaseModel
	Title       string `gorm:"size:255" json:"title"`
	IsRootGroup bool   `gorm:"default:false" json:"is_root_group"`
}

func (DisplayGroup) TableName() string {
	return "akeneo_display_groups"
}

// HierarchyMaxDepth 层级遍历深度上限
// 结构上假定为 DAG 但 schema 不强制，遍历必须防御环
const HierarchyMaxDepth = 20

// ==================== 层级边 ====================

// DisplayGroupEdge 组间父子边，SortOrder 是边上的排序元数据
// 边不归属任何一端独占，两端存在则边存在
type DisplayGroupEdge struct {
	ID        int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ParentID  int64 `gorm:"not null;uniqueIndex:idx_dg_edge" json:"parent_id"`
	ChildID   int64 `gorm:"not null;uniqueIndex:idx_dg_edge" json:"child_id"`
	SortOrder int   `gorm:"default:0" json:"sort_order"`
}

func (DisplayGroupEdge) TableName() string {
	return "akeneo_display_group_edges"
}

// ==================== 属性挂载 ====================

// DisplayGroupAttribute 组与产品属性的挂载边
type DisplayGroupAttribute struct {
	ID          int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	GroupID     int64 `gorm:"not null;uniqueIndex:idx_dg_attr" json:"group_id"`
	AttributeID int64 `gorm:"not null;uniqueIndex:idx_dg_attr" json:"attribute_id"`
	SortOrder   int   `gorm:"default:0" json:"sort_order"`
}

func (DisplayGroupAttribute) TableName() string {
	return "akeneo_display_group_attributes"
}
