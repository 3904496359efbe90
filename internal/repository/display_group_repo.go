package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"akeneo_bridge/internal/model"
)

// ==================== 接口定义 ====================

// DisplayGroupRepository 展示组仓储
// 层级边是共享的 join 行，端点存在则边存在，删组时一并清理两侧的边
type DisplayGroupRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, group *model.DisplayGroup) error
	GetByID(ctx context.Context, id int64) (*model.DisplayGroup, error)
	Save(ctx context.Context, group *model.DisplayGroup) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, rootOnly *bool) ([]model.DisplayGroup, error)

	// 层级边
	CountParents(ctx context.Context, groupID int64) (int64, error)
	ChildEdges(ctx context.Context, parentID int64) ([]model.DisplayGroupEdge, error)
	AttachChild(ctx context.Context, parentID, childID int64, sortOrder int) error
	DetachChild(ctx context.Context, parentID, childID int64) error

	// 属性挂载边
	AttributeEdges(ctx context.Context, groupID int64) ([]model.DisplayGroupAttribute, error)
	AttachAttribute(ctx context.Context, groupID, attributeID int64, sortOrder int) error
	DetachAttribute(ctx context.Context, groupID, attributeID int64) error
}

// ==================== 仓储实现 ====================

type displayGroupRepo struct {
	db *gorm.DB
}

// NewDisplayGroupRepository 创建展示组仓储
func NewDisplayGroupRepository(db *gorm.DB) DisplayGroupRepository {
	return &displayGroupRepo{db: db}
}

func (r *displayGroupRepo) Create(ctx context.Context, group *model.DisplayGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *displayGroupRepo) GetByID(ctx context.Context, id int64) (*model.DisplayGroup, error) {
	var group model.DisplayGroup
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *displayGroupRepo) Save(ctx context.Context, group *model.DisplayGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *displayGroupRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先清两侧的边，再删组本身
		if err := tx.Where("parent_id = ? OR child_id = ?", id, id).
			Delete(&model.DisplayGroupEdge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).
			Delete(&model.DisplayGroupAttribute{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.DisplayGroup{}, id).Error
	})
}

func (r *displayGroupRepo) List(ctx context.Context, rootOnly *bool) ([]model.DisplayGroup, error) {
	var groups []model.DisplayGroup
	query := r.db.WithContext(ctx).Model(&model.DisplayGroup{})
	if rootOnly != nil {
		query = query.Where("is_root_group = ?", *rootOnly)
	}
	if err := query.Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *displayGroupRepo) CountParents(ctx context.Context, groupID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DisplayGroupEdge{}).
		Where("child_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *displayGroupRepo) ChildEdges(ctx context.Context, parentID int64) ([]model.DisplayGroupEdge, error) {
	var edges []model.DisplayGroupEdge
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("sort_order").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *displayGroupRepo) AttachChild(ctx context.Context, parentID, childID int64, sortOrder int) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "parent_id"}, {Name: "child_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sort_order"}),
		}).
		Create(&model.DisplayGroupEdge{
			ParentID:  parentID,
			ChildID:   childID,
			SortOrder: sortOrder,
		}).Error
}

func (r *displayGroupRepo) DetachChild(ctx context.Context, parentID, childID int64) error {
	return r.db.WithContext(ctx).
		Where("parent_id = ? AND child_id = ?", parentID, childID).
		Delete(&model.DisplayGroupEdge{}).Error
}

func (r *displayGroupRepo) AttributeEdges(ctx context.Context, groupID int64) ([]model.DisplayGroupAttribute, error) {
	var edges []model.DisplayGroupAttribute
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("sort_order").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *displayGroupRepo) AttachAttribute(ctx context.Context, groupID, attributeID int64, sortOrder int) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}, {Name: "attribute_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"sort_order"}),
		}).
		Create(&model.DisplayGroupAttribute{
			GroupID:     groupID,
			AttributeID: attributeID,
			SortOrder:   sortOrder,
		}).Error
}

func (r *displayGroupRepo) DetachAttribute(ctx context.Context, groupID, attributeID int64) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND attribute_id = ?", groupID, attributeID).
		Delete(&model.DisplayGroupAttribute{}).Error
}
