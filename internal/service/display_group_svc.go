package service

import (
	"context"
	"fmt"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
)

// ==================== 展示组服务 ====================

// DisplayGroupService 展示组的层级与属性挂载维护
// IsRootGroup 是推导字段 (没有父边即根)，所有改边操作后重算受影响端点
type DisplayGroupService struct {
	groups repository.DisplayGroupRepository
}

// NewDisplayGroupService 创建展示组服务
func NewDisplayGroupService(groups repository.DisplayGroupRepository) *DisplayGroupService {
	return &DisplayGroupService{groups: groups}
}

// Create 新建组，初始无父边即为根
func (s *DisplayGroupService) Create(ctx context.Context, title string) (*model.DisplayGroup, error) {
	group := &model.DisplayGroup{Title: title, IsRootGroup: true}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Get 按 ID 取组
func (s *DisplayGroupService) Get(ctx context.Context, id int64) (*model.DisplayGroup, error) {
	return s.groups.GetByID(ctx, id)
}

// Rename 修改标题
func (s *DisplayGroupService) Rename(ctx context.Context, id int64, title string) (*model.DisplayGroup, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	group.Title = title
	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete 删组并清理两侧的边，原先挂在它下面的组可能因此变回根
func (s *DisplayGroupService) Delete(ctx context.Context, id int64) error {
	edges, err := s.groups.ChildEdges(ctx, id)
	if err != nil {
		return err
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}

	for _, edge := range edges {
		if err := s.refreshRootFlag(ctx, edge.ChildID); err != nil {
			return err
		}
	}
	return nil
}

// List 全部组或仅根组
func (s *DisplayGroupService) List(ctx context.Context, rootOnly *bool) ([]model.DisplayGroup, error) {
	return s.groups.List(ctx, rootOnly)
}

// ==================== 层级维护 ====================

// AttachChild 建父子边
// 禁止自环；禁止把自己的祖先挂成子节点 (会形成环)
func (s *DisplayGroupService) AttachChild(ctx context.Context, parentID, childID int64, sortOrder int) error {
	if parentID == childID {
		return fmt.Errorf("展示组不能作为自己的子组")
	}
	if _, err := s.groups.GetByID(ctx, parentID); err != nil {
		return err
	}
	if _, err := s.groups.GetByID(ctx, childID); err != nil {
		return err
	}

	ancestor, err := s.isDescendant(ctx, childID, parentID, 0)
	if err != nil {
		return err
	}
	if ancestor {
		return fmt.Errorf("目标组是当前组的祖先，挂载会形成环")
	}

	if err := s.groups.AttachChild(ctx, parentID, childID, sortOrder); err != nil {
		return err
	}
	return s.refreshRootFlag(ctx, childID)
}

// DetachChild 拆父子边
func (s *DisplayGroupService) DetachChild(ctx context.Context, parentID, childID int64) error {
	if err := s.groups.DetachChild(ctx, parentID, childID); err != nil {
		return err
	}
	return s.refreshRootFlag(ctx, childID)
}

// isDescendant target 是否出现在 root 的子树中 (深度封顶防御环)
func (s *DisplayGroupService) isDescendant(ctx context.Context, root, target int64, depth int) (bool, error) {
	if depth >= model.HierarchyMaxDepth {
		return false, nil
	}

	edges, err := s.groups.ChildEdges(ctx, root)
	if err != nil {
		return false, err
	}
	for _, edge := range edges {
		if edge.ChildID == target {
			return true, nil
		}
		found, err := s.isDescendant(ctx, edge.ChildID, target, depth+1)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// refreshRootFlag 重算单个组的根标记
func (s *DisplayGroupService) refreshRootFlag(ctx context.Context, id int64) error {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}

	parents, err := s.groups.CountParents(ctx, id)
	if err != nil {
		return err
	}

	isRoot := parents == 0
	if group.IsRootGroup == isRoot {
		return nil
	}
	group.IsRootGroup = isRoot
	return s.groups.Save(ctx, group)
}

// RecomputeRoots 全量重算根标记 (后台修复入口)
func (s *DisplayGroupService) RecomputeRoots(ctx context.Context) error {
	all, err := s.groups.List(ctx, nil)
	if err != nil {
		return err
	}
	for _, group := range all {
		if err := s.refreshRootFlag(ctx, group.ID); err != nil {
			return err
		}
	}
	return nil
}

// ==================== 层级视图 ====================

// GroupNode 层级树节点
type GroupNode struct {
	Group     model.DisplayGroup `json:"group"`
	SortOrder int                `json:"sort_order"`
	Children  []*GroupNode       `json:"children"`
}

// Hierarchy 从某组向下展开层级树
// 深度封顶截断：数据意外成环时返回截断的树而不是死循环
func (s *DisplayGroupService) Hierarchy(ctx context.Context, rootID int64) (*GroupNode, error) {
	root, err := s.groups.GetByID(ctx, rootID)
	if err != nil {
		return nil, err
	}
	node := &GroupNode{Group: *root}
	if err := s.expand(ctx, node, 0); err != nil {
		return nil, err
	}
	return node, nil
}

func (s *DisplayGroupService) expand(ctx context.Context, node *GroupNode, depth int) error {
	if depth >= model.HierarchyMaxDepth {
		return nil
	}

	edges, err := s.groups.ChildEdges(ctx, node.Group.ID)
	if err != nil {
		return err
	}
	for _, edge := range edges {
		child, err := s.groups.GetByID(ctx, edge.ChildID)
		if err != nil {
			return err
		}
		childNode := &GroupNode{Group: *child, SortOrder: edge.SortOrder}
		if err := s.expand(ctx, childNode, depth+1); err != nil {
			return err
		}
		node.Children = append(node.Children, childNode)
	}
	return nil
}

// ==================== 属性挂载 ====================

// AttachAttribute 把产品属性挂到组下
func (s *DisplayGroupService) AttachAttribute(ctx context.Context, groupID, attributeID int64, sortOrder int) error {
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		return err
	}
	return s.groups.AttachAttribute(ctx, groupID, attributeID, sortOrder)
}

// DetachAttribute 取消挂载
func (s *DisplayGroupService) DetachAttribute(ctx context.Context, groupID, attributeID int64) error {
	return s.groups.DetachAttribute(ctx, groupID, attributeID)
}

// AttributeEdges 组下挂载的属性边 (按 sort_order)
func (s *DisplayGroupService) AttributeEdges(ctx context.Context, groupID int64) ([]model.DisplayGroupAttribute, error) {
	return s.groups.AttributeEdges(ctx, groupID)
}
