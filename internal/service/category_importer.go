package service

import (
	"context"
	"encoding/json"
	"fmt"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== 分类导入器 ====================

// categoryImporter 分类树
// 父引用走解析器：父分类可能出现在后面的页 (甚至本页靠后)，
// 先落占位桩，等真实数据到了按同一自然键补全，不会产生重复记录
type categoryImporter struct {
	deps *importerDeps
}

func (i *categoryImporter) Kind() model.Kind {
	return model.KindCategory
}

func (i *categoryImporter) Resources(ctx context.Context) ([]string, error) {
	return []string{"categories"}, nil
}

func (i *categoryImporter) IdentifierField() string {
	return "code"
}

func (i *categoryImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.CategoryItem
	if err := decodeItem(model.KindCategory, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindCategory, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

func (i *categoryImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	var item akeneo.CategoryItem
	if err := decodeItem(model.KindCategory, raw, &item); err != nil {
		return nil, err
	}

	refs := map[string]int64{}
	if item.Parent != "" {
		parentID, err := i.deps.resolver.Resolve(ctx, model.KindCategory, item.Parent)
		if err != nil {
			return nil, err
		}
		refs["ParentID"] = parentID
	}
	return refs, nil
}

func (i *categoryImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.CategoryItem
	if err := decodeItem(model.KindCategory, raw, &item); err != nil {
		return err
	}

	category := rec.(*model.ProductCategory)
	category.Code = item.Code
	// Sort 取本轮内的全局序号 (跨页累计)，整轮导入后即最终顺序
	category.Sort = position
	category.ParentID = refs["ParentID"]
	category.Updated = true
	return nil
}

func (i *categoryImporter) Labels(raw json.RawMessage) map[string]string {
	var item akeneo.CategoryItem
	if json.Unmarshal(raw, &item) != nil {
		return nil
	}
	return item.Labels
}

// Summary 形如 "Category: 12 - Shoes (Clothing)"
// 父分类是占位桩时括号内为空，不报错
func (i *categoryImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	category := rec.(*model.ProductCategory)
	name := displayLabel(ctx, i.deps, category)

	parentName := ""
	if category.ParentID > 0 {
		parent, err := i.deps.records.FindOneByField(ctx, model.KindCategory, "id", category.ParentID)
		if err == nil && parent != nil {
			parentName = displayLabel(ctx, i.deps, parent)
		}
	}

	return fmt.Sprintf("Category: %d - %s (%s)", category.ID, name, parentName)
}
