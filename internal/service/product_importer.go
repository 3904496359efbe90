package service

import (
	"context"
	"encoding/json"
	"fmt"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== 产品模型导入器 ====================

type productModelImporter struct {
	deps *importerDeps
}

func (i *productModelImporter) Kind() model.Kind {
	return model.KindProductModel
}

func (i *productModelImporter) Resources(ctx context.Context) ([]string, error) {
	return []string{scopedResource("product-models", i.deps.channel)}, nil
}

func (i *productModelImporter) IdentifierField() string {
	return "code"
}

func (i *productModelImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.ProductModelItem
	if err := decodeItem(model.KindProductModel, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindProductModel, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

func (i *productModelImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	var item akeneo.ProductModelItem
	if err := decodeItem(model.KindProductModel, raw, &item); err != nil {
		return nil, err
	}

	refs := map[string]int64{}
	if item.FamilyVariant != "" {
		variantID, err := i.deps.resolver.Resolve(ctx, model.KindFamilyVariant, item.FamilyVariant)
		if err != nil {
			return nil, err
		}
		refs["FamilyVariantID"] = variantID
	}
	if item.Parent != "" {
		parentID, err := i.deps.resolver.Resolve(ctx, model.KindProductModel, item.Parent)
		if err != nil {
			return nil, err
		}
		refs["ParentID"] = parentID
	}
	return refs, nil
}

func (i *productModelImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.ProductModelItem
	if err := decodeItem(model.KindProductModel, raw, &item); err != nil {
		return err
	}

	pm := rec.(*model.ProductModel)
	pm.Code = item.Code
	pm.FamilyVariantID = refs["FamilyVariantID"]
	pm.ParentID = refs["ParentID"]
	pm.CategoryCodes = item.Categories
	pm.Values = []byte(item.Values)
	pm.Updated = true
	return nil
}

func (i *productModelImporter) Labels(raw json.RawMessage) map[string]string {
	return nil
}

// AfterSave 记录有 ID 后才能替换分类关联
func (i *productModelImporter) AfterSave(ctx context.Context, rec model.ImportableRecord) error {
	pm := rec.(*model.ProductModel)
	categoryIDs, err := resolveCategoryIDs(ctx, i.deps.resolver, pm.CategoryCodes)
	if err != nil {
		return err
	}
	return i.deps.catalog.ReplaceModelCategories(ctx, pm, categoryIDs)
}

func (i *productModelImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	return fmt.Sprintf("Product model: %d - %s", rec.GetID(), rec.NaturalKey())
}

// ==================== 产品导入器 ====================

// productImporter 自然键是 identifier (Akeneo 侧 SKU)
type productImporter struct {
	deps *importerDeps
}

func (i *productImporter) Kind() model.Kind {
	return model.KindProduct
}

func (i *productImporter) Resources(ctx context.Context) ([]string, error) {
	return []string{scopedResource("products", i.deps.channel)}, nil
}

func (i *productImporter) IdentifierField() string {
	return "identifier"
}

func (i *productImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.ProductItem
	if err := decodeItem(model.KindProduct, raw, &item); err != nil {
		return "", err
	}
	if item.Identifier == "" {
		return "", &ValidationError{Kind: model.KindProduct, Key: "?", Message: "缺少 identifier"}
	}
	return item.Identifier, nil
}

func (i *productImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	var item akeneo.ProductItem
	if err := decodeItem(model.KindProduct, raw, &item); err != nil {
		return nil, err
	}

	refs := map[string]int64{}
	if item.Family != "" {
		familyID, err := i.deps.resolver.Resolve(ctx, model.KindFamily, item.Family)
		if err != nil {
			return nil, err
		}
		refs["FamilyID"] = familyID
	}
	if item.Parent != "" {
		parentID, err := i.deps.resolver.Resolve(ctx, model.KindProductModel, item.Parent)
		if err != nil {
			return nil, err
		}
		refs["ParentID"] = parentID
	}
	return refs, nil
}

func (i *productImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.ProductItem
	if err := decodeItem(model.KindProduct, raw, &item); err != nil {
		return err
	}

	product := rec.(*model.Product)
	product.Identifier = item.Identifier
	product.Enabled = item.Enabled
	product.FamilyID = refs["FamilyID"]
	product.ParentID = refs["ParentID"]
	product.CategoryCodes = item.Categories
	product.Values = []byte(item.Values)
	product.Updated = true
	return nil
}

func (i *productImporter) Labels(raw json.RawMessage) map[string]string {
	return nil
}

// AfterSave 同产品模型：落库后替换分类关联
func (i *productImporter) AfterSave(ctx context.Context, rec model.ImportableRecord) error {
	product := rec.(*model.Product)
	categoryIDs, err := resolveCategoryIDs(ctx, i.deps.resolver, product.CategoryCodes)
	if err != nil {
		return err
	}
	return i.deps.catalog.ReplaceProductCategories(ctx, product, categoryIDs)
}

func (i *productImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	product := rec.(*model.Product)

	familyName := ""
	if product.FamilyID > 0 {
		family, err := i.deps.records.FindOneByField(ctx, model.KindFamily, "id", product.FamilyID)
		if err == nil && family != nil {
			familyName = displayLabel(ctx, i.deps, family)
		}
	}

	return fmt.Sprintf("Product: %d - %s (%s)", product.ID, product.Identifier, familyName)
}

// ==================== 辅助 ====================

// scopedResource 选定渠道时给资源加 scope 过滤
func scopedResource(resource, channel string) string {
	if channel == "" {
		return resource
	}
	return fmt.Sprintf("%s?scope=%s", resource, channel)
}

// resolveCategoryIDs 分类 code 列表 → 本地 ID 列表
func resolveCategoryIDs(ctx context.Context, resolver *ReferenceResolver, codes []string) ([]int64, error) {
	ids := make([]int64, 0, len(codes))
	for _, code := range codes {
		id, err := resolver.Resolve(ctx, model.KindCategory, code)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
