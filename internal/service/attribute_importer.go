package service

import (
	"context"
	"encoding/json"
	"fmt"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== 属性组导入器 ====================

type attributeGroupImporter struct {
	deps *importerDeps
}

func (i *attributeGroupImporter) Kind() model.Kind {
	return model.KindAttributeGroup
}

func (i *attributeGroupImporter) Resources(ctx context.Context) ([]string, error) {
	return []string{"attribute-groups"}, nil
}

func (i *attributeGroupImporter) IdentifierField() string {
	return "code"
}

func (i *attributeGroupImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.AttributeGroupItem
	if err := decodeItem(model.KindAttributeGroup, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindAttributeGroup, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

func (i *attributeGroupImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	return nil, nil
}

func (i *attributeGroupImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.AttributeGroupItem
	if err := decodeItem(model.KindAttributeGroup, raw, &item); err != nil {
		return err
	}

	group := rec.(*model.ProductAttributeGroup)
	group.Code = item.Code
	group.Sort = item.SortOrder
	group.Updated = true
	return nil
}

func (i *attributeGroupImporter) Labels(raw json.RawMessage) map[string]string {
	var item akeneo.AttributeGroupItem
	if json.Unmarshal(raw, &item) != nil {
		return nil
	}
	return item.Labels
}

func (i *attributeGroupImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	return fmt.Sprintf("Attribute group: %d - %s (%s)",
		rec.GetID(), rec.NaturalKey(), displayLabel(ctx, i.deps, rec))
}

// ==================== 属性导入器 ====================

type attributeImporter struct {
	deps *importerDeps
}

func (i *attributeImporter) Kind() model.Kind {
	return model.KindAttribute
}

func (i *attributeImporter) Resources(ctx context.Context) ([]string, error) {
	return []string{"attributes"}, nil
}

func (i *attributeImporter) IdentifierField() string {
	return "code"
}

func (i *attributeImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.AttributeItem
	if err := decodeItem(model.KindAttribute, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindAttribute, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

func (i *attributeImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	var item akeneo.AttributeItem
	if err := decodeItem(model.KindAttribute, raw, &item); err != nil {
		return nil, err
	}

	refs := map[string]int64{}
	if item.Group != "" {
		groupID, err := i.deps.resolver.Resolve(ctx, model.KindAttributeGroup, item.Group)
		if err != nil {
			return nil, err
		}
		refs["GroupID"] = groupID
	}
	return refs, nil
}

func (i *attributeImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.AttributeItem
	if err := decodeItem(model.KindAttribute, raw, &item); err != nil {
		return err
	}

	attr := rec.(*model.ProductAttribute)
	attr.Code = item.Code
	attr.Type = item.Type
	attr.Localizable = item.Localizable
	attr.Scopable = item.Scopable
	attr.Sort = item.SortOrder
	attr.GroupID = refs["GroupID"]
	attr.Updated = true
	return nil
}

func (i *attributeImporter) Labels(raw json.RawMessage) map[string]string {
	var item akeneo.AttributeItem
	if json.Unmarshal(raw, &item) != nil {
		return nil
	}
	return item.Labels
}

func (i *attributeImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	return fmt.Sprintf("Attribute: %d - %s (%s)",
		rec.GetID(), rec.NaturalKey(), displayLabel(ctx, i.deps, rec))
}

// ==================== 属性选项导入器 ====================

// attributeOptionImporter 选项挂在 select 类属性下，按属性展开资源路径
type attributeOptionImporter struct {
	deps *importerDeps
}

// selectAttributeTypes 拥有选项列表的属性类型
var selectAttributeTypes = []string{
	"pim_catalog_simpleselect",
	"pim_catalog_multiselect",
}

func (i *attributeOptionImporter) Kind() model.Kind {
	return model.KindAttributeOption
}

func (i *attributeOptionImporter) Resources(ctx context.Context) ([]string, error) {
	var resources []string
	for _, attrType := range selectAttributeTypes {
		attrs, err := i.deps.records.QueryByFilter(ctx, model.KindAttribute, map[string]interface{}{
			"type":    attrType,
			"updated": true,
		})
		if err != nil {
			return nil, err
		}
		for _, attr := range attrs {
			resources = append(resources, fmt.Sprintf("attributes/%s/options", attr.NaturalKey()))
		}
	}
	return resources, nil
}

func (i *attributeOptionImporter) IdentifierField() string {
	return "code"
}

func (i *attributeOptionImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.AttributeOptionItem
	if err := decodeItem(model.KindAttributeOption, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindAttributeOption, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

func (i *attributeOptionImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	var item akeneo.AttributeOptionItem
	if err := decodeItem(model.KindAttributeOption, raw, &item); err != nil {
		return nil, err
	}

	refs := map[string]int64{}
	if item.Attribute != "" {
		attrID, err := i.deps.resolver.Resolve(ctx, model.KindAttribute, item.Attribute)
		if err != nil {
			return nil, err
		}
		refs["AttributeID"] = attrID
	}
	return refs, nil
}

func (i *attributeOptionImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.AttributeOptionItem
	if err := decodeItem(model.KindAttributeOption, raw, &item); err != nil {
		return err
	}

	option := rec.(*model.ProductAttributeOption)
	option.Code = item.Code
	option.Sort = item.SortOrder
	option.AttributeID = refs["AttributeID"]
	option.Updated = true
	return nil
}

func (i *attributeOptionImporter) Labels(raw json.RawMessage) map[string]string {
	var item akeneo.AttributeOptionItem
	if json.Unmarshal(raw, &item) != nil {
		return nil
	}
	return item.Labels
}

func (i *attributeOptionImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	return fmt.Sprintf("Attribute option: %d - %s (%s)",
		rec.GetID(), rec.NaturalKey(), displayLabel(ctx, i.deps, rec))
}
