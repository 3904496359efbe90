package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== 产品族导入器 ====================

type familyImporter struct {
	deps *importerDeps
}

func (i *familyImporter) Kind() model.Kind {
	return model.KindFamily
}

func (i *familyImporter) Resources(ctx context.Context) ([]string, error) {
	return []string{"families"}, nil
}

func (i *familyImporter) IdentifierField() string {
	return "code"
}

func (i *familyImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.FamilyItem
	if err := decodeItem(model.KindFamily, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindFamily, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

func (i *familyImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	return nil, nil
}

func (i *familyImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.FamilyItem
	if err := decodeItem(model.KindFamily, raw, &item); err != nil {
		return err
	}

	family := rec.(*model.Family)
	family.Code = item.Code
	family.AttributeAsLabel = item.AttributeAsLabel
	family.AttributeCodes = item.Attributes
	family.Updated = true
	return nil
}

func (i *familyImporter) Labels(raw json.RawMessage) map[string]string {
	var item akeneo.FamilyItem
	if json.Unmarshal(raw, &item) != nil {
		return nil
	}
	return item.Labels
}

func (i *familyImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	return fmt.Sprintf("Family: %d - %s (%s)",
		rec.GetID(), rec.NaturalKey(), displayLabel(ctx, i.deps, rec))
}

// ==================== 产品族变体导入器 ====================

// familyVariantImporter 变体是族的嵌套资源，按本轮触达的族展开路径
type familyVariantImporter struct {
	deps *importerDeps
}

func (i *familyVariantImporter) Kind() model.Kind {
	return model.KindFamilyVariant
}

func (i *familyVariantImporter) Resources(ctx context.Context) ([]string, error) {
	families, err := i.deps.records.QueryByFilter(ctx, model.KindFamily, map[string]interface{}{
		"updated": true,
	})
	if err != nil {
		return nil, err
	}

	resources := make([]string, 0, len(families))
	for _, family := range families {
		resources = append(resources, fmt.Sprintf("families/%s/variants", family.NaturalKey()))
	}
	return resources, nil
}

func (i *familyVariantImporter) IdentifierField() string {
	return "code"
}

func (i *familyVariantImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.FamilyVariantItem
	if err := decodeItem(model.KindFamilyVariant, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindFamilyVariant, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

// familyCodeFromResource 变体条目本身不带族 code，从请求路径取
// (families/<code>/variants)
func familyCodeFromResource(resource string) string {
	parts := strings.Split(resource, "/")
	if len(parts) >= 2 {
		return parts[1]
	}
	return ""
}

func (i *familyVariantImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	refs := map[string]int64{}
	if familyCode := familyCodeFromResource(resource); familyCode != "" {
		familyID, err := i.deps.resolver.Resolve(ctx, model.KindFamily, familyCode)
		if err != nil {
			return nil, err
		}
		refs["FamilyID"] = familyID
	}
	return refs, nil
}

func (i *familyVariantImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.FamilyVariantItem
	if err := decodeItem(model.KindFamilyVariant, raw, &item); err != nil {
		return err
	}

	variant := rec.(*model.FamilyVariant)
	variant.Code = item.Code
	variant.FamilyID = refs["FamilyID"]
	variant.Updated = true
	return nil
}

func (i *familyVariantImporter) Labels(raw json.RawMessage) map[string]string {
	var item akeneo.FamilyVariantItem
	if json.Unmarshal(raw, &item) != nil {
		return nil
	}
	return item.Labels
}

func (i *familyVariantImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	return fmt.Sprintf("Family variant: %d - %s (%s)",
		rec.GetID(), rec.NaturalKey(), displayLabel(ctx, i.deps, rec))
}
