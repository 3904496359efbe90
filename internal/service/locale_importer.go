package service

import (
	"context"
	"encoding/json"
	"fmt"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== Locale 导入器 ====================

// localeImporter 最先导入：所有翻译行都引用 locale
type localeImporter struct {
	deps *importerDeps
}

func (i *localeImporter) Kind() model.Kind {
	return model.KindLocale
}

func (i *localeImporter) Resources(ctx context.Context) ([]string, error) {
	return []string{"locales"}, nil
}

func (i *localeImporter) IdentifierField() string {
	return "code"
}

func (i *localeImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.LocaleItem
	if err := decodeItem(model.KindLocale, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindLocale, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

func (i *localeImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	return nil, nil
}

func (i *localeImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.LocaleItem
	if err := decodeItem(model.KindLocale, raw, &item); err != nil {
		return err
	}

	locale := rec.(*model.Locale)
	locale.Code = item.Code
	locale.Enabled = item.Enabled
	locale.Updated = true
	return nil
}

func (i *localeImporter) Labels(raw json.RawMessage) map[string]string {
	return nil
}

func (i *localeImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	return fmt.Sprintf("Locale: %d - %s", rec.GetID(), rec.NaturalKey())
}
