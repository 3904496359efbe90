package service

import (
	"context"
	"encoding/json"
	"fmt"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== Channel 导入器 ====================

// channelImporter 渠道引用分类树根，树在分类导入前先落占位桩
type channelImporter struct {
	deps *importerDeps
}

func (i *channelImporter) Kind() model.Kind {
	return model.KindChannel
}

func (i *channelImporter) Resources(ctx context.Context) ([]string, error) {
	return []string{"channels"}, nil
}

func (i *channelImporter) IdentifierField() string {
	return "code"
}

func (i *channelImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.ChannelItem
	if err := decodeItem(model.KindChannel, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindChannel, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

func (i *channelImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	var item akeneo.ChannelItem
	if err := decodeItem(model.KindChannel, raw, &item); err != nil {
		return nil, err
	}

	refs := map[string]int64{}
	if item.CategoryTree != "" {
		treeID, err := i.deps.resolver.Resolve(ctx, model.KindCategory, item.CategoryTree)
		if err != nil {
			return nil, err
		}
		refs["CategoryTreeID"] = treeID
	}
	return refs, nil
}

func (i *channelImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.ChannelItem
	if err := decodeItem(model.KindChannel, raw, &item); err != nil {
		return err
	}

	channel := rec.(*model.Channel)
	channel.Code = item.Code
	channel.LocaleCodes = item.Locales
	channel.CurrencyCodes = item.Currencies
	channel.CategoryTreeID = refs["CategoryTreeID"]
	channel.Updated = true
	return nil
}

func (i *channelImporter) Labels(raw json.RawMessage) map[string]string {
	var item akeneo.ChannelItem
	if json.Unmarshal(raw, &item) != nil {
		return nil
	}
	return item.Labels
}

func (i *channelImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	return fmt.Sprintf("Channel: %d - %s (%s)",
		rec.GetID(), rec.NaturalKey(), displayLabel(ctx, i.deps, rec))
}
