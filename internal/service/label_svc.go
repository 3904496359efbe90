package service

import (
	"context"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
)

// ==================== 标签同步器 ====================

// LabelSynchronizer 把远端 labels (locale → 文本) 对账到 owner 的翻译行
// 集合对账而不是 diff-patch：每次基于当前行全量对齐，天然幂等，
// 远端删掉的 locale 本地同步删除
type LabelSynchronizer struct {
	resolver     *ReferenceResolver
	translations repository.TranslationRepository
}

// NewLabelSynchronizer 创建标签同步器
func NewLabelSynchronizer(resolver *ReferenceResolver, translations repository.TranslationRepository) *LabelSynchronizer {
	return &LabelSynchronizer{
		resolver:     resolver,
		translations: translations,
	}
}

// SyncLabels 同步 owner 的全部翻译行
// owner 必须已持久化 (有本地 ID)
func (s *LabelSynchronizer) SyncLabels(ctx context.Context, owner model.Record, labels map[string]string) error {
	ownerType := string(owner.RecordKind())
	keep := make([]int64, 0, len(labels))

	for localeCode, label := range labels {
		localeID, err := s.resolver.Resolve(ctx, model.KindLocale, localeCode)
		if err != nil {
			return err
		}

		err = s.translations.Upsert(ctx, &model.LabelTranslation{
			OwnerType: ownerType,
			OwnerID:   owner.GetID(),
			LocaleID:  localeID,
			Label:     label,
		})
		if err != nil {
			return err
		}

		keep = append(keep, localeID)
	}

	// 不在远端集合里的 locale 一律删除
	return s.translations.DeleteStale(ctx, ownerType, owner.GetID(), keep)
}
