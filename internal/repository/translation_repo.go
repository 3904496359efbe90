package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"akeneo_bridge/internal/model"
)

// ==================== 接口定义 ====================

// TranslationRepository 翻译行仓储
// 翻译行做的是集合对账而不是增量 patch，删除一律硬删，
// 避免软删行占着 (owner, locale) 唯一索引导致重插失败
type TranslationRepository interface {
	ListByOwner(ctx context.Context, ownerType string, ownerID int64) ([]model.LabelTranslation, error)

	// Upsert 按 (owner_type, owner_id, locale_id) 冲突更新 label
	Upsert(ctx context.Context, t *model.LabelTranslation) error

	// DeleteStale 删除 owner 名下 locale 不在保留集合里的翻译行
	DeleteStale(ctx context.Context, ownerType string, ownerID int64, keepLocaleIDs []int64) error

	// DeleteByOwner 删除 owner 的全部翻译行 (owner 被移除时级联)
	DeleteByOwner(ctx context.Context, ownerType string, ownerID int64) error
}

// ==================== 仓储实现 ====================

type translationRepo struct {
	db *gorm.DB
}

// NewTranslationRepository 创建翻译仓储
func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &translationRepo{db: db}
}

func (r *translationRepo) ListByOwner(ctx context.Context, ownerType string, ownerID int64) ([]model.LabelTranslation, error) {
	var rows []model.LabelTranslation
	err := r.db.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *translationRepo) Upsert(ctx context.Context, t *model.LabelTranslation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "owner_type"},
				{Name: "owner_id"},
				{Name: "locale_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"label", "updated_at"}),
		}).
		Create(t).Error
}

func (r *translationRepo) DeleteStale(ctx context.Context, ownerType string, ownerID int64, keepLocaleIDs []int64) error {
	query := r.db.WithContext(ctx).
		Unscoped().
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID)

	if len(keepLocaleIDs) > 0 {
		query = query.Where("locale_id NOT IN ?", keepLocaleIDs)
	}

	return query.Delete(&model.LabelTranslation{}).Error
}

func (r *translationRepo) DeleteByOwner(ctx context.Context, ownerType string, ownerID int64) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Delete(&model.LabelTranslation{}).Error
}
