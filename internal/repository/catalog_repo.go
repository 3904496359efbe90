package repository

import (
	"context"

	"gorm.io/gorm"

	"akeneo_bridge/internal/model"
)

// ==================== 接口定义 ====================

// CatalogRepository 目录数据的后台查询 + 产品分类关联维护
type CatalogRepository interface {
	// ListCategories 全量分类 (按 Sort 排序)
	ListCategories(ctx context.Context) ([]model.ProductCategory, error)

	ListProducts(ctx context.Context, page, pageSize int) ([]model.Product, int64, error)
	ListAttributes(ctx context.Context, page, pageSize int) ([]model.ProductAttribute, int64, error)

	// ReplaceProductCategories 全量替换产品的分类关联
	ReplaceProductCategories(ctx context.Context, product *model.Product, categoryIDs []int64) error
	ReplaceModelCategories(ctx context.Context, pm *model.ProductModel, categoryIDs []int64) error
}

// ==================== 仓储实现 ====================

type catalogRepo struct {
	db *gorm.DB
}

// NewCatalogRepository 创建目录仓储
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) ListCategories(ctx context.Context) ([]model.ProductCategory, error) {
	var categories []model.ProductCategory
	err := r.db.WithContext(ctx).
		Order("sort").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepo) ListProducts(ctx context.Context, page, pageSize int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Family").
		Preload("Categories").
		Order("identifier").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *catalogRepo) ListAttributes(ctx context.Context, page, pageSize int) ([]model.ProductAttribute, int64, error) {
	var attributes []model.ProductAttribute
	var total int64

	query := r.db.WithContext(ctx).Model(&model.ProductAttribute{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Group").
		Order("sort").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&attributes).Error
	if err != nil {
		return nil, 0, err
	}
	return attributes, total, nil
}

func (r *catalogRepo) ReplaceProductCategories(ctx context.Context, product *model.Product, categoryIDs []int64) error {
	categories := make([]model.ProductCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		categories = append(categories, model.ProductCategory{BaseModel: model.BaseModel{ID: id}})
	}
	return r.db.WithContext(ctx).
		Model(product).
		Association("Categories").
		Replace(&categories)
}

func (r *catalogRepo) ReplaceModelCategories(ctx context.Context, pm *model.ProductModel, categoryIDs []int64) error {
	categories := make([]model.ProductCategory, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		categories = append(categories, model.ProductCategory{BaseModel: model.BaseModel{ID: id}})
	}
	return r.db.WithContext(ctx).
		Model(pm).
		Association("Categories").
		Replace(&categories)
}
