package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"akeneo_bridge/internal/model"
)

// ==================== 种类注册表 ====================

// prototypes 实体种类 → 空记录构造器
// 同步引擎通过种类名路由到具体表，新增实体种类在这里登记
var prototypes = map[model.Kind]func() model.ImportableRecord{
	model.KindLocale:          func() model.ImportableRecord { return &model.Locale{} },
	model.KindChannel:         func() model.ImportableRecord { return &model.Channel{} },
	model.KindAttributeGroup:  func() model.ImportableRecord { return &model.ProductAttributeGroup{} },
	model.KindAttribute:       func() model.ImportableRecord { return &model.ProductAttribute{} },
	model.KindAttributeOption: func() model.ImportableRecord { return &model.ProductAttributeOption{} },
	model.KindFamily:          func() model.ImportableRecord { return &model.Family{} },
	model.KindFamilyVariant:   func() model.ImportableRecord { return &model.FamilyVariant{} },
	model.KindCategory:        func() model.ImportableRecord { return &model.ProductCategory{} },
	model.KindProductModel:    func() model.ImportableRecord { return &model.ProductModel{} },
	model.KindProduct:         func() model.ImportableRecord { return &model.Product{} },
	model.KindMediaFile:       func() model.ImportableRecord { return &model.ProductMediaFile{} },
}

// NewRecordOfKind 按种类构造空记录
func NewRecordOfKind(kind model.Kind) (model.ImportableRecord, bool) {
	ctor, ok := prototypes[kind]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// ==================== 接口定义 ====================

// RecordRepository 通用记录存储
// 同步引擎唯一的持久化入口：按字段查一条、保存、删除、按条件查列表
type RecordRepository interface {
	// FindOneByField 按任意字段查一条记录，未命中返回 (nil, nil)
	FindOneByField(ctx context.Context, kind model.Kind, field string, value interface{}) (model.ImportableRecord, error)

	Save(ctx context.Context, rec model.Record) error
	Delete(ctx context.Context, rec model.Record) error

	// QueryByFilter 等值条件查列表
	QueryByFilter(ctx context.Context, kind model.Kind, filters map[string]interface{}) ([]model.ImportableRecord, error)

	// ResetUpdated 导入某种类前清零 Updated 标记
	ResetUpdated(ctx context.Context, kind model.Kind) error

	// StaleKeys 返回导入后仍未被远端触达的记录自然键 (残留桩或远端已删)
	StaleKeys(ctx context.Context, kind model.Kind) ([]string, error)

	// 事务
	WithTx(tx *gorm.DB) RecordRepository
	Transaction(ctx context.Context, fn func(txRepo RecordRepository) error) error
}

// ==================== 仓储实现 ====================

type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepository 创建通用记录仓储
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) FindOneByField(ctx context.Context, kind model.Kind, field string, value interface{}) (model.ImportableRecord, error) {
	rec, ok := NewRecordOfKind(kind)
	if !ok {
		return nil, fmt.Errorf("未注册的实体种类: %s", kind)
	}

	err := r.db.WithContext(ctx).
		Where(fmt.Sprintf("%s = ?", field), value).
		First(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *recordRepo) Save(ctx context.Context, rec model.Record) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *recordRepo) Delete(ctx context.Context, rec model.Record) error {
	return r.db.WithContext(ctx).Delete(rec).Error
}

func (r *recordRepo) QueryByFilter(ctx context.Context, kind model.Kind, filters map[string]interface{}) ([]model.ImportableRecord, error) {
	proto, ok := NewRecordOfKind(kind)
	if !ok {
		return nil, fmt.Errorf("未注册的实体种类: %s", kind)
	}

	// 按原型类型构造切片接收结果，逐条转回接口
	elemType := reflect.TypeOf(proto).Elem()
	slicePtr := reflect.New(reflect.SliceOf(elemType))

	query := r.db.WithContext(ctx).Model(proto)
	for field, value := range filters {
		query = query.Where(fmt.Sprintf("%s = ?", field), value)
	}
	if err := query.Find(slicePtr.Interface()).Error; err != nil {
		return nil, err
	}

	sliceVal := slicePtr.Elem()
	records := make([]model.ImportableRecord, 0, sliceVal.Len())
	for i := 0; i < sliceVal.Len(); i++ {
		records = append(records, sliceVal.Index(i).Addr().Interface().(model.ImportableRecord))
	}
	return records, nil
}

func (r *recordRepo) ResetUpdated(ctx context.Context, kind model.Kind) error {
	proto, ok := NewRecordOfKind(kind)
	if !ok {
		return fmt.Errorf("未注册的实体种类: %s", kind)
	}
	return r.db.WithContext(ctx).
		Model(proto).
		Where("updated = ?", true).
		Update("updated", false).Error
}

func (r *recordRepo) StaleKeys(ctx context.Context, kind model.Kind) ([]string, error) {
	stale, err := r.QueryByFilter(ctx, kind, map[string]interface{}{"updated": false})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(stale))
	for _, rec := range stale {
		keys = append(keys, rec.NaturalKey())
	}
	return keys, nil
}

func (r *recordRepo) WithTx(tx *gorm.DB) RecordRepository {
	return &recordRepo{db: tx}
}

func (r *recordRepo) Transaction(ctx context.Context, fn func(txRepo RecordRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
