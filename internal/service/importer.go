package service

import (
	"context"
	"encoding/json"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== 导入器契约 ====================

// EntityImporter 单实体种类的导入器
// 编排器驱动统一流程：按自然键找或建 → 解析引用 → 填充 → 落库 → 同步标签，
// 导入器只负责本种类的字段映射，不碰流程
type EntityImporter interface {
	Kind() model.Kind

	// Resources 要拉取的资源路径列表
	// 绝大多数种类是单个；族变体按本地族展开为多个嵌套路径
	Resources(ctx context.Context) ([]string, error)

	// IdentifierField 自然键在本地表中的列名 (upsert 匹配列)
	IdentifierField() string

	// Identifier 从原始条目提取自然键，缺失返回 *ValidationError
	Identifier(raw json.RawMessage) (string, error)

	// ResolveReferences 解析条目的外部引用 → {目标字段名: 本地 ID}
	ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error)

	// Populate 用原始条目和已解析引用填充记录，置 Updated=true
	// position 是该条目在本轮该种类中的全局序号 (跨页累计)
	Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error

	// Labels 条目的 locale → 标签映射，无标签种类返回 nil
	Labels(raw json.RawMessage) map[string]string

	// Summary 成功导入后的一行摘要 (verbose 输出)
	// 父引用是占位桩时摘要里名字为空，不得报错
	Summary(ctx context.Context, rec model.ImportableRecord) string
}

// postSaver 需要在落库后追加处理的导入器 (如产品的分类关联替换)
type postSaver interface {
	AfterSave(ctx context.Context, rec model.ImportableRecord) error
}

// ==================== 共享依赖 ====================

// importerDeps 每轮同步构建一次，所有导入器共享
type importerDeps struct {
	records      repository.RecordRepository
	catalog      repository.CatalogRepository
	translations repository.TranslationRepository
	resolver     *ReferenceResolver
	client       akeneo.Client
	storage      *StorageService
	// 选定渠道 (scope)，为空不限定
	channel string
}

// buildImporters 按依赖顺序构建全部导入器
// 顺序是设计不变量：每个种类只在其可能引用的种类之后导入
// (locale/channel → 属性组 → 属性/选项 → 族/变体 → 分类 → 产品 → 媒体)，
// 违反顺序不会出错，但会放大占位桩数量、拉低数据完整度
func buildImporters(deps *importerDeps) []EntityImporter {
	return []EntityImporter{
		&localeImporter{deps: deps},
		&channelImporter{deps: deps},
		&attributeGroupImporter{deps: deps},
		&attributeImporter{deps: deps},
		&attributeOptionImporter{deps: deps},
		&familyImporter{deps: deps},
		&familyVariantImporter{deps: deps},
		&categoryImporter{deps: deps},
		&productModelImporter{deps: deps},
		&productImporter{deps: deps},
		&mediaFileImporter{deps: deps},
	}
}

// decodeItem 统一的条目解码，失败包装为校验错误
func decodeItem(kind model.Kind, raw json.RawMessage, out interface{}) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &ValidationError{Kind: kind, Key: "?", Message: err.Error()}
	}
	return nil
}

// displayLabel 取记录的展示名 (任一翻译行的标签)
// 占位桩没有翻译行，返回空串，摘要端必须容忍
func displayLabel(ctx context.Context, deps *importerDeps, rec model.Record) string {
	rows, err := deps.translations.ListByOwner(ctx, string(rec.RecordKind()), rec.GetID())
	if err != nil || len(rows) == 0 {
		return ""
	}
	return rows[0].Label
}
