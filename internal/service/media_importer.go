package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== 媒体文件导入器 ====================

// mediaFileImporter 元数据必导；二进制在配置了对象存储时转存，
// 没配存储属于可接受的降级，只打日志不算失败
type mediaFileImporter struct {
	deps *importerDeps
}

func (i *mediaFileImporter) Kind() model.Kind {
	return model.KindMediaFile
}

func (i *mediaFileImporter) Resources(ctx context.Context) ([]string, error) {
	return []string{"media-files"}, nil
}

func (i *mediaFileImporter) IdentifierField() string {
	return "code"
}

func (i *mediaFileImporter) Identifier(raw json.RawMessage) (string, error) {
	var item akeneo.MediaFileItem
	if err := decodeItem(model.KindMediaFile, raw, &item); err != nil {
		return "", err
	}
	if item.Code == "" {
		return "", &ValidationError{Kind: model.KindMediaFile, Key: "?", Message: "缺少 code"}
	}
	return item.Code, nil
}

func (i *mediaFileImporter) ResolveReferences(ctx context.Context, resource string, raw json.RawMessage) (map[string]int64, error) {
	return nil, nil
}

func (i *mediaFileImporter) Populate(ctx context.Context, rec model.ImportableRecord, raw json.RawMessage, refs map[string]int64, position int) error {
	var item akeneo.MediaFileItem
	if err := decodeItem(model.KindMediaFile, raw, &item); err != nil {
		return err
	}

	media := rec.(*model.ProductMediaFile)
	media.Code = item.Code
	media.OriginalFilename = item.OriginalFilename
	media.MimeType = item.MimeType
	media.Size = item.Size
	media.DownloadHref = item.Links.Download.Href
	media.Updated = true
	return nil
}

func (i *mediaFileImporter) Labels(raw json.RawMessage) map[string]string {
	return nil
}

// AfterSave 转存二进制到对象存储 (已转存过的跳过)
func (i *mediaFileImporter) AfterSave(ctx context.Context, rec model.ImportableRecord) error {
	media := rec.(*model.ProductMediaFile)

	if i.deps.storage == nil || media.DownloadHref == "" || media.StorageKey != "" {
		return nil
	}

	data, err := i.deps.client.Download(ctx, media.DownloadHref)
	if err != nil {
		log.Printf("[MediaImport] 下载 %s 失败，保留元数据: %v", media.Code, err)
		return nil
	}

	key, err := i.deps.storage.Upload(ctx, media.Code, media.OriginalFilename, media.MimeType, data)
	if err != nil {
		log.Printf("[MediaImport] 转存 %s 失败，保留元数据: %v", media.Code, err)
		return nil
	}

	media.StorageKey = key
	return i.deps.records.Save(ctx, media)
}

func (i *mediaFileImporter) Summary(ctx context.Context, rec model.ImportableRecord) string {
	media := rec.(*model.ProductMediaFile)
	return fmt.Sprintf("Media file: %d - %s (%s)", media.ID, media.Code, media.OriginalFilename)
}
