package model

// ProductMediaFile 产品媒体文件元数据
// 二进制内容按需下载并转存对象存储，StorageKey 为空表示仅有元数据
type ProductMediaFile struct {
	BaseModel
	AkeneoRecord
	OriginalFilename string `gorm:"size:255" json:"original_filename"`
	MimeType         string `gorm:"size:100" json:"mime_type"`
	Size             int64  `gorm:"default:0" json:"size"`
	// 远端下载地址 (_links.download.href)
	DownloadHref string `gorm:"size:512" json:"download_href"`
	// 对象存储 key，转存成功后写入
	StorageKey string `gorm:"size:255" json:"storage_key"`
}

func (ProductMediaFile) TableName() string {
	return "akeneo_product_media_files"
}

func (*ProductMediaFile) RecordKind() Kind {
	return KindMediaFile
}
