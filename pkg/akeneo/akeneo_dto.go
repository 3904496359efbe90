package akeneo

import "encoding/json"

// ==========================================
// DTO: 用于接收 Akeneo REST API 返回的原始 JSON 数据
// ==========================================

// TokenResp 1. OAuth password grant 响应
type TokenResp struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
}

// ListResp 2. 通用分页列表响应 (HAL 格式)
// items 先留原始 JSON，由各实体导入器自行解码
type ListResp struct {
	Links struct {
		Self struct {
			Href string `json:"href"`
		} `json:"self"`
		Next struct {
			Href string `json:"href"`
		} `json:"next"`
	} `json:"_links"`
	Embedded struct {
		Items []json.RawMessage `json:"items"`
	} `json:"_embedded"`
}

// Page 3. 解码后的单页结果
type Page struct {
	Items []json.RawMessage
	// 下一页完整 URL，空串表示已到末页
	NextURL string
}

// ==================== 实体条目 ====================

// LocaleItem 语言区域
type LocaleItem struct {
	Code    string `json:"code"`
	Enabled bool   `json:"enabled"`
}

// ChannelItem 渠道
type ChannelItem struct {
	Code         string            `json:"code"`
	Locales      []string          `json:"locales"`
	Currencies   []string          `json:"currencies"`
	CategoryTree string            `json:"category_tree"`
	Labels       map[string]string `json:"labels"`
}

// AttributeGroupItem 属性组
type AttributeGroupItem struct {
	Code      string            `json:"code"`
	SortOrder int               `json:"sort_order"`
	Labels    map[string]string `json:"labels"`
}

// AttributeItem 属性
type AttributeItem struct {
	Code        string            `json:"code"`
	Type        string            `json:"type"`
	Group       string            `json:"group"`
	Localizable bool              `json:"localizable"`
	Scopable    bool              `json:"scopable"`
	SortOrder   int               `json:"sort_order"`
	Labels      map[string]string `json:"labels"`
}

// AttributeOptionItem 属性选项
type AttributeOptionItem struct {
	Code      string            `json:"code"`
	Attribute string            `json:"attribute"`
	SortOrder int               `json:"sort_order"`
	Labels    map[string]string `json:"labels"`
}

// FamilyItem 产品族
type FamilyItem struct {
	Code             string            `json:"code"`
	AttributeAsLabel string            `json:"attribute_as_label"`
	Attributes       []string          `json:"attributes"`
	Labels           map[string]string `json:"labels"`
}

// FamilyVariantItem 产品族变体 (family 由请求路径决定，条目里没有)
type FamilyVariantItem struct {
	Code   string            `json:"code"`
	Labels map[string]string `json:"labels"`
}

// CategoryItem 分类
type CategoryItem struct {
	Code   string            `json:"code"`
	Parent string            `json:"parent"`
	Labels map[string]string `json:"labels"`
}

// ProductModelItem 产品模型
type ProductModelItem struct {
	Code          string          `json:"code"`
	FamilyVariant string          `json:"family_variant"`
	Parent        string          `json:"parent"`
	Categories    []string        `json:"categories"`
	Values        json.RawMessage `json:"values"`
}

// ProductItem 产品
type ProductItem struct {
	Identifier string          `json:"identifier"`
	Enabled    bool            `json:"enabled"`
	Family     string          `json:"family"`
	Parent     string          `json:"parent"`
	Categories []string        `json:"categories"`
	Values     json.RawMessage `json:"values"`
}

// MediaFileItem 媒体文件
type MediaFileItem struct {
	Code             string `json:"code"`
	OriginalFilename string `json:"original_filename"`
	MimeType         string `json:"mime_type"`
	Size             int64  `json:"size"`
	Links            struct {
		Download struct {
			Href string `json:"href"`
		} `json:"download"`
	} `json:"_links"`
}
