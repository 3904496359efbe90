package akeneo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"akeneo_bridge/pkg/utils"
)

// ==================== 接口定义 ====================

// Client Akeneo API 客户端
// 只负责授权与取数，不做重试、不落库
type Client interface {
	// Authorize 执行 password grant 换取 access token，凭据缺失或被拒返回 *AuthError
	Authorize(ctx context.Context) error

	// FetchPage 拉取一页数据
	// resource: 资源路径 (如 "categories", "families/shoes/variants")
	// pageURL: 上一页返回的 next 链接，首页传空串
	FetchPage(ctx context.Context, resource, pageURL string) (*Page, error)

	// GetChannels 拉取全部渠道 (仅配置界面使用，不参与核心同步)
	GetChannels(ctx context.Context) ([]ChannelItem, error)

	// Download 下载媒体文件二进制内容
	Download(ctx context.Context, href string) ([]byte, error)
}

// Credentials Akeneo 连接凭据
type Credentials struct {
	BaseURL  string
	ClientID string
	Secret   string
	Username string
	Password string
}

// Complete 五要素是否齐备
func (c Credentials) Complete() bool {
	return c.BaseURL != "" && c.ClientID != "" && c.Secret != "" &&
		c.Username != "" && c.Password != ""
}

// ==================== 实现 ====================

const (
	tokenEndpoint   = "/api/oauth/v1/token"
	restPrefix      = "/api/rest/v1"
	defaultPageSize = 100
)

type apiClient struct {
	creds Credentials
	http  *resty.Client
}

var _ Client = (*apiClient)(nil)

// NewClient 创建 API 客户端
func NewClient(creds Credentials) Client {
	return &apiClient{
		creds: creds,
		http:  utils.NewAkeneoClient(creds.BaseURL),
	}
}

// tokenCacheKey 同一实例多次授权共享 token
func (c *apiClient) tokenCacheKey() string {
	return "akeneo_token:" + c.creds.BaseURL + ":" + c.creds.ClientID
}

// Authorize 执行 OAuth password grant
func (c *apiClient) Authorize(ctx context.Context) error {
	if !c.creds.Complete() {
		return &AuthError{Message: "凭据不完整，请先在站点配置中填写 Akeneo 连接信息"}
	}

	var res TokenResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.creds.ClientID, c.creds.Secret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"grant_type": "password",
			"username":   c.creds.Username,
			"password":   c.creds.Password,
		}).
		SetResult(&res).
		Post(tokenEndpoint)

	if err != nil {
		return &AuthError{Message: err.Error()}
	}
	if resp.StatusCode() != 200 {
		return &AuthError{Status: resp.StatusCode(), Message: resp.String()}
	}
	if res.AccessToken == "" {
		return &AuthError{Message: "远端未返回 access token"}
	}

	// 提前 60 秒过期，避免边界上带着失效 token 取数
	ttl := time.Duration(res.ExpiresIn-60) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	utils.SetCache(c.tokenCacheKey(), res.AccessToken, ttl)

	return nil
}

// token 取缓存 token，过期则重新授权
func (c *apiClient) token(ctx context.Context) (string, error) {
	if tok, ok := utils.GetCache(c.tokenCacheKey()); ok {
		return tok, nil
	}
	if err := c.Authorize(ctx); err != nil {
		return "", err
	}
	tok, _ := utils.GetCache(c.tokenCacheKey())
	return tok, nil
}

// FetchPage 拉取一页，不在内部重试 (失败归因必须落在单次页请求上)
func (c *apiClient) FetchPage(ctx context.Context, resource, pageURL string) (*Page, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	url := pageURL
	if url == "" {
		// 资源路径可能自带查询参数 (如 products?scope=ecommerce)
		sep := "?"
		if strings.Contains(resource, "?") {
			sep = "&"
		}
		url = fmt.Sprintf("%s/%s%slimit=%d&with_count=false", restPrefix, resource, sep, defaultPageSize)
	}

	var res ListResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(tok).
		SetResult(&res).
		Get(url)

	if err != nil {
		return nil, &TransportError{Resource: resource, Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &TransportError{Resource: resource, Status: resp.StatusCode()}
	}

	return &Page{
		Items:   res.Embedded.Items,
		NextURL: res.Links.Next.Href,
	}, nil
}

// GetChannels 拉全部渠道 (跟分页直到末页)
func (c *apiClient) GetChannels(ctx context.Context) ([]ChannelItem, error) {
	var channels []ChannelItem
	next := ""

	for {
		page, err := c.FetchPage(ctx, "channels", next)
		if err != nil {
			return nil, err
		}

		for _, raw := range page.Items {
			var item ChannelItem
			if err := json.Unmarshal(raw, &item); err != nil {
				return nil, &TransportError{Resource: "channels", Err: err}
			}
			channels = append(channels, item)
		}

		if page.NextURL == "" {
			return channels, nil
		}
		next = page.NextURL
	}
}

// Download 下载媒体二进制
func (c *apiClient) Download(ctx context.Context, href string) ([]byte, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(tok).
		Get(href)

	if err != nil {
		return nil, &TransportError{Resource: href, Err: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &TransportError{Resource: href, Status: resp.StatusCode()}
	}

	return resp.Body(), nil
}
