package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewAkeneoClient 创建一个配置好超时和标准头的 Resty 客户端
// 它是全系统访问 Akeneo API 的统一网络入口
func NewAkeneoClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second). // 分页拉取可能较慢，给 30s
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "Akeneo-Bridge/1.0")
}
