package utils

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	SetCache("token:a", "tok-1", time.Minute)

	val, ok := GetCache("token:a")
	if !ok || val != "tok-1" {
		t.Fatalf("读取失败: %q, %v", val, ok)
	}

	if _, ok := GetCache("token:missing"); ok {
		t.Error("不存在的键不应命中")
	}
}

func TestCache_Expiry(t *testing.T) {
	// 负 ttl 立即过期，触发懒删除
	SetCache("token:b", "tok-2", -time.Second)

	if _, ok := GetCache("token:b"); ok {
		t.Error("过期键不应命中")
	}
	if _, ok := memoryCache.Load("token:b"); ok {
		t.Error("过期键应被懒删除")
	}
}

func TestCache_Delete(t *testing.T) {
	SetCache("token:c", "tok-3", time.Minute)
	DeleteCache("token:c")

	if _, ok := GetCache("token:c"); ok {
		t.Error("删除后不应命中")
	}
}
