package akeneo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func testCreds(baseURL string) Credentials {
	return Credentials{
		BaseURL:  baseURL,
		ClientID: "client",
		Secret:   "secret",
		Username: "user",
		Password: "pass",
	}
}

func tokenHandler(t *testing.T, w http.ResponseWriter, r *http.Request) {
	t.Helper()
	user, pass, ok := r.BasicAuth()
	if !ok || user != "client" || pass != "secret" {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client"}`)
		return
	}
	json.NewEncoder(w).Encode(TokenResp{
		AccessToken: "tok-123",
		ExpiresIn:   3600,
		TokenType:   "bearer",
	})
}

func TestAuthorize_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/oauth/v1/token" {
			tokenHandler(t, w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(testCreds(srv.URL))
	if err := client.Authorize(context.Background()); err != nil {
		t.Fatalf("授权失败: %v", err)
	}
}

func TestAuthorize_RejectedIsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client"}`)
	}))
	defer srv.Close()

	client := NewClient(testCreds(srv.URL))
	err := client.Authorize(context.Background())
	if err == nil {
		t.Fatal("应返回授权错误")
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("期望 *AuthError，实际 %T", err)
	}
	if authErr.Status != http.StatusUnauthorized {
		t.Errorf("状态码错误: %d", authErr.Status)
	}
}

func TestAuthorize_IncompleteCredentials(t *testing.T) {
	client := NewClient(Credentials{BaseURL: "https://pim.example.com"})

	var authErr *AuthError
	if err := client.Authorize(context.Background()); !errors.As(err, &authErr) {
		t.Fatalf("凭据不全应返回 *AuthError，实际 %v", err)
	}
}

func TestFetchPage_FollowsNextLinks(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/oauth/v1/token":
			tokenHandler(t, w, r)
		case r.URL.Path == "/api/rest/v1/categories":
			if r.Header.Get("Authorization") != "Bearer tok-123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `{"_links":{},"_embedded":{"items":[{"code":"C"}]}}`)
				return
			}
			fmt.Fprintf(w, `{"_links":{"next":{"href":"%s/api/rest/v1/categories?page=2"}},"_embedded":{"items":[{"code":"A"},{"code":"B"}]}}`, srv.URL)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(testCreds(srv.URL))
	ctx := context.Background()

	page1, err := client.FetchPage(ctx, "categories", "")
	if err != nil {
		t.Fatalf("首页拉取失败: %v", err)
	}
	if len(page1.Items) != 2 {
		t.Fatalf("首页应有 2 条，实际 %d", len(page1.Items))
	}
	if page1.NextURL == "" {
		t.Fatal("首页应带 next 链接")
	}

	page2, err := client.FetchPage(ctx, "categories", page1.NextURL)
	if err != nil {
		t.Fatalf("次页拉取失败: %v", err)
	}
	if len(page2.Items) != 1 {
		t.Fatalf("次页应有 1 条，实际 %d", len(page2.Items))
	}
	if page2.NextURL != "" {
		t.Error("末页不应带 next 链接")
	}
}

func TestFetchPage_ServerErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/oauth/v1/token" {
			tokenHandler(t, w, r)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(testCreds(srv.URL))
	_, err := client.FetchPage(context.Background(), "products", "")
	if err == nil {
		t.Fatal("应返回传输错误")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("期望 *TransportError，实际 %T", err)
	}
	if transportErr.Status != http.StatusBadGateway {
		t.Errorf("状态码错误: %d", transportErr.Status)
	}
}

func TestFetchPage_ScopedResourceKeepsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/oauth/v1/token" {
			tokenHandler(t, w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"_links":{},"_embedded":{"items":[]}}`)
	}))
	defer srv.Close()

	client := NewClient(testCreds(srv.URL))
	if _, err := client.FetchPage(context.Background(), "products?scope=ecommerce", ""); err != nil {
		t.Fatalf("拉取失败: %v", err)
	}

	values, err := url.ParseQuery(gotQuery)
	if err != nil {
		t.Fatalf("查询串解析失败: %v", err)
	}
	if values.Get("scope") != "ecommerce" {
		t.Errorf("scope 参数丢失: %q", gotQuery)
	}
	if values.Get("limit") == "" {
		t.Errorf("limit 参数丢失: %q", gotQuery)
	}
}

func TestDownload_ReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/oauth/v1/token" {
			tokenHandler(t, w, r)
			return
		}
		w.Write([]byte("binary-data"))
	}))
	defer srv.Close()

	client := NewClient(testCreds(srv.URL))
	data, err := client.Download(context.Background(), srv.URL+"/api/rest/v1/media-files/abc/download")
	if err != nil {
		t.Fatalf("下载失败: %v", err)
	}
	if string(data) != "binary-data" {
		t.Errorf("内容不符: %q", data)
	}
}
