package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
	"akeneo_bridge/pkg/akeneo"
)

// ==================== 测试辅助 ====================

func setupSyncTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.SysUser{}, &model.SiteConfig{},
		&model.Locale{}, &model.Channel{}, &model.LabelTranslation{},
		&model.ProductAttributeGroup{}, &model.ProductAttribute{}, &model.ProductAttributeOption{},
		&model.Family{}, &model.FamilyVariant{}, &model.ProductCategory{},
		&model.ProductModel{}, &model.Product{}, &model.ProductMediaFile{},
		&model.DisplayGroup{}, &model.DisplayGroupEdge{}, &model.DisplayGroupAttribute{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

// seedTestConfig 写入一份完整凭据配置 (假客户端不真正使用)
func seedTestConfig(t *testing.T, db *gorm.DB) {
	t.Helper()
	cfg := &model.SiteConfig{
		AkeneoURL:      "https://pim.example.com",
		AkeneoClientID: "client",
		AkeneoSecret:   "secret",
		AkeneoUsername: "user",
		AkeneoPassword: "pass",
	}
	if err := db.Save(cfg).Error; err != nil {
		t.Fatalf("写入测试配置失败: %v", err)
	}
}

// ==================== 假 Akeneo 客户端 ====================

// fakeClient 预置页数据的假客户端，不发网络请求
type fakeClient struct {
	mu sync.Mutex

	authErr  error
	pageMap  map[string]*akeneo.Page
	fetchErr map[string]error

	downloads map[string][]byte

	authorizeCalls int
	fetchCalls     []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		pageMap:   map[string]*akeneo.Page{},
		fetchErr:  map[string]error{},
		downloads: map[string][]byte{},
	}
}

// addPages 登记某资源的整段分页序列，自动串联 next 链接
func (f *fakeClient) addPages(resource string, pages ...*akeneo.Page) {
	for i, page := range pages {
		key := resource + "|"
		if i > 0 {
			key = fmt.Sprintf("%s|%s@page%d", resource, resource, i)
		}
		if i < len(pages)-1 {
			page.NextURL = fmt.Sprintf("%s@page%d", resource, i+1)
		}
		f.pageMap[key] = page
	}
}

func (f *fakeClient) Authorize(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authorizeCalls++
	return f.authErr
}

func (f *fakeClient) FetchPage(ctx context.Context, resource, pageURL string) (*akeneo.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetchCalls = append(f.fetchCalls, resource+"|"+pageURL)

	if err, ok := f.fetchErr[resource]; ok {
		return nil, err
	}
	if page, ok := f.pageMap[resource+"|"+pageURL]; ok {
		return page, nil
	}
	return &akeneo.Page{}, nil
}

func (f *fakeClient) GetChannels(ctx context.Context) ([]akeneo.ChannelItem, error) {
	return nil, nil
}

func (f *fakeClient) Download(ctx context.Context, href string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if data, ok := f.downloads[href]; ok {
		return data, nil
	}
	return nil, &akeneo.TransportError{Resource: href, Status: 404}
}

var _ akeneo.Client = (*fakeClient)(nil)

// newTestImportService 拼一个完整的导入服务，客户端换成假的
func newTestImportService(db *gorm.DB, fake *fakeClient) *ImportService {
	svc := NewImportService(
		repository.NewRecordRepository(db),
		repository.NewCatalogRepository(db),
		repository.NewTranslationRepository(db),
		repository.NewConfigRepository(db),
		nil,
	)
	svc.newClient = func(akeneo.Credentials) akeneo.Client { return fake }
	return svc
}
