package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
	"akeneo_bridge/internal/service"
)

func setupGroupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	groupSvc := service.NewDisplayGroupService(repository.NewDisplayGroupRepository(db))
	configSvc := service.NewConfigService(repository.NewConfigRepository(db))
	ctl := NewDisplayGroupController(groupSvc, configSvc)

	r := gin.New()
	groups := r.Group("/api/display-groups", ctl.RequireEnabled())
	{
		groups.GET("", ctl.ListGroups)
		groups.POST("", ctl.CreateGroup)
		groups.GET("/:id/hierarchy", ctl.GetHierarchy)
		groups.POST("/:id/children/:childId", ctl.AttachChild)
	}
	return r
}

func enableDisplayGroups(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := db.Save(&model.SiteConfig{EnableDisplayGroups: true}).Error; err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
}

func TestDisplayGroups_DisabledReturns404(t *testing.T) {
	db := setupCtlTestDB(t)
	r := setupGroupRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/display-groups", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("功能关闭时应 404，实际 %d", w.Code)
	}
}

func TestDisplayGroups_CreateAndList(t *testing.T) {
	db := setupCtlTestDB(t)
	enableDisplayGroups(t, db)
	r := setupGroupRouter(db)

	body := bytes.NewBufferString(`{"title":"Specs"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/display-groups", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("创建应 201，实际 %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/display-groups?root=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("列表失败: %d", w.Code)
	}

	var resp struct {
		Groups []model.DisplayGroup `json:"groups"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if len(resp.Groups) != 1 || resp.Groups[0].Title != "Specs" {
		t.Errorf("列表内容错误: %+v", resp.Groups)
	}
	if !resp.Groups[0].IsRootGroup {
		t.Error("新建组应是根组")
	}
}

func TestDisplayGroups_AttachAndHierarchy(t *testing.T) {
	db := setupCtlTestDB(t)
	enableDisplayGroups(t, db)
	r := setupGroupRouter(db)

	create := func(title string) int64 {
		body := bytes.NewBufferString(fmt.Sprintf(`{"title":%q}`, title))
		req := httptest.NewRequest(http.MethodPost, "/api/display-groups", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("创建 %s 失败: %d", title, w.Code)
		}
		var group model.DisplayGroup
		json.Unmarshal(w.Body.Bytes(), &group)
		return group.ID
	}

	parentID := create("Parent")
	childID := create("Child")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/display-groups/%d/children/%d", parentID, childID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("挂载失败: %d: %s", w.Code, w.Body.String())
	}

	// 自环被拒
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/display-groups/%d/children/%d", parentID, parentID), nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("自环应 400，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/api/display-groups/%d/hierarchy", parentID), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("层级查询失败: %d", w.Code)
	}

	var tree service.GroupNode
	if err := json.Unmarshal(w.Body.Bytes(), &tree); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if len(tree.Children) != 1 || tree.Children[0].Group.Title != "Child" {
		t.Errorf("层级树错误: %+v", tree)
	}
}
