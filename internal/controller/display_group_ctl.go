package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"akeneo_bridge/internal/service"
)

// DisplayGroupController 展示组管理
// 整组接口受 EnableDisplayGroups 开关门控，关闭时一律 404
type DisplayGroupController struct {
	groupSvc  *service.DisplayGroupService
	configSvc *service.ConfigService
}

func NewDisplayGroupController(groupSvc *service.DisplayGroupService, configSvc *service.ConfigService) *DisplayGroupController {
	return &DisplayGroupController{
		groupSvc:  groupSvc,
		configSvc: configSvc,
	}
}

// RequireEnabled 功能开关门控中间件
func (c *DisplayGroupController) RequireEnabled() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		enabled, err := c.configSvc.DisplayGroupsEnabled(ctx.Request.Context())
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !enabled {
			ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": service.ErrDisplayGroupsDisabled.Error()})
			return
		}
		ctx.Next()
	}
}

func parseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return 0, false
	}
	return id, true
}

type groupReq struct {
	Title string `json:"title" binding:"required"`
}

// CreateGroup 新建展示组
func (c *DisplayGroupController) CreateGroup(ctx *gin.Context) {
	var req groupReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	group, err := c.groupSvc.Create(ctx.Request.Context(), req.Title)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, group)
}

// ListGroups 展示组列表，?root=1 只看根组
func (c *DisplayGroupController) ListGroups(ctx *gin.Context) {
	var rootOnly *bool
	if v := ctx.Query("root"); v != "" {
		b := v == "1" || v == "true"
		rootOnly = &b
	}

	groups, err := c.groupSvc.List(ctx.Request.Context(), rootOnly)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetHierarchy 从某组展开层级树
func (c *DisplayGroupController) GetHierarchy(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	tree, err := c.groupSvc.Hierarchy(ctx.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "展示组不存在"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, tree)
}

// RenameGroup 修改标题
func (c *DisplayGroupController) RenameGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req groupReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	group, err := c.groupSvc.Rename(ctx.Request.Context(), id, req.Title)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "展示组不存在"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, group)
}

// DeleteGroup 删除展示组及其所有边
func (c *DisplayGroupController) DeleteGroup(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.groupSvc.Delete(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

type edgeReq struct {
	SortOrder int `json:"sort_order"`
}

// AttachChild 挂子组
func (c *DisplayGroupController) AttachChild(ctx *gin.Context) {
	parentID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	childID, ok := parseID(ctx, "childId")
	if !ok {
		return
	}

	var req edgeReq
	_ = ctx.ShouldBindJSON(&req)

	err := c.groupSvc.AttachChild(ctx.Request.Context(), parentID, childID, req.SortOrder)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "展示组不存在"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "挂载成功"})
}

// DetachChild 拆子组
func (c *DisplayGroupController) DetachChild(ctx *gin.Context) {
	parentID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	childID, ok := parseID(ctx, "childId")
	if !ok {
		return
	}

	if err := c.groupSvc.DetachChild(ctx.Request.Context(), parentID, childID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "已拆除"})
}

// ListAttributes 组下挂载的属性边
func (c *DisplayGroupController) ListAttributes(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	edges, err := c.groupSvc.AttributeEdges(ctx.Request.Context(), id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"attributes": edges})
}

// AttachAttribute 把产品属性挂到组下
func (c *DisplayGroupController) AttachAttribute(ctx *gin.Context) {
	groupID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	attributeID, ok := parseID(ctx, "attrId")
	if !ok {
		return
	}

	var req edgeReq
	_ = ctx.ShouldBindJSON(&req)

	err := c.groupSvc.AttachAttribute(ctx.Request.Context(), groupID, attributeID, req.SortOrder)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "展示组不存在"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "挂载成功"})
}

// DetachAttribute 取消挂载
func (c *DisplayGroupController) DetachAttribute(ctx *gin.Context) {
	groupID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	attributeID, ok := parseID(ctx, "attrId")
	if !ok {
		return
	}

	if err := c.groupSvc.DetachAttribute(ctx.Request.Context(), groupID, attributeID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "已取消挂载"})
}
