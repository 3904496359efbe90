package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"akeneo_bridge/internal/model"
	"akeneo_bridge/internal/repository"
)

// CatalogController 同步结果的后台只读查询
type CatalogController struct {
	catalog repository.CatalogRepository
}

func NewCatalogController(catalog repository.CatalogRepository) *CatalogController {
	return &CatalogController{catalog: catalog}
}

func pageParams(ctx *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 20
	}
	return page, pageSize
}

// CategoryNode 分类树节点
type CategoryNode struct {
	Category *model.ProductCategory `json:"category"`
	Children []*CategoryNode        `json:"children"`
}

// buildCategoryTree 把按 Sort 排好序的平表组装成森林
// 父节点尚未落库的记录 (孤儿) 提升为根，保持导入顺序
func buildCategoryTree(categories []model.ProductCategory) []*CategoryNode {
	nodes := make(map[int64]*CategoryNode, len(categories))
	for i := range categories {
		cat := &categories[i]
		nodes[cat.ID] = &CategoryNode{Category: cat, Children: []*CategoryNode{}}
	}

	roots := make([]*CategoryNode, 0)
	for i := range categories {
		cat := &categories[i]
		node := nodes[cat.ID]
		if parent, ok := nodes[cat.ParentID]; ok && cat.ParentID != cat.ID {
			parent.Children = append(parent.Children, node)
			continue
		}
		roots = append(roots, node)
	}
	return roots
}

// ListCategories 全量分类树 (节点按导入顺序排序)
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.catalog.ListCategories(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": buildCategoryTree(categories)})
}

// ListProducts 产品分页列表
func (c *CatalogController) ListProducts(ctx *gin.Context) {
	page, pageSize := pageParams(ctx)

	products, total, err := c.catalog.ListProducts(ctx.Request.Context(), page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"products":  products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// ListAttributes 属性分页列表
func (c *CatalogController) ListAttributes(ctx *gin.Context) {
	page, pageSize := pageParams(ctx)

	attributes, total, err := c.catalog.ListAttributes(ctx.Request.Context(), page, pageSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"attributes": attributes,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}
