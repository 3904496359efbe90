package router

import (
	"github.com/gin-gonic/gin"

	"akeneo_bridge/internal/controller"
	"akeneo_bridge/internal/middleware"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtl *controller.AuthController,
	syncCtl *controller.SyncController,
	configCtl *controller.ConfigController,
	catalogCtl *controller.CatalogController,
	groupCtl *controller.DisplayGroupController) {

	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			// POST /api/auth/login
			auth.POST("/login", authCtl.Login)
			auth.POST("/refresh", authCtl.Refresh)
			auth.GET("/profile", middleware.JWTAuth(), authCtl.Profile)
		}

		// 以下接口全部要求登录
		secured := api.Group("", middleware.JWTAuth())

		// 同步触发与状态
		{
			// POST /api/sync 手动触发一轮全量同步
			secured.POST("/sync", syncCtl.TriggerSync)
			secured.GET("/sync/status", syncCtl.GetStatus)
			secured.GET("/sync/report", syncCtl.GetReport)
		}

		// 站点配置 (凭据类操作仅管理员)
		config := secured.Group("/config")
		{
			config.GET("", configCtl.GetConfig)
			config.PUT("", middleware.RequireRole("admin"), configCtl.UpdateConfig)
			config.GET("/channels", configCtl.ListChannels)
		}

		// 同步结果只读查询
		{
			secured.GET("/categories", catalogCtl.ListCategories)
			secured.GET("/products", catalogCtl.ListProducts)
			secured.GET("/attributes", catalogCtl.ListAttributes)
		}

		// 展示组 (受 EnableDisplayGroups 开关门控)
		groups := secured.Group("/display-groups", groupCtl.RequireEnabled())
		{
			groups.GET("", groupCtl.ListGroups)
			groups.POST("", groupCtl.CreateGroup)
			groups.GET("/:id/hierarchy", groupCtl.GetHierarchy)
			groups.PUT("/:id", groupCtl.RenameGroup)
			groups.DELETE("/:id", groupCtl.DeleteGroup)

			groups.POST("/:id/children/:childId", groupCtl.AttachChild)
			groups.DELETE("/:id/children/:childId", groupCtl.DetachChild)

			groups.GET("/:id/attributes", groupCtl.ListAttributes)
			groups.POST("/:id/attributes/:attrId", groupCtl.AttachAttribute)
			groups.DELETE("/:id/attributes/:attrId", groupCtl.DetachAttribute)
		}
	}
}
