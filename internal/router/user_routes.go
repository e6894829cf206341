// Package router 提供 HTTP 路由注册
// 本文件定义用户相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由（需要认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/info", rt.handlers.User.GetUserInfo)
		userGroup.POST("/updateStatus", rt.handlers.User.UpdateStatus)
		userGroup.POST("/deleteAccount", rt.handlers.User.DeleteAccount)
	}
}
