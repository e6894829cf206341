// Package router 提供 HTTP 路由注册
// 本文件定义无需认证的公开路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes 注册公开路由
// 注册、登录和令牌刷新不要求携带 Access Token
func (rt *Router) RegisterPublicRoutes(r *gin.Engine) {
	// POST /register - 用户注册
	r.POST("/register", rt.handlers.User.Register)
	// POST /login - 密码登录
	r.POST("/login", rt.handlers.User.Login)

	authGroup := r.Group("/auth")
	{
		// POST /auth/refresh - 用 Refresh Token 换取新的 Access Token
		authGroup.POST("/refresh", rt.handlers.Auth.RefreshToken)
	}
}
