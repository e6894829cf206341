// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"messenger_server/internal/handler"
	"messenger_server/internal/infrastructure/middleware"
)

// Router 路由管理器
// 持有 Handler 聚合实例，各业务模块的路由在独立文件中注册
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
// handlers: Handler 聚合实例
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 注册和登录是仅有的公开接口，其余全部挂在 JWT 鉴权组下
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterPublicRoutes(r)

	authed := r.Group("")
	authed.Use(middleware.JWTAuth())
	{
		rt.RegisterUserRoutes(authed)         // 用户路由
		rt.RegisterRelationshipRoutes(authed) // 关系路由
		rt.RegisterChatRoutes(authed)         // 会话路由
		rt.RegisterMessageRoutes(authed)      // 消息路由
		rt.RegisterWebSocketRoutes(authed)    // WebSocket 路由
	}
}
