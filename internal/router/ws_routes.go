// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 相关路由（需要认证）
func (rt *Router) RegisterWebSocketRoutes(rg *gin.RouterGroup) {
	// WebSocket 连接入口，身份取自 Access Token
	// 请求示例: ws://host:port/ws (Header: Authorization: Bearer <token>)
	rg.GET("/ws", rt.handlers.Ws.Connect)
	rg.POST("/ws/logout", rt.handlers.Ws.Disconnect)
}
