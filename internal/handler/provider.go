// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 遵循依赖倒置原则，通过构造函数注入 Service 依赖
package handler

import (
	"github.com/gin-gonic/gin"

	"messenger_server/internal/gateway/websocket"
	"messenger_server/internal/service"
)

// Handlers 聚合所有 Handler 实例
// 作为依赖注入的入口，Router 层通过此结构访问各个 Handler
type Handlers struct {
	User         *UserHandler
	Auth         *AuthHandler
	Relationship *RelationshipHandler
	Chat         *ChatHandler
	Message      *MessageHandler
	Ws           *WsHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// svc: Service 层聚合实例
// connManager: WebSocket 连接管理器，可为 nil（不提供实时推送）
func NewHandlers(svc *service.Services, connManager *websocket.ConnManager) *Handlers {
	return &Handlers{
		User:         NewUserHandler(svc.User),
		Auth:         NewAuthHandler(svc.Auth),
		Relationship: NewRelationshipHandler(svc.Relationship),
		Chat:         NewChatHandler(svc.Chat),
		Message:      NewMessageHandler(svc.Message),
		Ws:           NewWsHandler(connManager),
	}
}

// actorLogin 从请求上下文取出鉴权中间件写入的当前用户登录名
// 操作者身份只信任令牌，绝不从请求体读取
func actorLogin(c *gin.Context) string {
	return c.GetString("user_id")
}
