// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	"messenger_server/internal/gateway/websocket"
	"messenger_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// WsHandler WebSocket 连接处理器
type WsHandler struct {
	connManager *websocket.ConnManager
}

// NewWsHandler 创建 WebSocket 处理器实例
// connManager: 连接管理器，可为 nil（未启用实时推送）
func NewWsHandler(connManager *websocket.ConnManager) *WsHandler {
	return &WsHandler{connManager: connManager}
}

// Connect 建立 WebSocket 连接
// GET /ws
// 连接身份取自鉴权中间件解析的令牌，升级后只做下行事件推送
func (h *WsHandler) Connect(c *gin.Context) {
	if h.connManager == nil {
		HandleError(c, errorx.New(errorx.CodeServerBusy, "实时推送未启用"))
		return
	}
	h.connManager.HandleConnection(c, actorLogin(c))
}

// Disconnect 主动断开 WebSocket 连接
// POST /ws/logout
// 响应: nil
func (h *WsHandler) Disconnect(c *gin.Context) {
	if h.connManager != nil {
		h.connManager.Logout(actorLogin(c))
	}
	HandleSuccess(c, nil)
}
