// Package handler 提供 HTTP 请求处理器
// 本文件处理消息相关的 API 请求
package handler

import (
	"messenger_server/internal/dto/request"
	"messenger_server/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
// messageSvc: 消息服务接口
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// SendMessage 发送消息
// POST /message/send
// 请求体: request.SendMessageRequest
// 响应: respond.SendMessageRespond
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.SendMessage(actorLogin(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRecentMessages 拉取最近消息
// GET /message/recent?chat_id=xxx&offset=0&limit=10
// 查询参数: request.RecentMessagesRequest
// 响应: []respond.MessageListRespond（由新到旧）
func (h *MessageHandler) GetRecentMessages(c *gin.Context) {
	var req request.RecentMessagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.messageSvc.GetRecentMessages(actorLogin(c), req.ChatId, req.Offset, req.Limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// EditMessage 编辑消息
// POST /message/edit
// 请求体: request.EditMessageRequest
// 响应: nil
func (h *MessageHandler) EditMessage(c *gin.Context) {
	var req request.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.messageSvc.EditMessage(actorLogin(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteMessage 删除消息
// POST /message/delete
// 请求体: request.DeleteMessageRequest
// 响应: nil
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	var req request.DeleteMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.messageSvc.DeleteMessage(actorLogin(c), req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
