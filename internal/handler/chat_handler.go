// Package handler 提供 HTTP 请求处理器
// 本文件处理会话相关的 API 请求
package handler

import (
	"messenger_server/internal/dto/request"
	"messenger_server/internal/service"
	"messenger_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// ChatHandler 会话请求处理器
type ChatHandler struct {
	chatSvc service.ChatService
}

// NewChatHandler 创建会话处理器实例
// chatSvc: 会话服务接口
func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// CreateChat 创建会话
// POST /chat/create
// 请求体: request.CreateChatRequest
// 响应: respond.CreateChatRespond
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req request.CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatSvc.CreateChat(actorLogin(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AddMember 向会话添加成员
// POST /chat/addMember
// 请求体: request.ChatMemberRequest
// 响应: nil
func (h *ChatHandler) AddMember(c *gin.Context) {
	var req request.ChatMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.chatSvc.AddMember(actorLogin(c), req.ChatId, req.Login); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveMember 从会话移出成员
// POST /chat/removeMember
// 请求体: request.ChatMemberRequest
// 响应: nil
func (h *ChatHandler) RemoveMember(c *gin.Context) {
	var req request.ChatMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.chatSvc.RemoveMember(actorLogin(c), req.ChatId, req.Login); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteChat 解散会话
// POST /chat/delete
// 请求体: request.DeleteChatRequest
// 响应: nil
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	var req request.DeleteChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.chatSvc.DeleteChat(actorLogin(c), req.ChatId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetChatList 获取当前用户的会话列表
// GET /chat/list
// 响应: []respond.ChatListRespond
func (h *ChatHandler) GetChatList(c *gin.Context) {
	data, err := h.chatSvc.GetChatList(actorLogin(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMemberList 获取会话成员列表
// GET /chat/memberList?chat_id=xxx
// 响应: []string (登录名列表)
func (h *ChatHandler) GetMemberList(c *gin.Context) {
	chatId := c.Query("chat_id")
	if chatId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "chat_id 不能为空"))
		return
	}
	data, err := h.chatSvc.GetMemberList(actorLogin(c), chatId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
