// Package handler 提供 HTTP 请求处理器
// 本文件处理联系人与黑名单相关的 API 请求
package handler

import (
	"messenger_server/internal/dto/request"
	"messenger_server/internal/service"

	"github.com/gin-gonic/gin"
)

// RelationshipHandler 关系请求处理器
type RelationshipHandler struct {
	relationSvc service.RelationshipService
}

// NewRelationshipHandler 创建关系处理器实例
// relationSvc: 关系服务接口
func NewRelationshipHandler(relationSvc service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationSvc: relationSvc}
}

// AddContact 添加联系人
// POST /relationship/addContact
// 请求体: request.RelationTargetRequest
// 响应: nil
func (h *RelationshipHandler) AddContact(c *gin.Context) {
	var req request.RelationTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.relationSvc.AddContact(actorLogin(c), req.TargetLogin); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveContact 移除联系人
// POST /relationship/removeContact
// 请求体: request.RelationTargetRequest
// 响应: nil
func (h *RelationshipHandler) RemoveContact(c *gin.Context) {
	var req request.RelationTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.relationSvc.RemoveContact(actorLogin(c), req.TargetLogin); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// AddBlocked 添加黑名单
// POST /relationship/addBlocked
// 请求体: request.RelationTargetRequest
// 响应: nil
func (h *RelationshipHandler) AddBlocked(c *gin.Context) {
	var req request.RelationTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.relationSvc.AddBlocked(actorLogin(c), req.TargetLogin); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveBlocked 移除黑名单
// POST /relationship/removeBlocked
// 请求体: request.RelationTargetRequest
// 响应: nil
func (h *RelationshipHandler) RemoveBlocked(c *gin.Context) {
	var req request.RelationTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.relationSvc.RemoveBlocked(actorLogin(c), req.TargetLogin); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetContactList 获取联系人列表
// GET /relationship/contactList
// 响应: []respond.ContactListRespond
func (h *RelationshipHandler) GetContactList(c *gin.Context) {
	data, err := h.relationSvc.GetContactList(actorLogin(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetBlockedList 获取黑名单列表
// GET /relationship/blockedList
// 响应: []string (登录名列表)
func (h *RelationshipHandler) GetBlockedList(c *gin.Context) {
	data, err := h.relationSvc.GetBlockedList(actorLogin(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
