// Package router 提供 HTTP 路由注册
// 本文件定义会话相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes 注册会话相关路由（需要认证）
func (rt *Router) RegisterChatRoutes(rg *gin.RouterGroup) {
	chatGroup := rg.Group("/chat")
	{
		chatGroup.POST("/create", rt.handlers.Chat.CreateChat)
		chatGroup.POST("/addMember", rt.handlers.Chat.AddMember)
		chatGroup.POST("/removeMember", rt.handlers.Chat.RemoveMember)
		chatGroup.POST("/delete", rt.handlers.Chat.DeleteChat)
		chatGroup.GET("/list", rt.handlers.Chat.GetChatList)
		chatGroup.GET("/memberList", rt.handlers.Chat.GetMemberList)
	}
}
