// Package router 提供 HTTP 路由注册
// 本文件定义联系人与黑名单相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRelationshipRoutes 注册关系相关路由（需要认证）
func (rt *Router) RegisterRelationshipRoutes(rg *gin.RouterGroup) {
	relationGroup := rg.Group("/relationship")
	{
		relationGroup.POST("/addContact", rt.handlers.Relationship.AddContact)
		relationGroup.POST("/removeContact", rt.handlers.Relationship.RemoveContact)
		relationGroup.POST("/addBlocked", rt.handlers.Relationship.AddBlocked)
		relationGroup.POST("/removeBlocked", rt.handlers.Relationship.RemoveBlocked)
		relationGroup.GET("/contactList", rt.handlers.Relationship.GetContactList)
		relationGroup.GET("/blockedList", rt.handlers.Relationship.GetBlockedList)
	}
}
