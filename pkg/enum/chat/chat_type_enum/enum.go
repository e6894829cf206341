// Package chat_type_enum 会话类型枚举
package chat_type_enum

// 会话类型在创建时根据成员数确定，之后不再改变
const (
	PRIVATE = "private" // 双人会话
	GROUP   = "group"   // 群聊会话
)
