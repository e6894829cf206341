// Package relation_type_enum 用户关系类型枚举
package relation_type_enum

const (
	CONTACT int8 = iota // 联系人
	BLOCK               // 黑名单
)
