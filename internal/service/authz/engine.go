// Package authz 集中实现访问控制判定
// 四个判定函数是全系统唯一的权限裁决点，Handler 和其他 Service 不得自行判定
package authz

import (
	"messenger_server/internal/dao/mysql/repository"
	"messenger_server/pkg/enum/relation/relation_type_enum"
	"messenger_server/pkg/errorx"
)

// Engine 鉴权判定引擎
// 持有 Repositories 实例做判定查询
// 写操作的调用方必须在事务内用 txRepos 构造 Engine，
// 使判定和随后的写入读到同一份数据，消除检查与写入之间的竞态窗口
type Engine struct {
	repos *repository.Repositories
}

// NewEngine 创建鉴权判定引擎
func NewEngine(repos *repository.Repositories) *Engine {
	return &Engine{repos: repos}
}

// CanContact 判断 actor 能否主动联系 target
// 判定只看 target 的黑名单：target 把 actor 拉黑时返回 false
// 拉黑是单向的，actor 自己的黑名单不影响判定结果
// target 不存在时返回 CodeUnknownUser 错误
func (e *Engine) CanContact(actor, target string) (bool, error) {
	exists, err := e.repos.User.ExistsByLogin(target)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, errorx.Newf(errorx.CodeUnknownUser, "用户 %s 不存在", target)
	}
	blocked, err := e.repos.Relationship.Exists(target, actor, relation_type_enum.BLOCK)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// IsChatOwner 判断 actor 是否为会话创建者
// 成员管理和解散会话只对创建者开放
// 会话不存在时返回 CodeNotFound 错误
func (e *Engine) IsChatOwner(actor, chatUuid string) (bool, error) {
	chat, err := e.repos.Chat.FindByUuid(chatUuid)
	if err != nil {
		return false, err
	}
	return chat.OwnerLogin == actor, nil
}

// IsChatMember 判断 actor 是否为会话成员
// 发消息和读消息都要求成员身份
// 会话不存在时返回 CodeNotFound 错误
func (e *Engine) IsChatMember(actor, chatUuid string) (bool, error) {
	if _, err := e.repos.Chat.FindByUuid(chatUuid); err != nil {
		return false, err
	}
	return e.repos.ChatMember.Exists(chatUuid, actor)
}

// IsMessageAuthor 判断 actor 是否为消息发送者
// 编辑和删除只对发送者本人开放，会话创建者也无此权限
// 消息不存在（或不在指定会话内）时返回 CodeNotFound 错误
func (e *Engine) IsMessageAuthor(actor, chatUuid string, msgUuid int64) (bool, error) {
	msg, err := e.repos.Message.FindByUuid(chatUuid, msgUuid)
	if err != nil {
		return false, err
	}
	return msg.SenderLogin == actor, nil
}
