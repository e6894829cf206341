package repository

import (
	"errors"

	"messenger_server/internal/model"

	"gorm.io/gorm"
)

type chatMemberRepository struct {
	db *gorm.DB
}

// NewChatMemberRepository 创建会话成员 Repository
func NewChatMemberRepository(db *gorm.DB) ChatMemberRepository {
	return &chatMemberRepository{db: db}
}

// CreateIfAbsent 插入成员行，已存在时不做任何事
func (r *chatMemberRepository) CreateIfAbsent(member *model.ChatMember) error {
	err := r.db.Where("chat_uuid = ? AND user_login = ?",
		member.ChatUuid, member.UserLogin).FirstOrCreate(member).Error
	if err != nil {
		return wrapDBErrorf(err, "创建会话成员 chat=%s user=%s", member.ChatUuid, member.UserLogin)
	}
	return nil
}

// Delete 删除成员行，返回受影响的行数
// 物理删除，软删除的残留行会占用唯一索引导致无法重新加入
func (r *chatMemberRepository) Delete(chatUuid, userLogin string) (int64, error) {
	res := r.db.Unscoped().Where("chat_uuid = ? AND user_login = ?", chatUuid, userLogin).
		Delete(&model.ChatMember{})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "删除会话成员 chat=%s user=%s", chatUuid, userLogin)
	}
	return res.RowsAffected, nil
}

// Exists 判断用户是否为会话成员
func (r *chatMemberRepository) Exists(chatUuid, userLogin string) (bool, error) {
	var member model.ChatMember
	err := r.db.Select("id").Where("chat_uuid = ? AND user_login = ?", chatUuid, userLogin).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, wrapDBErrorf(err, "查询会话成员 chat=%s user=%s", chatUuid, userLogin)
	}
	return true, nil
}

// CountByChatUuid 统计会话成员数
func (r *chatMemberRepository) CountByChatUuid(chatUuid string) (int64, error) {
	var count int64
	err := r.db.Model(&model.ChatMember{}).Where("chat_uuid = ?", chatUuid).Count(&count).Error
	if err != nil {
		return 0, wrapDBErrorf(err, "统计会话成员数 chat=%s", chatUuid)
	}
	return count, nil
}

// FindLoginsByChatUuid 查找会话全部成员的登录名
func (r *chatMemberRepository) FindLoginsByChatUuid(chatUuid string) ([]string, error) {
	var logins []string
	err := r.db.Model(&model.ChatMember{}).Where("chat_uuid = ?", chatUuid).
		Order("user_login").
		Pluck("user_login", &logins).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询会话成员列表 chat=%s", chatUuid)
	}
	return logins, nil
}

// FindChatUuidsByLogin 查找用户所属的全部会话 uuid
func (r *chatMemberRepository) FindChatUuidsByLogin(userLogin string) ([]string, error) {
	var uuids []string
	err := r.db.Model(&model.ChatMember{}).Where("user_login = ?", userLogin).
		Pluck("chat_uuid", &uuids).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询用户会话列表 user=%s", userLogin)
	}
	return uuids, nil
}

// DeleteByChatUuid 删除会话的全部成员行
func (r *chatMemberRepository) DeleteByChatUuid(chatUuid string) error {
	err := r.db.Unscoped().Where("chat_uuid = ?", chatUuid).Delete(&model.ChatMember{}).Error
	if err != nil {
		return wrapDBErrorf(err, "删除会话成员 chat=%s", chatUuid)
	}
	return nil
}
