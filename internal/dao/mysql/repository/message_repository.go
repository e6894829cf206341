package repository

import (
	"database/sql"
	"time"

	"messenger_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 创建消息
func (r *messageRepository) Create(msg *model.Message) error {
	if err := r.db.Create(msg).Error; err != nil {
		return wrapDBErrorf(err, "创建消息 chat=%s", msg.ChatUuid)
	}
	return nil
}

// FindByUuid 在指定会话内按消息ID查找
// 会话条件一起查，避免跨会话引用他人消息
func (r *messageRepository) FindByUuid(chatUuid string, msgUuid int64) (*model.Message, error) {
	var msg model.Message
	err := r.db.Where("chat_uuid = ? AND uuid = ?", chatUuid, msgUuid).First(&msg).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询消息 chat=%s uuid=%d", chatUuid, msgUuid)
	}
	return &msg, nil
}

// ListRecent 按 (sent_at, uuid) 降序分页查询会话消息
func (r *messageRepository) ListRecent(chatUuid string, offset, limit int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Where("chat_uuid = ?", chatUuid).
		Order("sent_at DESC").Order("uuid DESC").
		Offset(offset).Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询消息列表 chat=%s", chatUuid)
	}
	return msgs, nil
}

// MaxSentAt 查询会话内最大的 sent_at
// 第二个返回值为 false 表示会话内还没有消息
func (r *messageRepository) MaxSentAt(chatUuid string) (time.Time, bool, error) {
	var maxAt sql.NullTime
	err := r.db.Model(&model.Message{}).Where("chat_uuid = ?", chatUuid).
		Select("MAX(sent_at)").Scan(&maxAt).Error
	if err != nil {
		return time.Time{}, false, wrapDBErrorf(err, "查询会话最大发送时间 chat=%s", chatUuid)
	}
	if !maxAt.Valid {
		return time.Time{}, false, nil
	}
	return maxAt.Time, true, nil
}

// UpdateContent 原地更新消息内容
// 只更新 content，sent_at 保持不变，消息的排序位置因此不变
func (r *messageRepository) UpdateContent(msgUuid int64, content string) error {
	err := r.db.Model(&model.Message{}).Where("uuid = ?", msgUuid).
		Update("content", content).Error
	if err != nil {
		return wrapDBErrorf(err, "更新消息内容 uuid=%d", msgUuid)
	}
	return nil
}

// SoftDeleteByUuid 软删除单条消息
func (r *messageRepository) SoftDeleteByUuid(msgUuid int64) error {
	if err := r.db.Where("uuid = ?", msgUuid).Delete(&model.Message{}).Error; err != nil {
		return wrapDBErrorf(err, "删除消息 uuid=%d", msgUuid)
	}
	return nil
}

// SoftDeleteByChatUuid 软删除会话的全部消息
func (r *messageRepository) SoftDeleteByChatUuid(chatUuid string) error {
	if err := r.db.Where("chat_uuid = ?", chatUuid).Delete(&model.Message{}).Error; err != nil {
		return wrapDBErrorf(err, "删除会话消息 chat=%s", chatUuid)
	}
	return nil
}

// SoftDeleteByChatAndSender 软删除会话内指定发送者的全部消息
func (r *messageRepository) SoftDeleteByChatAndSender(chatUuid, senderLogin string) error {
	err := r.db.Where("chat_uuid = ? AND sender_login = ?", chatUuid, senderLogin).
		Delete(&model.Message{}).Error
	if err != nil {
		return wrapDBErrorf(err, "删除发送者消息 chat=%s sender=%s", chatUuid, senderLogin)
	}
	return nil
}

// LatestSentAtByChatUuids 批量查询每个会话最近一条消息的时间
func (r *messageRepository) LatestSentAtByChatUuids(chatUuids []string) (map[string]time.Time, error) {
	result := make(map[string]time.Time, len(chatUuids))
	if len(chatUuids) == 0 {
		return result, nil
	}
	var rows []struct {
		ChatUuid string
		LastAt   time.Time
	}
	err := r.db.Model(&model.Message{}).
		Select("chat_uuid, MAX(sent_at) AS last_at").
		Where("chat_uuid IN ?", chatUuids).
		Group("chat_uuid").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDBError(err, "批量查询会话最近消息时间")
	}
	for _, row := range rows {
		result[row.ChatUuid] = row.LastAt
	}
	return result, nil
}
