package repository

import (
	"messenger_server/internal/model"

	"gorm.io/gorm"
)

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建会话 Repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// Create 创建会话
func (r *chatRepository) Create(chat *model.Chat) error {
	if err := r.db.Create(chat).Error; err != nil {
		return wrapDBErrorf(err, "创建会话 uuid=%s", chat.Uuid)
	}
	return nil
}

// FindByUuid 按 uuid 查找会话
func (r *chatRepository) FindByUuid(uuid string) (*model.Chat, error) {
	var chat model.Chat
	if err := r.db.Where("uuid = ?", uuid).First(&chat).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话 uuid=%s", uuid)
	}
	return &chat, nil
}

// FindByUuids 批量按 uuid 查找会话
func (r *chatRepository) FindByUuids(uuids []string) ([]model.Chat, error) {
	if len(uuids) == 0 {
		return []model.Chat{}, nil
	}
	var chats []model.Chat
	if err := r.db.Where("uuid IN ?", uuids).Find(&chats).Error; err != nil {
		return nil, wrapDBError(err, "批量查询会话")
	}
	return chats, nil
}

// SoftDeleteByUuid 软删除会话
func (r *chatRepository) SoftDeleteByUuid(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Chat{}).Error; err != nil {
		return wrapDBErrorf(err, "删除会话 uuid=%s", uuid)
	}
	return nil
}
