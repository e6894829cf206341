// Package message 提供消息相关的业务逻辑
// 同一会话内 sent_at 严格单调递增，在事务内读取当前最大值并在必要时前推，
// 消息ID（雪花）作为同刻的次级排序键
package message

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"messenger_server/internal/dao/mysql/repository"
	myredis "messenger_server/internal/dao/redis"
	"messenger_server/internal/dto/request"
	"messenger_server/internal/dto/respond"
	"messenger_server/internal/infrastructure/mq"
	"messenger_server/internal/model"
	"messenger_server/internal/service/authz"
	"messenger_server/pkg/constants"
	"messenger_server/pkg/errorx"
	"messenger_server/pkg/util/snowflake"
)

// Service 消息服务实现
type Service struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	broker mq.EventBroker
}

// NewMessageService 创建消息服务实例
func NewMessageService(repos *repository.Repositories, cache myredis.AsyncCacheService, broker mq.EventBroker) *Service {
	return &Service{repos: repos, cache: cache, broker: broker}
}

// SendMessage 向会话发送消息
// 仅会话成员可发送，成员判定和消息写入在同一事务内完成
// sent_at 取当前时间，若不大于会话内已有最大时间则前推一微秒
func (s *Service) SendMessage(actor string, req request.SendMessageRequest) (*respond.SendMessageRespond, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}

	newMsg := &model.Message{
		Uuid:        snowflake.GenerateID(),
		ChatUuid:    req.ChatId,
		SenderLogin: actor,
		Content:     req.Content,
	}
	var members []string
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		eng := authz.NewEngine(txRepos)
		isMember, err := eng.IsChatMember(actor, req.ChatId)
		if err != nil {
			return err
		}
		if !isMember {
			return errorx.New(errorx.CodeUnauthorized, "你不是该会话的成员")
		}
		maxAt, has, err := txRepos.Message.MaxSentAt(req.ChatId)
		if err != nil {
			return err
		}
		sentAt := time.Now()
		if has && !sentAt.After(maxAt) {
			sentAt = maxAt.Add(time.Microsecond)
		}
		newMsg.SentAt = sentAt
		if err := txRepos.Message.Create(newMsg); err != nil {
			return err
		}
		members, err = txRepos.ChatMember.FindLoginsByChatUuid(req.ChatId)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(mq.ChatEvent{
		Kind:      mq.EventMessageSent,
		ChatId:    req.ChatId,
		MessageId: newMsg.Uuid,
		SenderId:  actor,
		Content:   newMsg.Content,
		SentAt:    newMsg.SentAt,
		Members:   members,
	})
	s.invalidateChatListCache(members)
	return &respond.SendMessageRespond{
		MessageId: newMsg.Uuid,
		ChatId:    req.ChatId,
		SentAt:    newMsg.SentAt.Format(constants.MESSAGE_TIME_LAYOUT),
	}, nil
}

// GetRecentMessages 按时间由新到旧拉取会话消息
// 仅会话成员可读，limit 为 0 时取默认页大小，超出上限时收紧到上限
func (s *Service) GetRecentMessages(actor, chatId string, offset, limit int) ([]respond.MessageListRespond, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = constants.MESSAGE_PAGE_SIZE
	}
	if limit > constants.MESSAGE_PAGE_MAX {
		limit = constants.MESSAGE_PAGE_MAX
	}

	eng := authz.NewEngine(s.repos)
	isMember, err := eng.IsChatMember(actor, chatId)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, errorx.New(errorx.CodeUnauthorized, "你不是该会话的成员")
	}

	messages, err := s.repos.Message.ListRecent(chatId, offset, limit)
	if err != nil {
		return nil, err
	}
	rsp := make([]respond.MessageListRespond, 0, len(messages))
	for _, m := range messages {
		rsp = append(rsp, respond.MessageListRespond{
			MessageId:   m.Uuid,
			SenderLogin: m.SenderLogin,
			Content:     m.Content,
			SentAt:      m.SentAt.Format(constants.MESSAGE_TIME_LAYOUT),
		})
	}
	return rsp, nil
}

// EditMessage 发送者编辑自己的消息
// 内容原地替换，sent_at 和排序位置保持不变
func (s *Service) EditMessage(actor string, req request.EditMessageRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}
	var members []string
	var sentAt time.Time
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		eng := authz.NewEngine(txRepos)
		isAuthor, err := eng.IsMessageAuthor(actor, req.ChatId, req.MessageId)
		if err != nil {
			return err
		}
		if !isAuthor {
			return errorx.New(errorx.CodeUnauthorized, "只有发送者才能编辑消息")
		}
		if err := txRepos.Message.UpdateContent(req.MessageId, req.Content); err != nil {
			return err
		}
		msg, err := txRepos.Message.FindByUuid(req.ChatId, req.MessageId)
		if err != nil {
			return err
		}
		sentAt = msg.SentAt
		members, err = txRepos.ChatMember.FindLoginsByChatUuid(req.ChatId)
		return err
	})
	if err != nil {
		return err
	}

	s.publish(mq.ChatEvent{
		Kind:      mq.EventMessageEdited,
		ChatId:    req.ChatId,
		MessageId: req.MessageId,
		SenderId:  actor,
		Content:   req.Content,
		SentAt:    sentAt,
		Members:   members,
	})
	return nil
}

// DeleteMessage 发送者删除自己的消息
func (s *Service) DeleteMessage(actor string, req request.DeleteMessageRequest) error {
	var members []string
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		eng := authz.NewEngine(txRepos)
		isAuthor, err := eng.IsMessageAuthor(actor, req.ChatId, req.MessageId)
		if err != nil {
			return err
		}
		if !isAuthor {
			return errorx.New(errorx.CodeUnauthorized, "只有发送者才能删除消息")
		}
		if err := txRepos.Message.SoftDeleteByUuid(req.MessageId); err != nil {
			return err
		}
		members, err = txRepos.ChatMember.FindLoginsByChatUuid(req.ChatId)
		return err
	})
	if err != nil {
		return err
	}

	s.publish(mq.ChatEvent{
		Kind:      mq.EventMessageDeleted,
		ChatId:    req.ChatId,
		MessageId: req.MessageId,
		SenderId:  actor,
		Members:   members,
	})
	s.invalidateChatListCache(members)
	return nil
}

// invalidateChatListCache 消息增删会改变会话列表的排序依据，异步失效相关缓存
func (s *Service) invalidateChatListCache(logins []string) {
	if s.cache == nil || len(logins) == 0 {
		return
	}
	keys := make([]string, 0, len(logins))
	for _, login := range logins {
		keys = append(keys, "chat_list_"+login)
	}
	s.cache.SubmitTask(func() {
		for _, key := range keys {
			if err := s.cache.Delete(context.Background(), key); err != nil {
				zap.L().Error("失效会话列表缓存失败", zap.Error(err))
			}
		}
	})
}

// publish 发布会话事件，失败只记日志，不影响已提交的台账
func (s *Service) publish(ev mq.ChatEvent) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(context.Background(), ev); err != nil {
		zap.L().Error("发布会话事件失败", zap.String("kind", ev.Kind), zap.Error(err))
	}
}
