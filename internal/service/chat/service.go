// Package chat 提供会话相关的业务逻辑
// 会话类型在创建时按成员数定死：2 人为 private，3 人及以上为 group
// 之后的成员增删不改变类型
package chat

import (
	"context"
	"encoding/json"
	"sort"
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
	"messenger_server/pkg/enum/chat/chat_type_enum"
	"messenger_server/pkg/errorx"
	"messenger_server/pkg/util/random"
)

// Service 会话服务实现
type Service struct {
	repos  *repository.Repositories
	cache  myredis.AsyncCacheService
	broker mq.EventBroker
}

// NewChatService 创建会话服务实例
func NewChatService(repos *repository.Repositories, cache myredis.AsyncCacheService, broker mq.EventBroker) *Service {
	return &Service{repos: repos, cache: cache, broker: broker}
}

// CreateChat 创建会话
// 发起者自动成为成员和创建者，participants 中的重复项和发起者本人被去重
// 每个其他参与者都要通过联系判定：对方不存在返回 CodeUnknownUser，
// 对方拉黑了发起者返回 CodeUnauthorized
// 会话行和全部成员行在同一事务内落库，任何成员插入失败整体回滚
func (s *Service) CreateChat(initiator string, req request.CreateChatRequest) (*respond.CreateChatRespond, error) {
	members := dedupeMembers(initiator, req.Participants)
	if len(members) < 2 {
		return nil, errorx.New(errorx.CodeInvalidMembership, "会话至少需要 2 名成员")
	}
	chatType := chat_type_enum.GROUP
	if len(members) == 2 {
		chatType = chat_type_enum.PRIVATE
	}

	newChat := &model.Chat{
		Uuid:       "C" + random.GetNowAndLenRandomString(13),
		Type:       chatType,
		OwnerLogin: initiator,
	}
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		eng := authz.NewEngine(txRepos)
		for _, login := range members {
			if login == initiator {
				continue
			}
			ok, err := eng.CanContact(initiator, login)
			if err != nil {
				return err
			}
			if !ok {
				return errorx.Newf(errorx.CodeUnauthorized, "无法将用户 %s 加入会话", login)
			}
		}
		if err := txRepos.Chat.Create(newChat); err != nil {
			return err
		}
		for _, login := range members {
			member := &model.ChatMember{ChatUuid: newChat.Uuid, UserLogin: login}
			if err := txRepos.ChatMember.CreateIfAbsent(member); err != nil {
				return errorx.Wrapf(err, errorx.CodeInconsistent, "写入会话成员失败 login=%s", login)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateChatListCache(members)
	s.publish(mq.ChatEvent{
		Kind:     mq.EventChatCreated,
		ChatId:   newChat.Uuid,
		SenderId: initiator,
		Members:  members,
	})
	zap.L().Info("会话创建成功",
		zap.String("chatUuid", newChat.Uuid),
		zap.String("type", chatType),
		zap.Int("members", len(members)))
	return &respond.CreateChatRespond{
		ChatId:  newChat.Uuid,
		Type:    chatType,
		Owner:   initiator,
		Members: members,
	}, nil
}

// AddMember 创建者向会话添加成员
// 仅创建者可操作，新成员同样要通过联系判定
// 重复添加已有成员是无害的幂等操作
func (s *Service) AddMember(actor, chatId, login string) error {
	var members []string
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		eng := authz.NewEngine(txRepos)
		isOwner, err := eng.IsChatOwner(actor, chatId)
		if err != nil {
			return err
		}
		if !isOwner {
			return errorx.New(errorx.CodeUnauthorized, "只有会话创建者才能添加成员")
		}
		ok, err := eng.CanContact(actor, login)
		if err != nil {
			return err
		}
		if !ok {
			return errorx.Newf(errorx.CodeUnauthorized, "无法将用户 %s 加入会话", login)
		}
		if err := txRepos.ChatMember.CreateIfAbsent(&model.ChatMember{ChatUuid: chatId, UserLogin: login}); err != nil {
			return err
		}
		members, err = txRepos.ChatMember.FindLoginsByChatUuid(chatId)
		return err
	})
	if err != nil {
		return err
	}

	s.invalidateChatListCache(members)
	s.publish(mq.ChatEvent{
		Kind:     mq.EventMemberAdded,
		ChatId:   chatId,
		SenderId: login,
		Members:  members,
	})
	return nil
}

// RemoveMember 创建者从会话移出成员
// 移出不在会话内的用户是无害的幂等操作
// 移出后成员数不足 2 人时拒绝操作，防止产生僵尸会话
func (s *Service) RemoveMember(actor, chatId, login string) error {
	var members []string
	var removed bool
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		eng := authz.NewEngine(txRepos)
		isOwner, err := eng.IsChatOwner(actor, chatId)
		if err != nil {
			return err
		}
		if !isOwner {
			return errorx.New(errorx.CodeUnauthorized, "只有会话创建者才能移出成员")
		}
		isMember, err := txRepos.ChatMember.Exists(chatId, login)
		if err != nil {
			return err
		}
		if !isMember {
			return nil
		}
		count, err := txRepos.ChatMember.CountByChatUuid(chatId)
		if err != nil {
			return err
		}
		if count-1 < 2 {
			return errorx.New(errorx.CodeInvalidMembership, "会话成员不能少于 2 人")
		}
		if _, err := txRepos.ChatMember.Delete(chatId, login); err != nil {
			return err
		}
		removed = true
		members, err = txRepos.ChatMember.FindLoginsByChatUuid(chatId)
		return err
	})
	if err != nil || !removed {
		return err
	}

	s.invalidateChatListCache(append(members, login))
	s.publish(mq.ChatEvent{
		Kind:     mq.EventMemberRemoved,
		ChatId:   chatId,
		SenderId: login,
		Members:  append(members, login),
	})
	return nil
}

// DeleteChat 创建者解散会话
// 消息、成员、会话行在同一事务内删除，不留任何一方单独存在
func (s *Service) DeleteChat(actor, chatId string) error {
	var members []string
	err := s.repos.Transaction(func(txRepos *repository.Repositories) error {
		eng := authz.NewEngine(txRepos)
		isOwner, err := eng.IsChatOwner(actor, chatId)
		if err != nil {
			return err
		}
		if !isOwner {
			return errorx.New(errorx.CodeUnauthorized, "只有会话创建者才能解散会话")
		}
		members, err = txRepos.ChatMember.FindLoginsByChatUuid(chatId)
		if err != nil {
			return err
		}
		if err := txRepos.Message.SoftDeleteByChatUuid(chatId); err != nil {
			return errorx.Wrap(err, errorx.CodeInconsistent, "解散会话删除消息失败")
		}
		if err := txRepos.ChatMember.DeleteByChatUuid(chatId); err != nil {
			return errorx.Wrap(err, errorx.CodeInconsistent, "解散会话移除成员失败")
		}
		if err := txRepos.Chat.SoftDeleteByUuid(chatId); err != nil {
			return errorx.Wrap(err, errorx.CodeInconsistent, "解散会话失败")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateChatListCache(members)
	s.publish(mq.ChatEvent{
		Kind:     mq.EventChatDeleted,
		ChatId:   chatId,
		SenderId: actor,
		Members:  members,
	})
	zap.L().Info("会话解散成功", zap.String("chatUuid", chatId), zap.String("owner", actor))
	return nil
}

// GetChatList 获取用户的会话列表
// 按最近一条消息的时间由新到旧排序，没有消息的会话排在最后
func (s *Service) GetChatList(login string) ([]respond.ChatListRespond, error) {
	cacheKey := "chat_list_" + login
	if s.cache != nil {
		cached, err := s.cache.Get(context.Background(), cacheKey)
		if err == nil && cached != "" {
			var rsp []respond.ChatListRespond
			if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
				return rsp, nil
			}
			zap.L().Warn("会话列表缓存数据损坏", zap.String("key", cacheKey))
		}
	}

	chatUuids, err := s.repos.ChatMember.FindChatUuidsByLogin(login)
	if err != nil {
		return nil, err
	}
	chats, err := s.repos.Chat.FindByUuids(chatUuids)
	if err != nil {
		return nil, err
	}
	latestAt, err := s.repos.Message.LatestSentAtByChatUuids(chatUuids)
	if err != nil {
		return nil, err
	}

	rsp := make([]respond.ChatListRespond, 0, len(chats))
	lastAt := make(map[string]time.Time, len(chats))
	for _, c := range chats {
		count, err := s.repos.ChatMember.CountByChatUuid(c.Uuid)
		if err != nil {
			return nil, err
		}
		entry := respond.ChatListRespond{
			ChatId:      c.Uuid,
			Type:        c.Type,
			Owner:       c.OwnerLogin,
			MemberCount: count,
		}
		if at, ok := latestAt[c.Uuid]; ok {
			entry.LastMessageAt = at.Format(constants.MESSAGE_TIME_LAYOUT)
			lastAt[c.Uuid] = at
		}
		rsp = append(rsp, entry)
	}
	sort.Slice(rsp, func(i, j int) bool {
		ti, tj := lastAt[rsp[i].ChatId], lastAt[rsp[j].ChatId]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return rsp[i].ChatId < rsp[j].ChatId
	})

	s.fillChatListCache(cacheKey, rsp)
	return rsp, nil
}

// GetMemberList 获取会话成员列表
// 仅会话成员可见
func (s *Service) GetMemberList(actor, chatId string) ([]string, error) {
	eng := authz.NewEngine(s.repos)
	isMember, err := eng.IsChatMember(actor, chatId)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, errorx.New(errorx.CodeUnauthorized, "你不是该会话的成员")
	}
	return s.repos.ChatMember.FindLoginsByChatUuid(chatId)
}

// dedupeMembers 合并发起者和参与者并去重，保持首次出现的顺序
func dedupeMembers(initiator string, participants []string) []string {
	seen := make(map[string]struct{}, len(participants)+1)
	members := make([]string, 0, len(participants)+1)
	for _, login := range append([]string{initiator}, participants...) {
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}
		members = append(members, login)
	}
	return members
}

// fillChatListCache 异步回填会话列表缓存
func (s *Service) fillChatListCache(cacheKey string, rsp []respond.ChatListRespond) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(rsp)
	if err != nil {
		zap.L().Error("序列化会话列表缓存失败", zap.Error(err))
		return
	}
	s.cache.SubmitTask(func() {
		ttl := time.Minute * constants.REDIS_TIMEOUT
		if err := s.cache.Set(context.Background(), cacheKey, string(data), ttl); err != nil {
			zap.L().Error("回填会话列表缓存失败", zap.Error(err))
		}
	})
}

// invalidateChatListCache 异步失效一批用户的会话列表缓存
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
