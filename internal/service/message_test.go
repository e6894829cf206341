package service_test

import (
	"fmt"
	"testing"
	"time"

	"messenger_server/internal/dto/request"
	"messenger_server/internal/infrastructure/mq"
	"messenger_server/internal/model"
	"messenger_server/pkg/errorx"
)

// newChatWith 建一个 alice 和 bob 的两人会话
func newChatWith(t *testing.T, env *testEnv) string {
	t.Helper()
	seedUsers(t, env.repos, "alice", "bob")
	rsp, err := env.chats.CreateChat("alice", request.CreateChatRequest{Participants: []string{"bob"}})
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}
	return rsp.ChatId
}

func TestSendMessageRequiresMembership(t *testing.T) {
	env := newTestEnv()
	chatId := newChatWith(t, env)
	seedUsers(t, env.repos, "mallory")

	_, err := env.msgs.SendMessage("mallory", request.SendMessageRequest{ChatId: chatId, Content: "hi"})
	assertCode(t, err, errorx.CodeUnauthorized)
}

func TestSendMessageEmptyContent(t *testing.T) {
	env := newTestEnv()
	chatId := newChatWith(t, env)

	_, err := env.msgs.SendMessage("alice", request.SendMessageRequest{ChatId: chatId, Content: "   "})
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestSendMessageUnknownChat(t *testing.T) {
	env := newTestEnv()
	seedUsers(t, env.repos, "alice")

	_, err := env.msgs.SendMessage("alice", request.SendMessageRequest{ChatId: "C_missing", Content: "hi"})
	assertCode(t, err, errorx.CodeNotFound)
}

func TestMessageOrderingMonotonic(t *testing.T) {
	env := newTestEnv()
	chatId := newChatWith(t, env)

	// 快速连发，时间戳仍须严格递增
	var prev string
	for i := 0; i < 20; i++ {
		rsp, err := env.msgs.SendMessage("alice", request.SendMessageRequest{
			ChatId:  chatId,
			Content: fmt.Sprintf("m%d", i),
		})
		if err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
		if prev != "" && rsp.SentAt <= prev {
			t.Fatalf("时间戳未严格递增: %s <= %s", rsp.SentAt, prev)
		}
		prev = rsp.SentAt
	}

	list, err := env.msgs.GetRecentMessages("bob", chatId, 0, 100)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(list) != 20 {
		t.Fatalf("消息数应为 20: %d", len(list))
	}
	// 由新到旧
	if list[0].Content != "m19" || list[19].Content != "m0" {
		t.Fatalf("排序错误: 首条 %s 末条 %s", list[0].Content, list[19].Content)
	}
	for i := 1; i < len(list); i++ {
		if list[i].SentAt >= list[i-1].SentAt {
			t.Fatalf("列表未按时间降序: %s >= %s", list[i].SentAt, list[i-1].SentAt)
		}
	}
}

func TestGetRecentMessagesIdTiebreak(t *testing.T) {
	env := newTestEnv()
	chatId := newChatWith(t, env)

	// 正常发送路径的时间前推不会产生同刻消息，
	// 直接写仓储构造 sent_at 完全相同的两条，验证列表对同刻消息按消息ID降序
	at := time.Now()
	for _, m := range []model.Message{
		{Uuid: 100, ChatUuid: chatId, SenderLogin: "alice", Content: "earlier id", SentAt: at},
		{Uuid: 200, ChatUuid: chatId, SenderLogin: "bob", Content: "later id", SentAt: at},
	} {
		msg := m
		if err := env.repos.Message.Create(&msg); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := env.msgs.GetRecentMessages("alice", chatId, 0, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("消息数应为 2: %+v", list)
	}
	if list[0].MessageId != 200 || list[1].MessageId != 100 {
		t.Fatalf("同刻消息应按ID降序: 首条 %d 次条 %d", list[0].MessageId, list[1].MessageId)
	}
}

func TestGetRecentMessagesPagination(t *testing.T) {
	env := newTestEnv()
	chatId := newChatWith(t, env)

	for i := 0; i < 5; i++ {
		if _, err := env.msgs.SendMessage("alice", request.SendMessageRequest{
			ChatId:  chatId,
			Content: fmt.Sprintf("m%d", i),
		}); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	page, err := env.msgs.GetRecentMessages("alice", chatId, 0, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(page) != 2 || page[0].Content != "m4" || page[1].Content != "m3" {
		t.Fatalf("第一页错误: %+v", page)
	}

	page, err = env.msgs.GetRecentMessages("alice", chatId, 4, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(page) != 1 || page[0].Content != "m0" {
		t.Fatalf("末页错误: %+v", page)
	}

	// limit 0 取默认页大小
	page, err = env.msgs.GetRecentMessages("alice", chatId, 0, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(page) != 5 {
		t.Fatalf("默认页错误: %d", len(page))
	}

	_, err = env.msgs.GetRecentMessages("mallory", chatId, 0, 10)
	assertCode(t, err, errorx.CodeUnauthorized)
}

func TestEditMessageAuthorOnly(t *testing.T) {
	env := newTestEnv()
	chatId := newChatWith(t, env)

	first, err := env.msgs.SendMessage("alice", request.SendMessageRequest{ChatId: chatId, Content: "old"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := env.msgs.SendMessage("bob", request.SendMessageRequest{ChatId: chatId, Content: "later"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	// 非发送者（即使是会话创建者也一样）不能编辑
	err = env.msgs.EditMessage("bob", request.EditMessageRequest{
		ChatId: chatId, MessageId: first.MessageId, Content: "hacked",
	})
	assertCode(t, err, errorx.CodeUnauthorized)

	if err := env.msgs.EditMessage("alice", request.EditMessageRequest{
		ChatId: chatId, MessageId: first.MessageId, Content: "new",
	}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	// 编辑原地生效且不改变排序位置
	list, err := env.msgs.GetRecentMessages("alice", chatId, 0, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(list) != 2 || list[1].Content != "new" || list[0].Content != "later" {
		t.Fatalf("编辑后列表错误: %+v", list)
	}
	if list[1].SentAt != first.SentAt {
		t.Fatalf("编辑不应改变 sent_at: %s != %s", list[1].SentAt, first.SentAt)
	}
}

func TestEditMessageNotFound(t *testing.T) {
	env := newTestEnv()
	chatId := newChatWith(t, env)

	err := env.msgs.EditMessage("alice", request.EditMessageRequest{
		ChatId: chatId, MessageId: 12345, Content: "x",
	})
	assertCode(t, err, errorx.CodeNotFound)
}

func TestDeleteMessageAuthorOnly(t *testing.T) {
	env := newTestEnv()
	chatId := newChatWith(t, env)

	msg, err := env.msgs.SendMessage("bob", request.SendMessageRequest{ChatId: chatId, Content: "bye"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	err = env.msgs.DeleteMessage("alice", request.DeleteMessageRequest{ChatId: chatId, MessageId: msg.MessageId})
	assertCode(t, err, errorx.CodeUnauthorized)

	if err := env.msgs.DeleteMessage("bob", request.DeleteMessageRequest{ChatId: chatId, MessageId: msg.MessageId}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := env.msgs.GetRecentMessages("bob", chatId, 0, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("消息应已删除: %+v", list)
	}

	// 已删除的消息再操作是 NotFound
	err = env.msgs.DeleteMessage("bob", request.DeleteMessageRequest{ChatId: chatId, MessageId: msg.MessageId})
	assertCode(t, err, errorx.CodeNotFound)
}

func TestMessageEventsCarryMembers(t *testing.T) {
	env := newTestEnv()
	chatId := newChatWith(t, env)

	msg, err := env.msgs.SendMessage("alice", request.SendMessageRequest{ChatId: chatId, Content: "hi"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	var found bool
	for _, ev := range env.broker.events {
		if ev.Kind == mq.EventMessageSent {
			found = true
			if ev.MessageId != msg.MessageId || ev.SenderId != "alice" || ev.Content != "hi" {
				t.Fatalf("事件内容错误: %+v", ev)
			}
			if len(ev.Members) != 2 {
				t.Fatalf("事件应携带全部成员: %+v", ev.Members)
			}
		}
	}
	if !found {
		t.Fatalf("未发布 %s 事件: %v", mq.EventMessageSent, env.broker.kinds())
	}
}
