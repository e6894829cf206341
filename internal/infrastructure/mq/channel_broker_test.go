package mq

import (
	"context"
	"sync"
	"testing"
	"time"

	"messenger_server/pkg/errorx"
)

// collectSink 收集下发的事件供断言
type collectSink struct {
	mu     sync.Mutex
	events []ChatEvent
}

func (s *collectSink) Deliver(ev ChatEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *collectSink) snapshot() []ChatEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatEvent, len(s.events))
	copy(out, s.events)
	return out
}

func TestChannelBrokerDeliversInOrder(t *testing.T) {
	sink := &collectSink{}
	broker := NewChannelBroker(sink)
	go broker.Start()
	defer broker.Close()

	sent := []ChatEvent{
		{Kind: EventChatCreated, ChatId: "C1", Members: []string{"alice", "bob"}},
		{Kind: EventMessageSent, ChatId: "C1", MessageId: 7, SenderId: "alice", Content: "hi", Members: []string{"alice", "bob"}},
		{Kind: EventMessageDeleted, ChatId: "C1", MessageId: 7, Members: []string{"alice", "bob"}},
	}
	for _, ev := range sent {
		if err := broker.Publish(context.Background(), ev); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(sink.snapshot()) == len(sent) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	got := sink.snapshot()
	if len(got) != len(sent) {
		t.Fatalf("事件数量错误: got=%d want=%d", len(got), len(sent))
	}
	for i := range sent {
		if got[i].Kind != sent[i].Kind || got[i].MessageId != sent[i].MessageId {
			t.Fatalf("事件顺序或内容错误: got=%+v want=%+v", got[i], sent[i])
		}
	}
	// JSON 编解码往返后成员列表保持完整
	if len(got[0].Members) != 2 {
		t.Fatalf("成员列表丢失: %+v", got[0])
	}
}

func TestChannelBrokerFullChannel(t *testing.T) {
	// 无消费者，灌满通道后继续发布应立即报服务繁忙而不是阻塞
	broker := NewChannelBroker(nil)
	defer broker.Close()

	var lastErr error
	for i := 0; i < 1000; i++ {
		if err := broker.Publish(context.Background(), ChatEvent{Kind: EventMessageSent, ChatId: "C1"}); err != nil {
			lastErr = err
			break
		}
	}
	if lastErr == nil {
		t.Fatalf("通道满后应返回错误")
	}
	if errorx.GetCode(lastErr) != errorx.CodeServerBusy {
		t.Fatalf("错误码应为 CodeServerBusy: %v", lastErr)
	}
}
