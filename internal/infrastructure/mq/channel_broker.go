// Package mq 实现会话事件的发布与分发
// channel_broker.go
// 核心职责：单机模式下的事件代理实现
// 不依赖外部消息队列，适合小规模或开发环境
package mq

import (
	"context"
	"encoding/json"

	"messenger_server/pkg/constants"
	"messenger_server/pkg/errorx"

	"go.uber.org/zap"
)

// ChannelBroker 基于内存通道的事件代理
// 事件统一走 JSON 编解码，与 Kafka 实现保持同一条链路
type ChannelBroker struct {
	events chan []byte
	sink   EventSink
}

// NewChannelBroker 创建 ChannelBroker 实例
// sink: 事件下发目标（websocket 网关）
func NewChannelBroker(sink EventSink) *ChannelBroker {
	return &ChannelBroker{
		events: make(chan []byte, constants.CHANNEL_SIZE),
		sink:   sink,
	}
}

// Publish 实现 EventBroker 接口：发布事件到通道
// 通道满时返回错误而不是阻塞调用方，调用方记日志即可，事件不影响台账正确性
func (b *ChannelBroker) Publish(ctx context.Context, ev ChatEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "序列化会话事件")
	}
	select {
	case b.events <- data:
		return nil
	default:
		return errorx.New(errorx.CodeServerBusy, "事件通道已满")
	}
}

// Start 启动事件消费循环
// 从通道读取事件并交给 sink 下发
func (b *ChannelBroker) Start() {
	for data := range b.events {
		var ev ChatEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			zap.L().Error("解析会话事件失败", zap.Error(err))
			continue
		}
		if b.sink != nil {
			b.sink.Deliver(ev)
		}
	}
}

// Close 关闭事件通道
func (b *ChannelBroker) Close() {
	close(b.events)
}

var _ EventBroker = (*ChannelBroker)(nil)
