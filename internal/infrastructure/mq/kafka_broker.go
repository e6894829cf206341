// Package mq 实现会话事件的发布与分发
// kafka_broker.go
// 核心职责：Kafka 模式下的事件代理实现
// 多实例部署时经 Kafka 中转，每个实例消费后推送给本地连接的用户
package mq

import (
	"context"
	"encoding/json"
	"time"

	myconfig "messenger_server/internal/config"
	"messenger_server/pkg/errorx"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaBroker 基于 Kafka 的事件代理
type KafkaBroker struct {
	writer *kafka.Writer
	reader *kafka.Reader
	sink   EventSink
	cancel context.CancelFunc
}

// NewKafkaBroker 创建 KafkaBroker 实例并初始化底层连接
func NewKafkaBroker(sink EventSink) *KafkaBroker {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	return &KafkaBroker{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.EventTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{kafkaConfig.HostPort},
			Topic:          kafkaConfig.EventTopic,
			CommitInterval: kafkaConfig.Timeout * time.Second,
			GroupID:        "messenger",
			StartOffset:    kafka.LastOffset,
		}),
		sink: sink,
	}
}

// Publish 实现 EventBroker 接口：发布事件到 Kafka
// 以会话 uuid 作为分区键，同一会话的事件保持顺序
func (b *KafkaBroker) Publish(ctx context.Context, ev ChatEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "序列化会话事件")
	}
	if err := b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.ChatId),
		Value: data,
	}); err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "写入 Kafka 失败")
	}
	return nil
}

// Start 启动事件消费循环
// 从 Kafka 读取事件并交给 sink 下发
func (b *KafkaBroker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	for {
		msg, err := b.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return // 已关闭
			}
			zap.L().Error("读取 Kafka 事件失败", zap.Error(err))
			continue
		}
		var ev ChatEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			zap.L().Error("解析会话事件失败", zap.Error(err))
			continue
		}
		if b.sink != nil {
			b.sink.Deliver(ev)
		}
	}
}

// Close 关闭 Kafka 资源
func (b *KafkaBroker) Close() {
	if b.cancel != nil {
		b.cancel()
	}
	if err := b.writer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := b.reader.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}

var _ EventBroker = (*KafkaBroker)(nil)
