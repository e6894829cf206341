// Package websocket 提供会话事件的 WebSocket 推送网关
// 连接只做下行推送，消息的发送/编辑/删除一律走 HTTP 接口
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"

	"messenger_server/internal/infrastructure/mq"
	"messenger_server/pkg/constants"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client 单个在线用户的连接
type Client struct {
	Conn  *websocket.Conn
	Login string
	Send  chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ConnManager 在线连接管理器
// 实现 mq.EventSink 接口，事件代理消费到事件后经这里推送给在线成员
type ConnManager struct {
	// clients 存储所有在线客户端，Key 为用户登录名，Value 为 *Client
	// 使用 sync.Map 实现并发安全，无需手动加锁
	clients sync.Map
}

// NewConnManager 创建连接管理器实例
func NewConnManager() *ConnManager {
	return &ConnManager{}
}

// HandleConnection 处理新的 WebSocket 连接
// login 来自鉴权中间件，同一用户重复连接时旧连接被替换
func (m *ConnManager) HandleConnection(c *gin.Context, login string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		Conn:  conn,
		Login: login,
		Send:  make(chan []byte, constants.CHANNEL_SIZE),
	}
	if old := m.GetClient(login); old != nil {
		m.disconnect(old)
	}
	m.clients.Store(login, client)
	go m.readPump(client)
	go m.writePump(client)
	zap.L().Info("websocket 连接成功", zap.String("login", login))
}

// readPump 读取循环
// 下行网关不处理上行业务帧，读到错误（含客户端关闭）即注销连接
func (m *ConnManager) readPump(client *Client) {
	defer m.Logout(client.Login)
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump 写入循环，从 Send 通道取事件推给客户端
func (m *ConnManager) writePump(client *Client) {
	for data := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			zap.L().Error(err.Error())
			return
		}
	}
}

// GetClient 获取在线客户端，不在线返回 nil
func (m *ConnManager) GetClient(login string) *Client {
	value, ok := m.clients.Load(login)
	if !ok {
		return nil
	}
	return value.(*Client)
}

// Logout 注销连接
func (m *ConnManager) Logout(login string) {
	if client := m.GetClient(login); client != nil {
		m.disconnect(client)
	}
}

// disconnect 移除并关闭连接
func (m *ConnManager) disconnect(client *Client) {
	if _, loaded := m.clients.LoadAndDelete(client.Login); !loaded {
		return
	}
	close(client.Send)
	if err := client.Conn.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	zap.L().Info("websocket 连接关闭", zap.String("login", client.Login))
}

// Deliver 实现 mq.EventSink 接口
// 将事件推送给在线的会话成员，不在线的成员通过历史消息接口补齐
func (m *ConnManager) Deliver(ev mq.ChatEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		zap.L().Error("序列化会话事件失败", zap.Error(err))
		return
	}
	for _, login := range ev.Members {
		client := m.GetClient(login)
		if client == nil {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// 发送缓冲满，丢弃该事件，客户端可通过拉取接口恢复
			zap.L().Warn("websocket 发送缓冲已满", zap.String("login", login))
		}
	}
}

var _ mq.EventSink = (*ConnManager)(nil)
