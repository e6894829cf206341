package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"messenger_server/internal/dto/request"
	"messenger_server/internal/dto/respond"
	"messenger_server/internal/gateway/websocket"
	"messenger_server/internal/handler"
	"messenger_server/internal/https_server"
	"messenger_server/internal/infrastructure/mq"
	"messenger_server/internal/service"
	"messenger_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
)

// 全路由冒烟测试
// Service 层全部用桩实现，只验证路由、参数绑定、鉴权中间件和响应封装的接线

type stubUserService struct{}

type stubAuthService struct{}

type stubRelationshipService struct{}

type stubChatService struct{}

type stubMessageService struct{}

func (s stubUserService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	return &respond.RegisterRespond{Login: req.Login}, nil
}
func (s stubUserService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	return &respond.LoginRespond{Login: req.Login}, nil
}
func (s stubUserService) GetUserInfo(login string) (*respond.UserInfoRespond, error) {
	return &respond.UserInfoRespond{Login: login}, nil
}
func (s stubUserService) UpdateStatus(login, status string) error    { return nil }
func (s stubUserService) DeleteAccount(login, password string) error { return nil }

func (s stubAuthService) ValidateTokenID(userID, tokenID string) (bool, error) { return true, nil }
func (s stubAuthService) Refresh(refreshToken string) (*respond.RefreshTokenRespond, error) {
	return &respond.RefreshTokenRespond{AccessToken: "stub"}, nil
}

func (s stubRelationshipService) AddContact(owner, target string) error    { return nil }
func (s stubRelationshipService) RemoveContact(owner, target string) error { return nil }
func (s stubRelationshipService) AddBlocked(owner, target string) error    { return nil }
func (s stubRelationshipService) RemoveBlocked(owner, target string) error { return nil }
func (s stubRelationshipService) GetContactList(owner string) ([]respond.ContactListRespond, error) {
	return []respond.ContactListRespond{}, nil
}
func (s stubRelationshipService) GetBlockedList(owner string) ([]string, error) {
	return []string{}, nil
}

func (s stubChatService) CreateChat(initiator string, req request.CreateChatRequest) (*respond.CreateChatRespond, error) {
	return &respond.CreateChatRespond{ChatId: "C_TEST"}, nil
}
func (s stubChatService) AddMember(actor, chatId, login string) error    { return nil }
func (s stubChatService) RemoveMember(actor, chatId, login string) error { return nil }
func (s stubChatService) DeleteChat(actor, chatId string) error          { return nil }
func (s stubChatService) GetChatList(login string) ([]respond.ChatListRespond, error) {
	return []respond.ChatListRespond{}, nil
}
func (s stubChatService) GetMemberList(actor, chatId string) ([]string, error) {
	return []string{}, nil
}

func (s stubMessageService) SendMessage(actor string, req request.SendMessageRequest) (*respond.SendMessageRespond, error) {
	return &respond.SendMessageRespond{MessageId: 1, ChatId: req.ChatId}, nil
}
func (s stubMessageService) GetRecentMessages(actor, chatId string, offset, limit int) ([]respond.MessageListRespond, error) {
	return []respond.MessageListRespond{}, nil
}
func (s stubMessageService) EditMessage(actor string, req request.EditMessageRequest) error {
	return nil
}
func (s stubMessageService) DeleteMessage(actor string, req request.DeleteMessageRequest) error {
	return nil
}

func mustJSON(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, client *http.Client, method, url string, body io.Reader, authHeader string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request %s %s: %v", method, url, err)
	}
	return resp
}

func requireNot5xxOr404(t *testing.T, path string, resp *http.Response) {
	t.Helper()
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode >= 500 {
		t.Fatalf("%s status=%d", path, resp.StatusCode)
	}
}

func TestAllHTTPAndWebSocketEndpoints_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwt.Init("test-secret", 15, 168)
	if err := handler.InitTrans("zh"); err != nil {
		t.Fatalf("init trans: %v", err)
	}

	connManager := websocket.NewConnManager()
	svcs := &service.Services{
		User:         stubUserService{},
		Auth:         stubAuthService{},
		Relationship: stubRelationshipService{},
		Chat:         stubChatService{},
		Message:      stubMessageService{},
	}

	engine := https_server.Init(handler.NewHandlers(svcs, connManager))
	server := httptest.NewServer(engine)
	defer server.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	accessToken, err := jwt.GenerateAccessToken("alice")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	authHeader := "Bearer " + accessToken

	// ===== 公共接口（无需鉴权） =====
	resp := doReq(t, client, http.MethodPost, server.URL+"/register", mustJSON(t, map[string]any{
		"login":    "alice",
		"password": "p@ssw0rd",
	}), "")
	requireNot5xxOr404(t, "/register", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/login", mustJSON(t, map[string]any{
		"login":    "alice",
		"password": "p@ssw0rd",
	}), "")
	requireNot5xxOr404(t, "/login", resp)
	_ = resp.Body.Close()

	resp = doReq(t, client, http.MethodPost, server.URL+"/auth/refresh", mustJSON(t, map[string]any{
		"refresh_token": "some-refresh-token",
	}), "")
	requireNot5xxOr404(t, "/auth/refresh", resp)
	_ = resp.Body.Close()

	// ===== 鉴权拦截 =====
	resp = doReq(t, client, http.MethodGet, server.URL+"/user/info", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("无令牌访问应返回 401，实际 %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	// ===== 私有接口（需要鉴权） =====
	for _, ep := range []struct {
		method string
		path   string
		body   map[string]any
	}{
		{http.MethodGet, "/user/info", nil},
		{http.MethodPost, "/user/updateStatus", map[string]any{"status": "busy"}},
		{http.MethodPost, "/user/deleteAccount", map[string]any{"password": "p@ssw0rd"}},
		{http.MethodPost, "/relationship/addContact", map[string]any{"target_login": "bob"}},
		{http.MethodPost, "/relationship/removeContact", map[string]any{"target_login": "bob"}},
		{http.MethodPost, "/relationship/addBlocked", map[string]any{"target_login": "bob"}},
		{http.MethodPost, "/relationship/removeBlocked", map[string]any{"target_login": "bob"}},
		{http.MethodGet, "/relationship/contactList", nil},
		{http.MethodGet, "/relationship/blockedList", nil},
		{http.MethodPost, "/chat/create", map[string]any{"participants": []string{"bob"}}},
		{http.MethodPost, "/chat/addMember", map[string]any{"chat_id": "C_TEST", "login": "carol"}},
		{http.MethodPost, "/chat/removeMember", map[string]any{"chat_id": "C_TEST", "login": "carol"}},
		{http.MethodPost, "/chat/delete", map[string]any{"chat_id": "C_TEST"}},
		{http.MethodGet, "/chat/list", nil},
		{http.MethodGet, "/chat/memberList?chat_id=C_TEST", nil},
		{http.MethodPost, "/message/send", map[string]any{"chat_id": "C_TEST", "content": "hi"}},
		{http.MethodGet, "/message/recent?chat_id=C_TEST&offset=0&limit=10", nil},
		{http.MethodPost, "/message/edit", map[string]any{"chat_id": "C_TEST", "message_id": 1, "content": "hi2"}},
		{http.MethodPost, "/message/delete", map[string]any{"chat_id": "C_TEST", "message_id": 1}},
		{http.MethodPost, "/ws/logout", nil},
	} {
		var body io.Reader
		if ep.body != nil {
			body = mustJSON(t, ep.body)
		}
		resp = doReq(t, client, ep.method, server.URL+ep.path, body, authHeader)
		requireNot5xxOr404(t, ep.path, resp)
		_ = resp.Body.Close()
	}

	// ===== WebSocket 推送 =====
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	header := http.Header{}
	header.Set("Authorization", authHeader)
	conn, wsResp, err := gorillaws.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	if wsResp != nil {
		_ = wsResp.Body.Close()
	}
	defer conn.Close()

	// 等待服务端完成连接注册
	deadline := time.Now().Add(2 * time.Second)
	for connManager.GetClient("alice") == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if connManager.GetClient("alice") == nil {
		t.Fatalf("连接未注册")
	}

	// 直接经网关下发一条事件，连接端应能收到
	connManager.Deliver(mq.ChatEvent{
		Kind:    mq.EventMessageSent,
		ChatId:  "C_TEST",
		Members: []string{"alice"},
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ws read: %v", err)
	}
	var ev mq.ChatEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("ws payload: %v", err)
	}
	if ev.Kind != mq.EventMessageSent || ev.ChatId != "C_TEST" {
		t.Fatalf("推送事件错误: %+v", ev)
	}
}
