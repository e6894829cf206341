package service_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"messenger_server/internal/dao/mysql/repository"
	"messenger_server/internal/infrastructure/mq"
	"messenger_server/internal/model"
	"messenger_server/internal/service/chat"
	"messenger_server/internal/service/message"
	"messenger_server/internal/service/relationship"
	"messenger_server/internal/service/user"
	"messenger_server/pkg/errorx"
	"messenger_server/pkg/util/jwt"
	"messenger_server/pkg/util/snowflake"
)

// 内存仓储实现，逐一满足 repository 包的接口
// Repositories 不带 db 实例时 Transaction 直接执行回调，
// 业务层的事务语义可以在不连数据库的情况下验证

func TestMain(m *testing.M) {
	jwt.Init("test-secret", 15, 168)
	snowflake.Init()
	m.Run()
}

// ---- 用户 ----

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Login]; ok {
		return errorx.Newf(errorx.CodeDBError, "创建用户失败 login=%s", user.Login)
	}
	if err := user.BeforeSave(nil); err != nil {
		return err
	}
	user.CreatedAt = time.Now()
	saved := *user
	r.users[user.Login] = &saved
	return nil
}

func (r *fakeUserRepo) FindByLogin(login string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[login]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询用户失败 login=%s", login)
	}
	found := *u
	return &found, nil
}

func (r *fakeUserRepo) ExistsByLogin(login string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[login]
	return ok, nil
}

func (r *fakeUserRepo) FindByLogins(logins []string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(logins))
	for _, login := range logins {
		if u, ok := r.users[login]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateStatus(login, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[login]; ok {
		u.Status = status
	}
	return nil
}

func (r *fakeUserRepo) DeleteByLogin(login string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, login)
	return nil
}

// ---- 关系 ----

type relKey struct {
	owner  string
	target string
	typ    int8
}

type fakeRelationshipRepo struct {
	mu   sync.Mutex
	rows map[relKey]struct{}
}

func newFakeRelationshipRepo() *fakeRelationshipRepo {
	return &fakeRelationshipRepo{rows: make(map[relKey]struct{})}
}

func (r *fakeRelationshipRepo) CreateIfAbsent(rel *model.Relationship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[relKey{rel.OwnerLogin, rel.TargetLogin, rel.Type}] = struct{}{}
	return nil
}

func (r *fakeRelationshipRepo) Delete(ownerLogin, targetLogin string, relType int8) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := relKey{ownerLogin, targetLogin, relType}
	if _, ok := r.rows[key]; !ok {
		return 0, nil
	}
	delete(r.rows, key)
	return 1, nil
}

func (r *fakeRelationshipRepo) Exists(ownerLogin, targetLogin string, relType int8) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[relKey{ownerLogin, targetLogin, relType}]
	return ok, nil
}

func (r *fakeRelationshipRepo) FindTargetsByOwnerAndType(ownerLogin string, relType int8) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for key := range r.rows {
		if key.owner == ownerLogin && key.typ == relType {
			out = append(out, key.target)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeRelationshipRepo) DeleteByUser(login string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.rows {
		if key.owner == login || key.target == login {
			delete(r.rows, key)
		}
	}
	return nil
}

// ---- 会话 ----

type fakeChatRepo struct {
	mu    sync.Mutex
	chats map[string]*model.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*model.Chat)}
}

func (r *fakeChatRepo) Create(chat *model.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *chat
	r.chats[chat.Uuid] = &saved
	return nil
}

func (r *fakeChatRepo) FindByUuid(uuid string) (*model.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[uuid]
	if !ok {
		return nil, errorx.Newf(errorx.CodeNotFound, "查询会话失败 uuid=%s", uuid)
	}
	found := *c
	return &found, nil
}

func (r *fakeChatRepo) FindByUuids(uuids []string) ([]model.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Chat, 0, len(uuids))
	for _, uuid := range uuids {
		if c, ok := r.chats[uuid]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) SoftDeleteByUuid(uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chats, uuid)
	return nil
}

// ---- 会话成员 ----

type fakeChatMemberRepo struct {
	mu   sync.Mutex
	rows map[string]map[string]struct{} // chatUuid -> logins
}

func newFakeChatMemberRepo() *fakeChatMemberRepo {
	return &fakeChatMemberRepo{rows: make(map[string]map[string]struct{})}
}

func (r *fakeChatMemberRepo) CreateIfAbsent(member *model.ChatMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rows[member.ChatUuid] == nil {
		r.rows[member.ChatUuid] = make(map[string]struct{})
	}
	r.rows[member.ChatUuid][member.UserLogin] = struct{}{}
	return nil
}

func (r *fakeChatMemberRepo) Delete(chatUuid, userLogin string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rows[chatUuid]
	if !ok {
		return 0, nil
	}
	if _, ok := members[userLogin]; !ok {
		return 0, nil
	}
	delete(members, userLogin)
	return 1, nil
}

func (r *fakeChatMemberRepo) Exists(chatUuid, userLogin string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[chatUuid][userLogin]
	return ok, nil
}

func (r *fakeChatMemberRepo) CountByChatUuid(chatUuid string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows[chatUuid])), nil
}

func (r *fakeChatMemberRepo) FindLoginsByChatUuid(chatUuid string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for login := range r.rows[chatUuid] {
		out = append(out, login)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeChatMemberRepo) FindChatUuidsByLogin(userLogin string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for chatUuid, members := range r.rows {
		if _, ok := members[userLogin]; ok {
			out = append(out, chatUuid)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeChatMemberRepo) DeleteByChatUuid(chatUuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, chatUuid)
	return nil
}

// ---- 消息 ----

type fakeMessageRepo struct {
	mu   sync.Mutex
	msgs []*model.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *msg
	r.msgs = append(r.msgs, &saved)
	return nil
}

func (r *fakeMessageRepo) FindByUuid(chatUuid string, msgUuid int64) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.ChatUuid == chatUuid && m.Uuid == msgUuid {
			found := *m
			return &found, nil
		}
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "查询消息失败 uuid=%d", msgUuid)
}

func (r *fakeMessageRepo) ListRecent(chatUuid string, offset, limit int) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var filtered []*model.Message
	for _, m := range r.msgs {
		if m.ChatUuid == chatUuid {
			filtered = append(filtered, m)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].SentAt.Equal(filtered[j].SentAt) {
			return filtered[i].SentAt.After(filtered[j].SentAt)
		}
		return filtered[i].Uuid > filtered[j].Uuid
	})
	if offset >= len(filtered) {
		return nil, nil
	}
	filtered = filtered[offset:]
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}
	out := make([]model.Message, 0, len(filtered))
	for _, m := range filtered {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMessageRepo) MaxSentAt(chatUuid string) (time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var max time.Time
	var has bool
	for _, m := range r.msgs {
		if m.ChatUuid == chatUuid && m.SentAt.After(max) {
			max = m.SentAt
			has = true
		}
	}
	return max, has, nil
}

func (r *fakeMessageRepo) UpdateContent(msgUuid int64, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.Uuid == msgUuid {
			m.Content = content
		}
	}
	return nil
}

func (r *fakeMessageRepo) SoftDeleteByUuid(msgUuid int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteWhere(func(m *model.Message) bool { return m.Uuid == msgUuid })
	return nil
}

func (r *fakeMessageRepo) SoftDeleteByChatUuid(chatUuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteWhere(func(m *model.Message) bool { return m.ChatUuid == chatUuid })
	return nil
}

func (r *fakeMessageRepo) SoftDeleteByChatAndSender(chatUuid, senderLogin string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteWhere(func(m *model.Message) bool {
		return m.ChatUuid == chatUuid && m.SenderLogin == senderLogin
	})
	return nil
}

func (r *fakeMessageRepo) LatestSentAtByChatUuids(chatUuids []string) (map[string]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Time)
	for _, chatUuid := range chatUuids {
		for _, m := range r.msgs {
			if m.ChatUuid == chatUuid && m.SentAt.After(out[chatUuid]) {
				out[chatUuid] = m.SentAt
			}
		}
	}
	return out, nil
}

// deleteWhere 调用方需持有锁
func (r *fakeMessageRepo) deleteWhere(match func(*model.Message) bool) {
	kept := r.msgs[:0]
	for _, m := range r.msgs {
		if !match(m) {
			kept = append(kept, m)
		}
	}
	r.msgs = kept
}

// ---- 事件代理 ----

// captureBroker 记录发布的事件供断言
type captureBroker struct {
	mu     sync.Mutex
	events []mq.ChatEvent
}

func (b *captureBroker) Publish(ctx context.Context, ev mq.ChatEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	return nil
}

func (b *captureBroker) Start() {}
func (b *captureBroker) Close() {}

func (b *captureBroker) kinds() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, ev := range b.events {
		out = append(out, ev.Kind)
	}
	return out
}

// ---- 组装 ----

func newTestRepos() *repository.Repositories {
	return &repository.Repositories{
		User:         newFakeUserRepo(),
		Relationship: newFakeRelationshipRepo(),
		Chat:         newFakeChatRepo(),
		ChatMember:   newFakeChatMemberRepo(),
		Message:      newFakeMessageRepo(),
	}
}

func seedUsers(t *testing.T, repos *repository.Repositories, logins ...string) {
	t.Helper()
	for _, login := range logins {
		err := repos.User.Create(&model.User{Login: login, RawPassword: "secret-" + login})
		if err != nil {
			t.Fatalf("seed user %s: %v", login, err)
		}
	}
}

// testEnv 一套完整的业务层测试环境，仓储为内存实现
type testEnv struct {
	repos  *repository.Repositories
	broker *captureBroker
	users  *user.Service
	rels   *relationship.Service
	chats  *chat.Service
	msgs   *message.Service
}

func newTestEnv() *testEnv {
	repos := newTestRepos()
	broker := &captureBroker{}
	return &testEnv{
		repos:  repos,
		broker: broker,
		users:  user.NewUserService(repos, nil),
		rels:   relationship.NewRelationshipService(repos, nil),
		chats:  chat.NewChatService(repos, nil, broker),
		msgs:   message.NewMessageService(repos, nil, broker),
	}
}

func assertCode(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望错误码 %d，实际没有错误", want)
	}
	if got := errorx.GetCode(err); got != want {
		t.Fatalf("期望错误码 %d，实际 %d (err=%v)", want, got, err)
	}
}
