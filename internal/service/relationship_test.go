package service_test

import (
	"testing"

	"messenger_server/pkg/errorx"
)

func TestAddContactUnknownTarget(t *testing.T) {
	env := newTestEnv()
	seedUsers(t, env.repos, "alice")

	err := env.rels.AddContact("alice", "ghost")
	assertCode(t, err, errorx.CodeUnknownUser)
}

func TestAddContactIdempotent(t *testing.T) {
	env := newTestEnv()
	seedUsers(t, env.repos, "alice", "bob")

	if err := env.rels.AddContact("alice", "bob"); err != nil {
		t.Fatalf("add contact: %v", err)
	}
	// 重复添加不报错也不产生重复条目
	if err := env.rels.AddContact("alice", "bob"); err != nil {
		t.Fatalf("re-add contact: %v", err)
	}
	list, err := env.rels.GetContactList("alice")
	if err != nil {
		t.Fatalf("get contact list: %v", err)
	}
	if len(list) != 1 || list[0].Login != "bob" {
		t.Fatalf("联系人列表错误: %+v", list)
	}
}

func TestContactListIsOneWay(t *testing.T) {
	env := newTestEnv()
	seedUsers(t, env.repos, "alice", "bob")

	if err := env.rels.AddContact("alice", "bob"); err != nil {
		t.Fatalf("add contact: %v", err)
	}
	list, err := env.rels.GetContactList("bob")
	if err != nil {
		t.Fatalf("get contact list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("bob 的联系人列表应为空: %+v", list)
	}
}

func TestRemoveContactIdempotent(t *testing.T) {
	env := newTestEnv()
	seedUsers(t, env.repos, "alice", "bob")

	// 移除不在列表中的用户静默成功
	if err := env.rels.RemoveContact("alice", "bob"); err != nil {
		t.Fatalf("remove absent contact: %v", err)
	}
	if err := env.rels.AddContact("alice", "bob"); err != nil {
		t.Fatalf("add contact: %v", err)
	}
	if err := env.rels.RemoveContact("alice", "bob"); err != nil {
		t.Fatalf("remove contact: %v", err)
	}
	list, err := env.rels.GetContactList("alice")
	if err != nil {
		t.Fatalf("get contact list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("联系人应已移除: %+v", list)
	}
}

func TestBlockSelfRejected(t *testing.T) {
	env := newTestEnv()
	seedUsers(t, env.repos, "alice")

	err := env.rels.AddBlocked("alice", "alice")
	assertCode(t, err, errorx.CodeInvalidParam)

	err = env.rels.AddContact("alice", "alice")
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestBlockedListIndependentOfContacts(t *testing.T) {
	env := newTestEnv()
	seedUsers(t, env.repos, "alice", "bob")

	if err := env.rels.AddContact("alice", "bob"); err != nil {
		t.Fatalf("add contact: %v", err)
	}
	if err := env.rels.AddBlocked("alice", "bob"); err != nil {
		t.Fatalf("add blocked: %v", err)
	}

	// 拉黑不影响联系人关系，两张名单互相独立
	contacts, err := env.rels.GetContactList("alice")
	if err != nil {
		t.Fatalf("get contact list: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("拉黑不应移除联系人: %+v", contacts)
	}
	blocked, err := env.rels.GetBlockedList("alice")
	if err != nil {
		t.Fatalf("get blocked list: %v", err)
	}
	if len(blocked) != 1 || blocked[0] != "bob" {
		t.Fatalf("黑名单错误: %+v", blocked)
	}

	if err := env.rels.RemoveBlocked("alice", "bob"); err != nil {
		t.Fatalf("remove blocked: %v", err)
	}
	blocked, err = env.rels.GetBlockedList("alice")
	if err != nil {
		t.Fatalf("get blocked list: %v", err)
	}
	if len(blocked) != 0 {
		t.Fatalf("黑名单应为空: %+v", blocked)
	}
}
