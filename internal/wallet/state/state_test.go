package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dright-core/pkg/errno"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariant 不变量: IsConnected 为 true 当且仅当 AccountID 非空
func checkInvariant(t *testing.T, st ConnectionState) {
	t.Helper()
	if st.IsConnected {
		assert.NotEmpty(t, st.AccountID)
	} else {
		assert.Empty(t, st.AccountID)
	}
}

func TestConnectDisconnectKeepsInvariant(t *testing.T) {
	s := NewStore(nil, NetworkTestnet)
	ctx := context.Background()

	checkInvariant(t, s.Get())

	require.NoError(t, s.BeginConnecting("hashpack"))
	checkInvariant(t, s.Get())

	require.NoError(t, s.CompleteConnect(ctx, "0.0.123456", NetworkTestnet, "100.5"))
	st := s.Get()
	checkInvariant(t, st)
	assert.True(t, st.IsConnected)
	assert.False(t, st.IsConnecting)
	assert.Equal(t, "0.0.123456", st.AccountID)

	s.Disconnect(ctx)
	st = s.Get()
	checkInvariant(t, st)
	assert.False(t, st.IsConnected)
	assert.Empty(t, st.Err)
}

func TestBeginConnectingRejectsConcurrent(t *testing.T) {
	s := NewStore(nil, NetworkTestnet)

	require.NoError(t, s.BeginConnecting("hashpack"))
	err := s.BeginConnecting("blade")

	assert.True(t, errno.Is(err, errno.ErrConnectBusy), "第二次 connect 必须被拒绝: %v", err)
}

func TestFailConnectLeavesDisconnectedWithError(t *testing.T) {
	s := NewStore(nil, NetworkTestnet)
	require.NoError(t, s.BeginConnecting("hashpack"))

	s.FailConnect(errno.ErrTimeout)

	st := s.Get()
	checkInvariant(t, st)
	assert.False(t, st.IsConnected)
	assert.False(t, st.IsConnecting)
	assert.Equal(t, errno.ErrTimeout.Message, st.Err)
}

func TestCompleteConnectGuardsAccountSyntax(t *testing.T) {
	s := NewStore(nil, NetworkTestnet)
	require.NoError(t, s.BeginConnecting("hashpack"))

	err := s.CompleteConnect(context.Background(), "abc123", NetworkTestnet, "")
	assert.Error(t, err)
	assert.False(t, s.Get().IsConnected)
}

func TestSubscribeNotifiesOnTransitions(t *testing.T) {
	s := NewStore(nil, NetworkTestnet)
	ctx := context.Background()

	var seen []ConnectionState
	unsub := s.Subscribe(func(st ConnectionState) {
		seen = append(seen, st)
		// 监听器里读状态必须安全 (通知在锁外)
		_ = s.Get()
	})

	require.NoError(t, s.BeginConnecting("hashpack"))
	require.NoError(t, s.CompleteConnect(ctx, "0.0.7", NetworkTestnet, ""))
	s.Disconnect(ctx)

	require.Len(t, seen, 3)
	assert.True(t, seen[0].IsConnecting)
	assert.True(t, seen[1].IsConnected)
	assert.False(t, seen[2].IsConnected)

	unsub()
	require.NoError(t, s.BeginConnecting("hashpack"))
	assert.Len(t, seen, 3, "取消订阅后不应再收到通知")
}

func TestFilePersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet_state.json")
	p := NewFilePersistence(path)
	ctx := context.Background()

	want := ConnectionState{
		IsConnected: true,
		AccountID:   "0.0.123456",
		Network:     NetworkTestnet,
		Balance:     "42.0",
		Provider:    "hashpack",
	}
	require.NoError(t, p.Save(ctx, StorageKey, want))

	got := p.Load(ctx, StorageKey)
	assert.Equal(t, want, got, "序列化/反序列化必须是幂等往返")
}

func TestFilePersistenceToleratesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	got := NewFilePersistence(path).Load(context.Background(), StorageKey)
	assert.Equal(t, ConnectionState{}, got, "损坏数据必须回退断开默认态")
}

func TestFilePersistenceMissingFile(t *testing.T) {
	p := NewFilePersistence(filepath.Join(t.TempDir(), "nope.json"))
	got := p.Load(context.Background(), StorageKey)
	assert.Equal(t, ConnectionState{}, got)
}

func TestNewStoreRehydratesAndSanitizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet_state.json")
	p := NewFilePersistence(path)
	ctx := context.Background()

	// 上次会话留下的合法状态
	require.NoError(t, p.Save(ctx, StorageKey, ConnectionState{
		IsConnected:  true,
		IsConnecting: true, // 意外残留: 必须被复位
		AccountID:    "0.0.123456",
		Network:      NetworkTestnet,
	}))

	s := NewStore(p, NetworkTestnet)
	st := s.Get()
	checkInvariant(t, st)
	assert.True(t, st.IsConnected)
	assert.False(t, st.IsConnecting, "回灌时 IsConnecting 必须复位")

	// 持久层里是非法账户 → 回退断开
	require.NoError(t, p.Save(ctx, StorageKey, ConnectionState{
		IsConnected: true,
		AccountID:   "abc123",
	}))
	s2 := NewStore(p, NetworkTestnet)
	assert.False(t, s2.Get().IsConnected)
	checkInvariant(t, s2.Get())
}
