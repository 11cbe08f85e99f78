package negotiate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dright-core/internal/wallet/provider"
	"dright-core/internal/wallet/state"
	"dright-core/pkg/errno"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient 可编排的 Provider 替身
type mockClient struct {
	resp     *provider.Response
	err      error
	hang     bool // 永不响应, 只认 ctx 超时
	requests atomic.Int64
}

func (m *mockClient) Request(ctx context.Context, method string, params interface{}) (*provider.Response, error) {
	m.requests.Add(1)
	if m.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.resp, m.err
}

func detectedDesc() provider.Descriptor {
	return provider.Descriptor{Name: "hashpack", Detected: true, Endpoint: "http://test"}
}

func newNegotiator(store *state.Store, cli provider.Client) *Negotiator {
	return New(store, state.NetworkTestnet).
		WithDial(func(provider.Descriptor) (provider.Client, error) { return cli, nil }).
		WithTimeout(50 * time.Millisecond)
}

func TestConnectSuccess(t *testing.T) {
	store := state.NewStore(nil, state.NetworkTestnet)
	cli := &mockClient{resp: &provider.Response{
		AccountID: "0.0.123456",
		Network:   "testnet",
		Balance:   "88.8",
		Success:   true,
	}}

	accountID, err := newNegotiator(store, cli).Connect(context.Background(), detectedDesc())

	require.NoError(t, err)
	assert.Equal(t, "0.0.123456", accountID)

	st := store.Get()
	assert.True(t, st.IsConnected)
	assert.False(t, st.IsConnecting)
	assert.Equal(t, "0.0.123456", st.AccountID)
	assert.Equal(t, state.NetworkTestnet, st.Network)
	assert.Equal(t, "88.8", st.Balance)
}

func TestConnectPersistsOnSuccess(t *testing.T) {
	path := t.TempDir() + "/state.json"
	p := state.NewFilePersistence(path)
	store := state.NewStore(p, state.NetworkTestnet)
	cli := &mockClient{resp: &provider.Response{AccountID: "0.0.123456", Network: "testnet"}}

	_, err := newNegotiator(store, cli).Connect(context.Background(), detectedDesc())
	require.NoError(t, err)

	// 持久化条目必须与内存状态一致
	saved := p.Load(context.Background(), state.StorageKey)
	assert.Equal(t, store.Get(), saved)
}

func TestConnectProviderNotDetected(t *testing.T) {
	store := state.NewStore(nil, state.NetworkTestnet)
	cli := &mockClient{}

	_, err := newNegotiator(store, cli).Connect(context.Background(),
		provider.Descriptor{Name: "hashpack", Detected: false})

	assert.True(t, errno.Is(err, errno.ErrProviderNotFound))
	assert.False(t, store.Get().IsConnected)
	assert.Equal(t, int64(0), cli.requests.Load(), "未检测到的 Provider 不应被请求")
}

func TestConnectUserRejected(t *testing.T) {
	store := state.NewStore(nil, state.NetworkTestnet)
	cli := &mockClient{resp: &provider.Response{UserRejected: true}}

	_, err := newNegotiator(store, cli).Connect(context.Background(), detectedDesc())

	assert.True(t, errno.Is(err, errno.ErrUserRejected))
	st := store.Get()
	assert.False(t, st.IsConnected)
	assert.False(t, st.IsConnecting)
	assert.Equal(t, errno.ErrUserRejected.Message, st.Err)
}

func TestConnectTimeout(t *testing.T) {
	store := state.NewStore(nil, state.NetworkTestnet)
	cli := &mockClient{hang: true}

	start := time.Now()
	_, err := newNegotiator(store, cli).Connect(context.Background(), detectedDesc())

	assert.True(t, errno.Is(err, errno.ErrTimeout), "挂死的 Provider 必须触发超时: %v", err)
	assert.Less(t, time.Since(start), time.Second)

	st := store.Get()
	assert.False(t, st.IsConnected)
	assert.Equal(t, errno.ErrTimeout.Message, st.Err)
}

func TestConnectInvalidAccountID(t *testing.T) {
	store := state.NewStore(nil, state.NetworkTestnet)
	cli := &mockClient{resp: &provider.Response{AccountID: "abc123", Network: "testnet"}}

	_, err := newNegotiator(store, cli).Connect(context.Background(), detectedDesc())

	// 语法非法 → InvalidResponse (兼容性 Bug), 状态保持断开
	assert.True(t, errno.Is(err, errno.ErrInvalidResponse))
	assert.False(t, store.Get().IsConnected)
}

func TestConnectSerializesConcurrentAttempts(t *testing.T) {
	store := state.NewStore(nil, state.NetworkTestnet)
	release := make(chan struct{})
	cli := &mockClient{resp: &provider.Response{AccountID: "0.0.123456", Network: "testnet"}}

	// 第一个请求阻塞住, 其间发起第二次 connect
	blocking := &blockingClient{inner: cli, release: release}
	n := New(store, state.NetworkTestnet).
		WithDial(func(provider.Descriptor) (provider.Client, error) { return blocking, nil }).
		WithTimeout(time.Second)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := n.Connect(context.Background(), detectedDesc())
		assert.NoError(t, err)
	}()

	// 等第一次握手在途
	assert.Eventually(t, func() bool { return store.Get().IsConnecting }, time.Second, time.Millisecond)

	_, err := n.Connect(context.Background(), detectedDesc())
	assert.True(t, errno.Is(err, errno.ErrConnectBusy), "第二次 connect 必须被拒绝: %v", err)

	close(release)
	wg.Wait()

	// Mock 只收到一次握手请求
	assert.Equal(t, int64(1), cli.requests.Load())
	assert.True(t, store.Get().IsConnected)
}

type blockingClient struct {
	inner   *mockClient
	release chan struct{}
}

func (b *blockingClient) Request(ctx context.Context, method string, params interface{}) (*provider.Response, error) {
	<-b.release
	return b.inner.Request(ctx, method, params)
}

func TestConnectManual(t *testing.T) {
	store := state.NewStore(nil, state.NetworkTestnet)
	n := New(store, state.NetworkTestnet)

	// 非法输入同样的语法校验
	err := n.ConnectManual(context.Background(), "abc123")
	assert.True(t, errno.Is(err, errno.ErrInvalidAccountID))
	assert.False(t, store.Get().IsConnected)

	require.NoError(t, n.ConnectManual(context.Background(), "0.0.777"))
	st := store.Get()
	assert.True(t, st.IsConnected)
	assert.Equal(t, "0.0.777", st.AccountID)
	assert.Equal(t, "manual", st.Provider)
}

func TestDisconnectAfterConnect(t *testing.T) {
	store := state.NewStore(nil, state.NetworkTestnet)
	cli := &mockClient{resp: &provider.Response{AccountID: "0.0.123456", Network: "testnet"}}
	n := newNegotiator(store, cli)

	_, err := n.Connect(context.Background(), detectedDesc())
	require.NoError(t, err)

	n.Disconnect(context.Background())
	st := store.Get()
	assert.False(t, st.IsConnected)
	assert.Empty(t, st.AccountID)
}

func TestRevalidateDropsStaleAccount(t *testing.T) {
	store := state.NewStore(nil, state.NetworkTestnet)
	cli := &mockClient{resp: &provider.Response{AccountID: "0.0.123456", Network: "testnet"}}
	n := newNegotiator(store, cli)

	_, err := n.Connect(context.Background(), detectedDesc())
	require.NoError(t, err)

	// Provider 现在报告另一个账户 → 历史连接失效
	cli.resp = &provider.Response{AccountID: "0.0.999"}
	n.Revalidate(context.Background(), detectedDesc())

	assert.False(t, store.Get().IsConnected)
}
