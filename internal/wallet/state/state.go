// Package state 持有钱包连接状态的唯一事实来源。
// 旧实现是模块级全局单例; 这里改为显式注入的 Store 对象,
// 方便测试隔离, 需要时也能并存多个实例。
package state

import (
	"context"
	"sync"

	"dright-core/pkg/errno"
	"dright-core/pkg/ledgerid"
	"dright-core/pkg/logger"

	"go.uber.org/zap"
)

type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

// StorageKey 持久化存储使用的固定 key
const StorageKey = "dright:wallet:connection_state"

// ConnectionState 钱包连接状态快照。
// 不变量: IsConnected 为 true 当且仅当 AccountID 非空。
type ConnectionState struct {
	IsConnected  bool    `json:"is_connected"`
	IsConnecting bool    `json:"is_connecting"`
	AccountID    string  `json:"account_id,omitempty"`
	Network      Network `json:"network"`
	Balance      string  `json:"balance,omitempty"`
	Provider     string  `json:"provider,omitempty"`
	Err          string  `json:"error,omitempty"`
}

// Default 返回断开态
func Default(network Network) ConnectionState {
	return ConnectionState{Network: network}
}

// Listener 状态变更回调。
// 回调内禁止同步调用 Store 的写方法 (会造成重入式的状态污染);
// 读方法 (Get) 安全, 通知发生在锁外。
type Listener func(ConnectionState)

// Store 进程级连接状态存储。
// 读: 任何组件随时可读; 写: 只允许 Negotiator 和显式 Disconnect。
type Store struct {
	mu        sync.Mutex
	cur       ConnectionState
	listeners map[int]Listener
	nextID    int
	persist   Persistence
}

// NewStore 创建 Store 并尝试从持久化层回灌上次的状态。
// 回灌的数据不可全信: IsConnecting 强制复位, 非法 AccountID 直接回退断开态。
func NewStore(p Persistence, network Network) *Store {
	s := &Store{
		listeners: make(map[int]Listener),
		persist:   p,
		cur:       Default(network),
	}

	if p == nil {
		return s
	}

	loaded := p.Load(context.Background(), StorageKey)
	loaded.IsConnecting = false
	loaded.Err = ""
	if loaded.Network == "" {
		loaded.Network = network
	}

	// 重新校验, 保证回灌后不变量依然成立
	if loaded.IsConnected && !ledgerid.IsValidAccountID(loaded.AccountID) {
		logger.Warn("持久化状态损坏, 回退为断开态", zap.String("account_id", loaded.AccountID))
		loaded = Default(network)
	}
	if !loaded.IsConnected {
		loaded.AccountID = ""
		loaded.Balance = ""
		loaded.Provider = ""
	}

	s.cur = loaded
	return s
}

// Get 返回当前状态快照 (副本, 调用方随便改)
func (s *Store) Get() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Subscribe 注册变更监听, 返回取消函数。
// 多个 UI 面互相不轮询, 全靠这里保持同步。
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// BeginConnecting 进入 connecting 态。
// 已有握手在途时拒绝: 绝不允许并行的第二次握手。
func (s *Store) BeginConnecting(providerName string) error {
	s.mu.Lock()
	if s.cur.IsConnecting {
		s.mu.Unlock()
		return errno.ErrConnectBusy
	}
	s.cur.IsConnecting = true
	s.cur.Err = ""
	s.cur.Provider = providerName
	snapshot := s.cur
	s.mu.Unlock()

	s.notify(snapshot)
	return nil
}

// CompleteConnect 握手成功的终态迁移, 同一次加锁内完成读改写, 并持久化。
func (s *Store) CompleteConnect(ctx context.Context, accountID string, network Network, balance string) error {
	if !ledgerid.IsValidAccountID(accountID) {
		// 防御性: Negotiator 已经校验过, 这里守住不变量的最后一道门
		return errno.ErrInvalidAccountID
	}

	s.mu.Lock()
	s.cur.IsConnected = true
	s.cur.IsConnecting = false
	s.cur.AccountID = accountID
	s.cur.Network = network
	s.cur.Balance = balance
	s.cur.Err = ""
	snapshot := s.cur
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.Save(ctx, StorageKey, snapshot); err != nil {
			logger.Error("连接状态持久化失败", zap.Error(err))
		}
	}

	s.notify(snapshot)
	return nil
}

// FailConnect 握手失败: 回到断开态并带上错误, 绝不留下半连接状态。
func (s *Store) FailConnect(err error) {
	_, msg := errno.Decode(err)

	s.mu.Lock()
	network := s.cur.Network
	s.cur = Default(network)
	s.cur.Err = msg
	snapshot := s.cur
	s.mu.Unlock()

	s.notify(snapshot)
}

// Disconnect 显式断开, 同步清理持久化条目。
func (s *Store) Disconnect(ctx context.Context) {
	s.mu.Lock()
	network := s.cur.Network
	s.cur = Default(network)
	snapshot := s.cur
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist.Save(ctx, StorageKey, snapshot); err != nil {
			logger.Error("断开状态持久化失败", zap.Error(err))
		}
	}

	s.notify(snapshot)
}

// notify 在锁外通知, 监听器读状态不会死锁
func (s *Store) notify(snapshot ConnectionState) {
	s.mu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
