package provider

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"dright-core/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Binding 是环境中某个路径上暴露的钱包入口
// (浏览器里对应注入的全局对象, 服务端对应桥接守护进程的注册项)。
type Binding struct {
	Name         string          `json:"name"`
	Capabilities map[string]bool `json:"capabilities,omitempty"`
	Endpoint     string          `json:"endpoint"`
}

// Environment 抽象钱包 Provider 宣告自己的环境。
// 读操作绝不报错: 查不到就是查不到, 缺席是正常的终态。
type Environment interface {
	// Lookup 按固定路径查找绑定
	Lookup(path ...string) (Binding, bool)
	// Container 返回通用多 Provider 容器中的全部绑定
	Container() []Binding
	// Announcements 返回注入公告事件通道。
	// 部分钱包在页面加载后才注入并广播事件; 环境不支持时返回 nil。
	Announcements() <-chan Binding
}

// ---------------------------------------------------------------------------
// StaticEnvironment: 内存实现, 测试与单机部署使用
// ---------------------------------------------------------------------------

type StaticEnvironment struct {
	mu       sync.Mutex
	bindings map[string]Binding
	announce chan Binding
}

func NewStaticEnvironment() *StaticEnvironment {
	return &StaticEnvironment{
		bindings: make(map[string]Binding),
		announce: make(chan Binding, 8),
	}
}

// Register 在路径上挂载一个绑定并广播公告 (模拟延迟注入)
func (e *StaticEnvironment) Register(b Binding, path ...string) {
	e.mu.Lock()
	e.bindings[joinPath(path)] = b
	e.mu.Unlock()

	// 通道满了就丢弃公告, 轮询探测兜底
	select {
	case e.announce <- b:
	default:
	}
}

func (e *StaticEnvironment) Lookup(path ...string) (Binding, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bindings[joinPath(path)]
	return b, ok
}

func (e *StaticEnvironment) Container() []Binding {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Binding, 0, len(e.bindings))
	for _, b := range e.bindings {
		out = append(out, b)
	}
	return out
}

func (e *StaticEnvironment) Announcements() <-chan Binding {
	return e.announce
}

// ---------------------------------------------------------------------------
// RedisEnvironment: 钱包桥守护进程把自己登记到 Redis, 服务端在这里探测
// ---------------------------------------------------------------------------

type RedisEnvironment struct {
	client *redis.Client
	prefix string // e.g. "dright:bridges"

	subOnce sync.Once
	annCh   chan Binding
}

func NewRedisEnvironment(client *redis.Client, prefix string) *RedisEnvironment {
	return &RedisEnvironment{client: client, prefix: prefix}
}

func (e *RedisEnvironment) bindingsKey() string { return e.prefix + ":bindings" }
func (e *RedisEnvironment) announceKey() string { return e.prefix + ":announce" }

func (e *RedisEnvironment) Lookup(path ...string) (Binding, bool) {
	val, err := e.client.HGet(context.Background(), e.bindingsKey(), joinPath(path)).Result()
	if err != nil {
		// redis.Nil 与连接错误一视同仁: 环境读取不抛错, 查不到就是没有
		return Binding{}, false
	}
	var b Binding
	if err := json.Unmarshal([]byte(val), &b); err != nil {
		logger.Error("环境绑定数据损坏", zap.String("path", joinPath(path)), zap.Error(err))
		return Binding{}, false
	}
	return b, true
}

func (e *RedisEnvironment) Container() []Binding {
	all, err := e.client.HGetAll(context.Background(), e.bindingsKey()).Result()
	if err != nil {
		return nil
	}
	out := make([]Binding, 0, len(all))
	for _, val := range all {
		var b Binding
		if err := json.Unmarshal([]byte(val), &b); err != nil {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Announcements 订阅桥的上线广播 (Redis Pub/Sub)。
// 懒初始化: 第一次调用时才建立订阅。
func (e *RedisEnvironment) Announcements() <-chan Binding {
	e.subOnce.Do(func() {
		e.annCh = make(chan Binding, 8)
		sub := e.client.Subscribe(context.Background(), e.announceKey())

		go func() {
			defer close(e.annCh)
			for msg := range sub.Channel() {
				var b Binding
				if err := json.Unmarshal([]byte(msg.Payload), &b); err != nil {
					logger.Error("公告消息格式错误", zap.Error(err))
					continue
				}
				select {
				case e.annCh <- b:
				default:
				}
			}
		}()
	})
	return e.annCh
}

// Announce 供桥守护进程调用: 登记自己并广播上线
func (e *RedisEnvironment) Announce(ctx context.Context, b Binding, path ...string) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	if err := e.client.HSet(ctx, e.bindingsKey(), joinPath(path), data).Err(); err != nil {
		return err
	}
	return e.client.Publish(ctx, e.announceKey(), data).Err()
}

func joinPath(path []string) string {
	return strings.Join(path, ".")
}
