package state

import (
	"context"
	"encoding/json"
	"os"

	"dright-core/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Persistence 连接状态的持久化层 (浏览器 localStorage 的服务端对应物)。
// Load 必须容忍缺失/损坏的数据: 解析不了就回退断开态, 不报错。
type Persistence interface {
	Save(ctx context.Context, key string, st ConnectionState) error
	Load(ctx context.Context, key string) ConnectionState
}

// ---------------------------------------------------------------------------
// FilePersistence: 单机部署, 状态落在本地 JSON 文件
// ---------------------------------------------------------------------------

type FilePersistence struct {
	path string
}

func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

// 文件内容是 {key: state} 的单键对象, key 固定
type fileEnvelope map[string]ConnectionState

func (f *FilePersistence) Save(ctx context.Context, key string, st ConnectionState) error {
	data, err := json.MarshalIndent(fileEnvelope{key: st}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0600)
}

func (f *FilePersistence) Load(ctx context.Context, key string) ConnectionState {
	data, err := os.ReadFile(f.path)
	if err != nil {
		// 文件不存在是首次启动的正常情况
		return ConnectionState{}
	}

	var env fileEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		logger.Warn("状态文件损坏, 使用默认断开态", zap.String("path", f.path), zap.Error(err))
		return ConnectionState{}
	}
	return env[key]
}

// ---------------------------------------------------------------------------
// RedisPersistence: 多实例部署时共享连接状态
// ---------------------------------------------------------------------------

type RedisPersistence struct {
	client *redis.Client
}

func NewRedisPersistence(client *redis.Client) *RedisPersistence {
	return &RedisPersistence{client: client}
}

func (r *RedisPersistence) Save(ctx context.Context, key string, st ConnectionState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r *RedisPersistence) Load(ctx context.Context, key string) ConnectionState {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		// redis.Nil 或连接错误都回退默认态
		return ConnectionState{}
	}

	var st ConnectionState
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		logger.Warn("Redis 中的状态数据损坏, 使用默认断开态", zap.Error(err))
		return ConnectionState{}
	}
	return st
}
