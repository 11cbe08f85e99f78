package service

import (
	"context"
	"encoding/json"

	"dright-core/internal/event"
	"dright-core/internal/service/mq"
	"dright-core/internal/wallet/submit"
	"dright-core/pkg/cache"
	"dright-core/pkg/logger"

	"go.uber.org/zap"
)

// SyncService 消费交易事件, 保持各实例的本地缓存一致:
// 别的实例完成转移后, 本实例的 L1 缓存里还躺着旧 Owner。
type SyncService struct {
	consumer mq.Consumer
	cache    cache.Cache
}

func NewSyncService(consumer mq.Consumer, c cache.Cache) *SyncService {
	return &SyncService{
		consumer: consumer,
		cache:    c,
	}
}

func (s *SyncService) Start(ctx context.Context) error {
	logger.Info("缓存同步服务启动", zap.String("topic", event.TopicTxEvents))
	return s.consumer.Subscribe(ctx, event.TopicTxEvents, s.handle)
}

func (s *SyncService) handle(msg *mq.Message) error {
	var evt event.TxSubmittedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		// 格式错误的消息重试也没用, 记日志后吞掉
		logger.Error("交易事件格式错误", zap.String("id", msg.ID), zap.Error(err))
		return nil
	}

	if evt.Action != string(submit.ActionTransfer) || evt.TokenID == "" {
		return nil
	}

	key := rightCacheKey(evt.TokenID, evt.SerialNo)
	if err := s.cache.Delete(context.Background(), key); err != nil {
		logger.Warn("缓存失效失败", zap.String("key", key), zap.Error(err))
		return err // 留给 MQ 重试
	}
	return nil
}
