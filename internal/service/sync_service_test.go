package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dright-core/internal/event"
	"dright-core/internal/service/mq"
	"dright-core/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txEventMessage(t *testing.T, evt event.TxSubmittedEvent) *mq.Message {
	payload, err := json.Marshal(evt)
	require.NoError(t, err)
	return &mq.Message{
		ID:      "1-0",
		Topic:   event.TopicTxEvents,
		Key:     evt.Signer,
		Payload: payload,
	}
}

func TestSyncServiceInvalidatesOnTransfer(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	key := rightCacheKey("0.0.5005", 7)
	require.NoError(t, c.Set(ctx, key, map[string]string{"owner_id": "0.0.1001"}, time.Minute))

	s := NewSyncService(nil, c)
	err := s.handle(txEventMessage(t, event.TxSubmittedEvent{
		TransactionID: "0.0.1001@1700000000.123",
		Action:        "transfer",
		Signer:        "0.0.1001",
		TokenID:       "0.0.5005",
		SerialNo:      7,
		Success:       true,
	}))
	require.NoError(t, err)

	var out map[string]string
	assert.ErrorIs(t, c.Get(ctx, key, &out), cache.ErrMiss)
}

func TestSyncServiceIgnoresOtherActions(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	key := rightCacheKey("0.0.5005", 7)
	require.NoError(t, c.Set(ctx, key, map[string]string{"owner_id": "0.0.1001"}, time.Minute))

	s := NewSyncService(nil, c)
	err := s.handle(txEventMessage(t, event.TxSubmittedEvent{
		TransactionID: "0.0.1001@1700000000.123",
		Action:        "mint",
		Signer:        "0.0.1001",
		TokenID:       "0.0.5005",
		SerialNo:      7,
		Success:       true,
	}))
	require.NoError(t, err)

	// 铸造不触发失效
	var out map[string]string
	assert.NoError(t, c.Get(ctx, key, &out))
}

func TestSyncServiceSwallowsMalformedPayload(t *testing.T) {
	s := NewSyncService(nil, cache.NewMemoryCache(time.Minute, time.Minute))

	// 坏消息重试也救不回来, 不应该返回错误卡死队列
	err := s.handle(&mq.Message{
		ID:      "2-0",
		Topic:   event.TopicTxEvents,
		Payload: []byte("not json"),
	})
	assert.NoError(t, err)
}
