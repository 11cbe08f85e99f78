package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type balanceEntry struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	want := balanceEntry{AccountID: "0.0.123456", Amount: "88.8"}
	require.NoError(t, c.Set(ctx, "balance:0.0.123456", want, time.Minute))

	var got balanceEntry
	require.NoError(t, c.Get(ctx, "balance:0.0.123456", &got))
	assert.Equal(t, want, got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	var got balanceEntry
	err := c.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", balanceEntry{Amount: "1"}, time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	var got balanceEntry
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)
}

func TestMultiLevelFallsBackToRemote(t *testing.T) {
	l1 := NewMemoryCache(time.Minute, time.Minute)
	l2 := NewMemoryCache(time.Minute, time.Minute)
	ml := NewMultiLevelCache(l1, l2)
	ctx := context.Background()

	// 只写 L2, 模拟 L1 失效
	require.NoError(t, l2.Set(ctx, "k", balanceEntry{Amount: "7"}, time.Minute))

	var got balanceEntry
	require.NoError(t, ml.Get(ctx, "k", &got))
	assert.Equal(t, "7", got.Amount)

	// 命中后应回写 L1
	var local balanceEntry
	assert.NoError(t, l1.Get(ctx, "k", &local))
}
