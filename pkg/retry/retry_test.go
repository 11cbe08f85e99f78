package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDoSucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), DefaultDetection, func(attempt int) (bool, error) {
		calls++
		return true, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsBudget(t *testing.T) {
	// 用极短的间隔，避免测试拖慢
	s := Schedule{Intervals: []time.Duration{time.Millisecond}, MaxAttempts: 4}

	calls := 0
	err := Do(context.Background(), s, func(attempt int) (bool, error) {
		calls++
		return false, nil
	})

	assert.ErrorIs(t, err, ErrBudgetExhausted)
	assert.Equal(t, 4, calls)
}

func TestDoStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Do(context.Background(), DefaultDetection, func(attempt int) (bool, error) {
		calls++
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDoHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := Schedule{Intervals: []time.Duration{time.Hour}, MaxAttempts: 2}

	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, s, func(attempt int) (bool, error) { return false, nil })
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Do 没有在 context 取消后返回")
	}
}

func TestScheduleWaitClampsToLastInterval(t *testing.T) {
	s := Schedule{Intervals: []time.Duration{time.Millisecond, time.Second}, MaxAttempts: 5}
	assert.Equal(t, time.Millisecond, s.Wait(0))
	assert.Equal(t, time.Second, s.Wait(1))
	assert.Equal(t, time.Second, s.Wait(10))
}

func TestDefaultDetectionBudgetIsBounded(t *testing.T) {
	// 规定的退避表总时长必须有限 (约 ~33.6s 上限, 绝不能无限轮询)
	total := time.Duration(0)
	for i := 0; i < DefaultDetection.MaxAttempts-1; i++ {
		total += DefaultDetection.Wait(i)
	}
	assert.Less(t, total, time.Minute)
}
