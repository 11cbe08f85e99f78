package retry

import (
	"context"
	"errors"
	"time"
)

// ErrBudgetExhausted 表示重试预算用完仍未成功
var ErrBudgetExhausted = errors.New("retry: attempt budget exhausted")

// Schedule 定义一组递增的等待间隔。
// 尝试次数超过间隔数量时，沿用最后一个间隔，直到 MaxAttempts 用完。
type Schedule struct {
	Intervals   []time.Duration
	MaxAttempts int
}

// DefaultDetection 是所有探测调用点共用的退避表。
// 之前每个调用点各自散落 timer，现统一到这里: 100ms, 500ms, 1s, 2s, 5s，上限 10 次。
var DefaultDetection = Schedule{
	Intervals:   []time.Duration{100 * time.Millisecond, 500 * time.Millisecond, time.Second, 2 * time.Second, 5 * time.Second},
	MaxAttempts: 10,
}

// Wait 返回第 attempt 次失败后应等待的时长 (attempt 从 0 开始)。
func (s Schedule) Wait(attempt int) time.Duration {
	if len(s.Intervals) == 0 {
		return 0
	}
	if attempt >= len(s.Intervals) {
		return s.Intervals[len(s.Intervals)-1]
	}
	return s.Intervals[attempt]
}

// Do 按照 Schedule 重复执行 fn，直到:
//   - fn 返回 done=true (成功，返回 nil)
//   - 预算耗尽 (返回 ErrBudgetExhausted)
//   - ctx 被取消 (返回 ctx.Err())
//
// fn 返回 error 时立刻中止并透传 (用于不可恢复错误)；
// done=false 且 err=nil 表示"这次没成，继续等"。
func Do(ctx context.Context, s Schedule, fn func(attempt int) (done bool, err error)) error {
	max := s.MaxAttempts
	if max <= 0 {
		max = 1
	}

	for attempt := 0; attempt < max; attempt++ {
		done, err := fn(attempt)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		// 最后一次尝试之后不再等待
		if attempt == max-1 {
			break
		}

		timer := time.NewTimer(s.Wait(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return ErrBudgetExhausted
}
