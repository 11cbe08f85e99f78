package provider

import (
	"context"
	"time"

	"dright-core/pkg/logger"
	"dright-core/pkg/monitor"
	"dright-core/pkg/retry"

	"go.uber.org/zap"
)

// Detector 判断当前环境中有哪些兼容的钱包 Provider。
// 只读环境, 绝不修改连接状态 —— 状态迁移是 Negotiator 的事。
//
// 注入时机不可靠, 所以探测分三路:
//  1. 立即同步检查
//  2. 有界退避轮询 (统一走 pkg/retry, 不再各处散落 timer)
//  3. 订阅注入公告事件 (部分钱包加载后才广播)
//
// 任一路确认即完成; 只有预算耗尽才算 "未找到", 不允许无限轮询。
type Detector struct {
	env      Environment
	known    []Descriptor
	schedule retry.Schedule
}

func NewDetector(env Environment) *Detector {
	return &Detector{
		env:      env,
		known:    KnownProviders(),
		schedule: retry.DefaultDetection,
	}
}

// WithSchedule 覆盖默认退避表 (测试用短间隔)
func (d *Detector) WithSchedule(s retry.Schedule) *Detector {
	d.schedule = s
	return d
}

// Scan 同步探测一轮, 返回带 Detected 标记的完整清单。
// 没有任何 Provider 也是正常结果, 不是错误。
func (d *Detector) Scan() []Descriptor {
	result := make([]Descriptor, len(d.known))
	copy(result, d.known)

	// 1. 固定路径直查
	for i := range result {
		if b, ok := d.env.Lookup(result[i].BindingPath...); ok {
			result[i].Detected = true
			result[i].Endpoint = b.Endpoint
		}
	}

	// 2. 通用多 Provider 容器: 按唯一能力旗标匹配
	// 不做任意方法名嗅探 —— 只认登记过的旗标
	container := d.env.Container()
	for i := range result {
		if result[i].Detected {
			continue
		}
		flag := result[i].capabilityKey()
		if flag == "" {
			continue
		}
		for _, b := range container {
			if b.Capabilities[flag] {
				result[i].Detected = true
				result[i].Endpoint = b.Endpoint
				break
			}
		}
	}

	return result
}

// Detect 阻塞式探测, 直到发现任一 Provider 或预算耗尽。
// 无论结局如何都返回完整清单, 永不返回错误。
func (d *Detector) Detect(ctx context.Context) []Descriptor {
	start := time.Now()
	defer func() {
		monitor.Business.DetectionDuration.Observe(time.Since(start).Seconds())
	}()

	result := d.Scan()
	if anyDetected(result) {
		return result
	}

	// 公告事件可以提前打断轮询等待
	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if ann := d.env.Announcements(); ann != nil {
		go func() {
			select {
			case <-pollCtx.Done():
			case b, ok := <-ann:
				if ok {
					logger.Debug("收到 Provider 注入公告", zap.String("name", b.Name))
					cancel()
				}
			}
		}()
	}

	err := retry.Do(pollCtx, d.schedule, func(attempt int) (bool, error) {
		result = d.Scan()
		return anyDetected(result), nil
	})

	// 公告触发的取消: 外层 ctx 还活着, 再扫一轮拿到刚注入的 Provider
	if err != nil && ctx.Err() == nil {
		result = d.Scan()
	}

	if !anyDetected(result) {
		logger.Info("探测结束: 未发现任何钱包 Provider",
			zap.Int("known", len(d.known)),
			zap.Duration("elapsed", time.Since(start)))
	}
	return result
}

// Find 返回探测结果中指定名字的 Provider
func Find(list []Descriptor, name string) (Descriptor, bool) {
	for _, desc := range list {
		if desc.Name == name {
			return desc, true
		}
	}
	return Descriptor{}, false
}

func anyDetected(list []Descriptor) bool {
	for _, desc := range list {
		if desc.Detected {
			return true
		}
	}
	return false
}
