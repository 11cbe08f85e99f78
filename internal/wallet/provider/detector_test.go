package provider

import (
	"context"
	"testing"
	"time"

	"dright-core/pkg/monitor"
	"dright-core/pkg/retry"

	"github.com/stretchr/testify/assert"
)

func init() {
	monitor.InitBusinessMetrics()
}

// 测试用短退避表, 保证单测秒级完成
func fastSchedule() retry.Schedule {
	return retry.Schedule{
		Intervals:   []time.Duration{5 * time.Millisecond, 10 * time.Millisecond},
		MaxAttempts: 5,
	}
}

func TestScanFindsProviderAtFixedPath(t *testing.T) {
	env := NewStaticEnvironment()
	env.Register(Binding{Name: "hashpack", Endpoint: "http://127.0.0.1:7546"}, "hashconnect")

	result := NewDetector(env).Scan()

	hp, ok := Find(result, "hashpack")
	assert.True(t, ok)
	assert.True(t, hp.Detected)
	assert.Equal(t, "http://127.0.0.1:7546", hp.Endpoint)

	// 其他 Provider 保持 detected=false, 清单依然完整
	blade, ok := Find(result, "blade")
	assert.True(t, ok)
	assert.False(t, blade.Detected)
}

func TestScanMatchesContainerByCapabilityFlag(t *testing.T) {
	env := NewStaticEnvironment()
	// 挂在通用容器里 (非固定路径), 只能靠能力旗标识别
	env.Register(Binding{
		Name:         "some-multi-provider-entry",
		Capabilities: map[string]bool{"isBlade": true},
		Endpoint:     "http://127.0.0.1:7547",
	}, "container", "0")

	result := NewDetector(env).Scan()

	blade, _ := Find(result, "blade")
	assert.True(t, blade.Detected)
	assert.Equal(t, "http://127.0.0.1:7547", blade.Endpoint)
}

func TestDetectEmptyEnvironmentTerminates(t *testing.T) {
	env := NewStaticEnvironment()
	d := NewDetector(env).WithSchedule(fastSchedule())

	start := time.Now()
	result := d.Detect(context.Background())

	// 没有 Provider 是正常终态: 全部 detected=false, 且在预算内返回
	for _, desc := range result {
		assert.False(t, desc.Detected, "provider %s 不应被检测到", desc.Name)
	}
	assert.Less(t, time.Since(start), time.Second, "探测必须有界, 不能挂死")
}

func TestDetectPicksUpLateInjection(t *testing.T) {
	env := NewStaticEnvironment()
	d := NewDetector(env).WithSchedule(retry.Schedule{
		Intervals:   []time.Duration{20 * time.Millisecond},
		MaxAttempts: 10,
	})

	// 模拟页面加载后才注入的钱包
	go func() {
		time.Sleep(30 * time.Millisecond)
		env.Register(Binding{Name: "kabila", Endpoint: "http://127.0.0.1:7548"}, "kabila")
	}()

	result := d.Detect(context.Background())

	kb, _ := Find(result, "kabila")
	assert.True(t, kb.Detected, "延迟注入的 Provider 应该被轮询/公告捕获")
}

func TestDetectAnnouncementShortCircuits(t *testing.T) {
	env := NewStaticEnvironment()
	// 长轮询间隔: 只有公告事件能在限期内救场
	d := NewDetector(env).WithSchedule(retry.Schedule{
		Intervals:   []time.Duration{5 * time.Second},
		MaxAttempts: 3,
	})

	go func() {
		time.Sleep(20 * time.Millisecond)
		env.Register(Binding{Name: "hashpack", Endpoint: "http://127.0.0.1:7546"}, "hashconnect")
	}()

	start := time.Now()
	result := d.Detect(context.Background())

	hp, _ := Find(result, "hashpack")
	assert.True(t, hp.Detected)
	assert.Less(t, time.Since(start), 2*time.Second, "公告应提前打断轮询等待")
}

func TestDetectIsReadOnly(t *testing.T) {
	env := NewStaticEnvironment()
	env.Register(Binding{Name: "hashpack", Endpoint: "http://x"}, "hashconnect")

	d := NewDetector(env)
	first := d.Scan()
	second := d.Scan()

	// 重复探测结果一致, 且不会污染已知清单
	assert.Equal(t, first, second)
	for _, k := range KnownProviders() {
		assert.False(t, k.Detected, "KnownProviders 模板不应被修改")
		assert.Empty(t, k.Endpoint)
	}
}
