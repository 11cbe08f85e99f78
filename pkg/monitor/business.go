package monitor

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义钱包工作流的业务监控指标
type BusinessMetrics struct {
	DetectionDuration   prometheus.Histogram
	ConnectAttemptTotal *prometheus.CounterVec // provider / result(ok, rejected, timeout, invalid, busy)
	DisconnectTotal     prometheus.Counter
	TxSubmittedTotal    *prometheus.CounterVec // action / result
	InvalidResponse     *prometheus.CounterVec // 兼容性 Bug 单独计数, 便于排查
}

// Global Metrics Instance
var Business *BusinessMetrics

var businessOnce sync.Once

// InitBusinessMetrics 初始化业务指标 (幂等)
func InitBusinessMetrics() {
	businessOnce.Do(func() {
		Business = &BusinessMetrics{
			DetectionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "dright_provider_detection_duration_seconds",
				Help:    "Time spent detecting wallet providers",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 15},
			}),
			ConnectAttemptTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "dright_wallet_connect_attempts_total",
				Help: "Wallet connection attempts by provider and outcome",
			}, []string{"provider", "result"}),
			DisconnectTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "dright_wallet_disconnect_total",
				Help: "Explicit wallet disconnects",
			}),
			TxSubmittedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "dright_tx_submitted_total",
				Help: "Transactions handed to a provider by action and outcome",
			}, []string{"action", "result"}),
			InvalidResponse: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "dright_provider_invalid_response_total",
				Help: "Provider responses failing syntax checks (compatibility bugs)",
			}, []string{"provider", "field"}),
		}
	})
}

func init() {
	// 业务指标允许在 monitor.Init 之前被引用 (例如纯库用法), 提前兜底
	InitBusinessMetrics()
}
