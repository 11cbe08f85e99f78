// Package negotiate 驱动与选定 Provider 的配对握手,
// 并把结果规整成规范账户标识写入状态存储。
package negotiate

import (
	"context"
	"errors"
	"strings"
	"time"

	"dright-core/internal/wallet/provider"
	"dright-core/internal/wallet/state"
	"dright-core/pkg/errno"
	"dright-core/pkg/ledgerid"
	"dright-core/pkg/logger"
	"dright-core/pkg/monitor"

	"go.uber.org/zap"
)

// DefaultConnectTimeout 握手无响应的默认界限
const DefaultConnectTimeout = 30 * time.Second

// DialFunc 按 Descriptor 建立请求通道 (测试时替换为 Mock)
type DialFunc func(provider.Descriptor) (provider.Client, error)

type Negotiator struct {
	store   *state.Store
	dial    DialFunc
	timeout time.Duration
	network state.Network
	appName string
}

func New(store *state.Store, network state.Network) *Negotiator {
	return &Negotiator{
		store:   store,
		dial:    provider.Dial,
		timeout: DefaultConnectTimeout,
		network: network,
		appName: "dright",
	}
}

// WithDial 替换拨号函数 (测试注入)
func (n *Negotiator) WithDial(d DialFunc) *Negotiator {
	n.dial = d
	return n
}

// WithTimeout 覆盖握手超时
func (n *Negotiator) WithTimeout(d time.Duration) *Negotiator {
	n.timeout = d
	return n
}

// Connect 与探测到的 Provider 握手。
// 状态迁移: disconnected → connecting → {connected | disconnected(error)}。
// 同一时刻只允许一次握手在途; 自动重试不是这里的事, 由调用方决定。
func (n *Negotiator) Connect(ctx context.Context, desc provider.Descriptor) (string, error) {
	if !desc.Detected {
		// 未安装: 不进入 connecting 态, 引导用户去装
		monitor.Business.ConnectAttemptTotal.WithLabelValues(desc.Name, "not_found").Inc()
		return "", errno.ErrProviderNotFound
	}

	if err := n.store.BeginConnecting(desc.Name); err != nil {
		monitor.Business.ConnectAttemptTotal.WithLabelValues(desc.Name, "busy").Inc()
		return "", err
	}

	accountID, err := n.handshake(ctx, desc)
	if err != nil {
		n.store.FailConnect(err)
		code, _ := errno.Decode(err)
		monitor.Business.ConnectAttemptTotal.WithLabelValues(desc.Name, resultLabel(code)).Inc()
		return "", err
	}

	monitor.Business.ConnectAttemptTotal.WithLabelValues(desc.Name, "ok").Inc()
	return accountID, nil
}

// handshake 与 Provider 的一次完整交换; 成功后状态已持久化。
func (n *Negotiator) handshake(ctx context.Context, desc provider.Descriptor) (string, error) {
	cli, err := n.dial(desc)
	if err != nil {
		logger.Error("Provider 拨号失败", zap.String("provider", desc.Name), zap.Error(err))
		return "", errno.ErrProviderNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	resp, err := cli.Request(ctx, "connect", map[string]interface{}{
		"app":     n.appName,
		"network": string(n.network),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", errno.ErrTimeout
		}
		logger.Error("握手请求失败", zap.String("provider", desc.Name), zap.Error(err))
		return "", errno.ErrProviderNotFound
	}

	if resp.UserRejected || isRejection(resp.Err) {
		return "", errno.ErrUserRejected
	}
	if resp.Err != "" {
		logger.Error("Provider 返回握手错误", zap.String("provider", desc.Name), zap.String("error", resp.Err))
		return "", errno.ErrInvalidResponse
	}

	// 账户 ID 语法不合格是兼容性 Bug, 单独打点 + 日志, 与用户取消严格区分
	if !ledgerid.IsValidAccountID(resp.AccountID) {
		logger.Error("Provider 返回非法账户 ID (兼容性问题)",
			zap.String("provider", desc.Name),
			zap.String("account_id", resp.AccountID))
		monitor.Business.InvalidResponse.WithLabelValues(desc.Name, "account_id").Inc()
		return "", errno.ErrInvalidResponse
	}

	network := n.network
	switch state.Network(resp.Network) {
	case state.NetworkMainnet:
		network = state.NetworkMainnet
	case state.NetworkTestnet:
		network = state.NetworkTestnet
	case "":
		// Provider 没报网络, 沿用配置值
	default:
		logger.Error("Provider 返回未知网络 (兼容性问题)",
			zap.String("provider", desc.Name),
			zap.String("network", resp.Network))
		monitor.Business.InvalidResponse.WithLabelValues(desc.Name, "network").Inc()
		return "", errno.ErrInvalidResponse
	}

	if err := n.store.CompleteConnect(ctx, resp.AccountID, network, resp.Balance); err != nil {
		return "", err
	}

	logger.Info("钱包连接成功",
		zap.String("provider", desc.Name),
		zap.String("account_id", resp.AccountID),
		zap.String("network", string(network)))
	return resp.AccountID, nil
}

// ConnectManual 手动输入账户 ID 的兜底路径。
// 同样的语法校验, 不合格直接拒绝, 不碰任何 Provider。
func (n *Negotiator) ConnectManual(ctx context.Context, accountID string) error {
	if !ledgerid.IsValidAccountID(accountID) {
		return errno.ErrInvalidAccountID
	}

	if err := n.store.BeginConnecting("manual"); err != nil {
		return err
	}

	if err := n.store.CompleteConnect(ctx, strings.TrimSpace(accountID), n.network, ""); err != nil {
		n.store.FailConnect(err)
		return err
	}

	monitor.Business.ConnectAttemptTotal.WithLabelValues("manual", "ok").Inc()
	return nil
}

// Disconnect 显式断开
func (n *Negotiator) Disconnect(ctx context.Context) {
	n.store.Disconnect(ctx)
	monitor.Business.DisconnectTotal.Inc()
	logger.Info("钱包已断开")
}

// Revalidate 对回灌的历史状态做一次轻量确认:
// Provider 还认这个账户就保留, 否则静默断开。尽力而为, 不阻塞启动。
func (n *Negotiator) Revalidate(ctx context.Context, desc provider.Descriptor) {
	st := n.store.Get()
	if !st.IsConnected || !desc.Detected {
		return
	}

	cli, err := n.dial(desc)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := cli.Request(ctx, "getAccount", nil)
	if err != nil {
		return // 确认不了就保持现状
	}
	if resp.AccountID != st.AccountID {
		logger.Info("历史连接已失效, 断开",
			zap.String("stored", st.AccountID),
			zap.String("reported", resp.AccountID))
		n.store.Disconnect(context.WithoutCancel(ctx))
	}
}

func isRejection(errMsg string) bool {
	msg := strings.ToLower(errMsg)
	return strings.Contains(msg, "reject") || strings.Contains(msg, "denied") || strings.Contains(msg, "cancel")
}

func resultLabel(code int) string {
	switch code {
	case errno.ErrUserRejected.Code:
		return "rejected"
	case errno.ErrTimeout.Code:
		return "timeout"
	case errno.ErrInvalidResponse.Code:
		return "invalid"
	case errno.ErrProviderNotFound.Code:
		return "not_found"
	default:
		return "error"
	}
}
