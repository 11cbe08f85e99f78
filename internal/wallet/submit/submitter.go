// Package submit 把业务动作打包成未签名交易交给已连接的 Provider 签名执行。
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dright-core/internal/wallet/provider"
	"dright-core/internal/wallet/state"
	"dright-core/pkg/errno"
	"dright-core/pkg/ledgerid"
	"dright-core/pkg/logger"
	"dright-core/pkg/monitor"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSubmitTimeout 提交后等待 Provider 响应的界限
const DefaultSubmitTimeout = 30 * time.Second

// Result Provider 回调的最终产物
type Result struct {
	TransactionID string `json:"transaction_id"`
	Success       bool   `json:"success"`
	Err           string `json:"error,omitempty"`
}

type Submitter struct {
	store   *state.Store
	dial    func(provider.Descriptor) (provider.Client, error)
	timeout time.Duration
}

func New(store *state.Store) *Submitter {
	return &Submitter{
		store:   store,
		dial:    provider.Dial,
		timeout: DefaultSubmitTimeout,
	}
}

func (s *Submitter) WithDial(d func(provider.Descriptor) (provider.Client, error)) *Submitter {
	s.dial = d
	return s
}

func (s *Submitter) WithTimeout(d time.Duration) *Submitter {
	s.timeout = d
	return s
}

// Submit 前置条件: 必须已连接, 否则不触碰任何 Provider 直接失败。
//
// 失败策略:
//   - 超时只上报不重试 —— 已签名交易重发有重复提交风险,
//     调用方重试前必须换新的交易 ID (Build 每次都会生成)
//   - 用户在钱包里拒绝是终态, 上报, 不静默重试
func (s *Submitter) Submit(ctx context.Context, desc provider.Descriptor, action Action, params interface{}, memo string) (Result, error) {
	st := s.store.Get()
	if !st.IsConnected {
		return Result{}, errno.ErrNotConnected
	}
	if !action.Valid() {
		return Result{}, errno.ErrInvalidRight
	}

	payload, err := s.build(st.AccountID, action, params, memo)
	if err != nil {
		return Result{}, err
	}

	res, err := s.execute(ctx, desc, payload)
	if err != nil {
		code, _ := errno.Decode(err)
		monitor.Business.TxSubmittedTotal.WithLabelValues(string(action), resultLabel(code)).Inc()
		return Result{}, err
	}

	monitor.Business.TxSubmittedTotal.WithLabelValues(string(action), "ok").Inc()
	return res, nil
}

// build 构造规范交易表示; 交易 ID 每次尝试都是新的 (幂等重试的前提)。
func (s *Submitter) build(signer string, action Action, params interface{}, memo string) (Payload, error) {
	payer, err := ledgerid.ParseAccountID(signer)
	if err != nil {
		// 状态存储保证了不变量, 走到这里说明出了大问题
		return Payload{}, errno.ErrNotConnected
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		TransactionID: ledgerid.NewTransactionID(payer),
		Signer:        signer,
		Action:        action,
		Params:        raw,
		Memo:          memo,
		Nonce:         uuid.NewString(),
	}, nil
}

func (s *Submitter) execute(ctx context.Context, desc provider.Descriptor, payload Payload) (Result, error) {
	cli, err := s.dial(desc)
	if err != nil {
		return Result{}, errno.ErrProviderNotFound
	}

	body, checksum, err := payload.Encode()
	if err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := cli.Request(ctx, "signAndExecuteTransaction", map[string]interface{}{
		"transactionId": payload.TransactionID,
		"payload":       body,
		"checksum":      checksum,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("交易提交超时, 不自动重试",
				zap.String("transaction_id", payload.TransactionID),
				zap.String("action", string(payload.Action)))
			return Result{}, errno.ErrTimeout
		}
		logger.Error("交易提交请求失败", zap.Error(err))
		return Result{}, errno.ErrTxSubmitFailed
	}

	if resp.UserRejected {
		return Result{}, errno.ErrUserRejected
	}
	if !resp.Success {
		logger.Error("Provider 报告交易失败",
			zap.String("transaction_id", payload.TransactionID),
			zap.String("error", resp.Err))
		return Result{TransactionID: payload.TransactionID, Success: false, Err: resp.Err}, errno.ErrTxSubmitFailed
	}

	// 账本分配的交易 ID 语法检查: 不合格是兼容性 Bug, 单独记录
	if !ledgerid.IsValidTransactionID(resp.TransactionID) {
		logger.Error("Provider 返回非法交易 ID (兼容性问题)",
			zap.String("provider", desc.Name),
			zap.String("transaction_id", resp.TransactionID))
		monitor.Business.InvalidResponse.WithLabelValues(desc.Name, "transaction_id").Inc()
		return Result{}, errno.ErrInvalidResponse
	}

	logger.Info("交易已提交",
		zap.String("transaction_id", resp.TransactionID),
		zap.String("action", string(payload.Action)))
	return Result{TransactionID: resp.TransactionID, Success: true}, nil
}

func resultLabel(code int) string {
	switch code {
	case errno.ErrUserRejected.Code:
		return "rejected"
	case errno.ErrTimeout.Code:
		return "timeout"
	case errno.ErrInvalidResponse.Code:
		return "invalid"
	case errno.ErrNotConnected.Code:
		return "not_connected"
	default:
		return "error"
	}
}
