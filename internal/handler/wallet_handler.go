package handler

import (
	"dright-core/internal/handler/request"
	"dright-core/internal/handler/response"
	"dright-core/internal/wallet/negotiate"
	"dright-core/internal/wallet/provider"
	"dright-core/internal/wallet/state"
	"dright-core/pkg/errno"
	"dright-core/pkg/validator"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	detector   *provider.Detector
	negotiator *negotiate.Negotiator
	store      *state.Store
}

func NewWalletHandler(detector *provider.Detector, negotiator *negotiate.Negotiator, store *state.Store) *WalletHandler {
	return &WalletHandler{
		detector:   detector,
		negotiator: negotiator,
		store:      store,
	}
}

// ListProviders 探测可用的钱包 Provider
// @Summary 探测钱包 Provider
// @Description 阻塞式探测, 发现任一 Provider 或预算耗尽后返回完整清单
// @Tags Wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/providers [get]
func (h *WalletHandler) ListProviders(c *gin.Context) {
	// 探测永不报错: 一个都没发现也是正常结果
	list := h.detector.Detect(c.Request.Context())
	response.Success(c, gin.H{"providers": list})
}

// Connect 与指定 Provider 握手
// @Summary 连接钱包
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body request.ConnectRequest true "Connect Request"
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/connect [post]
func (h *WalletHandler) Connect(c *gin.Context) {
	var req request.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, errno.ErrBind, validator.GetErrorMsg(err))
		return
	}

	desc, ok := provider.Find(h.detector.Scan(), req.Provider)
	if !ok {
		response.Error(c, errno.ErrProviderNotFound)
		return
	}

	accountID, err := h.negotiator.Connect(c.Request.Context(), desc)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"account_id": accountID,
		"provider":   desc.Name,
	})
}

// ConnectManual 手动输入账户 ID 连接
// @Summary 手动连接 (账户 ID 兜底)
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body request.ConnectManualRequest true "Manual Connect Request"
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/connect/manual [post]
func (h *WalletHandler) ConnectManual(c *gin.Context) {
	var req request.ConnectManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, errno.ErrBind, validator.GetErrorMsg(err))
		return
	}

	if err := h.negotiator.ConnectManual(c.Request.Context(), req.AccountID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, h.store.Get())
}

// Status 查询当前连接状态
// @Summary 连接状态
// @Tags Wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/status [get]
func (h *WalletHandler) Status(c *gin.Context) {
	response.Success(c, h.store.Get())
}

// Disconnect 断开连接
// @Summary 断开钱包
// @Tags Wallet
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/wallet/disconnect [post]
func (h *WalletHandler) Disconnect(c *gin.Context) {
	h.negotiator.Disconnect(c.Request.Context())
	response.Success(c, h.store.Get())
}
