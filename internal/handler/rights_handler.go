package handler

import (
	"strconv"

	"dright-core/internal/handler/request"
	"dright-core/internal/handler/response"
	"dright-core/internal/model"
	"dright-core/internal/service"
	"dright-core/pkg/errno"
	"dright-core/pkg/validator"

	"github.com/gin-gonic/gin"
)

type RightsHandler struct {
	rights service.RightsService
}

func NewRightsHandler(rights service.RightsService) *RightsHandler {
	return &RightsHandler{rights: rights}
}

// CreateToken 创建权利 NFT 集合
// @Summary 创建权利集合
// @Description 通过已连接的钱包在账本上创建 NFT 集合
// @Tags Rights
// @Accept json
// @Produce json
// @Param request body request.CreateTokenRequest true "Create Token Request"
// @Success 200 {object} response.Response
// @Router /api/v1/rights/token [post]
func (h *RightsHandler) CreateToken(c *gin.Context) {
	var req request.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, errno.ErrBind, validator.GetErrorMsg(err))
		return
	}

	res, err := h.rights.CreateToken(c.Request.Context(), req.Name, req.Symbol, req.RoyaltyBP)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, res)
}

// Mint 铸造权利 NFT
// @Summary 铸造权利
// @Tags Rights
// @Accept json
// @Produce json
// @Param request body request.MintRequest true "Mint Request"
// @Success 200 {object} response.Response
// @Router /api/v1/rights/mint [post]
func (h *RightsHandler) Mint(c *gin.Context) {
	var req request.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, errno.ErrBind, validator.GetErrorMsg(err))
		return
	}

	right := &model.Right{
		TokenID:     req.TokenID,
		Type:        model.RightType(req.Type),
		Title:       req.Title,
		MetadataURI: req.MetadataURI,
		RoyaltyBP:   req.RoyaltyBP,
	}

	res, err := h.rights.Mint(c.Request.Context(), right)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"transaction_id": res.TransactionID,
		"right":          right,
	})
}

// Transfer 转移权利 NFT
// @Summary 转移权利
// @Tags Rights
// @Accept json
// @Produce json
// @Param request body request.TransferRequest true "Transfer Request"
// @Success 200 {object} response.Response
// @Router /api/v1/rights/transfer [post]
func (h *RightsHandler) Transfer(c *gin.Context) {
	var req request.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, errno.ErrBind, validator.GetErrorMsg(err))
		return
	}

	res, err := h.rights.Transfer(c.Request.Context(), req.TokenID, req.SerialNo, req.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, res)
}

// GetRight 查询单个权利
// @Summary 查询权利
// @Tags Rights
// @Produce json
// @Param token_id path string true "Token ID (shard.realm.num)"
// @Param serial_no path int true "Serial Number"
// @Success 200 {object} response.Response
// @Router /api/v1/rights/{token_id}/{serial_no} [get]
func (h *RightsHandler) GetRight(c *gin.Context) {
	serialNo, err := strconv.ParseInt(c.Param("serial_no"), 10, 64)
	if err != nil {
		response.ErrorWithMsg(c, errno.ErrBind, "serial_no 必须是整数")
		return
	}

	right, err := h.rights.GetRight(c.Request.Context(), c.Param("token_id"), serialNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, right)
}

// ListByOwner 查询账户持有的全部权利
// @Summary 查询账户权利
// @Tags Rights
// @Produce json
// @Param owner_id query string true "Owner Account ID"
// @Success 200 {object} response.Response
// @Router /api/v1/rights [get]
func (h *RightsHandler) ListByOwner(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		response.ErrorWithMsg(c, errno.ErrBind, "owner_id 不能为空")
		return
	}

	rights, err := h.rights.ListRightsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"rights": rights})
}
