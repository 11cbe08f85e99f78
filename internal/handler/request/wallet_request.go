package request

// ConnectRequest 发起与指定 Provider 的连接
type ConnectRequest struct {
	Provider string `json:"provider" binding:"required"`
}

// ConnectManualRequest 手动输入账户 ID 的兜底路径
type ConnectManualRequest struct {
	AccountID string `json:"account_id" binding:"required,account_id"`
}
