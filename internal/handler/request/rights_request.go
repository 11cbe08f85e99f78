package request

// CreateTokenRequest 在账本上创建权利 NFT 集合
type CreateTokenRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Symbol    string `json:"symbol" binding:"required,max=10"`
	RoyaltyBP int64  `json:"royalty_bp" binding:"min=0,max=10000"`
}

// MintRequest 铸造一个权利 NFT
type MintRequest struct {
	TokenID     string `json:"token_id" binding:"required,account_id"`
	Type        string `json:"type" binding:"required,oneof=copyright royalty license ownership"`
	Title       string `json:"title" binding:"required,max=255"`
	MetadataURI string `json:"metadata_uri" binding:"required,max=512"`
	RoyaltyBP   int64  `json:"royalty_bp" binding:"min=0,max=10000"`
}

// TransferRequest 转移已铸造的权利 NFT
type TransferRequest struct {
	TokenID  string `json:"token_id" binding:"required,account_id"`
	SerialNo int64  `json:"serial_no" binding:"required,min=1"`
	To       string `json:"to" binding:"required,account_id"`
}
