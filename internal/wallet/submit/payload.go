package submit

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"dright-core/pkg/hashutil"
)

// Action 账本操作类型
type Action string

const (
	ActionMint        Action = "mint"
	ActionTransfer    Action = "transfer"
	ActionTokenCreate Action = "token_create"
)

func (a Action) Valid() bool {
	switch a {
	case ActionMint, ActionTransfer, ActionTokenCreate:
		return true
	}
	return false
}

// Payload 规范化的未签名交易表示。
// 每次提交尝试构造一份, Provider 响应后即丢弃。
type Payload struct {
	TransactionID string          `json:"transaction_id"` // 每次尝试唯一
	Signer        string          `json:"signer"`         // 签名账户
	Action        Action          `json:"action"`
	Params        json.RawMessage `json:"params"`
	Memo          string          `json:"memo,omitempty"`
	Nonce         string          `json:"nonce"`
}

// Encode 序列化为账本期望的字节编码并做 base64 包装 (Provider 传输要求),
// 同时返回交易体的 Blake3 校验和。
func (p Payload) Encode() (body string, checksum string, err error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", "", fmt.Errorf("encode transaction payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), hashutil.Blake3(raw), nil
}

// MintParams 铸造一个权利 NFT
type MintParams struct {
	TokenID     string `json:"token_id"`
	MetadataURI string `json:"metadata_uri"` // 指向权利元数据 (IPFS CID 等)
	RightType   string `json:"right_type"`
}

// TransferParams 转移已铸造的权利 NFT
type TransferParams struct {
	TokenID  string `json:"token_id"`
	SerialNo int64  `json:"serial_no"`
	To       string `json:"to"` // 接收方账户 ID
}

// TokenCreateParams 创建权利 NFT 的集合 Token
type TokenCreateParams struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	RoyaltyBP int64  `json:"royalty_bp,omitempty"` // 版税, basis points
}
