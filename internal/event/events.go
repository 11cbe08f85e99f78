package event

// Topic 名称集中在这里, 避免生产/消费两侧拼错
const (
	TopicTxEvents     = "dright_events_tx"
	TopicWalletEvents = "dright_events_wallet"
)

// TxSubmittedEvent 交易经 Provider 签名执行后发出
type TxSubmittedEvent struct {
	TransactionID string `json:"transaction_id"`
	Action        string `json:"action"`
	Signer        string `json:"signer"`
	TokenID       string `json:"token_id,omitempty"`
	SerialNo      int64  `json:"serial_no,omitempty"`
	Success       bool   `json:"success"`
}

// WalletConnectedEvent 钱包连接成功后发出
type WalletConnectedEvent struct {
	AccountID string `json:"account_id"`
	Provider  string `json:"provider"`
	Network   string `json:"network"`
}

// WalletDisconnectedEvent 显式断开后发出
type WalletDisconnectedEvent struct {
	AccountID string `json:"account_id"`
}
