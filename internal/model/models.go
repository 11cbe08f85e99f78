package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RightType 可以被代币化的权利种类
type RightType string

const (
	RightCopyright RightType = "copyright"
	RightRoyalty   RightType = "royalty"
	RightLicense   RightType = "license"
	RightOwnership RightType = "ownership"
)

func (t RightType) Valid() bool {
	switch t {
	case RightCopyright, RightRoyalty, RightLicense, RightOwnership:
		return true
	}
	return false
}

// Right 已代币化的权利
type Right struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	TokenID     string         `gorm:"type:varchar(64);not null;index" json:"token_id"` // 账本上的 Token ID
	SerialNo    int64          `gorm:"not null;default:0" json:"serial_no"`
	Type        RightType      `gorm:"type:varchar(20);not null" json:"type"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	MetadataURI string         `gorm:"type:varchar(512);not null" json:"metadata_uri"` // 指向权利元数据
	OwnerID     string         `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	RoyaltyBP   int64          `gorm:"not null;default:0" json:"royalty_bp"` // 版税 (basis points)
	Price       decimal.Decimal `gorm:"type:decimal(32,18);not null;default:0" json:"price"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Right) TableName() string {
	return "rights"
}

// LedgerTransaction 已完成的账本交易记录
// TransactionResult 的落库形态, 下游 (验证/展示) 只读消费。
type LedgerTransaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionID string    `gorm:"type:varchar(128);not null;unique" json:"transaction_id"` // 账本分配的 ID
	Action        string    `gorm:"type:varchar(32);not null;index" json:"action"`           // mint / transfer / token_create
	Signer        string    `gorm:"type:varchar(64);not null;index" json:"signer"`
	Provider      string    `gorm:"type:varchar(32);not null" json:"provider"`
	Success       bool      `gorm:"not null" json:"success"`
	Memo          string    `gorm:"type:varchar(255)" json:"memo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (LedgerTransaction) TableName() string {
	return "ledger_transactions"
}

// OutboxMessage 本地消息表 (Transactional Outbox)
type OutboxMessage struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Topic     string         `gorm:"type:varchar(255);not null" json:"topic"`
	Key       string         `gorm:"type:varchar(128)" json:"key"` // 分区键
	Payload   []byte         `gorm:"type:text;not null" json:"payload"`
	Status    string         `gorm:"type:varchar(50);not null;default:'PENDING';index" json:"status"` // PENDING, SENT, FAILED
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OutboxMessage) TableName() string {
	return "outbox_messages"
}

// CreateOutboxMessage 在业务事务内写入一条待投递消息
func CreateOutboxMessage(tx *gorm.DB, topic, key string, payload []byte) error {
	return tx.Create(&OutboxMessage{
		Topic:   topic,
		Key:     key,
		Payload: payload,
		Status:  "PENDING",
	}).Error
}
