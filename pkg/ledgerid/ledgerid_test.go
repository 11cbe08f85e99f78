package ledgerid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccountID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AccountID
		wantErr bool
	}{
		{"Typical testnet account", "0.0.123456", AccountID{0, 0, 123456}, false},
		{"Non-zero shard and realm", "1.2.3", AccountID{1, 2, 3}, false},
		{"Leading whitespace tolerated", "  0.0.7  ", AccountID{0, 0, 7}, false},
		{"Plain garbage", "abc123", AccountID{}, true},
		{"Missing segment", "0.123456", AccountID{}, true},
		{"Hex address", "0x40ceeEdE9fA9ee09", AccountID{}, true},
		{"Negative number", "0.0.-5", AccountID{}, true},
		{"Empty string", "", AccountID{}, true},
		{"Trailing dot", "0.0.123.", AccountID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAccountID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountIDRoundTrip(t *testing.T) {
	a, err := ParseAccountID("0.0.123456")
	assert.NoError(t, err)
	assert.Equal(t, "0.0.123456", a.String())
}

func TestNewTransactionID(t *testing.T) {
	payer := AccountID{0, 0, 123456}

	id1 := NewTransactionID(payer)
	id2 := NewTransactionID(payer)

	assert.True(t, IsValidTransactionID(id1), "生成的交易 ID 必须符合语法: %s", id1)
	// 幂等性关键: 每次生成都必须是新 ID
	assert.NotEqual(t, id1, id2)
}

func TestIsValidTransactionID(t *testing.T) {
	assert.True(t, IsValidTransactionID("0.0.123456@1650000000.123456789"))
	assert.False(t, IsValidTransactionID("0.0.123456"))
	assert.False(t, IsValidTransactionID("abc@123.456"))
	assert.False(t, IsValidTransactionID(""))
}
