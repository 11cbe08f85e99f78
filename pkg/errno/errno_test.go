package errno

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	// nil 表示成功
	code, msg := Decode(nil)
	assert.Equal(t, OK.Code, code)
	assert.Equal(t, OK.Message, msg)

	// 值与指针都能解码
	code, _ = Decode(ErrTimeout)
	assert.Equal(t, ErrTimeout.Code, code)

	e := ErrUserRejected
	code, _ = Decode(&e)
	assert.Equal(t, ErrUserRejected.Code, code)

	// 普通 error 落到 InternalServerError, 但保留原始消息
	code, msg = Decode(errors.New("boom"))
	assert.Equal(t, InternalServerError.Code, code)
	assert.Equal(t, "boom", msg)
}

func TestIs(t *testing.T) {
	assert.True(t, Is(ErrProviderNotFound, ErrProviderNotFound))
	assert.False(t, Is(ErrProviderNotFound, ErrUserRejected))
	assert.False(t, Is(nil, ErrTimeout))
}

// 连接错误类必须彼此可区分: 上层 UI 按 Code 分流文案
func TestWalletErrorCodesDistinct(t *testing.T) {
	all := []Errno{
		ErrProviderNotFound,
		ErrUserRejected,
		ErrTimeout,
		ErrInvalidResponse,
		ErrNotConnected,
		ErrConnectBusy,
		ErrInvalidAccountID,
	}

	seen := make(map[int]bool)
	for _, e := range all {
		assert.False(t, seen[e.Code], "duplicate code %d", e.Code)
		seen[e.Code] = true
		assert.NotEmpty(t, e.Message)
	}
}
