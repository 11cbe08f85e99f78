// Package ledgerid 处理账本侧标识符的解析与校验。
// 账户 ID 采用三段式 "shard.realm.num" (例如 "0.0.123456")；
// 交易 ID 为 "账户ID@秒.纳秒" (例如 "0.0.123456@1650000000.123456789")。
package ledgerid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	accountRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)
	txRe      = regexp.MustCompile(`^\d+\.\d+\.\d+@\d+\.\d+$`)
)

// AccountID 三段式账户标识
type AccountID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// ParseAccountID 校验并解析账户 ID。
// 非法输入 (如 "abc123") 必须被拒绝，不允许宽松匹配。
func ParseAccountID(s string) (AccountID, error) {
	m := accountRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return AccountID{}, fmt.Errorf("invalid account id %q: expected shard.realm.num", s)
	}

	shard, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid shard in %q: %w", s, err)
	}
	realm, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid realm in %q: %w", s, err)
	}
	num, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid num in %q: %w", s, err)
	}

	return AccountID{Shard: shard, Realm: realm, Num: num}, nil
}

// IsValidAccountID 只做语法检查
func IsValidAccountID(s string) bool {
	_, err := ParseAccountID(s)
	return err == nil
}

func (a AccountID) String() string {
	return fmt.Sprintf("%d.%d.%d", a.Shard, a.Realm, a.Num)
}

// NewTransactionID 生成一个以签名账户 + 当前时刻为基础的交易 ID。
// 每次调用都产生新值: 同一笔业务重试前必须重新生成，避免重复提交。
func NewTransactionID(payer AccountID) string {
	now := time.Now()
	return fmt.Sprintf("%s@%d.%d", payer.String(), now.Unix(), now.Nanosecond())
}

// IsValidTransactionID 校验账本返回的交易 ID 语法
func IsValidTransactionID(s string) bool {
	return txRe.MatchString(strings.TrimSpace(s))
}
