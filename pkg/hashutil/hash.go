package hashutil

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// SHA256 计算输入的 SHA256 哈希值。
func SHA256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Keccak256 计算输入的 Keccak256 哈希值 (EVM 生态常用)。
func Keccak256(data []byte) string {
	hash := sha3.NewLegacyKeccak256()
	hash.Write(data)
	return hex.EncodeToString(hash.Sum(nil))
}

// Blake3 计算输入的 Blake3 哈希值。
// 交易体校验和使用 Blake3: 现代、高性能，且输出固定 32 字节。
func Blake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}
