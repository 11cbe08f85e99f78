package service

import (
	"context"

	"dright-core/internal/model"
	"dright-core/internal/wallet/submit"
)

// RightsService 权利代币化的业务入口
type RightsService interface {
	// CreateToken 在账本上创建权利 NFT 集合
	CreateToken(ctx context.Context, name, symbol string, royaltyBP int64) (submit.Result, error)

	// Mint 铸造一个权利 NFT 并落库
	Mint(ctx context.Context, right *model.Right) (submit.Result, error)

	// Transfer 转移已铸造的权利 NFT
	Transfer(ctx context.Context, tokenID string, serialNo int64, to string) (submit.Result, error)

	// GetRight 查询单个权利 (走缓存)
	GetRight(ctx context.Context, tokenID string, serialNo int64) (*model.Right, error)

	// ListRightsByOwner 查询某账户持有的全部权利
	ListRightsByOwner(ctx context.Context, ownerID string) ([]model.Right, error)
}
