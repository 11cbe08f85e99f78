package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dright-core/internal/event"
	"dright-core/internal/model"
	"dright-core/internal/wallet/provider"
	"dright-core/internal/wallet/state"
	"dright-core/internal/wallet/submit"
	"dright-core/pkg/cache"
	"dright-core/pkg/errno"
	"dright-core/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rightCacheTTL 单个权利的缓存时长; 转移会主动失效, TTL 只是兜底
const rightCacheTTL = 5 * time.Minute

// rightsService 把权利操作交给 Submitter 签名执行, 成功后在同一个
// DB 事务里记录交易 + Outbox 消息 (Transactional Outbox)。
type rightsService struct {
	db        *gorm.DB
	store     *state.Store
	submitter *submit.Submitter
	detector  *provider.Detector
	cache     cache.Cache
}

func NewRightsService(db *gorm.DB, store *state.Store, submitter *submit.Submitter, detector *provider.Detector, c cache.Cache) RightsService {
	return &rightsService{
		db:        db,
		store:     store,
		submitter: submitter,
		detector:  detector,
		cache:     c,
	}
}

func rightCacheKey(tokenID string, serialNo int64) string {
	return fmt.Sprintf("dright:right:%s:%d", tokenID, serialNo)
}

// currentProvider 找到当前连接所用的 Provider 描述符
func (s *rightsService) currentProvider() (provider.Descriptor, error) {
	st := s.store.Get()
	if !st.IsConnected {
		return provider.Descriptor{}, errno.ErrNotConnected
	}

	desc, ok := provider.Find(s.detector.Scan(), st.Provider)
	if !ok || !desc.Detected {
		// 连接期间 Provider 下线了
		return provider.Descriptor{}, errno.ErrProviderNotFound
	}
	return desc, nil
}

func (s *rightsService) CreateToken(ctx context.Context, name, symbol string, royaltyBP int64) (submit.Result, error) {
	desc, err := s.currentProvider()
	if err != nil {
		return submit.Result{}, err
	}

	res, err := s.submitter.Submit(ctx, desc, submit.ActionTokenCreate, submit.TokenCreateParams{
		Name:      name,
		Symbol:    symbol,
		RoyaltyBP: royaltyBP,
	}, "dright token create")
	if err != nil {
		return submit.Result{}, err
	}

	if err := s.record(ctx, res, submit.ActionTokenCreate, "", 0); err != nil {
		return res, err
	}
	return res, nil
}

func (s *rightsService) Mint(ctx context.Context, right *model.Right) (submit.Result, error) {
	if !right.Type.Valid() {
		return submit.Result{}, errno.ErrInvalidRight
	}

	desc, err := s.currentProvider()
	if err != nil {
		return submit.Result{}, err
	}

	res, err := s.submitter.Submit(ctx, desc, submit.ActionMint, submit.MintParams{
		TokenID:     right.TokenID,
		MetadataURI: right.MetadataURI,
		RightType:   string(right.Type),
	}, "dright mint")
	if err != nil {
		return submit.Result{}, err
	}

	// 记录权利 + 交易 + Outbox, 同一事务
	st := s.store.Get()
	right.OwnerID = st.AccountID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(right).Error; err != nil {
			return err
		}
		return s.recordInTx(tx, res, submit.ActionMint, right.TokenID, right.SerialNo)
	})
	if err != nil {
		logger.Error("铸造落库失败 (交易已上链)",
			zap.String("transaction_id", res.TransactionID), zap.Error(err))
		return res, errno.ErrDatabase
	}

	return res, nil
}

func (s *rightsService) Transfer(ctx context.Context, tokenID string, serialNo int64, to string) (submit.Result, error) {
	desc, err := s.currentProvider()
	if err != nil {
		return submit.Result{}, err
	}

	res, err := s.submitter.Submit(ctx, desc, submit.ActionTransfer, submit.TransferParams{
		TokenID:  tokenID,
		SerialNo: serialNo,
		To:       to,
	}, "dright transfer")
	if err != nil {
		return submit.Result{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 本地所有权同步更新
		if err := tx.Model(&model.Right{}).
			Where("token_id = ? AND serial_no = ?", tokenID, serialNo).
			Update("owner_id", to).Error; err != nil {
			return err
		}
		return s.recordInTx(tx, res, submit.ActionTransfer, tokenID, serialNo)
	})
	if err != nil {
		return res, errno.ErrDatabase
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, rightCacheKey(tokenID, serialNo))
	}

	return res, nil
}

func (s *rightsService) GetRight(ctx context.Context, tokenID string, serialNo int64) (*model.Right, error) {
	key := rightCacheKey(tokenID, serialNo)

	if s.cache != nil {
		var cached model.Right
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	var right model.Right
	err := s.db.WithContext(ctx).
		Where("token_id = ? AND serial_no = ?", tokenID, serialNo).
		First(&right).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.ErrRightNotFound
	}
	if err != nil {
		return nil, errno.ErrDatabase
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &right, rightCacheTTL); err != nil {
			logger.Warn("权利缓存写入失败", zap.String("key", key), zap.Error(err))
		}
	}
	return &right, nil
}

func (s *rightsService) ListRightsByOwner(ctx context.Context, ownerID string) ([]model.Right, error) {
	var rights []model.Right
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Find(&rights).Error; err != nil {
		return nil, errno.ErrDatabase
	}
	return rights, nil
}

// record 单独记录一笔交易 (无关联业务行时)
func (s *rightsService) record(ctx context.Context, res submit.Result, action submit.Action, tokenID string, serialNo int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.recordInTx(tx, res, action, tokenID, serialNo)
	})
}

// recordInTx 在调用方事务里写 LedgerTransaction + Outbox
func (s *rightsService) recordInTx(tx *gorm.DB, res submit.Result, action submit.Action, tokenID string, serialNo int64) error {
	st := s.store.Get()

	record := model.LedgerTransaction{
		TransactionID: res.TransactionID,
		Action:        string(action),
		Signer:        st.AccountID,
		Provider:      st.Provider,
		Success:       res.Success,
	}
	if err := tx.Create(&record).Error; err != nil {
		return err
	}

	payload, err := json.Marshal(event.TxSubmittedEvent{
		TransactionID: res.TransactionID,
		Action:        string(action),
		Signer:        st.AccountID,
		TokenID:       tokenID,
		SerialNo:      serialNo,
		Success:       res.Success,
	})
	if err != nil {
		return err
	}

	// Key 用签名账户, 保证同一账户的事件有序
	return model.CreateOutboxMessage(tx, event.TopicTxEvents, st.AccountID, payload)
}
