package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dright-core/internal/event"
	"dright-core/internal/handler"
	"dright-core/internal/model"
	"dright-core/internal/server"
	"dright-core/internal/service"
	"dright-core/internal/service/mq"
	"dright-core/internal/wallet/negotiate"
	"dright-core/internal/wallet/provider"
	"dright-core/internal/wallet/state"
	"dright-core/internal/wallet/submit"

	"dright-core/pkg/cache"
	"dright-core/pkg/config"
	"dright-core/pkg/database"
	"dright-core/pkg/keystore"
	"dright-core/pkg/logger"
	"dright-core/pkg/safe_random"
	"dright-core/pkg/validator"

	"go.uber.org/zap"

	_ "dright-core/docs/swagger"
)

// @title Dright Core API
// @version 1.0
// @description NFT Rights Marketplace Wallet Gateway

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 2. 注册自定义参数校验规则 (account_id 等)
	validator.Init()

	// 3. 连接数据库
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Shanghai",
		config.Global.DB.Host,
		config.Global.DB.User,
		config.Global.DB.Password,
		config.Global.DB.Name,
		config.Global.DB.Port,
	)
	db, err := database.ConnectPostgres(dsn)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	// 4. 连接 Redis
	rdb, err := database.ConnectRedis(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
	if err != nil {
		logger.Fatal("Redis 连接失败", zap.Error(err))
	}

	// 5. 执行数据库迁移 (Auto Migrate) - 仅开发环境
	if config.Global.App.Env == "development" {
		logger.Info("开发环境: 尝试自动迁移 Schema (GORM AutoMigrate)...")
		if err := db.AutoMigrate(model.AllModels()...); err != nil {
			logger.Fatal("数据库自动迁移失败", zap.Error(err))
		}
		logger.Info("数据库自动迁移完成 (Dev Mode)")
	} else {
		logger.Info("生产环境: 跳过 AutoMigrate，请使用 migrate 工具管理 Schema")
	}

	// 6. 加载 (或首次生成) 配对密钥
	pairingSecret := loadPairingSecret()

	// 7. 钱包桥核心模块
	bridgeCfg := config.Global.Bridge
	network := state.Network(bridgeCfg.Network)

	env := provider.NewRedisEnvironment(rdb, bridgeCfg.RegistryPrefix)
	detector := provider.NewDetector(env)

	// 开发环境状态落本地文件方便排查; 多实例部署共享 Redis
	var persist state.Persistence = state.NewRedisPersistence(rdb)
	if config.Global.App.Env == "development" && bridgeCfg.StateFile != "" {
		persist = state.NewFilePersistence(bridgeCfg.StateFile)
	}
	store := state.NewStore(persist, network)

	dial := provider.NewDialer(pairingSecret)
	negotiator := negotiate.New(store, network).
		WithDial(dial).
		WithTimeout(bridgeCfg.ConnectTimeout)
	submitter := submit.New(store).
		WithDial(dial).
		WithTimeout(bridgeCfg.SubmitTimeout)

	// 回灌的历史连接做一次轻量确认, 不阻塞启动
	go func() {
		list := detector.Detect(context.Background())
		st := store.Get()
		if !st.IsConnected {
			return
		}
		if desc, ok := provider.Find(list, st.Provider); ok {
			negotiator.Revalidate(context.Background(), desc)
		}
	}()

	// 8. 初始化消息队列
	var producer mq.Producer
	var consumer mq.Consumer
	if config.Global.Redis.MQType == "kafka" {
		logger.Info("使用 Kafka 作为消息队列...")
		producer = mq.NewKafkaProducer(config.Global.Kafka.Brokers)
		consumer = mq.NewKafkaConsumer(config.Global.Kafka.Brokers, "dright_sync_group")
	} else {
		logger.Info("使用 Redis Streams 作为消息队列...")
		producer = mq.NewRedisProducer(rdb)
		consumer = mq.NewRedisConsumer(rdb, "dright_sync", "sync-0")
	}

	// 连接状态变化广播给下游 (UI 推送、风控等)
	store.Subscribe(func(st state.ConnectionState) {
		go publishWalletEvent(producer, st)
	})

	// 9. 启动消息中继服务 (Outbox -> MQ)
	relayService := service.NewRelayService(db, producer)
	go relayService.Start(context.Background())

	// 10. 业务服务 (L1 内存 + L2 Redis 两级缓存)
	rightCache := cache.NewMultiLevelCache(
		cache.NewMemoryCache(time.Minute, 5*time.Minute),
		cache.NewRedisCache(rdb),
	)
	rightsService := service.NewRightsService(db, store, submitter, detector, rightCache)

	// 11. 跨实例缓存同步
	syncService := service.NewSyncService(consumer, rightCache)
	go func() {
		if err := syncService.Start(context.Background()); err != nil {
			logger.Error("缓存同步服务启动失败", zap.Error(err))
		}
	}()

	// 12. HTTP Router
	walletHandler := handler.NewWalletHandler(detector, negotiator, store)
	rightsHandler := handler.NewRightsHandler(rightsService)
	r := server.NewHTTPRouter(walletHandler, rightsHandler)

	// 13. gRPC Server (健康检查)
	grpcServer, grpcHealth := server.NewGRPCServer()

	// 14. 启动应用
	app, err := server.New(server.Config{
		HttpPort: config.Global.App.HttpPort,
		GrpcPort: config.Global.App.GrpcPort,
	}, r, grpcServer, grpcHealth)
	if err != nil {
		logger.Fatal("应用启动失败", zap.Error(err))
	}

	// 运行 (阻塞)
	app.Run()

	// 15. 退出后资源清理
	logger.Info("正在关闭数据库连接...")
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	rdb.Close()
	logger.Info("系统已退出")
}

// publishWalletEvent 把连接状态变化翻译成事件广播出去。
// 握手成功 / 显式断开才广播, connecting 中间态不发。
func publishWalletEvent(producer mq.Producer, st state.ConnectionState) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var payload []byte
	var err error
	switch {
	case st.IsConnecting:
		return
	case st.IsConnected:
		payload, err = json.Marshal(event.WalletConnectedEvent{
			AccountID: st.AccountID,
			Provider:  st.Provider,
			Network:   string(st.Network),
		})
	default:
		payload, err = json.Marshal(event.WalletDisconnectedEvent{AccountID: st.AccountID})
	}
	if err != nil {
		return
	}

	if err := producer.Publish(ctx, event.TopicWalletEvents, st.AccountID, payload); err != nil {
		logger.Warn("钱包事件广播失败", zap.Error(err))
	}
}

// loadPairingSecret 从加密文件加载配对密钥; 文件不存在则生成一个新密钥落盘。
// 密码来自配置 (通常是 BRIDGE_PASSWORD 环境变量)。
func loadPairingSecret() string {
	cfg := config.Global.Bridge
	if cfg.Password == "" {
		logger.Fatal("未设置配对密钥密码 (bridge.password / BRIDGE_PASSWORD)")
	}

	if keyJSON, err := keystore.LoadFromFile(cfg.PairingKeyFile); err == nil {
		secret, err := keystore.DecryptSecret(keyJSON, cfg.Password)
		if err != nil {
			logger.Fatal("配对密钥解密失败 (密码错误或文件损坏)", zap.Error(err))
		}
		logger.Info("配对密钥已加载", zap.String("file", cfg.PairingKeyFile))
		return secret
	}

	// 首次启动: 生成并加密落盘
	secret, err := safe_random.GenerateRandomHexString(32)
	if err != nil {
		logger.Fatal("生成配对密钥失败", zap.Error(err))
	}
	keyJSON, err := keystore.EncryptSecret(secret, cfg.Password)
	if err != nil {
		logger.Fatal("配对密钥加密失败", zap.Error(err))
	}
	if err := keyJSON.SaveToFile(cfg.PairingKeyFile); err != nil {
		logger.Fatal("配对密钥写入失败", zap.Error(err))
	}
	logger.Info("已生成新的配对密钥", zap.String("file", cfg.PairingKeyFile))
	return secret
}
