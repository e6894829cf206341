package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"messenger_server/internal/config"
	dao "messenger_server/internal/dao/mysql"
	myredis "messenger_server/internal/dao/redis"
	"messenger_server/internal/gateway/websocket"
	"messenger_server/internal/handler"
	"messenger_server/internal/https_server"
	"messenger_server/internal/infrastructure/logger"
	"messenger_server/internal/infrastructure/mq"
	"messenger_server/internal/service"
	"messenger_server/pkg/util/jwt"
	"messenger_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 和雪花算法
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()
	zap.L().Info("JWT 与雪花算法初始化成功")

	// 6. 初始化事件链路：websocket 网关作为事件下发目标
	// channel 模式事件走进程内通道，kafka 模式经 Kafka 中转支持多实例
	connManager := websocket.NewConnManager()
	var broker mq.EventBroker
	if conf.KafkaConfig.MessageMode == "kafka" {
		broker = mq.NewKafkaBroker(connManager)
	} else {
		broker = mq.NewChannelBroker(connManager)
	}
	go broker.Start()
	zap.L().Info("事件代理初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 7. 初始化 Service 层和 Handler 层 (依赖注入)
	svcs := service.NewServices(repos, myredis.GetCacheService(), broker)
	handlers := handler.NewHandlers(svcs, connManager)
	zap.L().Info("Service 层初始化成功")

	// 8. 初始化参数校验翻译器和 HTTP 服务器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("init validator translator failed", zap.Error(err))
	}
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 9. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit
	zap.L().Info("关闭服务器...")

	broker.Close()

	zap.L().Info("服务器已关闭")
}
