package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"applications-server/internal/auditlog"
	"applications-server/internal/broker"
	"applications-server/internal/cache"
	"applications-server/internal/config"
	"applications-server/internal/consts"
	"applications-server/internal/db"
	"applications-server/internal/di"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	config.InitConfig("")
	db.InitDB()

	uploadPath := config.Get().Upload.Path
	checkSecurePath(uploadPath)
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		log.Fatal("无法创建上传目录: ", err)
	}

	// Kafka 连接是启动门槛：连不上就不开始对外服务
	startCtx, startCancel := context.WithTimeout(context.Background(), time.Minute)
	producer := broker.NewKafkaProducer(config.Get().Kafka.Brokers)
	if err := producer.Start(startCtx); err != nil {
		startCancel()
		log.Fatal("❌ Kafka 启动失败: ", err)
	}

	// 审计库连不上只降级，不拦截启动
	var mongoClient *mongo.Client
	// recorder 为 nil 接口时服务层跳过审计（降级模式）
	var recorder auditlog.EndpointCallRecorder
	if config.Get().Mongo.Enabled {
		client, err := auditlog.NewMongoClient(startCtx)
		if err != nil {
			log.Printf("⚠️ MongoDB 不可用，审计日志降级: %v", err)
		} else {
			mongoClient = client
			recorder = auditlog.NewUserLogService(client)
		}
	}
	startCancel()

	app, err := di.InitializeApplication(db.DB, producer, recorder)
	if err != nil {
		log.Fatal("❌ 应用初始化失败: ", err)
	}

	gin.SetMode(config.Get().Server.Mode)

	r := gin.Default()
	app.Router.Init(r)

	printWelcomeMessage()

	// 停机配置
	srv := &http.Server{
		Addr:    ":" + config.Get().Server.Port,
		Handler: r,
	}

	go func() {
		// 服务连接
		log.Printf("🚀 服务启动成功，运行在 :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ 服务强制关闭:", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("⚠️ Kafka 关闭失败: %v", err)
	}
	if err := auditlog.DisconnectMongo(ctx, mongoClient); err != nil {
		log.Printf("⚠️ MongoDB 断开失败: %v", err)
	}
	if err := cache.CloseRedisClient(); err != nil {
		log.Printf("⚠️ Redis 关闭失败: %v", err)
	}
	log.Println("✅ 服务已退出")
}

func printWelcomeMessage() {
	log.Println(" ┌───────────────────────────────────────────────────────┐")
	log.Printf(" │   🚀  %s\n", consts.ApplicationName)
	log.Printf(" │   📦  版本 : %s\n", consts.ApplicationVersion)
	log.Printf(" │   🔥  服务端口 : %s\n", config.Get().Server.Port)
	log.Println(" └───────────────────────────────────────────────────────┘")
}

func checkSecurePath(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		log.Fatalf("❌ 路径解析失败: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("❌ 无法获取当前工作目录: %v", err)
	}

	// 检查是否直接指向项目根目录
	if absPath == cwd {
		log.Fatalf("❌ 安全配置错误: 上传目录 '%s' 不能设置为项目根目录！这会导致源代码泄露。", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err == nil && !strings.HasPrefix(rel, "..") {
		relSlash := filepath.ToSlash(rel)

		// 只有位于这些目录下的路径才被允许作为上传目录
		allowedDirs := []string{
			"uploads",
			"public",
			"static",
			"tmp",
		}

		isAllowed := false
		firstComponent := strings.Split(relSlash, "/")[0]
		for _, allowed := range allowedDirs {
			if strings.EqualFold(firstComponent, allowed) {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			log.Fatalf("❌ 安全配置错误: 上传目录 '%s' (解析为: '%s') 必须位于项目根目录下的安全子目录中 (如 %v)。", path, relSlash, allowedDirs)
		}
	}
}
