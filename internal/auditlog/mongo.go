package auditlog

import (
	"context"
	"fmt"
	"log"
	"time"

	"applications-server/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectionTimeout = 20 * time.Second

// NewMongoClient 连接审计库并确认可达。审计是旁路能力，
// 调用方可以在连接失败时选择降级而不是退出。
func NewMongoClient(ctx context.Context) (*mongo.Client, error) {
	cfg := config.Get().Mongo
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb URI 未配置")
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(connectionTimeout).
		SetConnectTimeout(connectionTimeout)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("连接 MongoDB 失败: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, connectionTimeout)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB 失败: %w", err)
	}

	log.Printf("✅ MongoDB 已连接: %s", cfg.Database)
	return client, nil
}

func DisconnectMongo(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}

	disconnectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Disconnect(disconnectCtx); err != nil {
		return fmt.Errorf("断开 MongoDB 失败: %w", err)
	}

	log.Println("✅ MongoDB 已断开")
	return nil
}
