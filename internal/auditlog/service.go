package auditlog

import (
	"context"
	"time"

	"applications-server/internal/config"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// EndpointCallRecorder 记录"某端点被谁调用"这一事实。
// 只写不读，失败由调用方记录日志后吞掉，绝不影响主操作。
type EndpointCallRecorder interface {
	LogEndpointCall(ctx context.Context, endpoint string, userID *uuid.UUID) error
}

// UserLog 是写入审计集合的文档结构。
type UserLog struct {
	UserID    *string   `bson:"user_id"`
	Timestamp time.Time `bson:"timestamp"`
	Endpoint  string    `bson:"endpoint"`
}

type UserLogService struct {
	collection *mongo.Collection
}

func NewUserLogService(client *mongo.Client) *UserLogService {
	cfg := config.Get().Mongo
	return &UserLogService{
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}
}

func (s *UserLogService) LogEndpointCall(ctx context.Context, endpoint string, userID *uuid.UUID) error {
	var uid *string
	if userID != nil {
		v := userID.String()
		uid = &v
	}

	_, err := s.collection.InsertOne(ctx, UserLog{
		UserID:    uid,
		Timestamp: time.Now().UTC(),
		Endpoint:  endpoint,
	})
	return err
}
