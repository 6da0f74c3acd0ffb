package dto

import "time"

type ApplicationCreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

type ApplicationResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ApplicationCreateResponse 比普通响应多一个 kafka_status，
// 表示本次创建事件是否成功发布到消息队列。
type ApplicationCreateResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	KafkaStatus bool      `json:"kafka_status"`
}

type DeleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
