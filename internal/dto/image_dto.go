package dto

import "time"

type ImageResponse struct {
	ID         uint      `json:"id"`
	Filename   string    `json:"filename"`
	Size       float64   `json:"size"`
	UploadDate time.Time `json:"upload_date"`
}

type ImageCreateResponse struct {
	ID          uint      `json:"id"`
	Filename    string    `json:"filename"`
	Size        float64   `json:"size"`
	UploadDate  time.Time `json:"upload_date"`
	KafkaStatus bool      `json:"kafka_status"`
}
