package simple

import "time"

// User 简单的用户结构体，用于测试基本字段解析
type User struct {
	ID          int64
	Name, Email string
	PhoneNumber string `json:"phone_number"`
	Password    string `strunemix:"skip" json:"-"`
	CreatedAt   time.Time
}
