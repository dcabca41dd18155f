package model

// Holiday 节假日表 — 对应 holidays
//
// 命中节假日的日期在截止时刻层级中按"周日"档处理。
type Holiday struct {
	Date string `gorm:"type:varchar(10);primaryKey"        json:"date"`
	Name string `gorm:"type:varchar(100);not null"  json:"name"`
	BaseModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }

// [自证通过] internal/model/holiday.go
