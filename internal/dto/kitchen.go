package dto

// ── 厨房汇总 DTO ──

// KitchenEntry 厨房清单中的一条（住户或访客）
type KitchenEntry struct {
	Kind            string `json:"kind"` // resident | guest
	Name            string `json:"name"`
	ResidentID      string `json:"resident_id,omitempty"`
	Option          string `json:"option"`
	IsPrepContainer bool   `json:"is_prep_container"`
	Count           int    `json:"count"`
	Notes           string `json:"notes,omitempty"`
	Source          string `json:"source,omitempty"`
	// AlreadyPrepared 标记"归入 no 桶但前一天已制备"的条目，
	// 供界面标注"已按 X 备好"而不是"不出席"
	AlreadyPrepared bool `json:"already_prepared,omitempty"`
}

// ServiceBucket 当日出餐分组
type ServiceBucket struct {
	Key     string         `json:"key"` // standard | early | late | no
	Total   int            `json:"total"`
	Entries []KitchenEntry `json:"entries"`
}

// ServiceGroupResponse 当日出餐分组响应
type ServiceGroupResponse struct {
	Date     string          `json:"date"`
	MealType string          `json:"meal_type"`
	Buckets  []ServiceBucket `json:"buckets"`
}

// PrepPartition 次日制备分区
type PrepPartition struct {
	Total   int            `json:"total"`
	Entries []KitchenEntry `json:"entries"`
}

// PrepResponse 次日制备清单响应
type PrepResponse struct {
	Date           string        `json:"date"`     // 查询基准日
	PrepFor        string        `json:"prep_for"` // 被制备的服务日（基准日+1）
	EarlyBreakfast PrepPartition `json:"early_breakfast"`
	Tupper         PrepPartition `json:"tupper"`
	Bag            PrepPartition `json:"bag"`
}
