package dto

// ── 点餐模块 DTO ──

// ChangeOrderRequest 变更单日点餐请求
type ChangeOrderRequest struct {
	Date            string  `json:"date"              binding:"required,datetime=2006-01-02"`
	MealType        string  `json:"meal_type"         binding:"required,oneof=breakfast lunch dinner"`
	Option          string  `json:"option"            binding:"required,oneof=standard skip early late tupper bag"`
	IsPrepContainer bool    `json:"is_prep_container"`
	PrepTime        *string `json:"prep_time"         binding:"omitempty,datetime=15:04"`
	Confirm         bool    `json:"confirm"` // 放弃已制备餐食时需显式确认
}

// ChangeDecision 变更门限裁决结果
type ChangeDecision struct {
	Allowed      bool `json:"allowed"`
	NeedsConfirm bool `json:"needs_confirm"`
}

// ChoiceState 单个候选选项的可选状态
type ChoiceState struct {
	Option       string `json:"option"`
	Allowed      bool   `json:"allowed"`
	NeedsConfirm bool   `json:"needs_confirm,omitempty"`
}

// MealCell 周视图中一格（某日某餐）
type MealCell struct {
	MealType        string        `json:"meal_type"`
	Option          string        `json:"option"`
	Source          string        `json:"source"`
	IsPrepContainer bool          `json:"is_prep_container"`
	PrepTime        string        `json:"prep_time,omitempty"`
	Choices         []ChoiceState `json:"choices"`
}

// DayPlan 周视图中一天
type DayPlan struct {
	Date      string     `json:"date"`
	DayOfWeek int        `json:"day_of_week"` // 1(周一)–7(周日)
	Meals     []MealCell `json:"meals"`
}

// WeekPlanResponse 住户周视图响应
type WeekPlanResponse struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	Days  []DayPlan `json:"days"`
}

// OrderResponse 单日点餐响应
type OrderResponse struct {
	Date            string `json:"date"`
	MealType        string `json:"meal_type"`
	Option          string `json:"option"`
	IsPrepContainer bool   `json:"is_prep_container"`
	PrepTime        string `json:"prep_time,omitempty"`
	Source          string `json:"source"`
}

// ── 周模板 DTO ──

// UpsertTemplateRequest 写入周模板请求
type UpsertTemplateRequest struct {
	DayOfWeek       int    `json:"day_of_week"       binding:"required,min=1,max=7"`
	MealType        string `json:"meal_type"         binding:"required,oneof=breakfast lunch dinner"`
	Option          string `json:"option"            binding:"required,oneof=standard skip early late tupper bag"`
	IsPrepContainer bool   `json:"is_prep_container"`
}

// TemplateResponse 周模板响应
type TemplateResponse struct {
	DayOfWeek       int    `json:"day_of_week"`
	MealType        string `json:"meal_type"`
	Option          string `json:"option"`
	IsPrepContainer bool   `json:"is_prep_container"`
}

// ── 缺勤 DTO ──

// CreateAbsenceRequest 登记缺勤区间请求
type CreateAbsenceRequest struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason"     binding:"omitempty,max=200"`
}

// AbsenceResponse 缺勤区间响应
type AbsenceResponse struct {
	AbsenceID string `json:"absence_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
}
