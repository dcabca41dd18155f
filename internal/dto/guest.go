package dto

// ── 访客登记模块 DTO ──

// CreateGuestRequest 登记访客用餐请求
type CreateGuestRequest struct {
	Date            string `json:"date"              binding:"required,datetime=2006-01-02"`
	MealType        string `json:"meal_type"         binding:"required,oneof=breakfast lunch dinner"`
	Count           int    `json:"count"             binding:"required,min=1"`
	Option          string `json:"option"            binding:"omitempty,oneof=standard skip early late tupper bag"`
	IsPrepContainer bool   `json:"is_prep_container"`
	Notes           string `json:"notes"             binding:"omitempty,max=500"`
}

// UpdateGuestRequest 更新访客用餐登记请求
type UpdateGuestRequest struct {
	Count           *int    `json:"count"             binding:"omitempty,min=1"`
	Option          *string `json:"option"            binding:"omitempty,oneof=standard skip early late tupper bag"`
	IsPrepContainer *bool   `json:"is_prep_container"`
	Notes           *string `json:"notes"             binding:"omitempty,max=500"`
}

// GuestResponse 访客用餐登记响应
type GuestResponse struct {
	GuestEntryID    string `json:"guest_entry_id"`
	Date            string `json:"date"`
	MealType        string `json:"meal_type"`
	Count           int    `json:"count"`
	Option          string `json:"option"`
	IsPrepContainer bool   `json:"is_prep_container"`
	Notes           string `json:"notes,omitempty"`
}
