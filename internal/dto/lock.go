package dto

// ── 管理员日锁 DTO ──

// SetLockRequest 管理员锁定/重开某日某餐请求
type SetLockRequest struct {
	Date     string `json:"date"      binding:"required,datetime=2006-01-02"`
	MealType string `json:"meal_type" binding:"required,oneof=breakfast lunch dinner"`
	IsLocked *bool  `json:"is_locked" binding:"required"`
}

// MealLockState 某餐的锁定状态
type MealLockState struct {
	MealType   string `json:"meal_type"`
	IsLocked   bool   `json:"is_locked"`
	TimeLocked bool   `json:"time_locked"` // 仅时间截止导致的锁定（虚拟态）
	LockedAt   string `json:"locked_at,omitempty"`
	LockedBy   string `json:"locked_by,omitempty"`
}

// DayLocksResponse 某日三餐锁定状态响应
type DayLocksResponse struct {
	Date  string          `json:"date"`
	Meals []MealLockState `json:"meals"`
}
