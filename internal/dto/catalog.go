package dto

// ── 目录配置模块 DTO ──

// UpdateScheduleConfigRequest 更新截止时刻配置请求（HH:MM，空串=无截止）
type UpdateScheduleConfigRequest struct {
	WeekdaysCutoff      *string `json:"weekdays_cutoff"       binding:"omitempty,len=0|datetime=15:04"`
	SaturdayCutoff      *string `json:"saturday_cutoff"       binding:"omitempty,len=0|datetime=15:04"`
	SundayHolidayCutoff *string `json:"sunday_holiday_cutoff" binding:"omitempty,len=0|datetime=15:04"`
}

// ScheduleConfigResponse 截止时刻配置响应
type ScheduleConfigResponse struct {
	WeekdaysCutoff      string `json:"weekdays_cutoff"`
	SaturdayCutoff      string `json:"saturday_cutoff"`
	SundayHolidayCutoff string `json:"sunday_holiday_cutoff"`
	UpdatedAt           string `json:"updated_at"`
}

// UpsertOverrideRequest 写入单日例外截止请求
type UpsertOverrideRequest struct {
	Date   string `json:"date"   binding:"required,datetime=2006-01-02"`
	Cutoff string `json:"cutoff" binding:"omitempty,datetime=15:04"`
}

// OverrideResponse 单日例外截止响应
type OverrideResponse struct {
	Date   string `json:"date"`
	Cutoff string `json:"cutoff"`
}

// CreateHolidayRequest 登记节假日请求
type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// HolidayResponse 节假日响应
type HolidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// ImportHolidaysResponse 节假日 ICS 导入响应
type ImportHolidaysResponse struct {
	ImportedCount int               `json:"imported_count"`
	Holidays      []HolidayResponse `json:"holidays"`
}
