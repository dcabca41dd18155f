package service

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/pfaraluce/jaracar-sub002/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 与 "email:"+email 双索引
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.users["email:"+email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListActiveResidents(_ context.Context) ([]model.User, error) {
	var result []model.User
	seen := make(map[string]bool)
	for key, u := range m.users {
		if key != u.UserID || seen[u.UserID] {
			continue
		}
		seen[u.UserID] = true
		if u.Role == "resident" && u.IsActive {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].UserID < result[j].UserID
	})
	return result, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "uid-" + user.Email
	}
	m.users[user.UserID] = user
	m.users["email:"+user.Email] = user
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	m.users["email:"+user.Email] = user
	return nil
}

// ── Mock OrderRepository ──

type mockOrderRepo struct {
	orders map[string]*model.MealOrder // key: "rid:date:meal"
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*model.MealOrder)}
}

func orderKey(residentID, date string, meal model.MealType) string {
	return fmt.Sprintf("%s:%s:%s", residentID, date, meal)
}

func (m *mockOrderRepo) GetByKey(_ context.Context, residentID, date string, meal model.MealType) (*model.MealOrder, error) {
	if o, ok := m.orders[orderKey(residentID, date, meal)]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) ListByResidentRange(_ context.Context, residentID, start, end string) ([]model.MealOrder, error) {
	var result []model.MealOrder
	for _, o := range m.orders {
		if o.ResidentID == residentID && start <= o.Date && o.Date <= end {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].MealType < result[j].MealType
	})
	return result, nil
}

func (m *mockOrderRepo) ListByDateMeal(_ context.Context, date string, meal model.MealType) ([]model.MealOrder, error) {
	var result []model.MealOrder
	for _, o := range m.orders {
		if o.Date == date && o.MealType == meal {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) ListByDate(_ context.Context, date string) ([]model.MealOrder, error) {
	var result []model.MealOrder
	for _, o := range m.orders {
		if o.Date == date {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) Upsert(_ context.Context, order *model.MealOrder) error {
	key := orderKey(order.ResidentID, order.Date, order.MealType)
	if order.OrderID == "" {
		if existing, ok := m.orders[key]; ok {
			order.OrderID = existing.OrderID
		} else {
			order.OrderID = "ord-" + key
		}
	}
	m.orders[key] = order
	return nil
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	tmpls map[string]*model.WeeklyTemplate // key: "rid:dow:meal"
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{tmpls: make(map[string]*model.WeeklyTemplate)}
}

func templateKey(residentID string, dayOfWeek int, meal model.MealType) string {
	return fmt.Sprintf("%s:%d:%s", residentID, dayOfWeek, meal)
}

func (m *mockTemplateRepo) GetByKey(_ context.Context, residentID string, dayOfWeek int, meal model.MealType) (*model.WeeklyTemplate, error) {
	if t, ok := m.tmpls[templateKey(residentID, dayOfWeek, meal)]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) ListByResident(_ context.Context, residentID string) ([]model.WeeklyTemplate, error) {
	var result []model.WeeklyTemplate
	for _, t := range m.tmpls {
		if t.ResidentID == residentID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].MealType < result[j].MealType
	})
	return result, nil
}

func (m *mockTemplateRepo) ListByDayMeal(_ context.Context, dayOfWeek int, meal model.MealType) ([]model.WeeklyTemplate, error) {
	var result []model.WeeklyTemplate
	for _, t := range m.tmpls {
		if t.DayOfWeek == dayOfWeek && t.MealType == meal {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTemplateRepo) ListByDay(_ context.Context, dayOfWeek int) ([]model.WeeklyTemplate, error) {
	var result []model.WeeklyTemplate
	for _, t := range m.tmpls {
		if t.DayOfWeek == dayOfWeek {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTemplateRepo) Upsert(_ context.Context, tmpl *model.WeeklyTemplate) error {
	m.tmpls[templateKey(tmpl.ResidentID, tmpl.DayOfWeek, tmpl.MealType)] = tmpl
	return nil
}

func (m *mockTemplateRepo) Delete(_ context.Context, residentID string, dayOfWeek int, meal model.MealType) error {
	delete(m.tmpls, templateKey(residentID, dayOfWeek, meal))
	return nil
}

// ── Mock AbsenceRepository ──

type mockAbsenceRepo struct {
	absences map[string]*model.Absence
	nextID   int
}

func newMockAbsenceRepo() *mockAbsenceRepo {
	return &mockAbsenceRepo{absences: make(map[string]*model.Absence)}
}

func (m *mockAbsenceRepo) GetByID(_ context.Context, id string) (*model.Absence, error) {
	if a, ok := m.absences[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAbsenceRepo) FindCovering(_ context.Context, residentID, date string) (*model.Absence, error) {
	for _, a := range m.absences {
		if a.ResidentID == residentID && a.Covers(date) {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAbsenceRepo) ListCoveringDate(_ context.Context, date string) ([]model.Absence, error) {
	var result []model.Absence
	for _, a := range m.absences {
		if a.Covers(date) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAbsenceRepo) ListByResidentRange(_ context.Context, residentID, start, end string) ([]model.Absence, error) {
	var result []model.Absence
	for _, a := range m.absences {
		if a.ResidentID == residentID && a.StartDate <= end && a.EndDate >= start {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate < result[j].StartDate
	})
	return result, nil
}

func (m *mockAbsenceRepo) Create(_ context.Context, absence *model.Absence) error {
	if absence.AbsenceID == "" {
		m.nextID++
		absence.AbsenceID = fmt.Sprintf("abs-%03d", m.nextID)
	}
	m.absences[absence.AbsenceID] = absence
	return nil
}

func (m *mockAbsenceRepo) Update(_ context.Context, absence *model.Absence) error {
	m.absences[absence.AbsenceID] = absence
	return nil
}

func (m *mockAbsenceRepo) Delete(_ context.Context, id string) error {
	delete(m.absences, id)
	return nil
}

// ── Mock GuestRepository ──

// 保留插入顺序，厨房汇总依赖稳定的展示序
type mockGuestRepo struct {
	entries []*model.GuestEntry
	nextID  int
}

func newMockGuestRepo() *mockGuestRepo {
	return &mockGuestRepo{}
}

func (m *mockGuestRepo) GetByID(_ context.Context, id string) (*model.GuestEntry, error) {
	for _, e := range m.entries {
		if e.GuestEntryID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGuestRepo) ListByDate(_ context.Context, date string) ([]model.GuestEntry, error) {
	var result []model.GuestEntry
	for _, e := range m.entries {
		if e.Date == date {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockGuestRepo) ListByDateMeal(_ context.Context, date string, meal model.MealType) ([]model.GuestEntry, error) {
	var result []model.GuestEntry
	for _, e := range m.entries {
		if e.Date == date && e.MealType == meal {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockGuestRepo) Create(_ context.Context, entry *model.GuestEntry) error {
	if entry.GuestEntryID == "" {
		m.nextID++
		entry.GuestEntryID = fmt.Sprintf("guest-%03d", m.nextID)
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockGuestRepo) Update(_ context.Context, entry *model.GuestEntry) error {
	for i, e := range m.entries {
		if e.GuestEntryID == entry.GuestEntryID {
			m.entries[i] = entry
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockGuestRepo) Delete(_ context.Context, id string) error {
	for i, e := range m.entries {
		if e.GuestEntryID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── Mock DailyLockRepository ──

type mockDailyLockRepo struct {
	locks     map[string]*model.DailyLock // key: "date:meal"
	upsertErr error                       // 注入写失败
	upserts   int
	dayGets   int
}

func newMockDailyLockRepo() *mockDailyLockRepo {
	return &mockDailyLockRepo{locks: make(map[string]*model.DailyLock)}
}

func lockKey(date string, meal model.MealType) string {
	return fmt.Sprintf("%s:%s", date, meal)
}

func (m *mockDailyLockRepo) Get(_ context.Context, date string, meal model.MealType) (*model.DailyLock, error) {
	if l, ok := m.locks[lockKey(date, meal)]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDailyLockRepo) GetDay(_ context.Context, date string) (map[model.MealType]*model.DailyLock, error) {
	m.dayGets++
	result := make(map[model.MealType]*model.DailyLock)
	for _, l := range m.locks {
		if l.Date == date {
			result[l.MealType] = l
		}
	}
	return result, nil
}

func (m *mockDailyLockRepo) Upsert(_ context.Context, lock *model.DailyLock) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	key := lockKey(lock.Date, lock.MealType)
	if lock.LockID == "" {
		lock.LockID = "lock-" + key
	}
	m.locks[key] = lock
	return nil
}

// ── Mock ScheduleConfigRepository ──

type mockScheduleConfigRepo struct {
	cfg       *model.MealScheduleConfig
	overrides map[string]*model.CutoffOverride // key: date
}

func newMockScheduleConfigRepo() *mockScheduleConfigRepo {
	return &mockScheduleConfigRepo{
		cfg: &model.MealScheduleConfig{
			Singleton:           true,
			WeekdaysCutoff:      "10:00",
			SaturdayCutoff:      "",
			SundayHolidayCutoff: "",
		},
		overrides: make(map[string]*model.CutoffOverride),
	}
}

func (m *mockScheduleConfigRepo) Get(_ context.Context) (*model.MealScheduleConfig, error) {
	if m.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.cfg, nil
}

func (m *mockScheduleConfigRepo) Update(_ context.Context, cfg *model.MealScheduleConfig) error {
	m.cfg = cfg
	return nil
}

func (m *mockScheduleConfigRepo) GetOverride(_ context.Context, date string) (*model.CutoffOverride, error) {
	if ov, ok := m.overrides[date]; ok {
		return ov, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleConfigRepo) ListOverrides(_ context.Context, start, end string) ([]model.CutoffOverride, error) {
	var result []model.CutoffOverride
	for _, ov := range m.overrides {
		if start <= ov.Date && ov.Date <= end {
			result = append(result, *ov)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *mockScheduleConfigRepo) UpsertOverride(_ context.Context, ov *model.CutoffOverride) error {
	m.overrides[ov.Date] = ov
	return nil
}

func (m *mockScheduleConfigRepo) DeleteOverride(_ context.Context, date string) error {
	delete(m.overrides, date)
	return nil
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday // key: date
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Exists(_ context.Context, date string) (bool, error) {
	_, ok := m.holidays[date]
	return ok, nil
}

func (m *mockHolidayRepo) List(_ context.Context, start, end string) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		if start <= h.Date && h.Date <= end {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *mockHolidayRepo) Upsert(_ context.Context, holiday *model.Holiday) error {
	m.holidays[holiday.Date] = holiday
	return nil
}

func (m *mockHolidayRepo) UpsertBatch(_ context.Context, holidays []model.Holiday) error {
	for i := range holidays {
		h := holidays[i]
		m.holidays[h.Date] = &h
	}
	return nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, date string) error {
	delete(m.holidays, date)
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
