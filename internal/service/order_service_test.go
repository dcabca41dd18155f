package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/pfaraluce/jaracar-sub002/internal/dto"
	"github.com/pfaraluce/jaracar-sub002/internal/model"
	"github.com/pfaraluce/jaracar-sub002/internal/repository"
)

// ── 测试辅助 ──

func setupTestOrderService(at string) (OrderService, *testMocks, *repository.Repository) {
	repo, m := newTestRepoSet()
	cutoff := fixedCutoff(repo, at)
	locks := NewLockService(repo, cutoff, zap.NewNop())
	svc := NewOrderService(repo, cutoff, locks, zap.NewNop())
	return svc, m, repo
}

func seedOrder(m *testMocks, residentID, date string, meal model.MealType, option model.MealOption) {
	m.order.orders[orderKey(residentID, date, meal)] = &model.MealOrder{
		OrderID:    "ord-" + orderKey(residentID, date, meal),
		ResidentID: residentID,
		Date:       date,
		MealType:   meal,
		Option:     option,
		Status:     model.OrderStatusConfirmed,
	}
}

func seedTemplate(m *testMocks, residentID string, dow int, meal model.MealType, option model.MealOption) {
	m.tmpl.tmpls[templateKey(residentID, dow, meal)] = &model.WeeklyTemplate{
		ResidentID: residentID,
		DayOfWeek:  dow,
		MealType:   meal,
		Option:     option,
	}
}

// ── resolvePlan：优先级 ──

func TestResolvePlan_ExplicitBeatsAbsence(t *testing.T) {
	order := &model.MealOrder{Option: model.OptionLate}
	plan := resolvePlan(order, true, &model.WeeklyTemplate{Option: model.OptionStandard})
	if plan.Source != SourceExplicit {
		t.Errorf("期望来源 explicit，实际=%s", plan.Source)
	}
	if plan.Option != model.OptionLate {
		t.Errorf("明确点餐应压过缺勤，实际=%s", plan.Option)
	}
}

func TestResolvePlan_AbsenceBeatsTemplate(t *testing.T) {
	plan := resolvePlan(nil, true, &model.WeeklyTemplate{Option: model.OptionStandard})
	if plan.Source != SourceAbsence {
		t.Errorf("期望来源 absence，实际=%s", plan.Source)
	}
	if plan.Option != model.OptionSkip {
		t.Errorf("缺勤应强制 skip，实际=%s", plan.Option)
	}
	if plan.IsPrepContainer {
		t.Error("缺勤不应带打包容器")
	}
}

func TestResolvePlan_TemplateWhenNothingElse(t *testing.T) {
	tmpl := &model.WeeklyTemplate{Option: model.OptionTupper, IsPrepContainer: true}
	plan := resolvePlan(nil, false, tmpl)
	if plan.Source != SourceTemplate {
		t.Errorf("期望来源 template，实际=%s", plan.Source)
	}
	if plan.Option != model.OptionTupper || !plan.IsPrepContainer {
		t.Errorf("模板的选项与容器标记应原样透传，实际=%s/%v", plan.Option, plan.IsPrepContainer)
	}
}

func TestResolvePlan_NoneTreatedAsSkip(t *testing.T) {
	plan := resolvePlan(nil, false, nil)
	if plan.Source != SourceNone {
		t.Errorf("期望来源 none，实际=%s", plan.Source)
	}
	if plan.EffectiveOption() != model.OptionSkip {
		t.Errorf("来源 none 的生效选项应为 skip，实际=%s", plan.EffectiveOption())
	}
}

// ── changeDecision：门限纯函数 ──

func TestChangeDecision_Table(t *testing.T) {
	cases := []struct {
		name          string
		meal          model.MealType
		intended      model.MealOption
		current       model.MealOption
		isPast        bool
		sameDayLocked bool
		prevDayLocked bool
		want          dto.ChangeDecision
	}{
		{
			name: "过去日期一律拒绝",
			meal: model.MealLunch, intended: model.OptionStandard, current: model.OptionSkip,
			isPast: true,
			want:   dto.ChangeDecision{},
		},
		{
			name: "普通选项看当日锁_开放",
			meal: model.MealLunch, intended: model.OptionLate, current: model.OptionStandard,
			want: dto.ChangeDecision{Allowed: true},
		},
		{
			name: "普通选项看当日锁_已锁",
			meal: model.MealLunch, intended: model.OptionLate, current: model.OptionStandard,
			sameDayLocked: true,
			want:          dto.ChangeDecision{},
		},
		{
			name: "制备意向看前日锁_前日已锁",
			meal: model.MealLunch, intended: model.OptionBag, current: model.OptionStandard,
			prevDayLocked: true,
			want:          dto.ChangeDecision{},
		},
		{
			name: "制备意向看前日锁_当日锁不拦",
			meal: model.MealLunch, intended: model.OptionTupper, current: model.OptionStandard,
			sameDayLocked: true, prevDayLocked: false,
			want: dto.ChangeDecision{Allowed: true},
		},
		{
			name: "早餐任何选项都看前日锁",
			meal: model.MealBreakfast, intended: model.OptionStandard, current: model.OptionSkip,
			sameDayLocked: true, prevDayLocked: false,
			want: dto.ChangeDecision{Allowed: true},
		},
		{
			name: "早餐前日已锁则拒绝",
			meal: model.MealBreakfast, intended: model.OptionSkip, current: model.OptionStandard,
			prevDayLocked: true,
			want:          dto.ChangeDecision{},
		},
		{
			name: "降级例外_tupper转standard当日已锁需确认",
			meal: model.MealLunch, intended: model.OptionStandard, current: model.OptionTupper,
			sameDayLocked: true, prevDayLocked: true,
			want: dto.ChangeDecision{Allowed: true, NeedsConfirm: true},
		},
		{
			name: "降级例外_bag转skip开放时免确认",
			meal: model.MealDinner, intended: model.OptionSkip, current: model.OptionBag,
			want: dto.ChangeDecision{Allowed: true},
		},
		{
			name: "tupper转bag不是降级_仍看前日锁",
			meal: model.MealLunch, intended: model.OptionBag, current: model.OptionTupper,
			prevDayLocked: true,
			want:          dto.ChangeDecision{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := changeDecision(tc.meal, tc.intended, tc.current, tc.isPast, tc.sameDayLocked, tc.prevDayLocked)
			if got != tc.want {
				t.Errorf("期望 %+v，实际 %+v", tc.want, got)
			}
		})
	}
}

// ── Resolve：仓储整合 ──

func TestResolve_TemplateByDayOfWeek(t *testing.T) {
	svc, m, _ := setupTestOrderService("2025-06-02 08:00")
	seedTemplate(m, "res-1", 1, model.MealLunch, model.OptionLate) // 周一午餐

	plan, err := svc.Resolve(context.Background(), "res-1", "2025-06-02", model.MealLunch)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if plan.Source != SourceTemplate || plan.Option != model.OptionLate {
		t.Errorf("周一应命中 dow=1 模板，实际=%s/%s", plan.Source, plan.Option)
	}

	// 周日（dow=7）不命中周一模板
	plan, err = svc.Resolve(context.Background(), "res-1", "2025-06-08", model.MealLunch)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if plan.Source != SourceNone {
		t.Errorf("周日无模板应返回 none，实际=%s", plan.Source)
	}
}

func TestResolve_AbsenceOverridesTemplate(t *testing.T) {
	svc, m, _ := setupTestOrderService("2025-06-02 08:00")
	seedTemplate(m, "res-1", 2, model.MealDinner, model.OptionStandard)
	m.absence.absences["abs-001"] = &model.Absence{
		AbsenceID: "abs-001", ResidentID: "res-1",
		StartDate: "2025-06-03", EndDate: "2025-06-05",
	}

	plan, err := svc.Resolve(context.Background(), "res-1", "2025-06-03", model.MealDinner)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if plan.Source != SourceAbsence || plan.Option != model.OptionSkip {
		t.Errorf("缺勤区间内应强制 skip，实际=%s/%s", plan.Source, plan.Option)
	}
}

func TestResolve_ExplicitOverridesAbsence(t *testing.T) {
	svc, m, _ := setupTestOrderService("2025-06-02 08:00")
	m.absence.absences["abs-001"] = &model.Absence{
		AbsenceID: "abs-001", ResidentID: "res-1",
		StartDate: "2025-06-03", EndDate: "2025-06-05",
	}
	seedOrder(m, "res-1", "2025-06-04", model.MealLunch, model.OptionStandard)

	plan, err := svc.Resolve(context.Background(), "res-1", "2025-06-04", model.MealLunch)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if plan.Source != SourceExplicit || plan.Option != model.OptionStandard {
		t.Errorf("缺勤区间内的明确点餐应生效，实际=%s/%s", plan.Source, plan.Option)
	}
}

// ── ChangeOrder ──

func TestChangeOrder_PastDateRejected(t *testing.T) {
	svc, _, _ := setupTestOrderService("2025-06-02 08:00")

	_, err := svc.ChangeOrder(context.Background(), "res-1", &dto.ChangeOrderRequest{
		Date: "2025-06-01", MealType: "lunch", Option: "standard",
	})
	if !errors.Is(err, ErrPastDate) {
		t.Errorf("期望 ErrPastDate，实际: %v", err)
	}
}

func TestChangeOrder_LockedRejected(t *testing.T) {
	// 11:00 > 工作日档 10:00，当天午餐已时间锁定
	svc, m, _ := setupTestOrderService("2025-06-02 11:00")

	_, err := svc.ChangeOrder(context.Background(), "res-1", &dto.ChangeOrderRequest{
		Date: "2025-06-02", MealType: "lunch", Option: "standard",
	})
	if !errors.Is(err, ErrOrderLocked) {
		t.Errorf("期望 ErrOrderLocked，实际: %v", err)
	}
	// 闸口判定顺带把当天已过期的时间锁落行
	row := m.lock.locks[lockKey("2025-06-02", model.MealLunch)]
	if row == nil || !row.IsLocked {
		t.Error("闸口检查后应物化当天锁行")
	}
}

func TestChangeOrder_TomorrowPrepRefusedAfterTodayCutoff(t *testing.T) {
	// 明天的 bag 看"今天"的锁；10:00 截止已过 ⇒ 拒绝
	svc, _, _ := setupTestOrderService("2025-06-02 11:00")

	_, err := svc.ChangeOrder(context.Background(), "res-1", &dto.ChangeOrderRequest{
		Date: "2025-06-03", MealType: "lunch", Option: "bag",
	})
	if !errors.Is(err, ErrOrderLocked) {
		t.Errorf("前日已截止的制备意向应拒绝，实际: %v", err)
	}
}

func TestChangeOrder_DowngradeNeedsConfirm(t *testing.T) {
	// 当前 tupper（前一天已制备）、当天已截止，改 standard 需确认
	svc, m, _ := setupTestOrderService("2025-06-02 11:00")
	seedOrder(m, "res-1", "2025-06-02", model.MealLunch, model.OptionTupper)

	req := &dto.ChangeOrderRequest{Date: "2025-06-02", MealType: "lunch", Option: "standard"}
	_, err := svc.ChangeOrder(context.Background(), "res-1", req)
	if !errors.Is(err, ErrConfirmRequired) {
		t.Fatalf("期望 ErrConfirmRequired，实际: %v", err)
	}

	req.Confirm = true
	resp, err := svc.ChangeOrder(context.Background(), "res-1", req)
	if err != nil {
		t.Fatalf("带确认的降级应成功: %v", err)
	}
	if resp.Option != "standard" || resp.Source != string(SourceExplicit) {
		t.Errorf("期望 standard/explicit，实际=%s/%s", resp.Option, resp.Source)
	}
}

func TestChangeOrder_Success(t *testing.T) {
	svc, m, _ := setupTestOrderService("2025-06-02 08:00")

	resp, err := svc.ChangeOrder(context.Background(), "res-1", &dto.ChangeOrderRequest{
		Date: "2025-06-02", MealType: "dinner", Option: "late",
	})
	if err != nil {
		t.Fatalf("ChangeOrder 应成功: %v", err)
	}
	if resp.Option != "late" {
		t.Errorf("期望 late，实际=%s", resp.Option)
	}

	stored, ok := m.order.orders[orderKey("res-1", "2025-06-02", model.MealDinner)]
	if !ok {
		t.Fatal("应写入明确点餐行")
	}
	if stored.Status != model.OrderStatusConfirmed {
		t.Errorf("期望状态 confirmed，实际=%s", stored.Status)
	}
}

func TestChangeOrder_UpsertReplacesExisting(t *testing.T) {
	svc, m, _ := setupTestOrderService("2025-06-02 08:00")
	seedOrder(m, "res-1", "2025-06-02", model.MealDinner, model.OptionStandard)

	_, err := svc.ChangeOrder(context.Background(), "res-1", &dto.ChangeOrderRequest{
		Date: "2025-06-02", MealType: "dinner", Option: "skip",
	})
	if err != nil {
		t.Fatalf("ChangeOrder 应成功: %v", err)
	}

	stored := m.order.orders[orderKey("res-1", "2025-06-02", model.MealDinner)]
	if stored.Option != model.OptionSkip {
		t.Errorf("同键点餐应被覆盖为 skip，实际=%s", stored.Option)
	}
}

// 容器标记的规整与模板路径一致：非制备选项不落容器标记
func TestChangeOrder_ContainerFlagOnlyForPrepOptions(t *testing.T) {
	svc, m, _ := setupTestOrderService("2025-06-02 08:00")

	resp, err := svc.ChangeOrder(context.Background(), "res-1", &dto.ChangeOrderRequest{
		Date: "2025-06-02", MealType: "lunch", Option: "standard", IsPrepContainer: true,
	})
	if err != nil {
		t.Fatalf("ChangeOrder 应成功: %v", err)
	}
	if resp.IsPrepContainer {
		t.Error("standard 选项不应保留容器标记")
	}
	if stored := m.order.orders[orderKey("res-1", "2025-06-02", model.MealLunch)]; stored.IsPrepContainer {
		t.Error("落库行不应带容器标记")
	}

	resp, err = svc.ChangeOrder(context.Background(), "res-1", &dto.ChangeOrderRequest{
		Date: "2025-06-03", MealType: "dinner", Option: "tupper", IsPrepContainer: true,
	})
	if err != nil {
		t.Fatalf("ChangeOrder 应成功: %v", err)
	}
	if !resp.IsPrepContainer {
		t.Error("tupper 选项应保留容器标记")
	}
}

// ── GetWeekPlan ──

func TestGetWeekPlan_SevenDaysThreeMeals(t *testing.T) {
	svc, m, _ := setupTestOrderService("2025-06-02 08:00")
	seedTemplate(m, "res-1", 1, model.MealLunch, model.OptionStandard)
	seedOrder(m, "res-1", "2025-06-04", model.MealDinner, model.OptionLate)

	resp, err := svc.GetWeekPlan(context.Background(), "res-1", "2025-06-02")
	if err != nil {
		t.Fatalf("GetWeekPlan 应成功: %v", err)
	}
	if len(resp.Days) != 7 {
		t.Fatalf("期望 7 天，实际=%d", len(resp.Days))
	}
	if resp.End != "2025-06-08" {
		t.Errorf("期望区间尾 2025-06-08，实际=%s", resp.End)
	}

	monday := resp.Days[0]
	if monday.DayOfWeek != 1 {
		t.Errorf("周一 dow 应为 1，实际=%d", monday.DayOfWeek)
	}
	if len(monday.Meals) != 3 {
		t.Fatalf("每天应有 3 餐，实际=%d", len(monday.Meals))
	}
	if monday.Meals[1].Option != "standard" || monday.Meals[1].Source != "template" {
		t.Errorf("周一午餐应来自模板，实际=%s/%s", monday.Meals[1].Option, monday.Meals[1].Source)
	}

	wednesday := resp.Days[2]
	if wednesday.Meals[2].Option != "late" || wednesday.Meals[2].Source != "explicit" {
		t.Errorf("周三晚餐应为明确点餐 late，实际=%s/%s", wednesday.Meals[2].Option, wednesday.Meals[2].Source)
	}
}

func TestGetWeekPlan_ChoicesReflectLocks(t *testing.T) {
	// 11:00 已过工作日截止：当天午餐普通选项不可改，降级例外仍可（需确认）
	svc, m, _ := setupTestOrderService("2025-06-02 11:00")
	seedOrder(m, "res-1", "2025-06-02", model.MealLunch, model.OptionTupper)

	resp, err := svc.GetWeekPlan(context.Background(), "res-1", "2025-06-02")
	if err != nil {
		t.Fatalf("GetWeekPlan 应成功: %v", err)
	}

	lunch := resp.Days[0].Meals[1]
	byOption := make(map[string]dto.ChoiceState)
	for _, c := range lunch.Choices {
		byOption[c.Option] = c
	}

	if byOption["standard"].Allowed != true || byOption["standard"].NeedsConfirm != true {
		t.Errorf("tupper→standard 应放行但需确认，实际=%+v", byOption["standard"])
	}
	if byOption["bag"].Allowed {
		t.Error("tupper→bag 前日已过截止，应拒绝")
	}
}

// [自证通过] internal/service/order_service_test.go
