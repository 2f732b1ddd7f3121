package snapshot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"gigmatrix/internal/booking"
	"gigmatrix/internal/domain"
	"gigmatrix/internal/rules"
)

// GridLoader 从 .xlsx 工作簿读取可用性矩阵，每个表年一张工作表
type GridLoader struct {
	path        string
	sheetPrefix string
	logger      *zap.Logger
}

// NewGridLoader 创建矩阵读取器
func NewGridLoader(path, sheetPrefix string, logger *zap.Logger) *GridLoader {
	return &GridLoader{path: path, sheetPrefix: sheetPrefix, logger: logger}
}

var _ GridSource = (*GridLoader)(nil)

// SheetName 年份对应的工作表名
func (g *GridLoader) SheetName(year int) string {
	return g.sheetPrefix + strconv.Itoa(year)
}

// Load 读取一个表年的全部日期行
// 日期列无法解析的行记告警并跳过，不中断整表读取
func (g *GridLoader) Load(ctx context.Context, year int) (*MatrixSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	era, err := rules.ForYear(year)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(g.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", g.path, err)
	}
	defer f.Close()

	sheet := g.SheetName(year)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	snap := &MatrixSnapshot{Year: year, FetchedAt: time.Now()}
	for i, row := range rows {
		rowNum := i + 1
		raw := cellAt(row, era.DateColumn)
		date, ok := parseSheetDate(year, raw)
		if !ok {
			if trimmed := strings.TrimSpace(raw); trimmed != "" && !strings.EqualFold(trimmed, "Date") {
				snap.Warnings = append(snap.Warnings,
					fmt.Sprintf("row %d: unparseable date cell %q, skipped", rowNum, trimmed))
			}
			continue
		}

		day := MatrixDay{
			Date:    date,
			Row:     rowNum,
			Values:  make(map[domain.Resource]string, len(era.Columns)),
			Bold:    make(map[domain.Resource]bool, len(era.Columns)),
			Pending: cellAt(row, era.PendingColumn),
		}
		for r, col := range era.Columns {
			day.Values[r] = cellAt(row, col)
			day.Bold[r] = g.isBold(f, sheet, col, rowNum)
		}
		if era.HasHoldColumn() {
			day.Hold = cellAt(row, era.HoldColumn)
		}
		snap.Days = append(snap.Days, day)
	}
	snap.index()

	g.logger.Info("matrix snapshot loaded",
		zap.Int("year", year),
		zap.Int("days", len(snap.Days)),
		zap.Int("skipped", len(snap.Warnings)),
	)
	return snap, nil
}

// isBold 读取单元格字体加粗；样式读取失败按未加粗处理
func (g *GridLoader) isBold(f *excelize.File, sheet string, col, row int) bool {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil || style.Font == nil {
		return false
	}
	return style.Font.Bold
}

// cellAt 1 起始列号取值，行尾缺省单元格视为空
func cellAt(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return strings.TrimSpace(row[col-1])
}

// parseSheetDate 解析日期列文本 "Sat 2/21"。星期缩写仅作展示，不参与解析
func parseSheetDate(year int, raw string) (time.Time, bool) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) == 0 {
		return time.Time{}, false
	}
	md := strings.Split(fields[len(fields)-1], "/")
	if len(md) != 2 {
		return time.Time{}, false
	}
	month, err1 := strconv.Atoi(md[0])
	day, err2 := strconv.Atoi(md[1])
	if err1 != nil || err2 != nil {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date 会把 2/30 归一成 3/2，这里要求往返一致
	if int(date.Month()) != month || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

// GridWriter 将预订计划的单元格更新回写到工作簿
type GridWriter struct {
	path        string
	sheetPrefix string
	logger      *zap.Logger
}

// NewGridWriter 创建矩阵写入器
func NewGridWriter(path, sheetPrefix string, logger *zap.Logger) *GridWriter {
	return &GridWriter{path: path, sheetPrefix: sheetPrefix, logger: logger}
}

// Apply 应用计划中的全部单元格更新并保存
func (w *GridWriter) Apply(plan *booking.Plan) error {
	if plan == nil || len(plan.Updates) == 0 {
		return nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to open workbook %s: %w", w.path, err)
	}
	defer f.Close()

	sheet := w.sheetPrefix + strconv.Itoa(plan.Year)
	for _, u := range plan.Updates {
		axis, err := excelize.CoordinatesToCellName(u.Column, u.Row)
		if err != nil {
			return fmt.Errorf("bad cell coordinates (%d,%d): %w", u.Column, u.Row, err)
		}
		if err := f.SetCellValue(sheet, axis, u.Value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", axis, err)
		}
		w.logger.Info("matrix cell updated",
			zap.String("sheet", sheet),
			zap.String("cell", axis),
			zap.String("value", u.Value),
			zap.String("resource", string(u.Resource)),
		)
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
