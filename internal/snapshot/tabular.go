package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/daybook-app/daybook/internal/common"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/report"
	"github.com/daybook-app/daybook/internal/service"
)

// Column headers of the tabular form. 日期 (date) and 金额 (amount) are
// mandatory on import; the others fall back per field.
const (
	colDate     = "日期"
	colTitle    = "标题"
	colCategory = "分类"
	colAmount   = "金额"
	colRecorded = "记录时间"

	summaryMarker = "汇总"
	summaryTotal  = "总计"
	worksheetName = "消费明细"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ExportTabular writes a SpreadsheetML workbook covering expenses in the
// inclusive [start, end] date range: one detail row per expense ascending
// by timestamp, then per-day summary rows and a grand total.
func (s *Service) ExportTabular(ctx context.Context, w io.Writer, start, end time.Time) error {
	windowStart := report.StartOfDay(start)
	windowEnd := report.EndOfDay(end)
	if windowStart.After(windowEnd) {
		return fmt.Errorf("%w: export range start is after end", common.ErrValidation)
	}

	expenses, err := s.store.ListExpenses(ctx, service.ExpenseFilter{Start: &windowStart, End: &windowEnd})
	if err != nil {
		return fmt.Errorf("listing expenses: %w", err)
	}
	if len(expenses) == 0 {
		return fmt.Errorf("%w: no expenses in the selected range", common.ErrValidation)
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Timestamp.Before(expenses[j].Timestamp)
	})

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	workbook := doc.CreateElement("Workbook")
	workbook.CreateAttr("xmlns", "urn:schemas-microsoft-com:office:spreadsheet")
	workbook.CreateAttr("xmlns:o", "urn:schemas-microsoft-com:office:office")
	workbook.CreateAttr("xmlns:x", "urn:schemas-microsoft-com:office:excel")
	workbook.CreateAttr("xmlns:ss", "urn:schemas-microsoft-com:office:spreadsheet")

	worksheet := workbook.CreateElement("Worksheet")
	worksheet.CreateAttr("ss:Name", worksheetName)
	table := worksheet.CreateElement("Table")

	addStringRow(table, colDate, colTitle, colCategory, colAmount, colRecorded)

	type dayTotal struct {
		total float64
		count int
	}
	dailyTotals := make(map[string]*dayTotal)
	for _, e := range expenses {
		row := table.CreateElement("Row")
		addCell(row, "String", report.DayKey(e.Timestamp))
		addCell(row, "String", e.Title)
		addCell(row, "String", e.Category)
		addCell(row, "Number", formatAmount(e.Amount))
		addCell(row, "String", e.Timestamp.Format("2006-01-02 15:04:05"))

		key := report.DayKey(e.Timestamp)
		if dailyTotals[key] == nil {
			dailyTotals[key] = &dayTotal{}
		}
		dailyTotals[key].total += e.Amount
		dailyTotals[key].count++
	}

	table.CreateElement("Row") // separator

	addStringRow(table, summaryMarker, colDate, "条目", colAmount, "")

	days := make([]string, 0, len(dailyTotals))
	for key := range dailyTotals {
		days = append(days, key)
	}
	sort.Strings(days)

	var grandTotal float64
	for _, key := range days {
		info := dailyTotals[key]
		grandTotal += info.total
		row := table.CreateElement("Row")
		addCell(row, "String", summaryMarker)
		addCell(row, "String", key)
		addCell(row, "String", fmt.Sprintf("%d 条", info.count))
		addCell(row, "Number", formatAmount(info.total))
		addCell(row, "String", "")
	}

	row := table.CreateElement("Row")
	addCell(row, "String", summaryMarker)
	addCell(row, "String", summaryTotal)
	addCell(row, "String", fmt.Sprintf("%d 条", len(expenses)))
	addCell(row, "Number", formatAmount(grandTotal))
	addCell(row, "String", "")

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func addStringRow(table *etree.Element, values ...string) {
	row := table.CreateElement("Row")
	for _, v := range values {
		addCell(row, "String", v)
	}
}

func addCell(row *etree.Element, cellType, value string) {
	data := row.CreateElement("Cell").CreateElement("Data")
	data.CreateAttr("ss:Type", cellType)
	data.SetText(value)
}

// formatAmount renders a 2dp-rounded amount without trailing zeros.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(model.RoundAmount(amount), 'f', -1, 64)
}

// ImportTabular parses a SpreadsheetML workbook previously produced by
// ExportTabular and applies its expense rows under the selected merge
// policy. Rows with a bad date or non-positive amount are skipped, not
// fatal. The optional progress callback receives (parsed, total) counts.
func (s *Service) ImportTabular(ctx context.Context, r io.Reader, policy MergePolicy, progress func(done, total int)) (ImportResult, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", common.ErrBadFormat, err)
	}

	rows := doc.FindElements("//Row")
	if len(rows) <= 1 {
		return ImportResult{}, fmt.Errorf("%w: workbook has no data rows", common.ErrValidation)
	}

	columnIndex := make(map[string]int)
	for i, cell := range rows[0].FindElements("Cell") {
		if name := strings.TrimSpace(cellText(cell)); name != "" {
			columnIndex[name] = i
		}
	}
	if _, ok := columnIndex[colDate]; !ok {
		return ImportResult{}, fmt.Errorf("%w: missing required column %s", common.ErrValidation, colDate)
	}
	if _, ok := columnIndex[colAmount]; !ok {
		return ImportResult{}, fmt.Errorf("%w: missing required column %s", common.ErrValidation, colAmount)
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("loading categories: %w", err)
	}
	firstCategory := model.DefaultCategories()[0].Name
	registered := make(map[string]bool, len(categories))
	for i, cat := range categories {
		if i == 0 {
			firstCategory = cat.Name
		}
		registered[cat.Name] = true
	}

	type parsedRow struct {
		date     string
		title    string
		category string
		amount   float64
	}

	var parsed []parsedRow
	var skipped int
	total := len(rows) - 1
	for i := 1; i < len(rows); i++ {
		cells := rows[i].FindElements("Cell")
		getValue := func(header string) string {
			idx, ok := columnIndex[header]
			if !ok || idx >= len(cells) {
				return ""
			}
			return cellText(cells[idx])
		}

		if progress != nil {
			progress(i, total)
		}

		date := strings.TrimSpace(getValue(colDate))
		if !isoDatePattern.MatchString(date) {
			skipped++
			continue
		}
		amount := parseLooseAmount(getValue(colAmount))
		if amount <= 0 {
			skipped++
			continue
		}
		title := strings.TrimSpace(getValue(colTitle))
		if title == "" {
			title = model.DefaultTitle
		}
		parsed = append(parsed, parsedRow{
			date:     date,
			title:    title,
			category: strings.TrimSpace(getValue(colCategory)),
			amount:   model.RoundAmount(amount),
		})
	}
	if len(parsed) == 0 {
		return ImportResult{}, fmt.Errorf("%w: no valid expense rows found", common.ErrValidation)
	}

	// Synthesize distinct, sorted timestamps within each day: noon plus an
	// ordinal minute and millisecond per row, preserving file order.
	ordinals := make(map[string]int)
	expenses := make([]model.Expense, 0, len(parsed))
	for _, row := range parsed {
		day, err := time.ParseInLocation("2006-01-02", row.date, time.Local)
		if err != nil {
			skipped++
			continue
		}
		idx := ordinals[row.date]
		ordinals[row.date]++

		category := row.category
		if !registered[category] {
			category = firstCategory
		}
		expenses = append(expenses, model.Expense{
			ID:        model.NewID(),
			Title:     row.title,
			Amount:    row.amount,
			Category:  category,
			Timestamp: day.Add(12*time.Hour + time.Duration(idx)*time.Minute + time.Duration(idx)*time.Millisecond),
		})
	}

	if err := s.applyExpenses(ctx, expenses, policy); err != nil {
		return ImportResult{}, err
	}

	slog.Info("imported tabular workbook",
		"rows", len(expenses), "days", len(ordinals), "skipped", skipped, "policy", string(policy))
	return ImportResult{Imported: len(expenses), Days: len(ordinals), Skipped: skipped}, nil
}

func cellText(cell *etree.Element) string {
	if data := cell.FindElement("Data"); data != nil {
		return data.Text()
	}
	return ""
}

// parseLooseAmount mirrors the permissive form parser: every character
// except digits, dot, and minus is stripped before parsing.
func parseLooseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}
