package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/sleep-journal/internal/analytics"
	"github.com/blaisecz/sleep-journal/internal/domain"
	"github.com/blaisecz/sleep-journal/internal/repository"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	recordsSheet = "Records"
	stagesSheet  = "Stages"
	summarySheet = "Summary"

	exportTimeLayout = "2006-01-02 15:04"
)

var (
	recordsHeader = []string{"Date", "Bedtime", "Wake time", "Duration", "Hours", "Score", "Quality", "Source", "Synthetic", "Respiratory rate", "Timezone"}
	stagesHeader  = []string{"Night", "Stage", "Start", "End", "Minutes"}
)

// Export is a generated workbook.
type Export struct {
	Filename string
	Content  []byte
}

// ExportService renders a user's records as an xlsx workbook.
type ExportService interface {
	Export(ctx context.Context, userID uuid.UUID, period analytics.Period) (*Export, error)
}

type exportService struct {
	userRepo  repository.UserRepository
	summaries SummaryService
	now       func() time.Time
}

func NewExportService(userRepo repository.UserRepository, summaries SummaryService) ExportService {
	return &exportService{
		userRepo:  userRepo,
		summaries: summaries,
		now:       time.Now,
	}
}

func (s *exportService) Export(ctx context.Context, userID uuid.UUID, period analytics.Period) (*Export, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, records, err := s.summaries.Compute(ctx, user, period)
	if err != nil {
		return nil, err
	}

	content, err := buildWorkbook(records, summary)
	if err != nil {
		return nil, err
	}

	return &Export{
		Filename: fmt.Sprintf("sleep-journal-%s-%s.xlsx", period, s.now().In(user.Location()).Format("20060102")),
		Content:  content,
	}, nil
}

func buildWorkbook(records []domain.SleepRecord, summary analytics.Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet is renamed rather than deleted so the workbook is never empty
	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(stagesSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeRow(f, recordsSheet, 1, toCells(recordsHeader), headerStyle); err != nil {
		return nil, err
	}
	if err := writeRow(f, stagesSheet, 1, toCells(stagesHeader), headerStyle); err != nil {
		return nil, err
	}

	stageRow := 2
	for i := range records {
		r := records[i].Snapshot(nil)
		start, end := r.Interval.Start, r.Interval.End
		band := analytics.BandFor(r.Score)
		row := []any{
			start.Format("2006-01-02"),
			start.Format("15:04"),
			end.Format("15:04"),
			analytics.FormatDuration(r.Interval.Duration()),
			roundHours(r.Interval.Duration()),
			r.Score,
			band.Label,
			string(records[i].Source),
			yesNo(records[i].Synthetic),
			r.RespiratoryRate,
			start.Location().String(),
		}
		if err := writeRow(f, recordsSheet, i+2, row, 0); err != nil {
			return nil, err
		}

		for _, seg := range r.Stages {
			stage := []any{
				start.Format("2006-01-02"),
				string(seg.Stage),
				seg.Start.Format(exportTimeLayout),
				seg.End.Format(exportTimeLayout),
				int(seg.Duration() / time.Minute),
			}
			if err := writeRow(f, stagesSheet, stageRow, stage, 0); err != nil {
				return nil, err
			}
			stageRow++
		}
	}

	if err := writeSummary(f, summary, headerStyle); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(recordsSheet, "A", "K", 16); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(stagesSheet, "A", "E", 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, s analytics.Summary, headerStyle int) error {
	rows := [][]any{
		{"Period", string(s.Period)},
		{"Nights", s.Nights},
		{"Average score", analytics.Placeholder},
		{"Average duration", analytics.Placeholder},
		{"Typical bedtime", analytics.FormatTimeOfDay(s.AverageBedtime)},
		{"Typical wake time", analytics.FormatTimeOfDay(s.AverageWakeTime)},
	}
	if !s.Empty {
		rows[2][1] = analytics.QualityLabel(s.AverageScore)
		rows[3][1] = analytics.FormatDuration(s.AverageDuration)
	}
	for _, stage := range analytics.AllStages {
		rows = append(rows, []any{"Total " + string(stage), analytics.FormatDuration(s.StageTotals[stage])})
	}

	for i, row := range rows {
		if err := writeRow(f, summarySheet, i+1, row, 0); err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellStyle(summarySheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set summary style: %w", err)
		}
	}
	return f.SetColWidth(summarySheet, "A", "B", 22)
}

// writeRow writes values starting at column A. A zero style leaves cells
// unstyled.
func writeRow(f *excelize.File, sheet string, row int, values []any, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, first, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	if style == 0 {
		return nil
	}

	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return fmt.Errorf("convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("style %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func roundHours(d time.Duration) float64 {
	return float64(int(d.Hours()*100+0.5)) / 100
}
