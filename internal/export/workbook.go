// Package export writes an analysis report as an xlsx workbook.
package export

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"video-insights-go/internal/analysis"
)

const (
	SheetEmotions        = "Emotions"
	SheetScenes          = "Scenes"
	SheetRecommendations = "Recommendations"
	SheetWarnings        = "Warnings"
)

// WriteWorkbook saves rep to path with one sheet per section, rows in report order.
func WriteWorkbook(path string, rep analysis.Report, log *logrus.Entry) error {
	log = log.WithField("component", "export.workbook").WithField("path", path)

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetEmotions); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	emotions := [][]any{{"Emotion", "Count", "Percentage"}}
	for _, e := range rep.Emotions {
		emotions = append(emotions, []any{e.Emotion, e.Count, e.Percentage})
	}
	scenes := [][]any{{"Scene", "Videos", "Avg Engagement"}}
	for _, s := range rep.Scenes {
		scenes = append(scenes, []any{s.Scene, s.Count, s.AvgEngagement})
	}
	recs := [][]any{{"Title", "Priority", "Category", "Description"}}
	for _, r := range rep.Recommendations {
		recs = append(recs, []any{r.Title, string(r.Priority), r.Category, r.Description})
	}
	warnings := [][]any{{"Record", "Field", "Problem"}}
	for _, w := range rep.Warnings {
		warnings = append(warnings, []any{w.RecordID, w.Field, w.Message})
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetEmotions, emotions},
		{SheetScenes, scenes},
		{SheetRecommendations, recs},
		{SheetWarnings, warnings},
	}
	for _, s := range sheets {
		if s.name != SheetEmotions {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("add sheet %s: %w", s.name, err)
			}
		}
		if err := writeRows(f, s.name, s.rows, bold); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		log.WithField("error", err.Error()).Error("save failed")
		return fmt.Errorf("save workbook: %w", err)
	}
	log.WithFields(logrus.Fields{
		"emotions": len(rep.Emotions),
		"scenes":   len(rep.Scenes),
		"warnings": len(rep.Warnings),
	}).Info("report workbook written")
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
