// Package export writes community posts and notebook entries as JSON or
// spreadsheet files.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
)

const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"

	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type PostsFile struct {
	Version int          `json:"version"`
	Posts   []model.Post `json:"posts"`
}

func PostsJSON(w io.Writer, posts []model.Post) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(PostsFile{Version: 1, Posts: posts}); err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	return nil
}

func PostsXLSX(w io.Writer, posts []model.Post) error {
	rows := make([][]any, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []any{p.ID, p.Category, p.Timestamp, p.Content})
	}
	return writeSheet(w, "Posts", []string{"ID", "Category", "Timestamp", "Content"}, []float64{8, 14, 18, 80}, rows)
}

func NotebookXLSX(w io.Writer, entries []model.NotebookEntry) error {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.Timestamp, e.Content})
	}
	return writeSheet(w, "Notebook", []string{"Timestamp", "Content"}, []float64{18, 80}, rows)
}

func writeSheet(w io.Writer, sheetName string, headers []string, widths []float64, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("create wrap style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("convert column number: %w", err)
		}
		if col < len(widths) {
			if err := f.SetColWidth(sheetName, name, name, widths[col]); err != nil {
				return fmt.Errorf("set column width: %w", err)
			}
		}
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	if len(rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(headers), len(rows)+1)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellStyle(sheetName, "A2", last, wrapStyle); err != nil {
			return fmt.Errorf("set body style: %w", err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header row: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
