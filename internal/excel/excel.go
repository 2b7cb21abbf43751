package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Wawaguigui/MatchPlanner/internal/config"
	"github.com/Wawaguigui/MatchPlanner/internal/roster"
	"github.com/Wawaguigui/MatchPlanner/internal/schedule"
)

// Generate creates an Excel workbook with the tour schedule and a player
// summary sheet.
func Generate(cfg config.Tournament, selected []roster.Player, tours []schedule.Tour) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetDefaultFont("Arial")

	if err := writeScheduleSheet(f, cfg, selected, tours); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}

	if err := writePlayersSheet(f, selected, tours); err != nil {
		return nil, fmt.Errorf("writing players sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeScheduleSheet(f *excelize.File, cfg config.Tournament, selected []roster.Player, tours []schedule.Tour) error {
	sheet := "Schedule"
	f.NewSheet(sheet)

	headers := []string{"Tour", "Start", "End", "Court", "Team 1", "Score", "Score", "Team 2", "Bench"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
		}
	}

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Family: "Arial"},
	})
	emptyTourStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Family: "Arial", Italic: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
	})

	row := 2
	for _, t := range tours {
		bench := strings.Join(t.Bench(selected), ", ")

		if len(t.Matches) == 0 {
			f.SetCellValue(sheet, cellRef(1, row), t.Number)
			f.SetCellValue(sheet, cellRef(2, row), t.StartLabel)
			f.SetCellValue(sheet, cellRef(3, row), t.EndLabel)
			f.SetCellValue(sheet, cellRef(5, row), "no matches")
			f.SetCellValue(sheet, cellRef(9, row), bench)
			if emptyTourStyle != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), emptyTourStyle)
			}
			row++
			continue
		}

		for i, m := range t.Matches {
			f.SetCellValue(sheet, cellRef(1, row), t.Number)
			f.SetCellValue(sheet, cellRef(2, row), t.StartLabel)
			f.SetCellValue(sheet, cellRef(3, row), t.EndLabel)
			f.SetCellValue(sheet, cellRef(4, row), m.Court)
			f.SetCellValue(sheet, cellRef(5, row), strings.Join(m.Team1, ", "))
			if m.ScoreTeam1 != nil {
				f.SetCellValue(sheet, cellRef(6, row), *m.ScoreTeam1)
			}
			if m.ScoreTeam2 != nil {
				f.SetCellValue(sheet, cellRef(7, row), *m.ScoreTeam2)
			}
			f.SetCellValue(sheet, cellRef(8, row), strings.Join(m.Team2, ", "))
			if i == 0 {
				f.SetCellValue(sheet, cellRef(9, row), bench)
			}
			if cellStyle != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), cellStyle)
			}
			row++
		}
	}

	widths := map[string]float64{"A": 7, "B": 9, "C": 9, "D": 8, "E": 34, "F": 8, "G": 8, "H": 34, "I": 40}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	return nil
}

func writePlayersSheet(f *excelize.File, selected []roster.Player, tours []schedule.Tour) error {
	sheet := "Players"
	f.NewSheet(sheet)

	headers := []string{"Id", "Name", "Level", "Tours Played"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		for i := range headers {
			f.SetCellStyle(sheet, cellRef(i+1, 1), cellRef(i+1, 1), headerStyle)
		}
	}

	played := make(map[string]int)
	for _, t := range tours {
		for _, p := range t.PlayersPlayed {
			played[p.ID]++
		}
	}

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 14, Family: "Arial"},
	})

	for i, p := range selected {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), p.ID)
		f.SetCellValue(sheet, cellRef(2, row), p.Name)
		f.SetCellValue(sheet, cellRef(3, row), p.Level)
		f.SetCellValue(sheet, cellRef(4, row), played[p.ID])
		if cellStyle != 0 {
			for col := 1; col <= len(headers); col++ {
				f.SetCellStyle(sheet, cellRef(col, row), cellRef(col, row), cellStyle)
			}
		}
	}

	widths := map[string]float64{"A": 14, "B": 24, "C": 8, "D": 14}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
