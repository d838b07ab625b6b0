// Package render draws the month status grid as a PNG: one cell per
// date with the number of feedback-pending, feedback-written, and absent
// occurrences on that day.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/mingmingss/feedback-management/internal/model"
	"github.com/mingmingss/feedback-management/internal/schedule"
)

const (
	imageWidth   = 980
	imageHeight  = 760
	headerHeight = 70
	weekdayRow   = 30
	cellPadding  = 6
	chipHeight   = 18.0
	chipRadius   = 4.0
	columns      = 7
)

var (
	bgColor      = color.RGBA{245, 246, 248, 255}
	gridColor    = color.NRGBA{200, 203, 207, 255}
	textColor    = color.RGBA{80, 85, 90, 220}
	dayNumColor  = color.RGBA{60, 64, 68, 255}
	todayBgColor = color.NRGBA{255, 99, 71, 60}

	pendingColor = color.RGBA{255, 182, 193, 255}
	writtenColor = color.RGBA{133, 193, 85, 220}
	absentColor  = color.RGBA{158, 158, 158, 200}
	chipText     = color.RGBA{20, 24, 28, 230}
)

type dayCounts struct {
	pending int
	written int
	absent  int
}

func countStatuses(day model.DaySchedule) dayCounts {
	var counts dayCounts
	for _, occ := range day.Classes {
		switch occ.Status() {
		case model.StatusAbsent:
			counts.absent++
		case model.StatusFeedbackWritten:
			counts.written++
		default:
			counts.pending++
		}
	}
	return counts
}

// Month renders the grid for one calendar month. days must cover the
// month's dates (extra dates are ignored); today highlights the current
// date cell when it falls inside the month.
func Month(year int, month time.Month, days []model.DaySchedule, today time.Time) ([]byte, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDate := make(map[string]dayCounts, len(days))
	for _, day := range days {
		byDate[schedule.FormatDate(day.Date)] = countStatuses(day)
	}

	firstCol := schedule.WeekdayOf(first)
	rows := (firstCol + daysInMonth + columns - 1) / columns

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	// Title and legend.
	dc.SetColor(textColor)
	dc.DrawStringAnchored(fmt.Sprintf("%04d-%02d", year, int(month)), imageWidth/2, headerHeight/2, 0.5, 0.5)
	drawLegend(dc)

	gridTop := float64(headerHeight + weekdayRow)
	cellW := float64(imageWidth) / columns
	cellH := (float64(imageHeight) - gridTop) / float64(rows)

	// Weekday labels, Monday first.
	for col := 0; col < columns; col++ {
		x := float64(col)*cellW + cellW/2
		dc.SetColor(textColor)
		dc.DrawStringAnchored(schedule.WeekdayShortName(col), x, float64(headerHeight)+weekdayRow/2, 0.5, 0.5)
	}

	todayStr := schedule.FormatDate(today)
	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		date := time.Date(year, month, dayNum, 0, 0, 0, 0, time.UTC)
		idx := firstCol + dayNum - 1
		col, row := idx%columns, idx/columns
		x := float64(col) * cellW
		y := gridTop + float64(row)*cellH

		if schedule.FormatDate(date) == todayStr {
			dc.SetColor(todayBgColor)
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.Fill()
		}

		dc.SetColor(gridColor)
		dc.DrawRectangle(x, y, cellW, cellH)
		dc.Stroke()

		dc.SetColor(dayNumColor)
		dc.DrawString(fmt.Sprintf("%d", dayNum), x+cellPadding, y+cellPadding+10)

		counts := byDate[schedule.FormatDate(date)]
		chipY := y + cellPadding + 20
		chipY = drawChip(dc, x+cellPadding, chipY, cellW-2*cellPadding, counts.pending, "pending", pendingColor)
		chipY = drawChip(dc, x+cellPadding, chipY, cellW-2*cellPadding, counts.written, "written", writtenColor)
		drawChip(dc, x+cellPadding, chipY, cellW-2*cellPadding, counts.absent, "absent", absentColor)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode month image: %w", err)
	}
	return buf.Bytes(), nil
}

// drawChip draws one status count row inside a cell and returns the y
// for the next chip. Zero counts draw nothing.
func drawChip(dc *gg.Context, x, y, w float64, count int, label string, fill color.Color) float64 {
	if count == 0 {
		return y
	}
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, chipHeight, chipRadius)
	dc.Fill()
	dc.SetColor(chipText)
	dc.DrawStringAnchored(fmt.Sprintf("%d %s", count, label), x+w/2, y+chipHeight/2, 0.5, 0.5)
	return y + chipHeight + 3
}

func drawLegend(dc *gg.Context) {
	items := []struct {
		label string
		fill  color.Color
	}{
		{"feedback pending", pendingColor},
		{"feedback written", writtenColor},
		{"absent", absentColor},
	}

	x := 20.0
	y := float64(headerHeight) - 20
	for _, item := range items {
		dc.SetColor(item.fill)
		dc.DrawRoundedRectangle(x, y-9, 12, 12, 3)
		dc.Fill()
		dc.SetColor(textColor)
		dc.DrawString(item.label, x+18, y+2)
		x += 18 + float64(len(item.label))*7 + 24
	}
}
