package tuiapp

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/micutio/flightreplay/internal/track"
)

// Error types

var errColumnMismatch = errors.New("number of columns does not match number of format columns")

// Automated Table Formatting

type tableColumnSizingOption int

const (
	// fixed column width, regardless of table width.
	fixed tableColumnSizingOption = iota
	// relative column with, given as percentage of the total table width.
	relative
	// fill columns receive any remaining table space, evenly distributed.
	fill
)

type columnFormat struct {
	option tableColumnSizingOption
	value  float32
}

type tableFormat struct {
	columnSizes        []columnFormat
	fixedWidth         int     // fixedWidth is the total space taken up by all fixed-width columns.
	fillWidthCount     int     // fillWidthCount indicates how many columns have fill width.
	totalRelativeWidth float32 // how much width is taken by relative columns.
}

func newTableFormat(items ...columnFormat) tableFormat {
	var totalRelativeWidth float32
	fixedWidth := 0
	fillWidthCount := 0

	for _, item := range items {
		switch item.option {
		case relative:
			totalRelativeWidth += item.value
		case fixed:
			fixedWidth += int(item.value)
		case fill:
			fillWidthCount++
		}
	}

	return tableFormat{
		columnSizes:        items,
		fixedWidth:         fixedWidth,
		fillWidthCount:     fillWidthCount,
		totalRelativeWidth: totalRelativeWidth,
	}
}

// Integrated Formatted Table Type

type autoFormatTable struct {
	table  table.Model
	format tableFormat
}

// resize distributes newWidth over the columns. Every column loses one cell to its padding
// and the table keeps one cell for the border.
func (aft *autoFormatTable) resize(newWidth int) error {
	columns := slices.Clone(aft.table.Columns())
	columnCount := len(columns)
	if columnCount != len(aft.format.columnSizes) {
		return fmt.Errorf(
			"table.resize: %w -> %d in table, %d in tableFormat",
			errColumnMismatch,
			columnCount,
			len(aft.format.columnSizes))
	}

	adjustedWidth := max(newWidth-1-columnCount, 0)
	totalRelativeWidth := int(float32(adjustedWidth) * aft.format.totalRelativeWidth)
	fillPerColumn := 0
	if aft.format.fillWidthCount > 0 {
		totalFillWidth := max(adjustedWidth-totalRelativeWidth-aft.format.fixedWidth, 0)
		fillPerColumn = totalFillWidth / aft.format.fillWidthCount
	}

	for idx, format := range aft.format.columnSizes {
		switch format.option {
		case fixed:
			columns[idx].Width = int(format.value)
		case relative:
			columns[idx].Width = int(format.value * float32(adjustedWidth))
		case fill:
			columns[idx].Width = fillPerColumn
		}
	}

	aft.table.SetColumns(columns)
	aft.table.SetWidth(adjustedWidth)
	return nil
}

func (aft *autoFormatTable) SetHeight(height int) {
	aft.table.SetHeight(height)
}

func newFlightTable(tableStyle table.Styles) autoFormatTable {
	visLen := 3
	nameLen := 12
	altLen := 7
	spdLen := 9
	vsLen := 8
	statusLen := 9
	ldLen := 6
	initialTableHeight := 5
	format := newTableFormat(
		columnFormat{fixed, float32(visLen)},
		columnFormat{fill, 0.0},
		columnFormat{fixed, float32(altLen)},
		columnFormat{fixed, float32(spdLen)},
		columnFormat{fixed, float32(vsLen)},
		columnFormat{fixed, float32(statusLen)},
		columnFormat{fixed, float32(ldLen)},
		columnFormat{fixed, float32(vsLen)},
	)

	flightTbl := table.New(
		// table header
		table.WithColumns(
			[]table.Column{
				{Title: "VIS", Width: visLen},
				{Title: "NAME", Width: nameLen},
				{Title: "ALT", Width: altLen},
				{Title: "SPD", Width: spdLen},
				{Title: "VS", Width: vsLen},
				{Title: "STATUS", Width: statusLen},
				{Title: "L/D", Width: ldLen},
				{Title: "AVG", Width: vsLen},
			},
		),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(initialTableHeight),
		table.WithStyles(tableStyle),
	)

	return autoFormatTable{
		table:  flightTbl,
		format: format,
	}
}

// flightToRow lists the telemetry of a flight at time t. Values are blank before the flight
// started.
func flightToRow(f *track.Flight, t time.Time) table.Row {
	visible := "○"
	if f.Visible {
		visible = "●"
	}

	pos, ok := f.PositionAt(t)
	if !ok {
		return table.Row{visible, f.Name, "-", "-", "-", track.StatusUnknown.String(), "-", "-"}
	}

	ld := "-"
	if v, hasLD := f.LDAt(t); hasLD {
		ld = fmt.Sprintf("%.1f", v)
	}
	climb := "-"
	if v, hasClimb := f.AverageClimbAt(t); hasClimb {
		climb = fmt.Sprintf("%+.1f", v)
	}

	return table.Row{
		visible,
		f.Name,
		fmt.Sprintf("%5.0fm", pos.Altitude),
		fmt.Sprintf("%3.0fkm/h", f.GroundSpeedAt(t)),
		fmt.Sprintf("%+5.1f", f.VerticalSpeedAt(t)),
		f.StatusAt(t).String(),
		ld,
		climb,
	}
}

func flightsToRows(flights []*track.Flight, t time.Time) []table.Row {
	rows := make([]table.Row, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, flightToRow(f, t))
	}
	return rows
}
