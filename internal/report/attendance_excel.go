// Package report renders attendance summaries as Excel workbooks for
// operations staff.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"hospitalcore/pkg/domain"
)

// AttendanceHeader is the column layout of the attendance sheet.
var AttendanceHeader = []string{
	"Record ID",
	"Staff ID",
	"Staff Name",
	"Date",
	"Status",
	"Check-In",
	"Check-Out",
	"Late Minutes",
	"Sessions",
	"Hours Worked",
}

var attendanceColumnWidths = []float64{12, 12, 24, 12, 10, 10, 10, 12, 10, 12}

const attendanceSheet = "Attendance"

// GenerateAttendanceSheet renders the supplied attendance records as an
// xlsx workbook, one row per record, newest records last.
func GenerateAttendanceSheet(records []domain.StaffAttendance) ([]byte, error) {
	f := excelize.NewFile()
	// WriteToBuffer needs the file open; close only on error paths.

	index, err := f.NewSheet(attendanceSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range AttendanceHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(attendanceSheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(attendanceSheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("style header cell %s: %w", cell, err)
		}
	}

	for i := range AttendanceHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("convert column number: %w", err)
		}
		if err := f.SetColWidth(attendanceSheet, col, col, attendanceColumnWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for rowIdx, rec := range records {
		row := rowIdx + 2
		values := []any{
			rec.ID,
			rec.StaffID,
			rec.StaffName,
			rec.Date.Format("2006-01-02"),
			string(rec.Status),
			rec.CheckInTime.Format("15:04"),
			formatOptionalTime(rec.CheckOutTime),
			rec.LateMinutes,
			len(rec.Sessions),
			rec.TotalHoursWorked,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(attendanceSheet, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}
