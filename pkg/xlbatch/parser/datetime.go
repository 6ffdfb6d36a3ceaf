package parser

import (
	"fmt"
	"math"
	"time"
)

// DateTimeLayout is the layout of strings produced by ExcelDatetime.
const DateTimeLayout = "2006-01-02 15:04:05"

// excelEpoch is day zero of the 1900 date system. Using 1899-12-30 rather than
// 1900-01-01 absorbs the fictitious 1900-02-29 that spreadsheets count.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ExcelDatetime converts a spreadsheet date serial into "YYYY-MM-DD HH:MM:SS".
// The integer part counts days from the epoch; the fraction is rounded to the
// nearest second.
func ExcelDatetime(serial float64) (string, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return "", fmt.Errorf("%w: %v", ErrDateOutOfRange, serial)
	}

	days := math.Floor(serial)
	// 0001-01-01 is serial -693593 and 9999-12-31 is serial 2958465
	if days < -693593 || days > 2958465 {
		return "", fmt.Errorf("%w: %v", ErrDateOutOfRange, serial)
	}
	seconds := math.Round((serial - days) * 86400)

	t := excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second)
	if t.Year() < 1 || t.Year() > 9999 {
		return "", fmt.Errorf("%w: %v", ErrDateOutOfRange, serial)
	}
	return t.Format(DateTimeLayout), nil
}
