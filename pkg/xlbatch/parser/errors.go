// Package parser converts spreadsheet-native encodings into semantic values:
// cell addresses, ranges, date serials and typed cell grids.
package parser

import "errors"

var (
	// ErrInvalidFormat indicates an address without a row number.
	ErrInvalidFormat = errors.New("invalid cell address format")
	// ErrInvalidColumn indicates an address whose column letters cannot be decoded.
	ErrInvalidColumn = errors.New("invalid column label")
	// ErrInvalidRow indicates an address whose row number cannot be decoded.
	ErrInvalidRow = errors.New("invalid row number")
	// ErrDateOutOfRange indicates a date serial outside the representable calendar.
	ErrDateOutOfRange = errors.New("date out of range")
)
