// Package datetime provides the JSON time representation used on the wire.
// Booking windows are exchanged as local date-times without an offset
// ("2006-01-02T15:04:05"); RFC 3339 input is accepted as well.
package datetime

import (
	"bytes"
	"fmt"
	"time"
)

// Layout is the wire format for date-times without a zone.
const Layout = "2006-01-02T15:04:05"

// outputLayout extends Layout with fractional seconds, which are omitted when zero.
const outputLayout = "2006-01-02T15:04:05.999999999"

var inputLayouts = []string{time.RFC3339Nano, Layout, outputLayout, "2006-01-02T15:04"}

// DateTime wraps time.Time with the wire encoding.
type DateTime struct {
	time.Time
}

// From converts t for encoding.
func From(t time.Time) DateTime {
	return DateTime{Time: t}
}

// Ptr converts an optional DateTime into an optional time.Time.
func (d *DateTime) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.In(time.Local).Format(outputLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date-time must be a string, got %s", data)
	}
	t, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Parse reads s in any accepted layout. Values without an offset are taken
// in the server's local zone.
func Parse(s string) (time.Time, error) {
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q, expected %s", s, Layout)
}
