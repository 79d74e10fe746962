package model

import (
	"fmt"
	"strings"
	"time"
)

// BriefingField identifies one free-text field of the briefing form.
type BriefingField int

const (
	// FieldOfficer is the reporting officer.
	FieldOfficer BriefingField = iota
	// FieldLocation is where the incident took place.
	FieldLocation
	// FieldSuspects lists the people involved.
	FieldSuspects
	// FieldCharges lists the charges brought.
	FieldCharges
	// FieldEvidence lists the evidence seized.
	FieldEvidence
	// FieldSummary is the incident summary.
	FieldSummary
)

var briefingFields = []BriefingField{
	FieldOfficer,
	FieldLocation,
	FieldSuspects,
	FieldCharges,
	FieldEvidence,
	FieldSummary,
}

// BriefingFields returns the fields in report order.
func BriefingFields() []BriefingField {
	out := make([]BriefingField, len(briefingFields))
	copy(out, briefingFields)
	return out
}

// Key returns the identifier used in flags and YAML.
func (f BriefingField) Key() string {
	switch f {
	case FieldOfficer:
		return "officer"
	case FieldLocation:
		return "location"
	case FieldSuspects:
		return "suspects"
	case FieldCharges:
		return "charges"
	case FieldEvidence:
		return "evidence"
	case FieldSummary:
		return "summary"
	default:
		return ""
	}
}

// Label returns the heading printed in the report.
func (f BriefingField) Label() string {
	switch f {
	case FieldOfficer:
		return "Reporting Officer"
	case FieldLocation:
		return "Location"
	case FieldSuspects:
		return "Suspects"
	case FieldCharges:
		return "Charges"
	case FieldEvidence:
		return "Evidence Seized"
	case FieldSummary:
		return "Incident Summary"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (f BriefingField) String() string {
	return f.Key()
}

// ParseBriefingField converts a key such as "officer" into a BriefingField.
func ParseBriefingField(key string) (BriefingField, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, f := range briefingFields {
		if f.Key() == k {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBriefingField, key)
}

// FieldEntry is the value of one briefing field.
type FieldEntry struct {
	Text          string `json:"text" yaml:"text"`
	NotApplicable bool   `json:"not_applicable" yaml:"not_applicable"`
}

// BriefingForm is a snapshot of the briefing form.
type BriefingForm struct {
	// Fields holds the entered values. Missing fields render empty.
	Fields map[BriefingField]FieldEntry

	// Date is formatted YYYY-MM-DD.
	Date string

	// Time is formatted HH:MM or HH:MM:SS.
	Time string

	// Notes is the free-text notes section.
	Notes string

	// StandardNotes appends the configured boilerplate to Notes.
	StandardNotes bool
}

// NewBriefingForm returns a form with an empty field map.
func NewBriefingForm() BriefingForm {
	return BriefingForm{Fields: make(map[BriefingField]FieldEntry)}
}

// Set stores text for field.
func (f *BriefingForm) Set(field BriefingField, text string) {
	if f.Fields == nil {
		f.Fields = make(map[BriefingField]FieldEntry)
	}
	entry := f.Fields[field]
	entry.Text = text
	f.Fields[field] = entry
}

// MarkNotApplicable flags field as not applicable.
func (f *BriefingForm) MarkNotApplicable(field BriefingField) {
	if f.Fields == nil {
		f.Fields = make(map[BriefingField]FieldEntry)
	}
	entry := f.Fields[field]
	entry.NotApplicable = true
	f.Fields[field] = entry
}

// briefingTimeLayouts are tried in order against "<date> <time>".
var briefingTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseBriefingInstant combines date and time into an instant in loc.
// A nil loc means UTC. Any failure is reported as a *TimestampError.
func ParseBriefingInstant(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	d := strings.TrimSpace(date)
	c := strings.TrimSpace(clock)
	if d == "" || c == "" {
		return time.Time{}, &TimestampError{Date: date, Time: clock}
	}

	var lastErr error
	for _, layout := range briefingTimeLayouts {
		t, err := time.ParseInLocation(layout, d+" "+c, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &TimestampError{Date: date, Time: clock, Err: lastErr}
}

// DiscordTimestamp renders t as a chat timestamp token that clients show
// in the reader's local time zone, using the long date-time style.
func DiscordTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:F>", t.Unix())
}
