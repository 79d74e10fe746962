package report

import (
	"strings"
	"time"

	"github.com/nao1215/contraband/internal/model"
)

// Briefing defaults.
const (
	// DefaultBriefingTitle heads every briefing report.
	DefaultBriefingTitle = "Briefing Report"

	// DefaultBoilerplate is appended to the notes when standard notes are requested.
	DefaultBoilerplate = "All seized items have been logged and secured as evidence. " +
		"Fines are payable at the sheriff's office. " +
		"Weapons are held until the owner's release."

	// NotApplicable replaces the text of fields marked not applicable.
	NotApplicable = "N/A"
)

// BriefingOptions controls FormatBriefing.
type BriefingOptions struct {
	// Location is the reference zone of the form's date and time. Nil means UTC.
	Location *time.Location

	// Boilerplate is the standard notes text.
	Boilerplate string

	// Title is the first line of the report.
	Title string
}

// DefaultBriefingOptions returns UTC with the built-in title and boilerplate.
func DefaultBriefingOptions() BriefingOptions {
	return BriefingOptions{
		Location:    time.UTC,
		Boilerplate: DefaultBoilerplate,
		Title:       DefaultBriefingTitle,
	}
}

// FormatBriefing renders form as a multi-section plain-text report:
//
//	<title>
//	Date: <t:<unix>:F>
//
//	Reporting Officer: ...
//	...
//
//	Notes:
//	<notes>
//
// When the date and time do not form a valid instant, no text is produced
// and the returned error matches model.ErrInvalidTimestamp.
func FormatBriefing(form model.BriefingForm, opts BriefingOptions) (string, error) {
	instant, err := model.ParseBriefingInstant(form.Date, form.Time, opts.Location)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	if opts.Title != "" {
		sb.WriteString(opts.Title)
		sb.WriteString("\n")
	}
	sb.WriteString("Date: ")
	sb.WriteString(model.DiscordTimestamp(instant))
	sb.WriteString("\n\n")

	for _, field := range model.BriefingFields() {
		sb.WriteString(field.Label())
		sb.WriteString(": ")
		sb.WriteString(fieldText(form.Fields[field]))
		sb.WriteString("\n")
	}

	sb.WriteString("\nNotes:\n")
	sb.WriteString(ComposeNotes(form.Notes, form.StandardNotes, opts.Boilerplate))

	return sb.String(), nil
}

// fieldText returns the rendered value of one field.
func fieldText(entry model.FieldEntry) string {
	if entry.NotApplicable {
		return NotApplicable
	}
	return entry.Text
}

// ComposeNotes builds the notes section. Without standard notes the user
// note is returned unchanged. With standard notes the boilerplate follows
// the user note after a blank line, or stands alone when the note is blank.
func ComposeNotes(notes string, standard bool, boilerplate string) string {
	if !standard {
		return notes
	}
	if strings.TrimSpace(notes) == "" {
		return boilerplate
	}
	return notes + "\n\n" + boilerplate
}
