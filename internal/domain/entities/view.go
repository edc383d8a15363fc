package entities

// View is the calendar rendering granularity
type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewDay   View = "day"
)

// Valid reports whether v is a known view
func (v View) Valid() bool {
	switch v {
	case ViewMonth, ViewWeek, ViewDay:
		return true
	}
	return false
}

// MonthInlineEventLimit caps how many events a month cell shows inline.
// The remainder is surfaced as a "+N more" count; the full bucket stays
// available in Events.
const MonthInlineEventLimit = 3

// EventView wraps an appointment with the actions the UI may offer for it
type EventView struct {
	Appointment
	CanConfirm bool `json:"can_confirm"`
	CanCancel  bool `json:"can_cancel"`
}

// NewEventView derives the action flags from the appointment status
func NewEventView(a Appointment) EventView {
	return EventView{
		Appointment: a,
		CanConfirm:  a.Status.CanConfirm(),
		CanCancel:   a.Status.CanCancel(),
	}
}

// DateRange is an inclusive local-date range, "YYYY-MM-DD" on both ends
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Navigation holds the reference dates reachable from the current view
type Navigation struct {
	Previous string `json:"previous"`
	Next     string `json:"next"`
	Today    string `json:"today"`
}

// MonthCell is one day cell of the month grid
type MonthCell struct {
	Date           string      `json:"date"`
	IsCurrentMonth bool        `json:"is_current_month"`
	IsToday        bool        `json:"is_today"`
	IsPast         bool        `json:"is_past"`
	IsBookable     bool        `json:"is_bookable"`
	Events         []EventView `json:"events"`
	Inline         []EventView `json:"inline"`
	MoreCount      int         `json:"more_count"`
}

// HourSlot is one hour row of a week or day column
type HourSlot struct {
	Hour       int         `json:"hour"`
	IsBookable bool        `json:"is_bookable"`
	Events     []EventView `json:"events"`
}

// DayColumn is one day of the week or day view, expanded into hour slots
// covering the resolved display range
type DayColumn struct {
	Date    string     `json:"date"`
	IsToday bool       `json:"is_today"`
	IsPast  bool       `json:"is_past"`
	Slots   []HourSlot `json:"slots"`
}

// ScheduleView is the render-ready model for one (reference date, view)
type ScheduleView struct {
	View             View          `json:"view"`
	ReferenceDate    string        `json:"reference_date"`
	Timezone         string        `json:"timezone"`
	Range            DateRange     `json:"range"`
	Navigation       Navigation    `json:"navigation"`
	DisplayStartHour int           `json:"display_start_hour,omitempty"`
	DisplayEndHour   int           `json:"display_end_hour,omitempty"`
	Weeks            [][]MonthCell `json:"weeks,omitempty"`
	Days             []DayColumn   `json:"days,omitempty"`
}
