package domain

// ConflictKind tags the source of a scheduling conflict.
type ConflictKind string

const (
	ConflictAppointment  ConflictKind = "appointment"
	ConflictAvailability ConflictKind = "availability"
	ConflictBlocked      ConflictKind = "blocked"
	ConflictBreak        ConflictKind = "break"
)

// ConflictDetail is one structured reason a candidate slot is not bookable.
type ConflictDetail struct {
	Kind   ConflictKind `json:"kind"`
	Reason string       `json:"reason"`
	// Start/End carry the offending window where one applies (the
	// colliding appointment, the break, the blocked window).
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// AvailabilityResult is the engine's verdict on a candidate slot.
type AvailabilityResult struct {
	Available bool             `json:"available"`
	Conflicts []ConflictDetail `json:"conflicts"`
	// SuggestedTimes is a hint, not a guarantee: slots on a fixed grid
	// inside the partner's working window, not re-checked against
	// existing appointments or breaks.
	SuggestedTimes []string `json:"suggestedTimes,omitempty"`
}

// Reasons flattens the conflict details into human-readable strings.
func (r *AvailabilityResult) Reasons() []string {
	reasons := make([]string, len(r.Conflicts))
	for i, c := range r.Conflicts {
		reasons[i] = c.Reason
	}
	return reasons
}

// BookedSlot is an occupied window in a partner's day schedule.
type BookedSlot struct {
	AppointmentID string            `json:"appointmentID"`
	StartTime     string            `json:"startTime"`
	EndTime       string            `json:"endTime"`
	Status        AppointmentStatus `json:"status"`
}

// DaySchedule is a partner's full picture for one day: working window, break,
// blocked windows and booked slots.
type DaySchedule struct {
	PartnerID  string       `json:"partnerID"`
	Working    bool         `json:"working"`
	StartTime  string       `json:"startTime,omitempty"`
	EndTime    string       `json:"endTime,omitempty"`
	BreakStart *string      `json:"breakStart,omitempty"`
	BreakEnd   *string      `json:"breakEnd,omitempty"`
	Blocked    []BlockedDate `json:"blocked,omitempty"`
	Booked     []BookedSlot  `json:"booked,omitempty"`
}
