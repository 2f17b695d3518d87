package availability

// View is the typed read model of a normalized slot served to the widgets.
type View struct {
	SlotID         string   `json:"slot_id"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	Title          string   `json:"title,omitempty"`
	Status         Status   `json:"status"`
	Seats          Seats    `json:"seats"`
	BookerName     string   `json:"booker_name,omitempty"`
	BookedAt       string   `json:"booked_at,omitempty"`
	MeetingType    string   `json:"meeting_type,omitempty"`
	AttendeeEmails []string `json:"attendee_emails"`
}

// Annotate builds the View of a normalized record.
func Annotate(r Record) View {
	seats := SeatInfoOf(r)
	attendees := NormalizeAttendees(r["attendee_emails"])
	name, _ := r.firstString("booker_name")
	return View{
		SlotID:         r.SlotID(),
		Date:           r.String("date"),
		StartTime:      r.String("start_time"),
		EndTime:        r.String("end_time"),
		Title:          r.String("title"),
		Status:         SessionStatus(r, seats),
		Seats:          seats,
		BookerName:     name,
		BookedAt:       r.String("booked_at"),
		MeetingType:    r.String("meeting_type"),
		AttendeeEmails: attendees,
	}
}
