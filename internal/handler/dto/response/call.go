package response

import (
	"time"

	"coachdesk/internal/usecase/commands"
	"coachdesk/internal/usecase/queries"
)

type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	Date     string         `json:"date"`
	TimeZone string         `json:"timeZone"`
	Slots    []SlotResponse `json:"slots"`
}

func FromAvailability(v *queries.AvailabilityView) AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(v.Slots))
	for _, s := range v.Slots {
		slots = append(slots, SlotResponse{Start: s.Start, End: s.End})
	}
	return AvailabilityResponse{Date: v.Date, TimeZone: v.TimeZone, Slots: slots}
}

type BookingResponse struct {
	ID      string    `json:"id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	EventID string    `json:"eventId"`
}

func FromBooking(r *commands.BookingResult) BookingResponse {
	return BookingResponse{ID: r.BookingID.String(), Start: r.Start, End: r.End, EventID: r.EventID}
}
