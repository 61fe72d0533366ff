package request

import "time"

type BookCallRequest struct {
	Start string `json:"start" binding:"required"`
}

func (r BookCallRequest) StartTime() (time.Time, error) {
	return time.Parse(time.RFC3339, r.Start)
}
