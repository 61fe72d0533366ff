package response

import (
	"time"

	"coachdesk/internal/usecase/queries"
)

type VerifyResponse struct {
	Valid     bool      `json:"valid"`
	Email     string    `json:"email"`
	Kind      string    `json:"kind"`
	Resource  string    `json:"resource,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromAccessView(v *queries.AccessView) VerifyResponse {
	return VerifyResponse{Valid: true, Email: v.Email, Kind: v.Kind, Resource: v.Resource, ExpiresAt: v.ExpiresAt}
}

type DownloadResponse struct {
	URL       string    `json:"url"`
	Resource  string    `json:"resource"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromDownload(v *queries.DownloadView) DownloadResponse {
	return DownloadResponse{URL: v.URL, Resource: v.Resource, ExpiresAt: v.ExpiresAt}
}
