package response

import (
	"time"

	"coachdesk/internal/usecase/commands"
	"coachdesk/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// CodeRequestedResponse never carries the code itself.
type CodeRequestedResponse struct {
	Kind      string    `json:"kind"`
	Resource  string    `json:"resource,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromIssueResult(r *commands.IssueResult) CodeRequestedResponse {
	return CodeRequestedResponse{Kind: r.Kind, Resource: r.Resource, ExpiresAt: r.ExpiresAt}
}

type RedeemResponse struct {
	AccessToken string    `json:"accessToken"`
	Email       string    `json:"email"`
	Kind        string    `json:"kind"`
	Resource    string    `json:"resource,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Replayed    bool      `json:"replayed"`
}

func FromRedeemResult(r *commands.RedeemResult) RedeemResponse {
	return RedeemResponse{
		AccessToken: r.CredentialToken,
		Email:       r.Email,
		Kind:        r.Kind,
		Resource:    r.Resource,
		ExpiresAt:   r.ExpiresAt,
		Replayed:    r.Replayed,
	}
}

type GiftCodeResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	Kind      string    `json:"kind"`
	Resource  string    `json:"resource,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	Notified  bool      `json:"notified"`
}

func FromGiftCode(r *commands.IssueResult) GiftCodeResponse {
	return GiftCodeResponse{
		ID:        r.TokenID,
		Code:      r.Code,
		Email:     r.Email,
		Kind:      r.Kind,
		Resource:  r.Resource,
		ExpiresAt: r.ExpiresAt,
		Notified:  r.Notified,
	}
}

type RedemptionListItemResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Code                string     `json:"code"`
	Email               string     `json:"email"`
	Kind                string     `json:"kind"`
	Resource            string     `json:"resource,omitempty"`
	ExpiresAt           time.Time  `json:"expiresAt"`
	Used                bool       `json:"used"`
	UsedAt              *time.Time `json:"usedAt,omitempty"`
	CredentialExpiresAt *time.Time `json:"credentialExpiresAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type RedemptionListResponse struct {
	Items      []RedemptionListItemResponse `json:"items"`
	NextCursor string                       `json:"nextCursor,omitempty"`
}

func FromRedemptionList(items []*queries.RedemptionListItem, next *queries.Cursor) (RedemptionListResponse, error) {
	out := RedemptionListResponse{Items: make([]RedemptionListItemResponse, 0, len(items))}
	if len(items) > 0 {
		if err := copier.Copy(&out.Items, &items); err != nil {
			return RedemptionListResponse{}, err
		}
	}
	if next != nil {
		out.NextCursor = next.After
	}
	return out, nil
}
