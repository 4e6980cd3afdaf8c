package dto

import (
	"time"

	"github.com/spec-kit/conveyancing-service/internal/domain"
)

// CaseResponse is the wire form of a case. Detail fields flatten into the
// top level; username carries the owner's display name on list-all.
type CaseResponse struct {
	ID        string `json:"id"`
	CreatedBy string `json:"createdBy"`
	Username  string `json:"username,omitempty"`
	Date      string `json:"date,omitempty"`
	Active    bool   `json:"active"`
	domain.CaseDetails
	Colors    map[string]any `json:"colors"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
