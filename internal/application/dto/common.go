package dto

import (
	"time"

	"github.com/jhoicas/Comercio-api/internal/domain/posting"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PostingStateResponse campos de contabilización que comparten los documentos.
type PostingStateResponse struct {
	Status       string     `json:"status"` // DRAFT | POSTED | REJECTED
	PostedAt     *time.Time `json:"posted_at,omitempty"`
	PostedBy     string     `json:"posted_by,omitempty"`
	RejectedAt   *time.Time `json:"rejected_at,omitempty"`
	RejectedBy   string     `json:"rejected_by,omitempty"`
	RejectReason string     `json:"reject_reason,omitempty"`
}

// ToPostingState mapea el estado embebido de un documento.
func ToPostingState(st posting.State) PostingStateResponse {
	status := "DRAFT"
	if st.IsPosted {
		status = "POSTED"
	} else if st.IsRejected {
		status = "REJECTED"
	}
	return PostingStateResponse{
		Status:       status,
		PostedAt:     st.PostedAt,
		PostedBy:     st.PostedByUserID,
		RejectedAt:   st.RejectedAt,
		RejectedBy:   st.RejectedByUserID,
		RejectReason: st.RejectReason,
	}
}

// RejectRequest cuerpo para rechazar un documento en borrador.
type RejectRequest struct {
	Reason string `json:"reason"`
}
