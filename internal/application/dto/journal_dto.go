package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// JournalLineRequest línea de un asiento: débito xor crédito.
type JournalLineRequest struct {
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest cuerpo para crear un asiento en borrador.
type CreateJournalEntryRequest struct {
	Date        *time.Time           `json:"date,omitempty"`
	Description string               `json:"description,omitempty"`
	Reference   string               `json:"reference,omitempty"`
	Lines       []JournalLineRequest `json:"lines"`
}

// JournalLineResponse línea del asiento.
type JournalLineResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse representación de un asiento.
type JournalEntryResponse struct {
	ID          string                `json:"id"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description,omitempty"`
	Reference   string                `json:"reference,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	Posting     PostingStateResponse  `json:"posting"`
}

// ToJournalEntryResponse mapea la cabecera y, si se pasan, las líneas.
func ToJournalEntryResponse(e *entity.JournalEntry, lines []*entity.JournalEntryLine) *JournalEntryResponse {
	if e == nil {
		return nil
	}
	out := &JournalEntryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Reference:   e.Reference,
		CreatedAt:   e.CreatedAt,
		Posting:     ToPostingState(e.State),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, JournalLineResponse{
			ID:        l.ID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		})
	}
	return out
}

// JournalEntryListResponse listado paginado de asientos.
type JournalEntryListResponse struct {
	Items []JournalEntryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// TrialBalanceRow fila del balance de comprobación.
type TrialBalanceRow struct {
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
}

// TrialBalanceResponse balance de comprobación con totales generales.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}

// ToTrialBalanceResponse mapea las filas y acumula los totales generales.
func ToTrialBalanceResponse(balances []*entity.AccountBalance) *TrialBalanceResponse {
	out := &TrialBalanceResponse{
		Rows:        make([]TrialBalanceRow, 0, len(balances)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, b := range balances {
		out.Rows = append(out.Rows, TrialBalanceRow{
			AccountID:   b.AccountID,
			AccountCode: b.AccountCode,
			AccountName: b.AccountName,
			AccountType: b.AccountType,
			TotalDebit:  b.TotalDebit,
			TotalCredit: b.TotalCredit,
		})
		out.TotalDebit = out.TotalDebit.Add(b.TotalDebit)
		out.TotalCredit = out.TotalCredit.Add(b.TotalCredit)
	}
	return out
}
