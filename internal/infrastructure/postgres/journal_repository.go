package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
	"github.com/jhoicas/Comercio-api/internal/domain/repository"
)

var _ repository.JournalRepository = (*JournalRepo)(nil)

const journalCols = "id, organization_id, date, description, reference, created_at, created_by, " + postingStateCols

// JournalRepo implementación del diario contable sobre PostgreSQL (usable con pool o tx).
type JournalRepo struct {
	q Querier
}

// NewJournalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJournalRepository(q Querier) *JournalRepo {
	return &JournalRepo{q: q}
}

func scanJournalEntry(s rowScanner) (*entity.JournalEntry, error) {
	var e entity.JournalEntry
	var description, reference, createdBy *string
	var tmp stateTmp
	dest := []any{
		&e.ID, &e.OrganizationID, &e.Date, &description, &reference, &e.CreatedAt, &createdBy,
	}
	dest = append(dest, tmp.dest(&e.State)...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	e.Description = strVal(description)
	e.Reference = strVal(reference)
	e.CreatedBy = strVal(createdBy)
	tmp.apply(&e.State)
	return &e, nil
}

// CreateEntry persiste la cabecera del asiento junto con todas sus líneas.
func (r *JournalRepo) CreateEntry(entry *entity.JournalEntry, lines []*entity.JournalEntryLine) error {
	query := `
		INSERT INTO journal_entries (` + journalCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	args := []any{
		entry.ID, entry.OrganizationID, entry.Date,
		nullStr(entry.Description), nullStr(entry.Reference),
		entry.CreatedAt, nullStr(entry.CreatedBy),
	}
	args = append(args, stateArgs(&entry.State)...)
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}

	lineQuery := `
		INSERT INTO journal_entry_lines (id, entry_id, account_id, debit, credit)
		VALUES ($1, $2, $3, $4, $5)`
	for _, l := range lines {
		if _, err := r.q.Exec(context.Background(), lineQuery,
			l.ID, l.EntryID, l.AccountID, l.Debit, l.Credit); err != nil {
			return fmt.Errorf("create journal line: %w", err)
		}
	}
	return nil
}

// GetEntry obtiene la cabecera por ID.
func (r *JournalRepo) GetEntry(id string) (*entity.JournalEntry, error) {
	query := `SELECT ` + journalCols + ` FROM journal_entries WHERE id = $1`
	e, err := scanJournalEntry(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return e, nil
}

// GetEntryForUpdate obtiene la cabecera y bloquea la fila del documento.
func (r *JournalRepo) GetEntryForUpdate(id string) (*entity.JournalEntry, error) {
	query := `SELECT ` + journalCols + ` FROM journal_entries WHERE id = $1 FOR UPDATE`
	e, err := scanJournalEntry(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal entry for update: %w", err)
	}
	return e, nil
}

// GetLines devuelve las líneas del asiento.
func (r *JournalRepo) GetLines(entryID string) ([]*entity.JournalEntryLine, error) {
	query := `
		SELECT id, entry_id, account_id, debit, credit
		FROM journal_entry_lines WHERE entry_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, entryID)
	if err != nil {
		return nil, fmt.Errorf("get journal lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.JournalEntryLine
	for rows.Next() {
		var l entity.JournalEntryLine
		if err := rows.Scan(&l.ID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("scan journal line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateEntry escribe solo los campos de contabilización.
func (r *JournalRepo) UpdateEntry(entry *entity.JournalEntry) error {
	query := `
		UPDATE journal_entries SET
			is_posted = $2, posted_at = $3, posted_by = $4,
			is_rejected = $5, rejected_at = $6, rejected_by = $7, reject_reason = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID,
		entry.IsPosted, entry.PostedAt, nullStr(entry.PostedByUserID),
		entry.IsRejected, entry.RejectedAt, nullStr(entry.RejectedByUserID), nullStr(entry.RejectReason),
	)
	if err != nil {
		return fmt.Errorf("update journal entry: %w", err)
	}
	return nil
}

// TrialBalance suma débitos y créditos contabilizados por cuenta. Solo
// cuentan asientos Posted; cuentas sin movimiento no aparecen.
func (r *JournalRepo) TrialBalance(orgID string) ([]*entity.AccountBalance, error) {
	query := `
		SELECT a.id, a.code, a.name, a.type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		JOIN accounts a ON a.id = l.account_id
		WHERE e.organization_id = $1 AND e.is_posted
		GROUP BY a.id, a.code, a.name, a.type
		ORDER BY a.code`
	rows, err := r.q.Query(context.Background(), query, orgID)
	if err != nil {
		return nil, fmt.Errorf("trial balance: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountBalance
	for rows.Next() {
		var b entity.AccountBalance
		if err := rows.Scan(&b.AccountID, &b.AccountCode, &b.AccountName, &b.AccountType,
			&b.TotalDebit, &b.TotalCredit); err != nil {
			return nil, fmt.Errorf("scan trial balance row: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ListByOrganization lista asientos de la organización, más reciente primero.
func (r *JournalRepo) ListByOrganization(orgID string, limit, offset int) ([]*entity.JournalEntry, error) {
	query := `
		SELECT ` + journalCols + ` FROM journal_entries
		WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
