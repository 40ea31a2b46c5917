package postgres

import "github.com/jhoicas/Comercio-api/internal/domain/posting"

// postingStateCols fragmento SQL con las columnas de contabilización que
// todos los documentos comparten, en el orden que espera stateTmp.
const postingStateCols = "is_posted, posted_at, posted_by, is_rejected, rejected_at, rejected_by, reject_reason"

// stateTmp recoge las columnas de texto nulas de contabilización durante el Scan.
type stateTmp struct {
	postedBy     *string
	rejectedBy   *string
	rejectReason *string
}

// dest devuelve los destinos de Scan para postingStateCols.
func (t *stateTmp) dest(st *posting.State) []any {
	return []any{
		&st.IsPosted, &st.PostedAt, &t.postedBy,
		&st.IsRejected, &st.RejectedAt, &t.rejectedBy, &t.rejectReason,
	}
}

// apply copia los valores no nulos al estado.
func (t *stateTmp) apply(st *posting.State) {
	st.PostedByUserID = strVal(t.postedBy)
	st.RejectedByUserID = strVal(t.rejectedBy)
	st.RejectReason = strVal(t.rejectReason)
}

// stateArgs devuelve los argumentos de escritura para postingStateCols.
func stateArgs(st *posting.State) []any {
	return []any{
		st.IsPosted, st.PostedAt, nullStr(st.PostedByUserID),
		st.IsRejected, st.RejectedAt, nullStr(st.RejectedByUserID), nullStr(st.RejectReason),
	}
}
