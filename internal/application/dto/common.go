package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
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

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchFailure un elemento fallido dentro de una operación por lotes.
type BatchFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult acumulador de una operación por lotes: N escrituras
// independientes, sin rollback. Los creados quedan creados; el caller decide
// si reintenta solo el subconjunto fallido.
type BatchResult struct {
	Succeeded []string       `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

// Partial informa si el lote quedó incompleto (algunos sí, otros no).
func (r *BatchResult) Partial() bool {
	return len(r.Succeeded) > 0 && len(r.Failed) > 0
}
