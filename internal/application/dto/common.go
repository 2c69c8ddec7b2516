package dto

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

// ErrorResponse cuerpo de error HTTP. Details lista cada regla incumplida en errores de validación.
type ErrorResponse struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Details []ViolationEntry `json:"details,omitempty"`
}

// ViolationEntry regla de negocio incumplida.
type ViolationEntry struct {
	Reason  string `json:"reason"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// DateLayout formato de fecha en requests y responses.
const DateLayout = "2006-01-02"
