package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// IndexResponse documento de la raíz del servicio.
type IndexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Paths   string `json:"paths"`
}

// HealthResponse estado del servicio y del almacén.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Store   string `json:"store"`
}
