package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vrcosta/imob-backoffice/internal/usecase"
)

// TenantHeader identifica a imobiliária do operador. A resolução de sessão
// fica no gateway de autenticação; aqui o tenant chega explícito.
const TenantHeader = "X-Real-Estate-ID"

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func realEstateID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(TenantHeader)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "cabeçalho " + TenantHeader + " é obrigatório",
		})
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		case usecase.CodeValidation, usecase.CodeInvalidTransition:
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}

	if techErr, ok := err.(*usecase.TechnicalError); ok {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: techErr.Message, Code: techErr.Code})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
