package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/cloud-ru/estate-loan-calculator/internal/store"
	"github.com/cloud-ru/estate-loan-calculator/internal/tools"
	"github.com/cloud-ru/estate-loan-calculator/internal/validators"
)

// maxBodyBytes ограничивает размер тела запроса
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON кодирует ответ до записи заголовков: при ошибке кодирования клиент получает 500
func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// decodeParams читает тело запроса как JSON-объект параметров инструмента
func decodeParams(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var params map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		return nil, &validators.ValidationError{Field: "body", Message: "ожидается JSON-объект: " + err.Error()}
	}
	if params == nil {
		return nil, &validators.ValidationError{Field: "body", Message: "ожидается JSON-объект"}
	}
	return params, nil
}

// handleError переводит ошибки инструментов и хранилища в HTTP-ответы
func handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var validation *validators.ValidationError

	switch {
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("field", validation.Field), zap.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: validation.Field})
	case errors.Is(err, tools.ErrUnknownTool), errors.Is(err, store.ErrNotFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		logger.Error("store unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, tools.ErrNoResult):
		logger.Warn("calculation produced no result", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
