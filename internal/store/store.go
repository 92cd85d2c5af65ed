// Package store хранит рассчитанные графики платежей, чтобы их можно было
// запросить повторно или выгрузить в CSV по идентификатору.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cloud-ru/estate-loan-calculator/internal/calculations"
)

// ErrNotFound возвращается, если запись отсутствует или ее срок хранения истек
var ErrNotFound = errors.New("calculation not found")

// ErrUnavailable возвращается, если хранилище временно недоступно
var ErrUnavailable = errors.New("result store unavailable")

// Record - сохраненный расчет
type Record struct {
	ID        string                           `json:"id"`
	CreatedAt time.Time                        `json:"created_at"`
	Input     calculations.LoanInput           `json:"input"`
	Result    *calculations.AmortizationResult `json:"result"`
}

// Store сохраняет и возвращает расчеты
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
}

// NewRecord создает запись с новым идентификатором
func NewRecord(in calculations.LoanInput, result *calculations.AmortizationResult) *Record {
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Input:     in,
		Result:    result,
	}
}

// ValidateID проверяет, что идентификатор похож на UUID, до обращения к хранилищу
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
