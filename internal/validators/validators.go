package validators

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/estate-loan-calculator/internal/calculations"
	"github.com/cloud-ru/estate-loan-calculator/internal/config"
	"github.com/cloud-ru/estate-loan-calculator/pkg/utils"
)

// ValidationError описывает неверное значение одного параметра
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation сообщает, является ли ошибка (или одна из обернутых) ошибкой валидации
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidatePositiveNumber проверяет, что число конечно и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return &ValidationError{Field: name, Message: "значение не является конечным числом"}
	}
	if value < minInclusive {
		return &ValidationError{Field: name, Message: fmt.Sprintf("значение должно быть ≥ %g", minInclusive)}
	}
	if value > maxInclusive {
		return &ValidationError{Field: name, Message: fmt.Sprintf("значение слишком велико (>%g)", maxInclusive)}
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return &ValidationError{Field: name, Message: fmt.Sprintf("значение должно быть в диапазоне [%d; %d]", minInclusive, maxInclusive)}
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, principal float64) error {
	if principal <= 0 && utils.IsFinite(principal) {
		return &ValidationError{Field: "principal", Message: "сумма кредита должна быть больше нуля"}
	}
	return ValidatePositiveNumber("principal", principal, 0.0, cfg.MaxPrincipal)
}

// CheckRate проверяет процентную ставку. Нулевая ставка допустима.
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("rate", rate, 0.0, cfg.MaxRate)
}

// CheckMonths проверяет, что срок задан. Верхняя граница не проверяется:
// слишком длинный срок приводится к допустимому через ClampTerm.
func CheckMonths(months int) error {
	if months < 1 {
		return &ValidationError{Field: "term_months", Message: "срок должен быть не меньше 1 месяца"}
	}
	return nil
}

// ClampTerm приводит срок к диапазону [MinMonths; MaxMonths] из конфигурации
func ClampTerm(cfg *config.Config, months int) int {
	return utils.ClampInt(months, cfg.MinMonths, cfg.MaxMonths)
}

// CheckRateBasis проверяет базу ставки
func CheckRateBasis(basis calculations.RateBasis) error {
	if !basis.Valid() {
		return &ValidationError{Field: "rate_basis", Message: fmt.Sprintf("неизвестная база ставки %q (ожидается yearly или monthly)", basis)}
	}
	return nil
}

// CheckMethod проверяет схему погашения
func CheckMethod(method calculations.Method) error {
	if !method.Valid() {
		return &ValidationError{Field: "method", Message: fmt.Sprintf("неизвестная схема погашения %q (ожидается annuity или equal-principal)", method)}
	}
	return nil
}

// NormalizeLoanInput подставляет значения по умолчанию, проверяет параметры
// и ограничивает срок. Результат гарантированно пригоден для calculations.ComputeSchedule.
func NormalizeLoanInput(cfg *config.Config, in calculations.LoanInput) (calculations.LoanInput, error) {
	if in.RateBasis == "" {
		in.RateBasis = calculations.RateBasis(cfg.DefaultRateBasis)
	}
	if in.Method == "" {
		in.Method = calculations.Method(cfg.DefaultMethod)
	}

	checks := []error{
		CheckPrincipal(cfg, in.Principal),
		CheckRate(cfg, in.Rate),
		CheckMonths(in.TermMonths),
		CheckRateBasis(in.RateBasis),
		CheckMethod(in.Method),
	}
	for _, err := range checks {
		if err != nil {
			return in, err
		}
	}

	in.TermMonths = ClampTerm(cfg, in.TermMonths)
	return in, nil
}
