package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Krimson/stress-monitory/pkg/models"
)

// Пределы схемы ответа модели
const (
	minStressScore  = 0.0
	maxStressScore  = 100.0
	maxReasonLength = 5000
)

// MalformedJSONError возникает когда ответ модели не парсится как JSON объект
type MalformedJSONError struct {
	Cause error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("model reply is not a JSON object: %v", e.Cause)
}

func (e *MalformedJSONError) Unwrap() error { return e.Cause }

// ResultSchemaError возникает когда обязательное поле ответа отсутствует
// или имеет неверный тип
type ResultSchemaError struct {
	Field  string
	Reason string
}

func (e *ResultSchemaError) Error() string {
	return fmt.Sprintf("model reply field %q: %s", e.Field, e.Reason)
}

// ResultRangeError возникает когда поле ответа вне объявленных пределов
type ResultRangeError struct {
	Field  string
	Reason string
}

func (e *ResultRangeError) Error() string {
	return fmt.Sprintf("model reply field %q: %s", e.Field, e.Reason)
}

// rawResult - промежуточная форма для различения отсутствующего поля
// и поля с нулевым значением
type rawResult struct {
	StressScore *float64 `json:"stress_score"`
	Reason      *string  `json:"reason"`
}

// ParseResult разбирает и валидирует ответ генеративной модели.
//
// Модель - недоверенный производитель: несмотря на то, что промпт требует
// ровно эту форму, ответ проходит ту же дисциплину валидации, что и
// входные данные пользователя.
func ParseResult(raw string) (*models.AnalysisResult, error) {
	dec := json.NewDecoder(strings.NewReader(raw))

	var parsed *rawResult
	if err := dec.Decode(&parsed); err != nil {
		// Несовпадение типа внутри объекта - нарушение схемы, а не синтаксиса
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, &ResultSchemaError{
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return nil, &MalformedJSONError{Cause: err}
	}
	// Литеральный null - валидный JSON, но не объект
	if parsed == nil {
		return nil, &MalformedJSONError{Cause: errors.New("top-level value is null, expected an object")}
	}
	// Ответ должен состоять из одного JSON значения без хвоста
	if dec.More() {
		return nil, &MalformedJSONError{Cause: errors.New("trailing data after JSON object")}
	}

	if parsed.StressScore == nil {
		return nil, &ResultSchemaError{Field: "stress_score", Reason: "required field is missing"}
	}
	if parsed.Reason == nil {
		return nil, &ResultSchemaError{Field: "reason", Reason: "required field is missing"}
	}

	score := *parsed.StressScore
	reason := *parsed.Reason

	if score < minStressScore || score > maxStressScore {
		return nil, &ResultRangeError{
			Field:  "stress_score",
			Reason: fmt.Sprintf("must be between %g and %g, got %g", minStressScore, maxStressScore, score),
		}
	}
	if n := utf8.RuneCountInString(reason); n > maxReasonLength {
		return nil, &ResultRangeError{
			Field:  "reason",
			Reason: fmt.Sprintf("must be at most %d characters, got %d", maxReasonLength, n),
		}
	}

	return &models.AnalysisResult{
		StressScore: score,
		Reason:      reason,
	}, nil
}
