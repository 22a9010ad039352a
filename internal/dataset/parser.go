package dataset

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/Krimson/stress-monitory/pkg/models"
)

// Имена колонок точные и регистрозависимые, порядок колонок не важен
const (
	colTimestamp          = "timestamp"
	colLocationID         = "location_id"
	colTemperatureCelsius = "temperature_celsius"
	colHumidityPercent    = "humidity_percent"
	colAirQualityIndex    = "air_quality_index"
	colNoiseLevelDB       = "noise_level_db"
	colLightingLux        = "lighting_lux"
	colCrowdDensity       = "crowd_density"
	colStressLevel        = "stress_level"
	colSleepHours         = "sleep_hours"
	colMoodScore          = "mood_score"
	colMentalHealthStatus = "mental_health_status"
)

var requiredColumns = []string{
	colTimestamp,
	colLocationID,
	colTemperatureCelsius,
	colHumidityPercent,
	colAirQualityIndex,
	colNoiseLevelDB,
	colLightingLux,
	colCrowdDensity,
	colStressLevel,
	colSleepHours,
	colMoodScore,
	colMentalHealthStatus,
}

// Parse разбирает CSV в типизированный валидированный датасет.
//
// Строки обрабатываются независимо, но датасет отклоняется целиком, если
// хотя бы одна строка невалидна: частично валидированный датасет никогда
// не должен дойти до модели. Все нарушения собираются в один
// *ValidationErrors, чтобы диагностика была полной, а не обрывалась на
// первой ошибке. Структурные проблемы (пустой вход, нечитаемый CSV,
// отсутствие строк данных) возвращаются как *FormatError.
func Parse(raw string) (*models.Dataset, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &FormatError{Reason: "empty input"}
	}

	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1 // длину строк проверяем сами, чтобы классифицировать ошибку
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &FormatError{Reason: err.Error()}
	}
	if len(rows) < 2 {
		return nil, &FormatError{Reason: "no data records"}
	}

	header := rows[0]
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	verr := &ValidationErrors{}
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			verr.add(0, col, KindSchema, "required column is missing from header")
		}
	}
	if len(verr.Errors) > 0 {
		return nil, verr
	}

	records := make([]models.SensorRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 1
		rec, ok := parseRow(rowNum, row, colIndex, verr)
		if ok {
			records = append(records, rec)
		}
	}

	if len(verr.Errors) > 0 {
		return nil, verr
	}

	return &models.Dataset{Records: records}, nil
}

// parseRow валидирует одну строку, дописывая все её нарушения в verr
func parseRow(rowNum int, row []string, colIndex map[string]int, verr *ValidationErrors) (models.SensorRecord, bool) {
	before := len(verr.Errors)

	p := rowParser{rowNum: rowNum, row: row, colIndex: colIndex, verr: verr}

	rec := models.SensorRecord{
		Timestamp:          p.timestampField(colTimestamp),
		LocationID:         p.intField(colLocationID),
		TemperatureCelsius: p.floatField(colTemperatureCelsius),
		HumidityPercent:    p.boundedFloatField(colHumidityPercent, 0, 100),
		AirQualityIndex:    p.intField(colAirQualityIndex),
		NoiseLevelDB:       p.floatField(colNoiseLevelDB),
		LightingLux:        p.floatField(colLightingLux),
		CrowdDensity:       p.intField(colCrowdDensity),
		StressLevel:        p.boundedIntField(colStressLevel, 0, 100),
		SleepHours:         p.boundedFloatField(colSleepHours, 0, 24),
		MoodScore:          p.floatField(colMoodScore),
		MentalHealthStatus: p.statusField(colMentalHealthStatus),
	}

	return rec, len(verr.Errors) == before
}

// rowParser разбирает поля одной строки, накапливая нарушения
type rowParser struct {
	rowNum   int
	row      []string
	colIndex map[string]int
	verr     *ValidationErrors
}

// value достает сырое значение колонки; отсутствие значения - нарушение схемы
func (p *rowParser) value(col string) (string, bool) {
	idx := p.colIndex[col]
	if idx >= len(p.row) {
		p.verr.add(p.rowNum, col, KindSchema, "value is missing")
		return "", false
	}
	return strings.TrimSpace(p.row[idx]), true
}

func (p *rowParser) intField(col string) int {
	raw, ok := p.value(col)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.verr.add(p.rowNum, col, KindType, "expected integer, got %q", raw)
		return 0
	}
	return v
}

func (p *rowParser) floatField(col string) float64 {
	raw, ok := p.value(col)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.verr.add(p.rowNum, col, KindType, "expected number, got %q", raw)
		return 0
	}
	return v
}

func (p *rowParser) boundedIntField(col string, min, max int) int {
	v := p.intField(col)
	if v < min || v > max {
		p.verr.add(p.rowNum, col, KindRange, "must be between %d and %d, got %d", min, max, v)
	}
	return v
}

func (p *rowParser) boundedFloatField(col string, min, max float64) float64 {
	v := p.floatField(col)
	if v < min || v > max {
		p.verr.add(p.rowNum, col, KindRange, "must be between %g and %g, got %g", min, max, v)
	}
	return v
}

func (p *rowParser) timestampField(col string) time.Time {
	raw, ok := p.value(col)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		p.verr.add(p.rowNum, col, KindType, "expected ISO-8601 timestamp, got %q", raw)
		return time.Time{}
	}
	// Нормализуем к UTC перед сохранением
	return t.UTC()
}

func (p *rowParser) statusField(col string) models.MentalHealthStatus {
	v := models.MentalHealthStatus(p.intField(col))
	if !v.Valid() {
		p.verr.add(p.rowNum, col, KindRange, "must be 0 (NORMAL), 1 (CONCERN) or 2 (SEVERE), got %d", int(v))
	}
	return v
}
