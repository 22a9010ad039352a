package dataset

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

const validHeader = "timestamp,location_id,temperature_celsius,humidity_percent,air_quality_index,noise_level_db,lighting_lux,crowd_density,stress_level,sleep_hours,mood_score,mental_health_status"

const validRow = "2025-07-27T10:00:00Z,1,23.5,45.0,50,65.5,500.0,10,75,7.5,6.5,1"

func buildCSV(rows ...string) string {
	return strings.Join(append([]string{validHeader}, rows...), "\n")
}

// rowWith подменяет значение одной колонки в валидной строке
func rowWith(t *testing.T, column, value string) string {
	t.Helper()

	cols := strings.Split(validHeader, ",")
	vals := strings.Split(validRow, ",")
	for i, name := range cols {
		if name == column {
			vals[i] = value
			return strings.Join(vals, ",")
		}
	}
	t.Fatalf("unknown column %q", column)
	return ""
}

func expectViolation(t *testing.T, err error, kind ErrorKind, column string) {
	t.Helper()

	var verr *ValidationErrors
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationErrors, got %T: %v", err, err)
	}
	for _, fe := range verr.Errors {
		if fe.Kind == kind && fe.Column == column {
			return
		}
	}
	t.Errorf("Expected %s violation for column %q, got: %v", kind, column, verr)
}

func TestParse_ValidDataset(t *testing.T) {
	ds, err := Parse(buildCSV(validRow, validRow, validRow))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ds.Records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(ds.Records))
	}

	rec := ds.Records[0]
	if rec.StressLevel != 75 {
		t.Errorf("Expected stress_level 75, got %d", rec.StressLevel)
	}
	if rec.SleepHours != 7.5 {
		t.Errorf("Expected sleep_hours 7.5, got %g", rec.SleepHours)
	}
	if rec.MentalHealthStatus.String() != "CONCERN" {
		t.Errorf("Expected CONCERN status, got %s", rec.MentalHealthStatus)
	}

	want := time.Date(2025, 7, 27, 10, 0, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, rec.Timestamp)
	}
}

func TestParse_ColumnOrderIrrelevant(t *testing.T) {
	// Те же данные, но колонки перемешаны
	csv := "stress_level,timestamp,location_id,temperature_celsius,humidity_percent,air_quality_index,noise_level_db,lighting_lux,crowd_density,sleep_hours,mood_score,mental_health_status\n" +
		"75,2025-07-27T10:00:00Z,1,23.5,45.0,50,65.5,500.0,10,7.5,6.5,1"

	ds, err := Parse(csv)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if ds.Records[0].StressLevel != 75 {
		t.Errorf("Expected stress_level 75, got %d", ds.Records[0].StressLevel)
	}
}

func TestParse_TimestampNormalizedToUTC(t *testing.T) {
	ds, err := Parse(buildCSV(rowWith(t, "timestamp", "2025-07-27T13:00:00+03:00")))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rec := ds.Records[0]
	if rec.Timestamp.Location() != time.UTC {
		t.Errorf("Expected UTC location, got %v", rec.Timestamp.Location())
	}
	want := time.Date(2025, 7, 27, 10, 0, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("Expected %v, got %v", want, rec.Timestamp)
	}
}

func TestParse_MissingColumn(t *testing.T) {
	// Заголовок без temperature_celsius
	csv := "timestamp,location_id,humidity_percent,air_quality_index,noise_level_db,lighting_lux,crowd_density,stress_level,sleep_hours,mood_score,mental_health_status\n" +
		"2025-07-27T10:00:00Z,1,45.0,50,65.5,500.0,10,75,7.5,6.5,1"

	ds, err := Parse(csv)
	if ds != nil {
		t.Fatalf("Expected whole dataset rejected, got %d records", len(ds.Records))
	}
	expectViolation(t, err, KindSchema, "temperature_celsius")
}

func TestParse_MissingValueInRow(t *testing.T) {
	// Вторая строка короче заголовка
	short := "2025-07-27T10:00:00Z,1,23.5"

	ds, err := Parse(buildCSV(validRow, short))
	if ds != nil {
		t.Fatal("Expected whole dataset rejected")
	}
	expectViolation(t, err, KindSchema, "humidity_percent")
}

func TestParse_RangeViolations(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
	}{
		{"humidity above bound", "humidity_percent", "100.5"},
		{"humidity below bound", "humidity_percent", "-0.1"},
		{"stress_level above bound", "stress_level", "101"},
		{"stress_level below bound", "stress_level", "-1"},
		{"sleep_hours above bound", "sleep_hours", "24.5"},
		{"sleep_hours below bound", "sleep_hours", "-1"},
		{"status outside enum", "mental_health_status", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(buildCSV(rowWith(t, tt.column, tt.value)))
			expectViolation(t, err, KindRange, tt.column)
		})
	}
}

func TestParse_BoundaryValuesAccepted(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
	}{
		{"humidity at 0", "humidity_percent", "0"},
		{"humidity at 100", "humidity_percent", "100"},
		{"stress_level at 0", "stress_level", "0"},
		{"stress_level at 100", "stress_level", "100"},
		{"sleep_hours at 0", "sleep_hours", "0"},
		{"sleep_hours at 24", "sleep_hours", "24"},
		{"status NORMAL", "mental_health_status", "0"},
		{"status SEVERE", "mental_health_status", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(buildCSV(rowWith(t, tt.column, tt.value))); err != nil {
				t.Errorf("Boundary value rejected: %v", err)
			}
		})
	}
}

func TestParse_TypeViolations(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  string
	}{
		{"non-numeric temperature", "temperature_celsius", "warm"},
		{"non-integer location", "location_id", "4.5"},
		{"bad timestamp", "timestamp", "yesterday"},
		{"non-integer stress_level", "stress_level", "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(buildCSV(rowWith(t, tt.column, tt.value)))
			expectViolation(t, err, KindType, tt.column)
		})
	}
}

func TestParse_CollectsAllViolations(t *testing.T) {
	// Нарушения в двух разных строках должны быть собраны вместе
	bad1 := rowWith(t, "humidity_percent", "150")
	bad2 := rowWith(t, "stress_level", "abc")

	_, err := Parse(buildCSV(bad1, validRow, bad2))

	var verr *ValidationErrors
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationErrors, got %T", err)
	}
	if len(verr.Errors) != 2 {
		t.Fatalf("Expected 2 violations, got %d: %v", len(verr.Errors), verr)
	}
	if verr.Errors[0].Row != 1 || verr.Errors[1].Row != 3 {
		t.Errorf("Expected violations in rows 1 and 3, got %d and %d",
			verr.Errors[0].Row, verr.Errors[1].Row)
	}
	if !verr.HasKind(KindRange) || !verr.HasKind(KindType) {
		t.Errorf("Expected both range and type violations, got %v", verr)
	}
}

func TestParse_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"whitespace only", "   \n  "},
		{"header only", validHeader},
		{"unreadable csv", validHeader + "\n\"unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Errorf("Expected *FormatError, got %T: %v", err, err)
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	// Повторный разбор валидного входа дает идентичную структуру
	raw := buildCSV(validRow, validRow)

	first, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := Parse(raw)
	if err != nil {
		t.Fatalf("Second parse failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical datasets from repeated parsing")
	}
}
