package models

import "time"

// MentalHealthStatus представляет статус ментального здоровья из датасета
type MentalHealthStatus int

const (
	StatusNormal  MentalHealthStatus = 0
	StatusConcern MentalHealthStatus = 1
	StatusSevere  MentalHealthStatus = 2
)

// String возвращает текстовое представление статуса
func (s MentalHealthStatus) String() string {
	switch s {
	case StatusNormal:
		return "NORMAL"
	case StatusConcern:
		return "CONCERN"
	case StatusSevere:
		return "SEVERE"
	default:
		return "UNKNOWN"
	}
}

// Valid проверяет что значение статуса входит в перечисление
func (s MentalHealthStatus) Valid() bool {
	return s >= StatusNormal && s <= StatusSevere
}

// SensorRecord представляет одно наблюдение сенсоров за субъектом
type SensorRecord struct {
	Timestamp          time.Time          `json:"timestamp"`
	LocationID         int                `json:"location_id"`
	TemperatureCelsius float64            `json:"temperature_celsius"`
	HumidityPercent    float64            `json:"humidity_percent"`
	AirQualityIndex    int                `json:"air_quality_index"`
	NoiseLevelDB       float64            `json:"noise_level_db"`
	LightingLux        float64            `json:"lighting_lux"`
	CrowdDensity       int                `json:"crowd_density"`
	StressLevel        int                `json:"stress_level"`
	SleepHours         float64            `json:"sleep_hours"`
	MoodScore          float64            `json:"mood_score"`
	MentalHealthStatus MentalHealthStatus `json:"mental_health_status"`
}

// Dataset представляет упорядоченный непустой набор записей одного субъекта
type Dataset struct {
	Records []SensorRecord `json:"records"`
}

// AnalysisResult представляет валидированный ответ генеративной модели
type AnalysisResult struct {
	StressScore float64 `json:"stress_score"`
	Reason      string  `json:"reason"`
}

// Subject представляет зарегистрированного субъекта анализа
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Alert представляет запись о превышении порога стресса.
// Записи только добавляются, пайплайн их никогда не обновляет и не удаляет.
type Alert struct {
	SubjectID   string  `json:"subject_id"`
	IsStressed  bool    `json:"is_stressed"`
	StressScore float64 `json:"stress_score"`
	Analysis    string  `json:"analysis"`
}

// AlertRow представляет строку для read-path списка алертов
type AlertRow struct {
	RecordID    string    `json:"record_id"`
	StressScore float64   `json:"stress_score"`
	CreatedAt   time.Time `json:"created_at"`
}

// AlertView — формат строки алерта наружу, timestamp в формате YYYY-MM-DDTHH:MM:SSZ
type AlertView struct {
	RecordID    string  `json:"record_id"`
	StressScore float64 `json:"stress_score"`
	Timestamp   string  `json:"timestamp"`
}

// View конвертирует строку БД в ответ наружу
func (r AlertRow) View() AlertView {
	return AlertView{
		RecordID:    r.RecordID,
		StressScore: r.StressScore,
		Timestamp:   r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// StressAnalysis представляет итог одного прогона пайплайна
type StressAnalysis struct {
	SubjectID         string  `json:"user_id"`
	StressScore       float64 `json:"stress_score"`
	Analysis          string  `json:"analysis"`
	ThresholdExceeded bool    `json:"threshold_exceeded"`
}
