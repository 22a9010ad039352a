package handler

import (
	"encoding/json"
	"log"
	"net/http"
)

// AnalysisResponse - успешный ответ на загрузку датасета
type AnalysisResponse struct {
	UserID         string             `json:"user_id"`
	StressAnalysis StressAnalysisBody `json:"stress_analysis"`
}

// StressAnalysisBody - вложенная часть ответа с результатом анализа
type StressAnalysisBody struct {
	StressScore       float64 `json:"stress_score"`
	Analysis          string  `json:"analysis"`
	ThresholdExceeded bool    `json:"threshold_exceeded"`
}

// ErrorResponse - категоризированный ответ об ошибке
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] Failed to encode JSON response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:  message,
		Status: status,
	})
}
