package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/Krimson/stress-monitory/internal/service"
	"github.com/Krimson/stress-monitory/pkg/models"
)

// maxBodySize ограничивает размер тела запроса с датасетом (8MB)
const maxBodySize = 8 << 20

// HTTPHandler транслирует HTTP конверты в типизированные входы/выходы
// оркестратора (Presentation Layer). Транспортные детали (base64 тела,
// path-параметры) не просачиваются ниже этого слоя.
type HTTPHandler struct {
	service *service.StressService
	pinger  Pinger
}

// Pinger проверяет доступность зависимости для /health
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHTTPHandler создает новый HTTP обработчик
func NewHTTPHandler(svc *service.StressService, pinger Pinger) *HTTPHandler {
	return &HTTPHandler{
		service: svc,
		pinger:  pinger,
	}
}

// RegisterRoutes регистрирует маршруты в роутере
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/datasets/{id}", h.ProcessDataset).Methods("POST")
	api.HandleFunc("/alerts", h.ListAlerts).Methods("GET")

	router.HandleFunc("/health", h.Health).Methods("GET")
}

// ProcessDataset принимает датасет субъекта и запускает пайплайн анализа
// @Summary Проанализировать датасет субъекта
// @Description Валидирует CSV с сенсорными данными, запрашивает оценку стресса у генеративной модели и пишет алерт при превышении порога
// @Tags Stress Analysis
// @Accept plain
// @Produce json
// @Param id path string true "Имя субъекта (датасета)"
// @Param body body string true "CSV датасет (или base64 при Content-Transfer-Encoding: base64)"
// @Success 200 {object} handler.AnalysisResponse "Результат анализа"
// @Failure 400 {object} handler.ErrorResponse "Невалидный датасет"
// @Failure 409 {object} handler.ErrorResponse "Субъект уже зарегистрирован"
// @Failure 500 {object} handler.ErrorResponse "Ошибка генеративного сервиса или хранилища"
// @Router /api/datasets/{id} [post]
func (h *HTTPHandler) ProcessDataset(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["id"]
	if strings.TrimSpace(name) == "" {
		respondError(w, http.StatusBadRequest, "Missing name in path")
		return
	}

	// Превышение лимита - ошибка, а не молчаливое усечение датасета
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "Request body exceeds the 8MB limit")
			return
		}
		respondError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(body) == 0 {
		respondError(w, http.StatusBadRequest, "Missing CSV file in request body")
		return
	}

	raw := string(body)
	if strings.EqualFold(r.Header.Get("Content-Transfer-Encoding"), "base64") {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid base64 request body")
			return
		}
		raw = string(decoded)
	}

	result, err := h.service.Process(r.Context(), name, raw)
	if err != nil {
		respondPipelineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AnalysisResponse{
		UserID: result.SubjectID,
		StressAnalysis: StressAnalysisBody{
			StressScore:       result.StressScore,
			Analysis:          result.Analysis,
			ThresholdExceeded: result.ThresholdExceeded,
		},
	})
}

// ListAlerts возвращает список субъектов с зафиксированным стрессом
// @Summary Список алертов
// @Description Возвращает субъектов с превышением порога стресса, от новых к старым
// @Tags Alerts
// @Produce json
// @Success 200 {array} models.AlertView
// @Failure 500 {object} handler.ErrorResponse
// @Router /api/alerts [get]
func (h *HTTPHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.ListAlerts(r.Context())
	if err != nil {
		log.Printf("[ERROR] Failed to list alerts: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to list alerts")
		return
	}

	// Пустой список сериализуем как [], а не null
	if alerts == nil {
		alerts = []models.AlertView{}
	}

	respondJSON(w, http.StatusOK, alerts)
}

// Health возвращает состояние сервиса и его зависимостей
// @Summary Проверка живости
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		} else {
			status["database"] = "ok"
		}
	}

	respondJSON(w, http.StatusOK, status)
}

// respondPipelineError отображает таксономию ошибок пайплайна на HTTP статусы
func respondPipelineError(w http.ResponseWriter, err error) {
	var (
		conflictErr  *service.ConflictError
		validErr     *service.ValidationError
		upstreamErr  *service.UpstreamError
		respValidErr *service.ResponseValidationError
	)

	switch {
	case errors.As(err, &conflictErr):
		respondError(w, http.StatusConflict, conflictErr.Error())
	case errors.As(err, &validErr):
		respondError(w, http.StatusBadRequest, validErr.Error())
	case errors.As(err, &upstreamErr):
		log.Printf("[ERROR] Upstream failure: %v", upstreamErr)
		respondError(w, http.StatusInternalServerError, upstreamErr.Error())
	case errors.As(err, &respValidErr):
		log.Printf("[ERROR] Upstream model contract violation: %v", respValidErr)
		respondError(w, http.StatusInternalServerError, respValidErr.Error())
	default:
		log.Printf("[ERROR] Pipeline failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
