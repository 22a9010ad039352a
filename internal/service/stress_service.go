package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Krimson/stress-monitory/internal/analysis"
	"github.com/Krimson/stress-monitory/internal/dataset"
	"github.com/Krimson/stress-monitory/internal/repository"
	"github.com/Krimson/stress-monitory/pkg/models"
)

// StressService оркестрирует пайплайн validate -> analyze -> validate -> persist
// (Application Layer)
type StressService struct {
	repo      SubjectRepository
	generator Generator
	cache     AlertsCache
	notifier  AlertNotifier
	threshold float64
}

// NewStressService создает оркестратор пайплайна. cache и notifier
// опциональны: nil отключает кэширование и уведомления.
func NewStressService(repo SubjectRepository, generator Generator, cache AlertsCache, notifier AlertNotifier, threshold float64) *StressService {
	return &StressService{
		repo:      repo,
		generator: generator,
		cache:     cache,
		notifier:  notifier,
		threshold: threshold,
	}
}

// Process выполняет один прогон пайплайна для субъекта name с сырым CSV телом.
//
// Линейный конечный автомат:
//  1. регистрация субъекта (фиксируется сразу, до разбора датасета);
//  2. валидация датасета;
//  3. построение промпта и вызов генерации;
//  4. валидация ответа модели;
//  5. решение по порогу;
//  6. запись алерта в собственной транзакции, если порог превышен;
//  7. ответ.
//
// Транзакция БД никогда не держится открытой через вызов генерации.
// Субъект, зарегистрированный на шаге 1, остается зарегистрированным при
// отказе любого последующего шага.
func (s *StressService) Process(ctx context.Context, name string, raw string) (*models.StressAnalysis, error) {
	// 1. Регистрация: дубликат имени отсекается до дорогой работы
	subject, err := s.repo.CreateSubject(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrSubjectExists) {
			return nil, &ConflictError{Name: name}
		}
		return nil, &InternalError{Cause: err}
	}
	log.Printf("[PIPELINE] Registered subject: id=%s name=%s", subject.ID, subject.Name)

	// 2. Валидация датасета
	ds, err := dataset.Parse(raw)
	if err != nil {
		return nil, &ValidationError{Cause: err}
	}
	log.Printf("[PIPELINE] Parsed dataset: subject=%s records=%d", subject.ID, len(ds.Records))

	// 3. Анализ: промпт строится из исходного текста, не из распарсенной модели
	prompt := analysis.BuildPrompt(raw)
	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[ERROR] Generation failed for subject %s: %v", subject.ID, err)
		return nil, &UpstreamError{Cause: err}
	}

	// 4. Валидация ответа модели
	result, err := analysis.ParseResult(reply)
	if err != nil {
		log.Printf("[ERROR] Model reply failed validation for subject %s: %v", subject.ID, err)
		return nil, &ResponseValidationError{Cause: err}
	}

	// 5. Решение по порогу
	isStressed := result.StressScore >= s.threshold
	log.Printf("[PIPELINE] Decision for subject %s: score=%.2f threshold=%.2f stressed=%v",
		subject.ID, result.StressScore, s.threshold, isStressed)

	// 6. Персистентность: алерт пишется только при превышении порога
	if isStressed {
		alert := &models.Alert{
			SubjectID:   subject.ID,
			IsStressed:  true,
			StressScore: result.StressScore,
			Analysis:    result.Reason,
		}
		if err := s.repo.SaveAlert(ctx, alert); err != nil {
			return nil, &InternalError{Cause: err}
		}
		log.Printf("[PIPELINE] Alert persisted for subject %s", subject.ID)

		s.afterAlert(ctx, subject, result)
	}

	// 7. Ответ
	return &models.StressAnalysis{
		SubjectID:         subject.ID,
		StressScore:       result.StressScore,
		Analysis:          result.Reason,
		ThresholdExceeded: isStressed,
	}, nil
}

// afterAlert выполняет побочные действия после коммита алерта: сброс кэша
// и уведомление подписчиков. Их отказ не влияет на результат пайплайна.
func (s *StressService) afterAlert(ctx context.Context, subject *models.Subject, result *models.AnalysisResult) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("[WARN] Failed to invalidate alerts cache: %v", err)
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyAlert(models.AlertView{
			RecordID:    subject.Name,
			StressScore: result.StressScore,
			Timestamp:   nowUTC(),
		})
	}
}

// ListAlerts возвращает список алертов для read-path, от новых к старым.
// Список читается из кэша, при промахе - из БД с обратной записью в кэш.
func (s *StressService) ListAlerts(ctx context.Context) ([]models.AlertView, error) {
	if s.cache != nil {
		if rows, err := s.cache.Get(ctx); err == nil {
			return toViews(rows), nil
		} else if !errors.Is(err, repository.ErrCacheMiss) {
			log.Printf("[WARN] Alerts cache read failed: %v", err)
		}
	}

	rows, err := s.repo.ListAlerts(ctx)
	if err != nil {
		return nil, &InternalError{Cause: err}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, rows); err != nil {
			log.Printf("[WARN] Failed to cache alerts: %v", err)
		}
	}

	return toViews(rows), nil
}

func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

func toViews(rows []models.AlertRow) []models.AlertView {
	views := make([]models.AlertView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.View())
	}
	return views
}
