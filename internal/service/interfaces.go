package service

import (
	"context"

	"github.com/Krimson/stress-monitory/pkg/models"
)

// SubjectRepository - граница персистентности пайплайна
type SubjectRepository interface {
	CreateSubject(ctx context.Context, name string) (*models.Subject, error)
	SaveAlert(ctx context.Context, alert *models.Alert) error
	ListAlerts(ctx context.Context) ([]models.AlertRow, error)
}

// Generator - граница генеративного сервиса, инжектируемая способность
// generate(prompt) -> text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AlertsCache - кэш read-path списка алертов
type AlertsCache interface {
	Get(ctx context.Context) ([]models.AlertRow, error)
	Set(ctx context.Context, alerts []models.AlertRow) error
	Invalidate(ctx context.Context) error
}

// AlertNotifier получает уведомление о каждом новом записанном алерте
type AlertNotifier interface {
	NotifyAlert(view models.AlertView)
}
