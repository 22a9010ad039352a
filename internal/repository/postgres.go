package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Krimson/stress-monitory/pkg/models"
)

// ErrSubjectExists возвращается когда субъект с таким именем уже зарегистрирован
var ErrSubjectExists = errors.New("subject already exists")

// uniqueViolation - код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// PostgresRepository реализует хранение субъектов и алертов (Infrastructure Layer)
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository создает репозиторий из строки подключения
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Настройки пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	repo := &PostgresRepository{db: db}
	if err := repo.ensureSchema(); err != nil {
		return nil, err
	}

	return repo, nil
}

// ensureSchema создает таблицы если они не существуют
func (r *PostgresRepository) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS high_stress_users (
		id BIGSERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		is_stressed BOOLEAN NOT NULL,
		stress_score DOUBLE PRECISION NOT NULL,
		analysis TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_high_stress_users_created_at ON high_stress_users(created_at);
	`

	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close закрывает соединение с БД
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping проверяет доступность БД
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateSubject регистрирует субъекта и возвращает его id. Вставка
// коммитится сразу: регистрация намеренно завершается до разбора датасета
// и до обращения к генеративному сервису, чтобы дубликат имени отсекался
// раньше дорогой работы. При конфликте имени возвращает ErrSubjectExists.
func (r *PostgresRepository) CreateSubject(ctx context.Context, name string) (*models.Subject, error) {
	subject := &models.Subject{
		ID:   uuid.New().String(),
		Name: name,
	}

	query := `INSERT INTO users (id, name) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, subject.ID, subject.Name); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrSubjectExists
		}
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	return subject, nil
}

// SaveAlert вставляет запись алерта в собственной транзакции. Внешний ключ
// на users гарантирует, что алерт не может существовать без субъекта.
func (r *PostgresRepository) SaveAlert(ctx context.Context, alert *models.Alert) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO high_stress_users (user_id, is_stressed, stress_score, analysis)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := tx.ExecContext(ctx, query,
		alert.SubjectID,
		alert.IsStressed,
		alert.StressScore,
		alert.Analysis,
	); err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListAlerts возвращает алерты, отсортированные от новых к старым
func (r *PostgresRepository) ListAlerts(ctx context.Context) ([]models.AlertRow, error) {
	query := `
		SELECT u.name, h.stress_score, h.created_at
		FROM high_stress_users h
		JOIN users u ON h.user_id = u.id
		WHERE h.is_stressed = TRUE
		ORDER BY h.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.AlertRow

	for rows.Next() {
		var row models.AlertRow
		if err := rows.Scan(&row.RecordID, &row.StressScore, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alert rows: %w", err)
	}

	return alerts, nil
}
