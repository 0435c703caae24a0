package insights

import (
	"context"
	"time"

	"insights_api/internal/logger"
	"insights_api/internal/models"
)

// Repository отдаёт все записи источника. Реализации не кэшируют данные.
type Repository interface {
	LoadAll(ctx context.Context) ([]models.Record, error)
}

// Service загружает записи и нормализует числовые поля.
type Service struct {
	repo   Repository
	strict bool
	log    *logger.Entry
}

// NewService создаёт сервис поверх repo. strict включает проверку числовых полей.
func NewService(repo Repository, strict bool) *Service {
	return &Service{
		repo:   repo,
		strict: strict,
		log:    logger.Log.WithField("service", "insights"),
	}
}

// GetData читает источник заново и возвращает очищенные записи в исходном порядке.
// Каждая запись содержит ровно поля models.Fields, лишние ключи отбрасываются.
// Любая ошибка прерывает ответ целиком.
func (s *Service) GetData(ctx context.Context) ([]models.Record, error) {
	start := time.Now()

	raw, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, Wrap(KindInternalFailure, err)
	}

	cleaned, err := Normalize(raw, s.strict)
	if err != nil {
		return nil, Wrap(KindInternalFailure, err)
	}
	// одинаковый набор полей для любого источника
	for i, rec := range cleaned {
		cleaned[i] = rec.Shape()
	}

	s.log.WithFields(map[string]interface{}{
		"records":  len(cleaned),
		"duration": time.Since(start).String(),
	}).Debug("Insights loaded")
	return cleaned, nil
}

// GetByPosition возвращает запись по её номеру в источнике, начиная с 1.
func (s *Service) GetByPosition(ctx context.Context, n int) (models.Record, error) {
	records, err := s.GetData(ctx)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(records) {
		return nil, Errorf(KindNotFound, "insight %d not found", n)
	}
	return records[n-1], nil
}
