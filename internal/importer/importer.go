package importer

import (
	"context"
	"fmt"

	"insights_api/internal/insights"
	"insights_api/internal/loader"
	"insights_api/internal/logger"
	"insights_api/internal/models"
)

// Store — приёмник импортированных строк.
type Store interface {
	Migrate(ctx context.Context) error
	SaveAll(ctx context.Context, rows []models.Insight) (int, error)
}

// Summary описывает результат импорта.
type Summary struct {
	Imported      int
	Sectors       int
	AverageImpact float64
}

type Importer struct {
	store  Store
	strict bool
}

func NewImporter(store Store, strict bool) *Importer {
	return &Importer{store: store, strict: strict}
}

// Run загружает файл path, нормализует записи и сохраняет их в хранилище.
// Запись, которую нельзя привести к строке таблицы, прерывает импорт целиком.
func (im *Importer) Run(ctx context.Context, path string) (Summary, error) {
	log := logger.Log.WithField("path", path)
	log.Info("Importing insights")

	raw, err := loader.LoadFile(path)
	if err != nil {
		log.Errorf("Load failed: %v", err)
		return Summary{}, err
	}

	records, err := insights.Normalize(raw, im.strict)
	if err != nil {
		log.Errorf("Normalize failed: %v", err)
		return Summary{}, err
	}

	rows := make([]models.Insight, 0, len(records))
	for i, rec := range records {
		row, err := models.InsightFromRecord(rec)
		if err != nil {
			return Summary{}, insights.Errorf(insights.KindSourceMalformed, "record %d: %v", i, err)
		}
		rows = append(rows, row)
	}

	if err := im.store.Migrate(ctx); err != nil {
		return Summary{}, err
	}

	n, err := im.store.SaveAll(ctx, rows)
	if err != nil {
		log.Errorf("Save failed: %v", err)
		return Summary{}, fmt.Errorf("save insights: %w", err)
	}

	summary := Summary{
		Imported:      n,
		Sectors:       len(insights.UniqueSectors(records)),
		AverageImpact: insights.AverageImpact(records),
	}
	log.WithFields(map[string]interface{}{
		"imported":       summary.Imported,
		"sectors":        summary.Sectors,
		"average_impact": summary.AverageImpact,
	}).Info("Import finished")
	return summary, nil
}
