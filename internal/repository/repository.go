package repository

import (
	"context"
	"fmt"
	"os"

	"insights_api/internal/config"
	"insights_api/internal/db"
	"insights_api/internal/insights"
	"insights_api/internal/loader"
	"insights_api/internal/logger"
	"insights_api/internal/models"
)

// Repository — источник записей с проверкой доступности.
type Repository interface {
	insights.Repository
	Ping(ctx context.Context) error
	Close()
}

// FileRepository читает JSON-файл заново при каждом вызове.
type FileRepository struct {
	Path string
}

// NewFileRepository создаёт репозиторий поверх файла path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{Path: path}
}

func (r *FileRepository) LoadAll(ctx context.Context) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return loader.LoadFile(r.Path)
}

// Ping проверяет, что путь указывает на обычный файл и он читается.
func (r *FileRepository) Ping(context.Context) error {
	info, err := os.Stat(r.Path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", r.Path)
	}
	f, err := os.Open(r.Path)
	if err != nil {
		return err
	}
	return f.Close()
}

func (r *FileRepository) Close() {}

// Open выбирает реализацию по cfg.Kind.
func Open(ctx context.Context, cfg config.DataSource) (Repository, error) {
	log := logger.Log.WithField("kind", cfg.Kind)

	switch cfg.Kind {
	case config.SourceFile:
		log.WithField("path", cfg.Path).Info("Using file data source")
		return NewFileRepository(cfg.Path), nil
	case config.SourcePostgres:
		database, err := db.NewDB(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		log.Info("Using postgres data source")
		return database, nil
	default:
		return nil, fmt.Errorf("unknown data source kind: %q", cfg.Kind)
	}
}
