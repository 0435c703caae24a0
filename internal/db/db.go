package db

import (
	"context"
	"fmt"

	"insights_api/internal/insights"
	"insights_api/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema создаёт таблицу insights: суррогатный ключ и 17 колонок записи.
const Schema = `
CREATE TABLE IF NOT EXISTS insights (
	id SERIAL PRIMARY KEY,
	end_year INTEGER,
	intensity INTEGER NOT NULL,
	sector TEXT,
	topic TEXT,
	insight TEXT NOT NULL,
	url TEXT NOT NULL,
	region TEXT,
	start_year INTEGER,
	impact DOUBLE PRECISION,
	added TEXT NOT NULL,
	published TEXT NOT NULL,
	country TEXT,
	relevance INTEGER NOT NULL,
	pestle TEXT,
	source TEXT NOT NULL,
	title TEXT NOT NULL,
	likelihood INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS insights_topic_idx ON insights (topic);
`

var columns = []string{
	"id", "end_year", "start_year", "intensity", "relevance", "likelihood", "impact",
	"sector", "topic", "insight", "url", "region", "country", "pestle",
	"source", "title", "added", "published",
}

// insertBatchSize ограничивает число строк в одном INSERT (лимит параметров Postgres — 65535).
const insertBatchSize = 1000

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Database инкапсулирует пул соединений к PostgreSQL.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDB создаёт новый пул соединений по connString и возвращает Database.
func NewDB(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return &Database{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (db *Database) Close() {
	db.Pool.Close()
}

// Ping проверяет доступность базы.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Migrate создаёт таблицу insights, если её ещё нет.
func (db *Database) Migrate(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate insights schema: %w", err)
	}
	return nil
}

// LoadAll возвращает все записи в порядке id.
func (db *Database) LoadAll(ctx context.Context) ([]models.Record, error) {
	return db.query(ctx, SelectAll())
}

// LoadByTopic возвращает записи с точным совпадением topic.
func (db *Database) LoadByTopic(ctx context.Context, topic string) ([]models.Record, error) {
	return db.query(ctx, SelectAll().Where(sq.Eq{"topic": topic}))
}

// SaveAll вставляет строки одной транзакцией и возвращает число вставленных.
func (db *Database) SaveAll(ctx context.Context, rows []models.Insight) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	saved := 0
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		query, args, err := InsertBatch(rows[start:end]).ToSql()
		if err != nil {
			return 0, err
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert insights: %w", err)
		}
		saved += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return saved, nil
}

// SelectAll строит SELECT всех колонок, отсортированный по id.
func SelectAll() sq.SelectBuilder {
	return psql.Select(columns...).From("insights").OrderBy("id")
}

// InsertBatch строит INSERT для набора строк без колонки id.
func InsertBatch(rows []models.Insight) sq.InsertBuilder {
	b := psql.Insert("insights").Columns(columns[1:]...)
	for _, in := range rows {
		b = b.Values(
			in.EndYear, in.StartYear, in.Intensity, in.Relevance, in.Likelihood, in.Impact,
			in.Sector, in.Topic, in.Insight, in.URL, in.Region, in.Country, in.Pestle,
			in.Source, in.Title, in.Added, in.Published,
		)
	}
	return b
}

func (db *Database) query(ctx context.Context, b sq.SelectBuilder) ([]models.Record, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, insights.Wrap(insights.KindInternalFailure, err)
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, insights.Wrap(insights.KindSourceUnavailable, err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		in, err := scanInsight(rows)
		if err != nil {
			return nil, insights.Wrap(insights.KindSourceMalformed, err)
		}
		records = append(records, in.Record())
	}
	if err := rows.Err(); err != nil {
		return nil, insights.Wrap(insights.KindSourceUnavailable, err)
	}
	return records, nil
}

func scanInsight(row pgx.Row) (models.Insight, error) {
	var in models.Insight
	err := row.Scan(
		&in.ID, &in.EndYear, &in.StartYear, &in.Intensity, &in.Relevance, &in.Likelihood, &in.Impact,
		&in.Sector, &in.Topic, &in.Insight, &in.URL, &in.Region, &in.Country, &in.Pestle,
		&in.Source, &in.Title, &in.Added, &in.Published,
	)
	return in, err
}
