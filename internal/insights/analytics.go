package insights

import "insights_api/internal/models"

// FilterByTopic возвращает записи, у которых topic точно совпадает с topic.
func FilterByTopic(records []models.Record, topic string) []models.Record {
	out := []models.Record{}
	for _, rec := range records {
		if t, ok := rec.String(models.FieldTopic); ok && t == topic {
			out = append(out, rec)
		}
	}
	return out
}

// AverageImpact считает среднее по всем числовым impact. Без значений — 0.
func AverageImpact(records []models.Record) float64 {
	var (
		sum   float64
		count int
	)
	for _, rec := range records {
		if v, ok := models.Number(rec[models.FieldImpact]); ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// UniqueSectors возвращает множество непустых значений sector.
func UniqueSectors(records []models.Record) map[string]struct{} {
	sectors := make(map[string]struct{})
	for _, rec := range records {
		if s, ok := rec.String(models.FieldSector); ok && s != "" {
			sectors[s] = struct{}{}
		}
	}
	return sectors
}
