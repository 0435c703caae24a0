package insights

import (
	"fmt"

	"insights_api/internal/models"
)

// Normalize заменяет пустые строки и отсутствующие значения числовых полей на null.
// Входные записи не изменяются, порядок сохраняется.
//
// В нестрогом режиме остальные значения проходят как есть, включая непустые строки.
// В строгом режиме каждое непустое значение должно быть JSON-числом
// (целым для всех полей, кроме impact), иначе возвращается source_malformed.
func Normalize(records []models.Record, strict bool) ([]models.Record, error) {
	cleaned := make([]models.Record, 0, len(records))
	for i, rec := range records {
		out := rec.Clone()
		for _, field := range models.NumericFields {
			v, ok := out[field]
			if !ok || v == nil || v == "" {
				out[field] = nil
				continue
			}
			if strict {
				if err := checkNumeric(field, v); err != nil {
					return nil, Errorf(KindSourceMalformed, "record %d: %v", i, err)
				}
			}
		}
		cleaned = append(cleaned, out)
	}
	return cleaned, nil
}

func checkNumeric(field string, v any) error {
	if field == models.FieldImpact {
		if _, ok := models.Number(v); !ok {
			return fmt.Errorf("field %s: %v is not a number", field, v)
		}
		return nil
	}

	if _, ok := models.Integer(v); !ok {
		return fmt.Errorf("field %s: %v is not an integer", field, v)
	}
	return nil
}
