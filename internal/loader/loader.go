package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"insights_api/internal/insights"
	"insights_api/internal/models"
)

// LoadFile читает JSON-массив объектов по пути path.
// Ключи и значения передаются без проверки схемы.
func LoadFile(path string) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, insights.Wrap(insights.KindSourceUnavailable, err)
	}
	defer file.Close()

	records, err := Decode(file)
	if err != nil {
		return nil, insights.Wrap(insights.KindSourceMalformed, fmt.Errorf("%s: %w", path, err))
	}
	return records, nil
}

// Decode разбирает JSON-массив объектов из r. Числа сохраняются как json.Number.
func Decode(r io.Reader) ([]models.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, insights.Wrap(insights.KindSourceUnavailable, err)
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if !bytes.HasPrefix(data, []byte("[")) {
		return nil, errors.New("expected a JSON array of objects")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var items []json.RawMessage
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("expected a JSON array of objects: %w", err)
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON array")
	}

	records := make([]models.Record, 0, len(items))
	for i, raw := range items {
		var rec models.Record
		item := json.NewDecoder(bytes.NewReader(raw))
		item.UseNumber()
		if err := item.Decode(&rec); err != nil {
			return nil, fmt.Errorf("element %d: expected an object: %w", i, err)
		}
		if rec == nil {
			return nil, fmt.Errorf("element %d: expected an object, got null", i)
		}
		records = append(records, rec)
	}
	return records, nil
}
