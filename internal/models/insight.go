package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Record представляет одну запись insight в том виде, в каком она пришла из источника.
// Числа хранятся как json.Number, чтобы кодироваться обратно без изменений.
type Record map[string]any

// Имена полей записи.
const (
	FieldEndYear    = "end_year"
	FieldStartYear  = "start_year"
	FieldIntensity  = "intensity"
	FieldRelevance  = "relevance"
	FieldLikelihood = "likelihood"
	FieldImpact     = "impact"
	FieldSector     = "sector"
	FieldTopic      = "topic"
	FieldInsight    = "insight"
	FieldURL        = "url"
	FieldRegion     = "region"
	FieldCountry    = "country"
	FieldPestle     = "pestle"
	FieldSource     = "source"
	FieldTitle      = "title"
	FieldAdded      = "added"
	FieldPublished  = "published"
)

// NumericFields — поля, которые должны содержать число, но приходят из слабо типизированных данных.
var NumericFields = []string{
	FieldEndYear,
	FieldStartYear,
	FieldImpact,
	FieldIntensity,
	FieldRelevance,
	FieldLikelihood,
}

// Fields — все поля записи insight в порядке таблицы.
var Fields = []string{
	FieldEndYear,
	FieldIntensity,
	FieldSector,
	FieldTopic,
	FieldInsight,
	FieldURL,
	FieldRegion,
	FieldStartYear,
	FieldImpact,
	FieldAdded,
	FieldPublished,
	FieldCountry,
	FieldRelevance,
	FieldPestle,
	FieldSource,
	FieldTitle,
	FieldLikelihood,
}

// Shape оставляет в записи только поля Fields; отсутствующие становятся nil.
func (r Record) Shape() Record {
	out := make(Record, len(Fields))
	for _, field := range Fields {
		out[field] = r[field]
	}
	return out
}

// Clone возвращает поверхностную копию записи.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String возвращает строковое значение поля и false, если поле не строка.
func (r Record) String(field string) (string, bool) {
	s, ok := r[field].(string)
	return s, ok
}

// Insight — строка таблицы insights. Nullable-колонки представлены указателями.
type Insight struct {
	ID         int64
	EndYear    *int
	StartYear  *int
	Intensity  int
	Relevance  int
	Likelihood int
	Impact     *float64
	Sector     *string
	Topic      *string
	Insight    string
	URL        string
	Region     *string
	Country    *string
	Pestle     *string
	Source     string
	Title      string
	Added      string
	Published  string
}

// Record переводит строку таблицы в Record; NULL-колонки становятся nil.
func (in Insight) Record() Record {
	return Record{
		FieldEndYear:    intOrNil(in.EndYear),
		FieldStartYear:  intOrNil(in.StartYear),
		FieldIntensity:  json.Number(strconv.Itoa(in.Intensity)),
		FieldRelevance:  json.Number(strconv.Itoa(in.Relevance)),
		FieldLikelihood: json.Number(strconv.Itoa(in.Likelihood)),
		FieldImpact:     floatOrNil(in.Impact),
		FieldSector:     stringOrNil(in.Sector),
		FieldTopic:      stringOrNil(in.Topic),
		FieldInsight:    in.Insight,
		FieldURL:        in.URL,
		FieldRegion:     stringOrNil(in.Region),
		FieldCountry:    stringOrNil(in.Country),
		FieldPestle:     stringOrNil(in.Pestle),
		FieldSource:     in.Source,
		FieldTitle:      in.Title,
		FieldAdded:      in.Added,
		FieldPublished:  in.Published,
	}
}

// InsightFromRecord строит строку таблицы из очищенной записи.
// Обязательные поля должны присутствовать, числовые — быть числами.
func InsightFromRecord(r Record) (Insight, error) {
	var (
		in  Insight
		err error
	)

	if in.EndYear, err = optionalInt(r, FieldEndYear); err != nil {
		return in, err
	}
	if in.StartYear, err = optionalInt(r, FieldStartYear); err != nil {
		return in, err
	}
	if in.Intensity, err = requiredInt(r, FieldIntensity); err != nil {
		return in, err
	}
	if in.Relevance, err = requiredInt(r, FieldRelevance); err != nil {
		return in, err
	}
	if in.Likelihood, err = requiredInt(r, FieldLikelihood); err != nil {
		return in, err
	}
	if in.Impact, err = optionalFloat(r, FieldImpact); err != nil {
		return in, err
	}

	in.Sector = optionalString(r, FieldSector)
	in.Topic = optionalString(r, FieldTopic)
	in.Region = optionalString(r, FieldRegion)
	in.Country = optionalString(r, FieldCountry)
	in.Pestle = optionalString(r, FieldPestle)

	required := []struct {
		field string
		dst   *string
	}{
		{FieldInsight, &in.Insight},
		{FieldURL, &in.URL},
		{FieldSource, &in.Source},
		{FieldTitle, &in.Title},
		{FieldAdded, &in.Added},
		{FieldPublished, &in.Published},
	}
	for _, f := range required {
		s, ok := r.String(f.field)
		if !ok {
			return in, fmt.Errorf("field %s: required text value missing", f.field)
		}
		*f.dst = s
	}
	return in, nil
}

// Number приводит значение числового поля к float64.
// Строки, даже похожие на число, числом не считаются.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Integer приводит значение к целому. Число с нулевой дробной частью (6.0) считается целым.
func Integer(v any) (int64, bool) {
	f, ok := Number(v)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func optionalInt(r Record, field string) (*int, error) {
	v := r[field]
	if v == nil {
		return nil, nil
	}
	n, err := toInt(field, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func requiredInt(r Record, field string) (int, error) {
	v := r[field]
	if v == nil {
		return 0, fmt.Errorf("field %s: required numeric value missing", field)
	}
	return toInt(field, v)
}

func toInt(field string, v any) (int, error) {
	n, ok := Integer(v)
	if !ok {
		return 0, fmt.Errorf("field %s: %v is not an integer", field, v)
	}
	return int(n), nil
}

func optionalFloat(r Record, field string) (*float64, error) {
	v := r[field]
	if v == nil {
		return nil, nil
	}
	f, ok := Number(v)
	if !ok {
		return nil, fmt.Errorf("field %s: unexpected value %v (%T)", field, v, v)
	}
	return &f, nil
}

func optionalString(r Record, field string) *string {
	s, ok := r.String(field)
	if !ok {
		return nil
	}
	return &s
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return json.Number(strconv.Itoa(*p))
}

func floatOrNil(p *float64) any {
	if p == nil {
		return nil
	}
	return json.Number(strconv.FormatFloat(*p, 'f', -1, 64))
}

func stringOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
