// Package heat renders a participant registration record. Upstream schemas
// are adapted into models.HeatRecord first, so Format never sees raw JSON.
package heat

import (
	"fmt"
	"strings"
	"time"

	"regplace-bot/internal/codes"
	"regplace-bot/internal/jsondoc"
	"regplace-bot/internal/models"
)

const noneMarker = "нет"

type Extractor struct {
	races *codes.RaceTable
}

func NewExtractor(races *codes.RaceTable) *Extractor {
	return &Extractor{races: races}
}

// Extract parses either supported schema and renders the record.
func (x *Extractor) Extract(payload []byte) (string, error) {
	doc, err := jsondoc.Parse(payload)
	if err != nil {
		return "", err
	}
	rec, err := Normalize(doc)
	if err != nil {
		return "", err
	}
	return x.Format(rec)
}

// Normalize picks the adapter by the top-level key.
func Normalize(doc *jsondoc.Doc) (models.HeatRecord, error) {
	switch {
	case doc.Has("$.data"):
		return fromNested(doc)
	case doc.Has("$.heat"):
		return fromFlat(doc)
	}
	return models.HeatRecord{}, &jsondoc.ExtractionError{Path: "$", Reason: "neither data nor heat present"}
}

type field struct {
	name string
	dst  *string
}

func readFields(doc *jsondoc.Doc, base string, fields []field) error {
	for _, f := range fields {
		v, err := doc.Text(base + "." + f.name)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// fromNested reads the v3 JSON:API document.
func fromNested(doc *jsondoc.Doc) (models.HeatRecord, error) {
	var r models.HeatRecord
	const base = "$.data.attributes"
	err := readFields(doc, base, []field{
		{"number", &r.ID},
		{"status", &r.Status},
		{"name_first", &r.FirstName},
		{"name_last", &r.LastName},
		{"birth_date", &r.BirthDate},
		{"gender", &r.Gender},
	})
	if err != nil {
		return r, err
	}
	if r.RaceID, err = doc.String("$.data.relationships.race.data.id"); err != nil {
		return r, err
	}
	return r, readOptional(doc, base, &r)
}

// fromFlat reads the v1 "heat" object. It carries no race relationship.
func fromFlat(doc *jsondoc.Doc) (models.HeatRecord, error) {
	var r models.HeatRecord
	const base = "$.heat"
	err := readFields(doc, base, []field{
		{"id", &r.ID},
		{"status", &r.Status},
		{"name_first", &r.FirstName},
		{"name_last", &r.LastName},
		{"birth_date", &r.BirthDate},
		{"gender", &r.Gender},
	})
	if err != nil {
		return r, err
	}
	return r, readOptional(doc, base, &r)
}

func readOptional(doc *jsondoc.Doc, base string, r *models.HeatRecord) error {
	var err error
	if r.MiddleName, _, err = doc.OptText(base + ".name_middle"); err != nil {
		return err
	}
	if r.PaidAt, _, err = doc.OptText(base + ".paid_at"); err != nil {
		return err
	}
	if r.Bib, _, err = doc.OptText(base + ".bib"); err != nil {
		return err
	}
	return nil
}

// Format renders the record with the name as last, first, middle.
func (x *Extractor) Format(r models.HeatRecord) (string, error) {
	status, err := codes.Status(r.Status)
	if err != nil {
		return "", err
	}
	gender, err := codes.Gender(r.Gender)
	if err != nil {
		return "", err
	}
	distance := ""
	if r.RaceID != "" {
		if distance, err = x.races.Distance(r.RaceID); err != nil {
			return "", err
		}
	}
	paid, err := PaymentDate(r.PaidAt)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Номер: %s\n", r.ID)
	fmt.Fprintf(&b, "Статус: %s\n", status)
	if distance != "" {
		fmt.Fprintf(&b, "Дистанция: %s\n", distance)
	}
	fmt.Fprintf(&b, "ФИО: %s\n", fullName(r))
	fmt.Fprintf(&b, "Дата рождения: %s\n", r.BirthDate)
	fmt.Fprintf(&b, "Пол: %s\n", gender)
	fmt.Fprintf(&b, "Дата оплаты заявки: %s", paid)
	if strings.TrimSpace(r.Bib) != "" {
		fmt.Fprintf(&b, "\nСтартовый номер: %s", r.Bib)
	}
	return b.String(), nil
}

func fullName(r models.HeatRecord) string {
	parts := []string{r.LastName, r.FirstName}
	if m := strings.TrimSpace(r.MiddleName); m != "" {
		parts = append(parts, m)
	}
	return strings.Join(parts, " ")
}

// PaymentDate keeps the date part of an ISO timestamp. An empty timestamp
// means the registration is unpaid.
func PaymentDate(ts string) (string, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return noneMarker, nil
	}
	date, _, _ := strings.Cut(ts, "T")
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return "", &jsondoc.ExtractionError{Path: "paid_at", Reason: "want ISO timestamp", Err: err}
	}
	return date, nil
}
