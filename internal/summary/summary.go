// Package summary turns the event payload into the race statistics message.
package summary

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"regplace-bot/internal/jsondoc"
	"regplace-bot/internal/models"
	"regplace-bot/internal/pricing"
)

// The event always lists its races in this order.
const (
	idx30k = iota
	idx20k
	idx10k
	idxKids
	raceCount
)

const currency = "руб."

// noFee stands in for an adult distance without a fee.
const noFee = "—"

// FeeMismatchError reports adult distances priced differently, or only some
// of them priced. The summary is still rendered, with a marker instead of a
// price.
type FeeMismatchError struct {
	Fees []string // one per adult distance, noFee where absent
}

func (e *FeeMismatchError) Error() string {
	return "inconsistent adult fees: " + strings.Join(e.Fees, ", ")
}

type Report struct {
	Event    models.RaceEvent
	Text     string
	Warnings []error
}

// Build extracts the event and renders it. Any shape problem fails the whole
// build; nothing is partially rendered.
func Build(payload []byte) (Report, error) {
	doc, err := jsondoc.Parse(payload)
	if err != nil {
		return Report{}, err
	}
	ev, err := Extract(doc)
	if err != nil {
		return Report{}, err
	}
	text, warns := Format(ev)
	return Report{Event: ev, Text: text, Warnings: warns}, nil
}

func Extract(doc *jsondoc.Doc) (models.RaceEvent, error) {
	var ev models.RaceEvent
	var err error
	if ev.Name, err = doc.String("$.event.name"); err != nil {
		return ev, err
	}
	if ev.TotalReady, err = doc.Count("$.event.heats_ready_count"); err != nil {
		return ev, err
	}
	n, err := doc.Len("$.event.races")
	if err != nil {
		return ev, err
	}
	if n < raceCount {
		return ev, &jsondoc.ExtractionError{
			Path:   "$.event.races",
			Reason: fmt.Sprintf("want %d races, got %d", raceCount, n),
		}
	}

	ev.Distances = make([]models.RaceDistance, raceCount)
	for i := range ev.Distances {
		d := &ev.Distances[i]
		base := fmt.Sprintf("$.event.races[%d]", i)
		if d.Name, err = doc.String(base + ".name"); err != nil {
			return ev, err
		}
		if d.ReadyHeats, err = doc.Count(base + ".heats_ready_count"); err != nil {
			return ev, err
		}
		if d.Fee, d.HasFee, err = doc.OptDecimal(base + ".fee.base_amount"); err != nil {
			return ev, err
		}
	}

	adult := ev.Distances[:idxKids]
	ev.AdultReadySum = lo.SumBy(adult, func(d models.RaceDistance) int { return d.ReadyHeats })
	ev.HasFees = lo.SomeBy(adult, func(d models.RaceDistance) bool { return d.HasFee })
	return ev, nil
}

// Format renders the event. The line order is fixed.
func Format(ev models.RaceEvent) (string, []error) {
	var warns []error
	tier := pricing.For(ev.AdultReadySum)

	var price string
	switch {
	case !ev.HasFees:
		price = fmt.Sprintf("%d %s (%s)", tier.StaticPrice(), currency, tier.Describe())
	case !sameFee(ev.Distances[:idxKids]):
		fees := lo.Map(ev.Distances[:idxKids], func(d models.RaceDistance, _ int) string { return feeText(d) })
		warns = append(warns, &FeeMismatchError{Fees: fees})
		price = "цены на дистанциях не совпадают (" + strings.Join(fees, "/") + ")"
	default:
		price = fmt.Sprintf("%s %s (%s)", ev.Distances[idx30k].Fee.String(), currency, tier.Describe())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Название гонки: %s\n", ev.Name)
	fmt.Fprintf(&b, "Всего зарегистрировано: %d\n", ev.TotalReady)
	for _, d := range ev.Distances {
		fmt.Fprintf(&b, "%s: %d\n", d.Name, d.ReadyHeats)
	}
	fmt.Fprintf(&b, "Стоимость участия: %s", price)
	return b.String(), warns
}

// sameFee holds when every distance carries a fee and all fees are equal.
func sameFee(ds []models.RaceDistance) bool {
	return lo.EveryBy(ds, func(d models.RaceDistance) bool { return d.HasFee && d.Fee.Equal(ds[0].Fee) })
}

func feeText(d models.RaceDistance) string {
	if !d.HasFee {
		return noFee
	}
	return d.Fee.String()
}
