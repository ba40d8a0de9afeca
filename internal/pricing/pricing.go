package pricing

import "fmt"

type Level string

const (
	Low Level = "low"
	Mid Level = "mid"
	Max Level = "max"
)

const (
	lowCeiling = 300
	midCeiling = 800
)

// Static prices in RUB, used when the event payload carries no fee data.
var staticPrice = map[Level]int{
	Low: 1500,
	Mid: 2500,
	Max: 3500,
}

type Tier struct {
	Level        Level
	Remaining    int // slots left before the next tier; valid only if HasRemaining
	HasRemaining bool
}

// For picks the tier for the number of adult registrants. A count equal to a
// ceiling stays in the lower tier.
func For(adult int) Tier {
	switch {
	case adult > midCeiling:
		return Tier{Level: Max}
	case adult > lowCeiling:
		return Tier{Level: Mid, Remaining: midCeiling - adult, HasRemaining: true}
	default:
		return Tier{Level: Low, Remaining: lowCeiling - adult, HasRemaining: true}
	}
}

func (t Tier) StaticPrice() int {
	return staticPrice[t.Level]
}

func (t Tier) Describe() string {
	if !t.HasRemaining {
		return "слоты продаются по максимальной цене"
	}
	return fmt.Sprintf("до повышения цены осталось %d слотов", t.Remaining)
}
