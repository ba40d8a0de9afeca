package models

import "github.com/shopspring/decimal"

type RaceEvent struct {
	Name          string
	TotalReady    int
	Distances     []RaceDistance // 30 km, 20 km, 10 km, kids
	HasFees       bool // any adult distance carries a fee
	AdultReadySum int
}

type RaceDistance struct {
	Name       string
	ReadyHeats int
	Fee        decimal.Decimal
	HasFee     bool
}

// HeatRecord is the canonical participant record every upstream schema is
// adapted into before formatting.
type HeatRecord struct {
	ID         string
	Status     string // upstream code, e.g. "ready"
	FirstName  string
	LastName   string
	MiddleName string
	BirthDate  string
	Gender     string // upstream code, e.g. "female"
	PaidAt     string // raw timestamp, "" when unpaid
	Bib        string // "" when not assigned
	RaceID     string // race UUID, "" for the flat schema
}
