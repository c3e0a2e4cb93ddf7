package entity

import "time"

// Donation is an immutable ledger entry linking a donor to an event.
type Donation struct {
	ID           string
	DonorID      string
	EventID      string
	Amount       float64
	DonationDate time.Time
}
