package model

import "time"

// RFMRow summarises the activity of a single calendar day.
type RFMRow struct {
	Date      time.Time `json:"date"`
	Recency   int       `json:"recency"`
	Frequency int       `json:"frequency"`
	Monetary  int       `json:"monetary"`
}

// RFMSnapshot is a stored RFM derivation.
type RFMSnapshot struct {
	CreatedAt  time.Time
	Range      DateRange
	ID         string
	SourceHash string
	Label      string
	Rows       []RFMRow
	RowCount   int
}
