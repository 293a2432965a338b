package types

import (
	"time"
)

// Case is a reported case record. The id is either pre-assigned by the
// client (reserved through NextCaseID) or taken from the cases sequence at
// insert time.
type Case struct {
	ID           int64     `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Country      string    `db:"country" json:"country"`
	Amount       float64   `db:"amount" json:"amount"`
	ReporterName string    `db:"reporter_name" json:"reporterName"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type CreateCaseRequest struct {
	ID           *int64  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Country      string  `json:"country"`
	Amount       float64 `json:"amount"`
	ReporterName string  `json:"reporterName"`
}

type Country struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}
