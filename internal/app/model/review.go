package model

import "time"

// Review is one user review of a product. IDs are creation-time derived
// (unix milliseconds, bumped when two reviews land in the same tick) and
// ProductID is not validated against the catalog.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int       `json:"product_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}
