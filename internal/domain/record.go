package domain

import "time"

// Record is the persisted remark entry. It is backend-agnostic: the
// relational store uses numeric ids rendered as strings, the document
// store uses ObjectID hex. OwnerID is populated only by the document
// store and never leaves the service layer.
type Record struct {
	ID      string
	OwnerID string
	Remark  string
	Date    time.Time
}
