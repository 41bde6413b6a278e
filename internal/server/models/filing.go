package models

import "time"

// Filing is a company filing reference. StorageKey points at the source
// document in the S3-compatible object store; clients never receive the key
// itself, only a presigned URL.
type Filing struct {
	ID         string
	Symbol     string
	FilingType string
	Period     string
	FiledAt    time.Time
	StorageKey string
}
