package model

import "time"

// TimeLayout is the persisted timestamp format: fixed-width UTC so that
// lexicographic order matches chronological order.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Now returns the current UTC time in the persisted format.
func Now() string {
	return time.Now().UTC().Format(TimeLayout)
}

// Note is the persisted note record. The JSON field names are the storage
// contract; changing them breaks reading previously written blobs.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Owner     string `json:"owner"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
