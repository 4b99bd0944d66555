package models

import "time"

// KVEntry is one stored key with its optimistic-concurrency stamp.
type KVEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
