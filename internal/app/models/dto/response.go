package dto

import (
	"time"
)

// APIResponse is the standard single-object response envelope.
type APIResponse struct {
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// PagedResponse is the list envelope: a count plus optional next/previous
// page links around the result slice.
type PagedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}
