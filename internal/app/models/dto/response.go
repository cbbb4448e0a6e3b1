package dto

import "time"

// APIResponse is the standard response envelope for all endpoints
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// SuccessResponse represents a plain success message
type SuccessResponse struct {
	Message string `json:"message"`
}

// Page wraps one page of results with its metadata. Content holds the raw
// slice the store already computed; the envelope adds no filtering.
type Page struct {
	Content       interface{} `json:"content"`
	PageNumber    int         `json:"pageNumber"`
	PageSize      int         `json:"pageSize"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
	Sort          string      `json:"sort"`
}
