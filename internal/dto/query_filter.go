package dto

import "time"

// QueryFilter is the request-scoped set of semantic filters a tool call resolves to.
type QueryFilter struct {
	Namespace  string
	PodPattern string
	Since      time.Time
	Until      time.Time
	Limit      int
}
