package formatter

import (
	"encoding/json"
)

type responseBuilder struct{}

func newResponseBuilder() *responseBuilder { return &responseBuilder{} }

// NewResponseBuilder creates a new response builder for formatting route responses
func NewResponseBuilder() *responseBuilder {
	return newResponseBuilder()
}

// BuildJSON serializes any response view to JSON
func (rb *responseBuilder) BuildJSON(res any) []byte {
	b, _ := json.Marshal(res)
	return b
}
