package lambda

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
}

// Envelope is the function's invocation result. Response carries the
// JSON-encoded body as a string.
type Envelope struct {
	RequestID string `json:"req_id"`
	Response  string `json:"response"`
}
