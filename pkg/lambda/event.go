package lambda

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"options-contracts-api/internal/models"
)

// Parameter sources, in the order they are consulted
const (
	SourceQueryString = "query_string"
	SourceHeaders     = "headers"
	SourceBody        = "body"
	SourceDirect      = "direct"
)

// Invocation is a decoded function event
type Invocation struct {
	RequestID string
	Source    string
	Params    models.QueryParams
	Request   *Request
}

// ParseEvent decodes an API Gateway proxy event or a direct invocation
// payload. Parameters come from the first source that carries any
// recognized key: query string, headers, body, then the payload itself.
// Values may be JSON strings or numbers in every source.
func ParseEvent(ctx context.Context, raw json.RawMessage) (*Invocation, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: event must be a JSON object", models.ErrInvalidQuery)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: malformed event: %v", models.ErrInvalidQuery, err)
	}

	inv := &Invocation{}
	if id, ok := scalarString(objectFields(fields["requestContext"])["requestId"]); ok {
		inv.RequestID = id
	}

	body := eventBody(fields)

	// The typed view is informational; non-string values make it unavailable
	var proxy events.APIGatewayProxyRequest
	if err := json.Unmarshal(raw, &proxy); err == nil {
		inv.Request = &Request{
			Method:      proxy.HTTPMethod,
			Path:        proxy.Path,
			Headers:     proxy.Headers,
			QueryParams: proxy.QueryStringParameters,
			Body:        body,
			PathParams:  proxy.PathParameters,
		}
	}

	if params := paramsFromFields(objectFields(fields["queryStringParameters"]), ""); !params.IsEmpty() {
		inv.Source, inv.Params = SourceQueryString, params
	} else if params := paramsFromFields(objectFields(fields["headers"]), ""); !params.IsEmpty() {
		inv.Source, inv.Params = SourceHeaders, params
	} else if params := paramsFromJSON(body); !params.IsEmpty() {
		inv.Source, inv.Params = SourceBody, params
	}

	pathTicker := paramsFromFields(objectFields(fields["pathParameters"]), "").OptionTicker

	if inv.Source == "" {
		inv.Source = SourceDirect
		inv.Params = paramsFromFields(fields, pathTicker)
	} else if inv.Params.OptionTicker == "" {
		inv.Params.OptionTicker = pathTicker
	}

	if inv.RequestID == "" {
		inv.RequestID = RequestIDFromContext(ctx)
	}

	return inv, nil
}

// RequestIDFromContext returns the Lambda request id, or a fresh UUID
// outside of the Lambda runtime
func RequestIDFromContext(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.New().String()
}

// eventBody returns the proxy body, base64-decoded when flagged
func eventBody(fields map[string]json.RawMessage) []byte {
	var body string
	if err := json.Unmarshal(fields["body"], &body); err != nil || body == "" {
		return nil
	}
	var encoded bool
	if err := json.Unmarshal(fields["isBase64Encoded"], &encoded); err == nil && encoded {
		if decoded, err := base64.StdEncoding.DecodeString(body); err == nil {
			return decoded
		}
	}
	return []byte(body)
}

// normalizeKey folds header style names such as "Ticker-Symbol" onto "ticker_symbol"
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

func setParam(params *models.QueryParams, key, value string) {
	switch normalizeKey(key) {
	case "ticker_symbol":
		params.TickerSymbol = value
	case "api_key":
		params.APIKey = value
	case "limit":
		params.Limit = value
	case "days_forward":
		params.DaysForward = value
	case "contract_type":
		params.ContractType = value
	case "option_ticker":
		params.OptionTicker = value
	}
}

func paramsFromJSON(body []byte) models.QueryParams {
	return paramsFromFields(objectFields(body), "")
}

// objectFields decodes a JSON object; anything else yields nil
func objectFields(raw []byte) map[string]json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

// paramsFromFields accepts JSON strings and numbers; other value types are ignored
func paramsFromFields(fields map[string]json.RawMessage, optionTicker string) models.QueryParams {
	params := models.QueryParams{OptionTicker: optionTicker}
	for k, raw := range fields {
		if v, ok := scalarString(raw); ok {
			setParam(&params, k, v)
		}
	}
	return params
}

func scalarString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", false
		}
		return n.String(), true
	default:
		return "", false
	}
}

// NewEnvelope encodes body as the envelope's response string
func NewEnvelope(requestID string, body interface{}) (*Envelope, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return &Envelope{RequestID: requestID, Response: string(encoded)}, nil
}
