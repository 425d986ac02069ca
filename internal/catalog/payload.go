package catalog

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog/log"
)

// CategoryPayload is a parsed category attribute bag. The empty map is the
// "no payload" value; a CategoryPayload is never nil.
type CategoryPayload map[string]interface{}

// ParseCategoryPayload turns raw payload input into a CategoryPayload.
// It is total: absent input, malformed JSON, serialized strings that fail to
// parse, and anything that decodes to a non-object all become the empty
// payload. Parse failures are logged, never surfaced.
func ParseCategoryPayload(raw json.RawMessage) CategoryPayload {
	if len(raw) == 0 {
		return CategoryPayload{}
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn().Err(err).Msg("Category payload is not valid JSON, using empty payload")
		return CategoryPayload{}
	}

	// Clients sometimes double-encode payloads as JSON strings.
	if s, ok := v.(string); ok {
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			log.Warn().Err(err).Msg("Failed to parse serialized category payload, using empty payload")
			return CategoryPayload{}
		}
	}

	m, ok := v.(map[string]interface{})
	if !ok || m == nil {
		return CategoryPayload{}
	}
	return CategoryPayload(m)
}

// text coerces a payload value to its text form. Objects and arrays collapse
// to their JSON encoding.
func text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
