package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var errNotObject = errors.New("parsed value is not a JSON object")

// ParseObject decodes span as a JSON object. When strict decoding fails the
// span is run through jsonrepair and decoded again, which recovers common
// model mistakes such as single quotes, unquoted keys and trailing commas.
func ParseObject(span string) (map[string]any, error) {
	span = strings.TrimSpace(span)
	if span == "" {
		return nil, errors.New("empty input")
	}

	object, err := decodeObject(span)
	if err == nil {
		return object, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(span)
	if repairErr != nil {
		return nil, fmt.Errorf("unmarshal failed: %w, repair failed: %v", err, repairErr)
	}

	object, err = decodeObject(repaired)
	if err != nil {
		return nil, fmt.Errorf("unmarshal of repaired JSON failed: %w", err)
	}
	return object, nil
}

func decodeObject(content string) (map[string]any, error) {
	var value any
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return nil, err
	}
	object, ok := value.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return object, nil
}

// DecodeAs decodes text into a T, repairing malformed JSON the same way
// ParseObject does. Empty input and "null" yield the zero value.
func DecodeAs[T any](text string) (T, error) {
	var out T
	text = strings.TrimSpace(text)
	if text == "" || text == "null" {
		return out, nil
	}

	err := json.Unmarshal([]byte(text), &out)
	if err == nil {
		return out, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(text)
	if repairErr != nil {
		return out, fmt.Errorf("unmarshal failed: %w, repair failed: %v", err, repairErr)
	}

	var retry T
	if err := json.Unmarshal([]byte(repaired), &retry); err != nil {
		return out, fmt.Errorf("unmarshal of repaired JSON failed: %w", err)
	}
	return retry, nil
}
