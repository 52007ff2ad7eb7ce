package attrs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeJSON parses a JSON document into an ordered attribute map. The
// document root must be an object (or blank). Decoding walks the token
// stream directly because encoding/json's map decoding discards key order.
func DecodeJSON(data []byte) (*Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewMap(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	token, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("attrs: decode json: %w", err)
	}
	delim, ok := token.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("attrs: decode json: document root is %v, expected object", token)
	}

	m, err := jsonObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("attrs: decode json: trailing data after document")
	}
	return m, nil
}

// jsonObject consumes members until the matching close brace. The opening
// brace has already been read.
func jsonObject(dec *json.Decoder) (*Map, error) {
	m := NewMap()
	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("attrs: decode json key: %w", err)
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("attrs: decode json: object key %v is not a string", keyToken)
		}
		value, err := jsonValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("attrs: decode json: %w", err)
	}
	return m, nil
}

func jsonArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		item, err := jsonValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, fmt.Errorf("attrs: decode json: %w", err)
	}
	return Sequence(items...), nil
}

func jsonValue(dec *json.Decoder) (Value, error) {
	token, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("attrs: decode json value: %w", err)
	}

	switch typed := token.(type) {
	case json.Delim:
		switch typed {
		case '{':
			m, err := jsonObject(dec)
			if err != nil {
				return Value{}, err
			}
			return FromMap(m), nil
		case '[':
			return jsonArray(dec)
		default:
			return Value{}, fmt.Errorf("attrs: decode json: unexpected delimiter %q", typed.String())
		}
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case json.Number:
		if !strings.ContainsAny(typed.String(), ".eE") {
			if i, err := typed.Int64(); err == nil {
				return Int(i), nil
			}
		}
		f, err := typed.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("attrs: decode json number %q: %w", typed.String(), err)
		}
		return Float(f), nil
	case nil:
		return Nil(), nil
	default:
		return Value{}, fmt.Errorf("attrs: decode json: unsupported token %v", token)
	}
}
