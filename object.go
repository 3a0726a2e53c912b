package sdk

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Object is a decoded JSON object returned by the service. Numbers are kept as
// json.Number so values round-trip without loss.
type Object map[string]any

func (o Object) str(key string) string {
	if o == nil {
		return ""
	}
	v, _ := o[key].(string)
	return v
}

// ObjectID returns the "objectId" field, or "".
func (o Object) ObjectID() string { return o.str("objectId") }

// SessionToken returns the "sessionToken" field set by signup and login, or "".
func (o Object) SessionToken() string { return o.str("sessionToken") }

// Results returns the "results" array of a list response as objects.
// Elements that are not JSON objects are skipped.
func (o Object) Results() []Object {
	raw, _ := o["results"].([]any)
	out := make([]Object, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Object(m))
		}
	}
	return out
}

func decodeObject(status int, data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj Object
	if err := dec.Decode(&obj); err != nil {
		return nil, &DecodeError{Status: status, Body: data, Err: err}
	}
	if obj == nil {
		return nil, &DecodeError{Status: status, Body: data, Err: errors.New("response is not a JSON object")}
	}
	if dec.More() {
		return nil, &DecodeError{Status: status, Body: data, Err: errors.New("trailing data after JSON object")}
	}
	return obj, nil
}
