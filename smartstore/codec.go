package smartstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CacheTag separates the expiry timestamp from the payload in TaggedCodec.
const CacheTag = "--cache--"

// NoExpiry marks an entry that never expires.
const NoExpiry int64 = -1

// Codec turns a JSON payload and its expiry into the string written to the
// backend, and back. Expiry values are Unix epoch milliseconds, or NoExpiry.
// Zero is a valid expiry and has long passed.
type Codec interface {
	Encode(payload []byte, expiresAt int64) (string, error)
	Decode(raw string) (payload []byte, expiresAt int64, err error)
}

// TaggedCodec writes "<expiry>--cache--<json>" for expiring entries and the
// bare JSON for NoExpiry.
//
// The tag is a sentinel, not an escape. Decoding treats a value as tagged
// only when the text before the first tag is a run of decimal digits. Untagged
// JSON that starts with a digit is a number and cannot contain the tag, so
// the split is unambiguous for anything this codec wrote itself.
type TaggedCodec struct{}

func (TaggedCodec) Encode(payload []byte, expiresAt int64) (string, error) {
	if expiresAt == NoExpiry {
		return string(payload), nil
	}
	if expiresAt < 0 {
		return "", fmt.Errorf("negative expiry %d", expiresAt)
	}
	return strconv.FormatInt(expiresAt, 10) + CacheTag + string(payload), nil
}

func (TaggedCodec) Decode(raw string) ([]byte, int64, error) {
	prefix, payload, found := strings.Cut(raw, CacheTag)
	if !found || !isDigits(prefix) {
		return []byte(raw), NoExpiry, nil
	}
	expiresAt, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("parse expiry %q: %w", prefix, err)
	}
	return []byte(payload), expiresAt, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// EnvelopeCodec stores every entry as a JSON record {"v":...,"exp":...}.
type EnvelopeCodec struct{}

type envelope struct {
	Value     json.RawMessage `json:"v"`
	ExpiresAt *int64          `json:"exp,omitempty"`
}

func (EnvelopeCodec) Encode(payload []byte, expiresAt int64) (string, error) {
	env := envelope{Value: payload}
	if expiresAt != NoExpiry {
		if expiresAt < 0 {
			return "", fmt.Errorf("negative expiry %d", expiresAt)
		}
		env.ExpiresAt = &expiresAt
	}
	data, err := marshal(env)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (EnvelopeCodec) Decode(raw string) ([]byte, int64, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, 0, err
	}
	if env.Value == nil {
		return nil, 0, errors.New("envelope has no value")
	}
	if env.ExpiresAt == nil {
		return env.Value, NoExpiry, nil
	}
	if *env.ExpiresAt < 0 {
		return nil, 0, fmt.Errorf("negative expiry %d", *env.ExpiresAt)
	}
	return env.Value, *env.ExpiresAt, nil
}

// marshal is json.Marshal without HTML escaping, so "<" stays "<" as it
// does in JavaScript's JSON.stringify.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// CodecByName returns the codec registered under name ("tagged" or
// "envelope").
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "tagged":
		return TaggedCodec{}, nil
	case "envelope":
		return EnvelopeCodec{}, nil
	default:
		return nil, fmt.Errorf("invalid codec %s", name)
	}
}
