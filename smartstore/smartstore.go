package smartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/codetesla51/smartstore/store"
)

// DefaultSeparator joins namespace and key into the backend key.
const DefaultSeparator = "_"

// Store namespaces keys and adds optional expiry on top of a store.Backend.
// It holds no locks of its own; concurrent writes to one key are
// last-write-wins, as decided by the backend.
type Store struct {
	namespace   string
	separator   string
	prefix      string
	backend     store.Backend
	codec       Codec
	now         Clock
	logger      Logger
	logTag      string
	purgeOnRead bool
	metrics     bool
}

// New binds namespace to backend. It fails with ErrBackendUnavailable if the
// backend does not pass Probe, so a returned Store is always usable.
func New(ctx context.Context, namespace string, backend store.Backend, opts ...Option) (*Store, error) {
	if namespace == "" {
		return nil, newError(CodeMissingArgument, "new", "", errors.New("namespace is required"))
	}
	if !Probe(ctx, backend) {
		return nil, newError(CodeBackendUnavailable, "new", "", fmt.Errorf("backend %T is not available", backend))
	}

	s := &Store{
		namespace: namespace,
		separator: DefaultSeparator,
		backend:   backend,
		codec:     TaggedCodec{},
		now:       time.Now,
		logger:    defaultLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.prefix = s.namespace + s.separator
	return s, nil
}

// Probe reports whether b is usable. It never panics: a nil backend or a
// panicking Available both count as unavailable.
func Probe(ctx context.Context, b store.Backend) (ok bool) {
	if b == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return b.Available(ctx)
}

// Namespace returns the namespace the store was created with.
func (s *Store) Namespace() string {
	return s.namespace
}

// Key returns the backend key used for a logical key.
func (s *Store) Key(key string) string {
	return s.prefix + key
}

func (s *Store) logf(ctx context.Context, level string, format string, args ...any) {
	if s.logTag != "" {
		format = s.logTag + " " + format
	}
	switch level {
	case "debug":
		s.logger.Debug(ctx, format, args...)
	case "info":
		s.logger.Info(ctx, format, args...)
	case "warn":
		s.logger.Warn(ctx, format, args...)
	case "error":
		s.logger.Error(ctx, format, args...)
	}
}

// Set stores value under key, overwriting any previous entry. The value is
// encoded as JSON; values JSON cannot represent (functions, channels,
// complex numbers, NaN, cycles) fail with ErrUnsupportedValue and nothing is
// written. Errors from the backend, such as store.ErrQuotaExceeded, are
// returned unchanged.
func (s *Store) Set(ctx context.Context, key string, value any, opts ...SetOption) error {
	if key == "" {
		s.record("set", resultError)
		return newError(CodeMissingArgument, "set", "", errors.New("key is required"))
	}
	if !storable(value) {
		s.record("set", resultError)
		return newError(CodeUnsupportedValue, "set", key, fmt.Errorf("cannot store %T", value))
	}
	payload, err := marshal(value)
	if err != nil {
		s.record("set", resultError)
		return newError(CodeUnsupportedValue, "set", key, err)
	}

	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}
	expiresAt := NoExpiry
	if o.ttl > 0 {
		expiresAt = s.now().Add(o.ttl).UnixMilli()
	}

	raw, err := s.codec.Encode(payload, expiresAt)
	if err != nil {
		s.record("set", resultError)
		return newError(CodeUnsupportedValue, "set", key, err)
	}

	if err := s.backend.Set(ctx, s.Key(key), raw); err != nil {
		s.logf(ctx, "error", "Set %s failed: %v", key, err)
		s.record("set", resultError)
		return err
	}
	s.record("set", resultOK)
	return nil
}

// Get decodes the value stored under key into dst, which must be a pointer
// as for json.Unmarshal. It reports false if the key is missing or its
// entry has expired; dst is left untouched in that case.
func (s *Store) Get(ctx context.Context, key string, dst any) (bool, error) {
	payload, found, err := s.load(ctx, "get", key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("smartstore: get %q: %w", key, err)
	}
	return true, nil
}

// GetRaw is Get without the final decode step.
func (s *Store) GetRaw(ctx context.Context, key string) (json.RawMessage, bool, error) {
	return s.load(ctx, "get", key)
}

// Lookup is a typed Get.
func Lookup[T any](ctx context.Context, s *Store, key string) (T, bool, error) {
	var v T
	found, err := s.Get(ctx, key, &v)
	if err != nil || !found {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// Raw returns the string physically stored for key, expired or not.
func (s *Store) Raw(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, newError(CodeMissingArgument, "raw", "", errors.New("key is required"))
	}
	return s.backend.Get(ctx, s.Key(key))
}

func (s *Store) load(ctx context.Context, op, key string) (json.RawMessage, bool, error) {
	if key == "" {
		s.record(op, resultError)
		return nil, false, newError(CodeMissingArgument, op, "", errors.New("key is required"))
	}
	fullKey := s.Key(key)

	raw, ok, err := s.backend.Get(ctx, fullKey)
	if err != nil {
		s.logf(ctx, "error", "Get %s failed: %v", key, err)
		s.record(op, resultError)
		return nil, false, err
	}
	if !ok {
		s.record(op, resultMiss)
		return nil, false, nil
	}

	payload, expiresAt, err := s.codec.Decode(raw)
	if err != nil {
		s.logf(ctx, "warn", "Get %s: corrupt entry: %v", key, err)
		s.record(op, resultError)
		return nil, false, newError(CodeCorruptEntry, op, key, err)
	}

	// Expiry is compared as a number of milliseconds; an entry is still
	// readable during the millisecond it expires in.
	if expiresAt != NoExpiry && s.now().UnixMilli() > expiresAt {
		s.logf(ctx, "debug", "Get %s: expired at %d", key, expiresAt)
		s.record(op, resultExpired)
		if s.purgeOnRead {
			if err := s.backend.Remove(ctx, fullKey); err != nil {
				s.logf(ctx, "warn", "Purge %s failed: %v", key, err)
			}
		}
		return nil, false, nil
	}

	if !json.Valid(payload) {
		s.logf(ctx, "warn", "Get %s: corrupt entry: invalid JSON payload", key)
		s.record(op, resultError)
		return nil, false, newError(CodeCorruptEntry, op, key, errors.New("invalid JSON payload"))
	}

	s.record(op, resultOK)
	return payload, true, nil
}

// Remove deletes key. Removing a key that does not exist is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if key == "" {
		s.record("remove", resultError)
		return newError(CodeMissingArgument, "remove", "", errors.New("key is required"))
	}
	if err := s.backend.Remove(ctx, s.Key(key)); err != nil {
		s.logf(ctx, "error", "Remove %s failed: %v", key, err)
		s.record("remove", resultError)
		return err
	}
	s.record("remove", resultOK)
	return nil
}
