package smartstore

import "time"

// Clock returns the current time. Tests replace it to move time forward
// without sleeping.
type Clock func() time.Time

// Option customizes Store behavior.
type Option func(*Store)

// WithCodec selects the stored representation. Defaults to TaggedCodec.
func WithCodec(c Codec) Option {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.now = c
		}
	}
}

// WithLogger specifies a logger for operation logging.
// If not provided, nothing is logged.
func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLogTag sets a tag prefix for all log messages.
func WithLogTag(tag string) Option {
	return func(s *Store) {
		s.logTag = tag
	}
}

// WithPurgeOnRead makes Get remove entries it finds expired. By default an
// expired entry stays in the backend until it is overwritten or removed.
func WithPurgeOnRead(purge bool) Option {
	return func(s *Store) {
		s.purgeOnRead = purge
	}
}

// WithSeparator changes the string placed between namespace and key.
// Defaults to "_".
func WithSeparator(sep string) Option {
	return func(s *Store) {
		s.separator = sep
	}
}

// WithMetrics turns operation counters on or off. Off by default.
func WithMetrics(enabled bool) Option {
	return func(s *Store) {
		s.metrics = enabled
	}
}

// SetOption customizes a single Set call.
type SetOption func(*setOptions)

type setOptions struct {
	ttl time.Duration
}

// WithTTL makes the entry expire ttl after it is written. A ttl of zero or
// less means no expiry.
func WithTTL(ttl time.Duration) SetOption {
	return func(o *setOptions) {
		o.ttl = ttl
	}
}
