// Package smartstore adds key namespacing and optional expiry on top of a
// durable string key/value backend.
//
// # Keys
//
// Every logical key is stored under namespace + "_" + key, so two stores
// with different namespaces can share one backend. The key space stays
// flat: isolation comes only from the separator.
//
// # Values and expiry
//
// Values are encoded as JSON. With WithTTL the absolute expiry, in Unix
// milliseconds, is stored next to the payload. The default TaggedCodec
// writes
//
//	1700000001000--cache--{"name":"Ada"}
//
// for an expiring entry and the bare JSON otherwise. EnvelopeCodec writes
// a JSON record instead and avoids the sentinel.
//
// Expiry is lazy. Get treats an entry past its expiry as missing but leaves
// it in the backend unless WithPurgeOnRead is set. Nothing sweeps in the
// background.
//
// # Quick start
//
//	backend := store.NewMemoryStore(0)
//	s, err := smartstore.New(ctx, "app", backend)
//	if err != nil {
//	    // errors.Is(err, smartstore.ErrBackendUnavailable)
//	}
//	_ = s.Set(ctx, "token", "xyz", smartstore.WithTTL(time.Second))
//	token, found, err := smartstore.Lookup[string](ctx, s, "token")
//
// # Errors
//
// Failures produced by the store are *Error values and match the sentinels
// ErrMissingArgument, ErrUnsupportedValue, ErrBackendUnavailable and
// ErrCorruptEntry with errors.Is. Errors returned by the backend are passed
// through unchanged.
package smartstore
