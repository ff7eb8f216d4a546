// Package retry acquires view handles with caller-side backoff.
//
// The owner itself never waits: a conflicting export fails immediately.
// When the caller would rather wait out short-lived contention than
// handle the failure, these helpers retry contention errors under the
// given backoff policy. Usage errors are never retried.
package retry

import (
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/srediag/ownedbuf/pkg/ownedbuf"
)

// DefaultPolicy retries a handful of times with a short constant delay,
// which suits exports that are held for microseconds.
func DefaultPolicy() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(5*time.Millisecond), 10)
}

// Immutable acquires a shared view handle, retrying contention failures
// under policy.
func Immutable(owner *ownedbuf.Owner, policy backoff.BackOff) (*ownedbuf.ImmutableView, error) {
	return acquire(func() (*ownedbuf.ImmutableView, error) {
		return ownedbuf.NewImmutableView(owner)
	}, policy)
}

// Mutable acquires the exclusive view handle, retrying contention
// failures under policy.
func Mutable(owner *ownedbuf.Owner, policy backoff.BackOff) (*ownedbuf.MutableView, error) {
	return acquire(func() (*ownedbuf.MutableView, error) {
		return ownedbuf.NewMutableView(owner)
	}, policy)
}

func acquire[H any](newHandle func() (H, error), policy backoff.BackOff) (H, error) {
	var handle H
	op := func() error {
		h, err := newHandle()
		if err != nil {
			if ownedbuf.IsContention(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		handle = h
		return nil
	}
	if err := backoff.Retry(op, policy); err != nil {
		var zero H
		return zero, err
	}
	return handle, nil
}
