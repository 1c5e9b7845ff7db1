package pagination

import "iter"

// Flatten converts a sequence of pages into a sequence of their items.
// Item order is preserved within and across pages. An error from the page
// sequence is yielded once, after every item received before it.
func Flatten[T any](pages iter.Seq2[*Page[T], error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for page, err := range pages {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// Stream is a single-use, cancellable cursor over a lazy item sequence.
//
// It can be consumed either by pulling:
//
//	defer stream.Close()
//	for stream.Next() {
//	    item := stream.Item()
//	}
//	if err := stream.Err(); err != nil {
//	    ...
//	}
//
// or with a range loop over All. A Stream is not safe for concurrent use and
// cannot be rewound; request a new one to start over.
type Stream[T any] struct {
	seq  iter.Seq2[T, error]
	next func() (T, error, bool)
	stop func()
	item T
	err  error
	done bool
}

// NewStream wraps seq. The sequence is not started until the first call to
// Next or the first iteration of All.
func NewStream[T any](seq iter.Seq2[T, error]) *Stream[T] {
	return &Stream[T]{seq: seq}
}

// Next advances to the next item. It returns false once the sequence is
// exhausted, has failed, or the stream was closed.
func (s *Stream[T]) Next() bool {
	if s.done {
		return false
	}
	if s.next == nil {
		s.next, s.stop = iter.Pull2(s.seq)
	}

	item, err, ok := s.next()
	if !ok {
		s.Close()
		return false
	}
	if err != nil {
		s.err = err
		s.Close()
		return false
	}

	s.item = item
	return true
}

// Item returns the item produced by the last successful call to Next.
func (s *Stream[T]) Item() T {
	return s.item
}

// Err returns the error that ended the stream, if any.
func (s *Stream[T]) Err() error {
	return s.err
}

// Close stops the stream. No further pages are requested after Close returns;
// a request already in flight is allowed to finish and its result discarded.
// Close is idempotent.
func (s *Stream[T]) Close() {
	if s.done {
		return
	}
	s.done = true

	var zero T
	s.item = zero
	if s.stop != nil {
		s.stop()
	}
}

// All returns the remaining items as a range-over-func sequence.
// Breaking out of the loop closes the stream.
func (s *Stream[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()

		for s.Next() {
			if !yield(s.Item(), nil) {
				return
			}
		}
		if s.err != nil {
			var zero T
			yield(zero, s.err)
		}
	}
}

// Collect drains the stream. On failure it returns the items received before
// the error together with the error.
func Collect[T any](s *Stream[T]) ([]T, error) {
	defer s.Close()

	var items []T
	for s.Next() {
		items = append(items, s.Item())
	}
	return items, s.Err()
}
