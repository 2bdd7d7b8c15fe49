package phrase

import (
	"context"
	"log/slog"
	"slices"
)

// budget bounds the number of working phrases a build may hold.
// A limit of zero or less is unbounded.
type budget int

// check returns [ErrExpansionLimitExceeded] if n exceeds the budget.
func (b budget) check(n int) error {
	if b > 0 && n > int(b) {
		return ErrExpansionLimitExceeded.With(
			slog.Int("limit", int(b)),
			slog.Int("size", n),
		)
	}

	return nil
}

// product returns the cartesian product of segments. Each segment lists the
// choices for one position of the output; a single-choice segment is fixed
// text. Earlier segments vary slowest, so the result is ordered depth-first,
// left to right. A segment with no choices yields no output.
func product[T any](ctx context.Context, segments [][]T, b budget) ([][]T, error) {
	out := [][]T{make([]T, 0, len(segments))}

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if len(seg) == 1 {
			for i := range out {
				out[i] = append(out[i], seg[0])
			}

			continue
		}

		if err := b.check(len(out) * len(seg)); err != nil {
			return nil, err
		}

		next := make([][]T, 0, len(out)*len(seg))

		for _, c := range out {
			for _, choice := range seg {
				next = append(next, append(slices.Clip(c), choice))
			}
		}

		out = next
	}

	return out, nil
}

// fanOut applies expand to every phrase and concatenates the results in
// order, checking the budget against the running total.
func fanOut[In, Out any](
	ctx context.Context,
	in []In,
	b budget,
	expand func(In) ([]Out, error),
) ([]Out, error) {
	out := make([]Out, 0, len(in))

	for _, p := range in {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		exp, err := expand(p)
		if err != nil {
			return nil, err
		}

		if err := b.check(len(out) + len(exp)); err != nil {
			return nil, err
		}

		out = append(out, exp...)
	}

	return out, nil
}
