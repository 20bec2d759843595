package record

import (
	"slices"
)

// Reduce folds one action over state and returns the next collection.
// state is never modified; every call yields a fresh slice.
// UPDATE and DELETE of an absent id leave the collection as it was.
func Reduce(state []Record, action Action) []Record {
	if action == nil {
		return slices.Clone(state)
	}
	return action.apply(state)
}

func (a Create) apply(state []Record) []Record {
	if indexOf(state, a.Record.ID) >= 0 {
		return slices.Clone(state)
	}

	next := make([]Record, 0, len(state)+1)
	next = append(next, a.Record)
	return append(next, state...)
}

func (a Update) apply(state []Record) []Record {
	next := make([]Record, len(state))
	for i, r := range state {
		if r.ID == a.ID {
			r = a.Patch.Apply(r)
		}
		next[i] = r
	}
	return next
}

func (a Delete) apply(state []Record) []Record {
	next := make([]Record, 0, len(state))
	for _, r := range state {
		if r.ID != a.ID {
			next = append(next, r)
		}
	}
	return next
}

func (a Init) apply(_ []Record) []Record {
	next := make([]Record, len(a.Records))
	copy(next, a.Records)
	return next
}
