package repository

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/careerpath/admin-backend/internal/docstore"
)

// document is satisfied by pointers to the model types stored in collections.
type document[T any] interface {
	*T
	SetID(id string)
	CreatedTime() time.Time
}

func decodeOne[T any, P document[T]](snap *docstore.Snapshot) (*T, error) {
	var v T
	if err := snap.DataTo(&v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", snap.ID, err)
	}
	P(&v).SetID(snap.ID)
	return &v, nil
}

func decodeAll[T any, P document[T]](snaps []*docstore.Snapshot) ([]T, error) {
	out := make([]T, 0, len(snaps))
	for _, snap := range snaps {
		v, err := decodeOne[T, P](snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// sortNewestFirst orders by creation time, newest first. Documents without a
// timestamp count as created at the epoch; ties keep document-id order.
func sortNewestFirst[T any, P document[T]](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return P(&items[i]).CreatedTime().After(P(&items[j]).CreatedTime())
	})
}

// notFoundAs replaces a store-level not-found error with the domain error.
func notFoundAs(err, domainErr error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return domainErr
	}
	return err
}
