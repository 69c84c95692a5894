package services

import (
	"context"

	"github.com/mlefevre/diabecare/internal/domain"
	apperrors "github.com/mlefevre/diabecare/internal/errors"
)

// InitializedKey marks a store that has been seeded.
const InitializedKey = "data_initialized"

// EnsureInitialized seeds empty collections on first launch. Stores that have
// already been initialized are left alone.
func EnsureInitialized(ctx context.Context, store domain.KVStore) error {
	_, ok, err := store.GetItem(ctx, InitializedKey)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if ok {
		return nil
	}

	if err := store.SetItem(ctx, ReadingsKey, "[]"); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if err := store.SetItem(ctx, RemindersKey, "[]"); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if err := store.SetItem(ctx, InitializedKey, "true"); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// ResetAppData removes every collection and the initialization marker.
func ResetAppData(ctx context.Context, store domain.KVStore) error {
	keys := []string{ReadingsKey, RemindersKey, InitializedKey}
	if err := store.MultiRemove(ctx, keys); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// ClearGlycemiaData empties the reading collection.
func ClearGlycemiaData(ctx context.Context, store domain.KVStore) error {
	if err := store.SetItem(ctx, ReadingsKey, "[]"); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// ClearRemindersData empties the reminder collection.
func ClearRemindersData(ctx context.Context, store domain.KVStore) error {
	if err := store.SetItem(ctx, RemindersKey, "[]"); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}
