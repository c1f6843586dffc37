package memstore

import (
	"context"
	"sync"

	"github.com/MarkoPoloResearchLab/lending/pkg/lending"
)

const (
	errorOperationStore     = "store"
	errorSubjectPosition    = "position"
	errorSubjectTransaction = "transaction"
	errorCodeBegin          = "begin"
	errorCodeGet            = "get"
	errorCodeInvalid        = "invalid"
)

// Store implements lending.Store in memory. Transactions are serialized and
// only a callback that returns nil publishes its writes.
type Store struct {
	mutex     sync.Mutex
	positions map[lending.PositionID]lending.Position
}

// TxStore implements lending.Store for an active transaction.
type TxStore struct {
	positions map[lending.PositionID]lending.Position
}

// New returns an empty Store.
func New() *Store {
	return &Store{positions: make(map[lending.PositionID]lending.Position)}
}

// WithTx executes fn against a private copy of the positions.
func (store *Store) WithTx(ctx context.Context, fn func(ctx context.Context, txStore lending.Store) error) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if err := ctx.Err(); err != nil {
		return wrapStoreError(errorSubjectTransaction, errorCodeBegin, err)
	}
	staged := make(map[lending.PositionID]lending.Position, len(store.positions))
	for positionID, position := range store.positions {
		staged[positionID] = position
	}
	if err := fn(ctx, &TxStore{positions: staged}); err != nil {
		return err
	}
	store.positions = staged
	return nil
}

func (store *Store) GetOrCreatePosition(ctx context.Context, positionID lending.PositionID) (lending.Position, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return getOrCreatePosition(store.positions, positionID)
}

func (store *Store) GetPosition(ctx context.Context, positionID lending.PositionID) (lending.Position, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return getPosition(store.positions, positionID)
}

func (store *Store) PutPosition(ctx context.Context, position lending.Position) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return putPosition(store.positions, position)
}

// Len returns the number of stored positions.
func (store *Store) Len() int {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return len(store.positions)
}

// WithTx joins the active transaction.
func (txStore *TxStore) WithTx(ctx context.Context, fn func(ctx context.Context, txStore lending.Store) error) error {
	return fn(ctx, txStore)
}

func (txStore *TxStore) GetOrCreatePosition(ctx context.Context, positionID lending.PositionID) (lending.Position, error) {
	return getOrCreatePosition(txStore.positions, positionID)
}

func (txStore *TxStore) GetPosition(ctx context.Context, positionID lending.PositionID) (lending.Position, error) {
	return getPosition(txStore.positions, positionID)
}

func (txStore *TxStore) PutPosition(ctx context.Context, position lending.Position) error {
	return putPosition(txStore.positions, position)
}

func getOrCreatePosition(positions map[lending.PositionID]lending.Position, positionID lending.PositionID) (lending.Position, error) {
	if positionID.IsZero() {
		return lending.Position{}, wrapStoreError(errorSubjectPosition, errorCodeInvalid, lending.ErrInvalidPositionID)
	}
	position, ok := positions[positionID]
	if !ok {
		return lending.Position{ID: positionID}, nil
	}
	return position, nil
}

func getPosition(positions map[lending.PositionID]lending.Position, positionID lending.PositionID) (lending.Position, error) {
	position, ok := positions[positionID]
	if !ok {
		return lending.Position{}, wrapStoreError(errorSubjectPosition, errorCodeGet, lending.ErrUnknownPosition)
	}
	return position, nil
}

func putPosition(positions map[lending.PositionID]lending.Position, position lending.Position) error {
	if position.ID.IsZero() {
		return wrapStoreError(errorSubjectPosition, errorCodeInvalid, lending.ErrInvalidPositionID)
	}
	positions[position.ID] = position
	return nil
}

func wrapStoreError(subject string, code string, err error) error {
	return lending.WrapError(errorOperationStore, subject, code, err)
}
