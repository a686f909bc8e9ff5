package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

type fakeExecutor struct {
	DBExecutor
}

func TestGetExecutor_NoTransaction(t *testing.T) {
	db := &fakeExecutor{}
	assert.Same(t, db, GetExecutor(context.Background(), db))
}

func TestGetExecutor_FromContext(t *testing.T) {
	db := &fakeExecutor{}
	tx := &sql.Tx{}
	ctx := context.WithValue(context.Background(), txKey{}, tx)

	assert.Same(t, tx, GetExecutor(ctx, db))
}

func TestRun_NestedReusesTransaction(t *testing.T) {
	m := NewTransactionManager(nil)
	ctx := context.WithValue(context.Background(), txKey{}, &sql.Tx{})

	called := false
	err := m.DoSerializable(ctx, func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
}

type failingBeginner struct{}

func (failingBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return nil, errors.New("connection refused")
}

func TestRun_BeginFailure(t *testing.T) {
	m := NewTransactionManager(failingBeginner{})

	err := m.Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not be called")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	assert.True(t, IsSerializationFailure(fmt.Errorf("%w: commit", &pq.Error{Code: "40001"})))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("boom")))
}

func TestIsInTransaction(t *testing.T) {
	assert.False(t, IsInTransaction(context.Background()))
	assert.True(t, IsInTransaction(context.WithValue(context.Background(), txKey{}, &sql.Tx{})))
}
