package storage

import (
	"errors"
	"testing"

	xerrors "crmdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrMapsUniqueViolationToConflict(t *testing.T) {
	err := writeErr("insert", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "customers_email_key",
	})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestWriteErrWrapsOtherFaultsAsTransport(t *testing.T) {
	cause := errors.New("connection reset")
	err := writeErr("update", cause)

	var te *xerrors.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "update", te.Op)
	assert.ErrorIs(t, err, cause)
}

func TestWriteErrLeavesOtherPgCodesAsTransport(t *testing.T) {
	err := writeErr("insert", &pgconn.PgError{Code: "23503"})

	var te *xerrors.TransportError
	assert.ErrorAs(t, err, &te)
	assert.NotErrorIs(t, err, xerrors.ErrConflict)
}
