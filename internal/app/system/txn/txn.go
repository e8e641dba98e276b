// internal/app/system/txn/txn.go

// Package txn runs multi-document writes inside a MongoDB transaction when the
// deployment supports one, and falls back to sequential writes when it does
// not (standalone servers reject transactions with a CommandError).
//
// The fallback is the documented eventual-consistency contract for dev/test
// deployments: if the process dies between the sequential writes, the two
// collections can disagree until the operation is retried.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn transactionally against client. When the server does not
// support transactions, fn is re-run outside a session so the writes still
// happen, and the degradation is logged once per call.
func Run(ctx context.Context, client *mongo.Client, logger *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logger.Warn("mongo transactions unavailable, running writes sequentially", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logger.Warn("mongo transactions unavailable, running writes sequentially", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// Server error codes returned when a transaction is attempted on a deployment
// that cannot run one (standalone server, retired wire versions).
const (
	codeIllegalOperation      = 20
	codeCommandNotSupported   = 51
	codeOperationNotSupported = 263
)

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions. It matches both structured CommandErrors and
// the driver's wrapped text for session/transaction failures.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if ce, ok := err.(mongo.CommandError); ok {
		cmdErr = ce
	}
	switch cmdErr.Code {
	case codeIllegalOperation, codeCommandNotSupported, codeOperationNotSupported:
		return true
	}

	msg := strings.ToLower(err.Error())
	hasTxn := strings.Contains(msg, "transaction")
	hasSession := strings.Contains(msg, "session")
	if !hasTxn && !hasSession {
		return false
	}
	if strings.Contains(msg, "replica set") ||
		strings.Contains(msg, "not supported") ||
		strings.Contains(msg, "illegal operation") {
		return true
	}
	return hasTxn && hasSession
}
