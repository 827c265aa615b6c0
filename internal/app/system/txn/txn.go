// internal/app/system/txn/txn.go
//
// Package txn runs a function inside a MongoDB multi-document
// transaction when the deployment supports them (replica set or
// sharded cluster) and falls back to plain sequential execution on
// standalone servers.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn transactionally against db. When the server does not
// support transactions the function is executed without one, so fn
// must be written to tolerate partial application in that mode.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Debug("transactions unavailable, running without session")
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("transactions unavailable, running without session")
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot
// run multi-document transactions (typically a standalone mongod).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case 20, 51, 263: // IllegalOperation, OperationNotSupportedInTransaction, APIVersionError
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"transaction numbers are only allowed",
		"transactions are not supported",
		"replica set",
		"illegaloperation",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
