// internal/app/system/indexes/indexes.go
//
// Package indexes ensures the MongoDB indexes the application relies
// on. EnsureAll is called once from the EnsureSchema hook at startup.
package indexes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates every index set, accumulating errors so one bad
// collection does not mask the rest.
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var errs []error

	if err := ensureUsers(ctx, db); err != nil {
		errs = append(errs, fmt.Errorf("users: %w", err))
	}
	if err := ensureFiles(ctx, db); err != nil {
		errs = append(errs, fmt.Errorf("files: %w", err))
	}
	if err := ensureFavorites(ctx, db); err != nil {
		errs = append(errs, fmt.Errorf("favorites: %w", err))
	}
	if err := ensureAudit(ctx, db); err != nil {
		errs = append(errs, fmt.Errorf("audit_log: %w", err))
	}

	if len(errs) > 0 {
		for _, err := range errs {
			log.Error("ensure indexes", zap.Error(err))
		}
		return fmt.Errorf("ensuring indexes: %d collection(s) failed", len(errs))
	}
	log.Info("indexes ensured")
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token_identifier", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_token_identifier"),
		},
		{
			Keys:    bson.D{{Key: "orgs.org_id", Value: 1}},
			Options: options.Index().SetName("orgs_org_id"),
		},
	})
}

func ensureFiles(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("files"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "org_id", Value: 1}, {Key: "pending_delete", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("org_pending_name"),
		},
		{
			Keys:    bson.D{{Key: "pending_delete", Value: 1}, {Key: "updated_at", Value: 1}},
			Options: options.Index().SetName("pending_updated"),
		},
	})
}

func ensureFavorites(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("favorites"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "org_id", Value: 1}, {Key: "file_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_org_file"),
		},
		{
			Keys:    bson.D{{Key: "file_id", Value: 1}},
			Options: options.Index().SetName("file_id"),
		},
	})
}

func ensureAudit(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("audit_log"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "org_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("org_timestamp"),
		},
		{
			Keys:    bson.D{{Key: "file_id", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("file_timestamp"),
		},
	})
}

func ensureIndexSet(ctx context.Context, c *mongo.Collection, models []mongo.IndexModel) error {
	_, err := c.Indexes().CreateMany(ctx, models)
	return err
}
