// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/mentorstack/mentorhub/internal/app/catalog"
	"github.com/mentorstack/mentorhub/internal/app/system/indexes"
)

// ConnectDB establishes the MongoDB connection and constructs the other
// backends the app depends on: the blob store for submission files and
// the curriculum catalog.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping mongodb: %w", err)
	}
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	store, err := storage.NewLocal(storage.LocalConfig{
		BasePath: appCfg.StorageLocalPath,
		BaseURL:  appCfg.StorageLocalURL,
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("init local storage: %w", err)
	}
	logger.Info("submission storage ready",
		zap.String("type", appCfg.StorageType),
		zap.String("path", appCfg.StorageLocalPath))

	cat, err := catalog.Load(appCfg.CurriculumPath)
	if err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("load curriculum: %w", err)
	}
	logger.Info("curriculum catalog loaded", zap.Int("problems", cat.Len()))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		Storage:       store,
		Catalog:       cat,
	}, nil
}

// EnsureSchema creates the MongoDB indexes. Safe to run on every start.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("database indexes ensured")
	return nil
}
