// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mentorstack/mentorhub/internal/app/catalog"
)

// DBDeps holds database/back-end dependencies for the app. Everything
// here is constructed once in ConnectDB and passed to the later hooks;
// nothing is reached through globals.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Storage holds submission files. Local disk by default.
	Storage storage.Store

	// Catalog is the immutable curriculum problem list.
	Catalog *catalog.Catalog
}
