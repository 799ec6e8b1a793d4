// Package testutil provides helpers for store and handler tests.
//
// Store tests need a reachable MongoDB instance. Set
// MENTORHUB_TEST_MONGO_URI (e.g. mongodb://localhost:27017) to enable
// them; tests that need a database skip when it is unset.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const testMongoEnv = "MENTORHUB_TEST_MONGO_URI"

// SetupTestDB connects to the test MongoDB instance and returns a fresh
// database that is dropped when the test finishes. Skips the test when
// no test instance is configured.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv(testMongoEnv)
	if uri == "" {
		t.Skipf("set %s to run database tests", testMongoEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect test mongo: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		t.Fatalf("ping test mongo: %v", err)
	}

	db := client.Database(fmt.Sprintf("mentorhub_test_%d", time.Now().UnixNano()))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test database: %v", err)
		}
		_ = client.Disconnect(ctx)
	})

	return db
}

// TestContext returns a context with a deadline tied to the test.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls chain: an existing route context is extended, not replaced.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
