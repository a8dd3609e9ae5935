package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Mongo.Database != "photogram" || cfg.Minio.Bucket != "photogram" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.GraphQL.Timeout != 10*time.Second || cfg.SignUp.SessionTTL != 30*time.Minute || cfg.SignUp.SweepInterval != time.Minute || cfg.SignUp.UsernameCacheTTL != 30*time.Second {
		t.Fatalf("unexpected durations: %+v %+v", cfg.GraphQL, cfg.SignUp)
	}
	if cfg.DispatcherWorkers != 8 {
		t.Fatalf("expected 8 dispatcher workers, got %d", cfg.DispatcherWorkers)
	}
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"GRAPHQL_ENDPOINT":   "https://graph.example.com/v1/graphql",
		"REDIS_DB":           "2",
		"MINIO_USE_SSL":      "true",
		"DISPATCHER_WORKERS": "3",
	}))
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if cfg.GraphQL.Endpoint != "https://graph.example.com/v1/graphql" || cfg.Redis.DB != 2 || !cfg.Minio.UseSSL || cfg.DispatcherWorkers != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestProcess_ProductionRequiresSecret(t *testing.T) {
	_, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err == nil {
		t.Fatalf("expected missing JWT_SECRET to fail in production")
	}
}
