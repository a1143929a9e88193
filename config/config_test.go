package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_HOST", "")

	cfg := Load()

	if cfg.JWTSecret != "test-secret" {
		t.Fatalf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.AppPort != "3000" {
		t.Fatalf("AppPort default = %q, want 3000", cfg.AppPort)
	}
	if cfg.MongoDBName != "blogdb" {
		t.Fatalf("MongoDBName default = %q, want blogdb", cfg.MongoDBName)
	}
	if cfg.UploadDir != "uploads" {
		t.Fatalf("UploadDir default = %q, want uploads", cfg.UploadDir)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("AllowedOrigins default = %v", cfg.AllowedOrigins)
	}

	// Get must return the cached configuration.
	if got := Get(); got.JWTSecret != cfg.JWTSecret {
		t.Fatal("Get() did not return the loaded configuration")
	}
}
