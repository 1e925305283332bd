package data

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	// Create temp directory for test database
	tmpDir, err := os.MkdirTemp("", "countries-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := InitDuckDB(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to init DB: %v", err)
	}

	repo := NewRepository(db)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func TestSetAndGet(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	if err := repo.Set("theme", "dark"); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	value, ok, err := repo.Get("theme")
	if err != nil {
		t.Fatalf("Failed to get value: %v", err)
	}
	if !ok {
		t.Fatal("Expected key to be found")
	}
	if value != "dark" {
		t.Errorf("Expected value 'dark', got '%s'", value)
	}
}

func TestGetMissingKey(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	value, ok, err := repo.Get("non-existent")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ok {
		t.Error("Expected key to be missing")
	}
	if value != "" {
		t.Errorf("Expected empty value, got '%s'", value)
	}
}

func TestSetUpsert(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	repo.Set("favorites", `["FRA"]`)

	if err := repo.Set("favorites", `["FRA","DEU"]`); err != nil {
		t.Fatalf("Failed to update value: %v", err)
	}

	value, _, _ := repo.Get("favorites")
	if value != `["FRA","DEU"]` {
		t.Errorf("Expected updated value, got '%s'", value)
	}
}

func TestDelete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	repo.Set("theme", "light")

	if err := repo.Delete("theme"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}

	_, ok, _ := repo.Get("theme")
	if ok {
		t.Error("Expected key to be deleted")
	}

	// Deleting a missing key is not an error
	if err := repo.Delete("theme"); err != nil {
		t.Errorf("Expected no error deleting missing key, got: %v", err)
	}
}
