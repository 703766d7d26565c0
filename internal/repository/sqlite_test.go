package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/astroshield/go-impact-sim/internal/physics"
	"github.com/astroshield/go-impact-sim/internal/report"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	return db
}

func storedReport(id, generatedAt string, target physics.TargetType, energyMT float64, airburst bool) *report.Report {
	return &report.Report{
		Metadata: report.Metadata{ID: id, GeneratedAt: generatedAt},
		Parameters: physics.Parameters{
			DiameterM:      200,
			VelocityKMS:    17,
			ImpactAngleDeg: 45,
			TargetType:     target,
			Latitude:       35.0,
			Longitude:      139.0,
		},
		Effects: physics.Effects{
			EnergyMegatonsTNT: energyMT,
			SeismicMagnitude:  6.5,
			IsAirburst:        airburst,
		},
		AlertLevel: report.AlertOrange,
	}
}

func TestSQLiteDB_AddAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	rep := storedReport("sim_123", "2026-08-01T10:00:00Z", physics.TargetRock, 42.5, false)

	if err := db.Add(ctx, rep); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := db.GetByID(ctx, "sim_123")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Metadata.ID != "sim_123" {
		t.Errorf("expected ID sim_123, got %s", got.Metadata.ID)
	}
	if got.Effects.EnergyMegatonsTNT != 42.5 {
		t.Errorf("expected energy 42.5, got %g", got.Effects.EnergyMegatonsTNT)
	}
	if got.Parameters.TargetType != physics.TargetRock {
		t.Errorf("expected target rock, got %s", got.Parameters.TargetType)
	}
}

func TestSQLiteDB_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteDB_Exists(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	exists, err := db.Exists(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected false for nonexistent ID")
	}

	db.Add(ctx, storedReport("exists_test", "2026-08-01T10:00:00Z", physics.TargetSoil, 1.0, true))

	exists, err = db.Exists(ctx, "exists_test")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected true for existing ID")
	}
}

func TestSQLiteDB_List_WithFilters(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	reports := []*report.Report{
		storedReport("big_rock", "2026-08-01T10:00:00Z", physics.TargetRock, 250.0, false),
		storedReport("small_rock", "2026-08-02T10:00:00Z", physics.TargetRock, 0.8, true),
		storedReport("ocean_hit", "2026-08-03T10:00:00Z", physics.TargetOcean, 40.0, false),
	}
	for _, r := range reports {
		if err := db.Add(ctx, r); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	// Target filter
	results, err := db.List(ctx, Filter{TargetType: "rock"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 rock impacts, got %d", len(results))
	}

	// Minimum energy filter
	minEnergy := 10.0
	results, err = db.List(ctx, Filter{MinEnergyMT: &minEnergy})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 simulations with energy >= 10 MT, got %d", len(results))
	}

	// Airburst filter
	airburst := true
	results, err = db.List(ctx, Filter{Airburst: &airburst})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 airburst, got %d", len(results))
	}

	// Since filter
	since := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	results, err = db.List(ctx, Filter{Since: &since})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 simulations since Aug 2, got %d", len(results))
	}

	// Limit
	results, err = db.List(ctx, Filter{Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 simulations with limit, got %d", len(results))
	}
}

func TestSQLiteDB_List_OrderedNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	db.Add(ctx, storedReport("older", "2026-08-01T10:00:00Z", physics.TargetRock, 1.0, false))
	db.Add(ctx, storedReport("newer", "2026-08-05T10:00:00Z", physics.TargetRock, 1.0, false))

	results, err := db.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 simulations, got %d", len(results))
	}
	if results[0].ID != "newer" {
		t.Errorf("expected newest first, got %s", results[0].ID)
	}
}

func TestSQLiteDB_Add_BadTimestamp(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	rep := storedReport("bad_ts", "yesterday", physics.TargetRock, 1.0, false)
	if err := db.Add(context.Background(), rep); err == nil {
		t.Error("expected error for malformed timestamp, got nil")
	}
}

func TestSQLiteDB_DuplicateAdd(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	rep := storedReport("dup_test", "2026-08-01T10:00:00Z", physics.TargetRock, 1.0, false)

	if err := db.Add(ctx, rep); err != nil {
		t.Fatalf("First Add failed: %v", err)
	}

	if err := db.Add(ctx, rep); err == nil {
		t.Error("expected error for duplicate ID, got nil")
	}
}
