package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matsen/recipebox/internal/recipe"
)

// setupTestDB opens an empty recipe database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "recipes.db")
	db, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func teaRecipe() recipe.Recipe {
	return recipe.Recipe{
		Title:        "Tea",
		Description:  "Hot drink",
		Ingredients:  recipe.ParseIngredients("Water,Tea Leaves"),
		Instructions: "Boil water, add leaves",
		PrepTime:     recipe.Minutes(5),
	}
}

func mustInsert(t *testing.T, db *DB, r recipe.Recipe) *recipe.Recipe {
	t.Helper()
	got, err := db.Insert(context.Background(), r)
	if err != nil {
		t.Fatalf("Insert(%q) error = %v", r.Title, err)
	}
	return got
}

func TestOpen_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "recipes.db")

	db, err := Open(context.Background(), "sqlite://"+dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Open() did not create database file")
	}

	count, err := db.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		wantErr error
	}{
		{"empty", "", ErrNoDatabaseURI},
		{"blank", "   ", ErrNoDatabaseURI},
		{"foreign scheme", "mongodb://localhost:27017/recipes", ErrUnsupportedURI},
		{"unreachable path", filepath.Join(t.TempDir(), "missing", "dir", "recipes.db"), ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Open(context.Background(), tt.uri)
			if err == nil {
				db.Close()
				t.Fatalf("Open(%q) succeeded, want error", tt.uri)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open(%q) error = %v, want %v", tt.uri, err, tt.wantErr)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		uri     string
		want    string
		wantErr bool
	}{
		{"recipes.db", "recipes.db", false},
		{"/var/lib/recipes.db", "/var/lib/recipes.db", false},
		{"sqlite:///var/lib/recipes.db", "/var/lib/recipes.db", false},
		{"sqlite://recipes.db", "recipes.db", false},
		{"file:recipes.db?mode=ro", "file:recipes.db?mode=ro", false},
		{"sqlite://", "", true},
		{"postgres://db/recipes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := DSN(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DSN(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DSN(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}

func TestDB_InsertThenFind(t *testing.T) {
	db := setupTestDB(t)
	fixed := time.Date(2026, 3, 15, 12, 30, 0, 123456789, time.UTC)
	db.now = func() time.Time { return fixed }

	created := mustInsert(t, db, teaRecipe())
	if created.ID == "" {
		t.Error("Insert() did not assign an ID")
	}
	if !created.CreatedAt.Equal(fixed.Truncate(time.Millisecond)) {
		t.Errorf("CreatedAt = %v, want %v", created.CreatedAt, fixed.Truncate(time.Millisecond))
	}

	found, err := db.FindByTitle(context.Background(), "Tea")
	if err != nil {
		t.Fatalf("FindByTitle() error = %v", err)
	}
	if found == nil {
		t.Fatal("FindByTitle() = nil, want recipe")
	}

	if !reflect.DeepEqual(found.Ingredients, []string{"Water", "Tea Leaves"}) {
		t.Errorf("Ingredients = %q, want [Water Tea Leaves]", found.Ingredients)
	}
	if found.PrepTime == nil || *found.PrepTime != 5 {
		t.Errorf("PrepTime = %v, want 5", found.PrepTime)
	}
	if found.ID != created.ID || found.Description != "Hot drink" || found.Instructions != "Boil water, add leaves" {
		t.Errorf("FindByTitle() = %+v, want fields of %+v", found, created)
	}
	if !found.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", found.CreatedAt, created.CreatedAt)
	}
}

func TestDB_Insert_OptionalFields(t *testing.T) {
	db := setupTestDB(t)

	r := teaRecipe()
	r.Description = ""
	r.PrepTime = nil
	mustInsert(t, db, r)

	found, err := db.FindByTitle(context.Background(), "Tea")
	if err != nil || found == nil {
		t.Fatalf("FindByTitle() = %v, %v", found, err)
	}
	if found.Description != "" {
		t.Errorf("Description = %q, want empty", found.Description)
	}
	if found.PrepTime != nil {
		t.Errorf("PrepTime = %v, want nil", *found.PrepTime)
	}
}

func TestDB_Insert_FractionalPrepTime(t *testing.T) {
	db := setupTestDB(t)

	r := teaRecipe()
	r.PrepTime = recipe.Minutes(7.5)
	mustInsert(t, db, r)

	found, err := db.FindByTitle(context.Background(), "Tea")
	if err != nil || found == nil {
		t.Fatalf("FindByTitle() = %v, %v", found, err)
	}
	if found.PrepTime == nil || *found.PrepTime != 7.5 {
		t.Errorf("PrepTime = %v, want 7.5", found.PrepTime)
	}
}

func TestDB_Insert_DuplicateTitle(t *testing.T) {
	db := setupTestDB(t)
	mustInsert(t, db, teaRecipe())

	_, err := db.Insert(context.Background(), teaRecipe())
	if !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("second Insert() error = %v, want ErrDuplicateTitle", err)
	}

	count, _ := db.Count(context.Background())
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestDB_Insert_Validation(t *testing.T) {
	db := setupTestDB(t)

	r := teaRecipe()
	r.PrepTime = recipe.Minutes(0)
	r.Instructions = ""

	_, err := db.Insert(context.Background(), r)
	var verr *recipe.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Insert() error = %v, want *recipe.ValidationError", err)
	}
	if !errors.Is(err, recipe.ErrPrepTimeTooShort) || !errors.Is(err, recipe.ErrEmptyInstructions) {
		t.Errorf("Insert() error = %v, want prep time and instructions failures", err)
	}

	count, _ := db.Count(context.Background())
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}
}

func TestDB_FindByTitle_ExactMatchOnly(t *testing.T) {
	db := setupTestDB(t)
	mustInsert(t, db, teaRecipe())

	for _, title := range []string{"tea", "Te", "Tea ", "Green Tea", "%"} {
		found, err := db.FindByTitle(context.Background(), title)
		if err != nil {
			t.Fatalf("FindByTitle(%q) error = %v", title, err)
		}
		if found != nil {
			t.Errorf("FindByTitle(%q) = %+v, want nil", title, found)
		}
	}
}

func TestDB_FindAll(t *testing.T) {
	db := setupTestDB(t)

	all, err := db.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("FindAll() on empty store = %d recipes, want 0", len(all))
	}

	titles := []string{"Tea", "Garlic Bread", "Apple Pie"}
	for _, title := range titles {
		r := teaRecipe()
		r.Title = title
		mustInsert(t, db, r)
	}

	all, err = db.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != len(titles) {
		t.Fatalf("FindAll() = %d recipes, want %d", len(all), len(titles))
	}
	for i, title := range titles {
		if all[i].Title != title {
			t.Errorf("FindAll()[%d].Title = %q, want %q", i, all[i].Title, title)
		}
	}
}

func TestDB_UpdateDescriptionByTitle(t *testing.T) {
	db := setupTestDB(t)
	before := mustInsert(t, db, teaRecipe())

	updated, err := db.UpdateDescriptionByTitle(context.Background(), "Tea", "A calming cup")
	if err != nil {
		t.Fatalf("UpdateDescriptionByTitle() error = %v", err)
	}
	if updated == nil {
		t.Fatal("UpdateDescriptionByTitle() = nil, want recipe")
	}
	if updated.Description != "A calming cup" {
		t.Errorf("Description = %q, want %q", updated.Description, "A calming cup")
	}

	// Everything but the description is unchanged.
	want := *before
	want.Description = "A calming cup"
	after, _ := db.FindByTitle(context.Background(), "Tea")
	if after.ID != want.ID || after.Title != want.Title || after.Instructions != want.Instructions ||
		!reflect.DeepEqual(after.Ingredients, want.Ingredients) || *after.PrepTime != *want.PrepTime ||
		!after.CreatedAt.Equal(want.CreatedAt) || after.Description != want.Description {
		t.Errorf("after update = %+v, want %+v", after, want)
	}
}

func TestDB_UpdateDescriptionByTitle_Absent(t *testing.T) {
	db := setupTestDB(t)
	mustInsert(t, db, teaRecipe())

	updated, err := db.UpdateDescriptionByTitle(context.Background(), "Coffee", "Bitter")
	if err != nil {
		t.Fatalf("UpdateDescriptionByTitle() error = %v", err)
	}
	if updated != nil {
		t.Errorf("UpdateDescriptionByTitle() = %+v, want nil", updated)
	}

	tea, _ := db.FindByTitle(context.Background(), "Tea")
	if tea.Description != "Hot drink" {
		t.Errorf("Tea description changed to %q", tea.Description)
	}
}

func TestDB_DeleteByTitle(t *testing.T) {
	db := setupTestDB(t)
	created := mustInsert(t, db, teaRecipe())

	deleted, err := db.DeleteByTitle(context.Background(), "Tea")
	if err != nil {
		t.Fatalf("DeleteByTitle() error = %v", err)
	}
	if deleted == nil || deleted.ID != created.ID {
		t.Fatalf("DeleteByTitle() = %+v, want recipe %s", deleted, created.ID)
	}

	found, err := db.FindByTitle(context.Background(), "Tea")
	if err != nil {
		t.Fatalf("FindByTitle() error = %v", err)
	}
	if found != nil {
		t.Error("recipe still present after delete")
	}

	again, err := db.DeleteByTitle(context.Background(), "Tea")
	if err != nil {
		t.Fatalf("second DeleteByTitle() error = %v", err)
	}
	if again != nil {
		t.Errorf("second DeleteByTitle() = %+v, want nil", again)
	}
}

func TestDB_Import(t *testing.T) {
	db := setupTestDB(t)

	r := teaRecipe()
	r.ID = "0190d6a4-0000-7000-8000-000000000001"
	r.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	imported, err := db.Import(context.Background(), r)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if imported.ID != r.ID {
		t.Errorf("ID = %q, want %q", imported.ID, r.ID)
	}

	found, _ := db.FindByTitle(context.Background(), "Tea")
	if !found.CreatedAt.Equal(r.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", found.CreatedAt, r.CreatedAt)
	}

	// Missing ID and timestamp are filled in.
	bare := teaRecipe()
	bare.Title = "Coffee"
	imported, err = db.Import(context.Background(), bare)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if imported.ID == "" || imported.CreatedAt.IsZero() {
		t.Errorf("Import() = %+v, want generated ID and CreatedAt", imported)
	}

	if _, err := db.Import(context.Background(), r); !errors.Is(err, ErrDuplicateTitle) {
		t.Errorf("re-Import() error = %v, want ErrDuplicateTitle", err)
	}
}
