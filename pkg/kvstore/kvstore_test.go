package kvstore

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()

	in := fixture{Name: "Prestige 330ml", Price: 150}
	if err := store.Put("products", in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out fixture
	if err := store.Get("products", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestMemoryMissingKey(t *testing.T) {
	store := NewMemory()

	var out fixture
	if err := store.Get("nope", &out); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get absent key = %v, want ErrNotFound", err)
	}
	if store.Has("nope") {
		t.Error("Has reported an absent key")
	}
}

func TestMemoryPutReplacesWholeDocument(t *testing.T) {
	store := NewMemory()

	if err := store.Put("settings", map[string]string{"shopName": "Ti Kay", "phone": "+509"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put("settings", map[string]string{"shopName": "Vendix"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out map[string]string
	if err := store.Get("settings", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(out) != 1 || out["shopName"] != "Vendix" {
		t.Errorf("got %v, want the old document fully replaced", out)
	}
}

func TestMemoryDelete(t *testing.T) {
	store := NewMemory()

	if err := store.Put("session", true); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete("session"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Has("session") {
		t.Error("key survived Delete")
	}

	// Deleting an absent key is a no-op.
	if err := store.Delete("session"); err != nil {
		t.Errorf("Delete absent key = %v, want nil", err)
	}
}

func newGormStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kv.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store, err := NewGorm(db)
	if err != nil {
		t.Fatalf("NewGorm: %v", err)
	}
	return store, db
}

func TestGormRoundTrip(t *testing.T) {
	store, _ := newGormStore(t)

	in := fixture{Name: "Riz 5lb", Price: 650}
	if err := store.Put("products", in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !store.Has("products") {
		t.Error("Has missed a stored key")
	}

	var out fixture
	if err := store.Get("products", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestGormHasReportsAbsentOnQueryFailure(t *testing.T) {
	store, db := newGormStore(t)
	if err := store.Put("settings", fixture{Name: "Ti Kay"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.Close()

	// A dead connection reads as "absent", never a panic or a stale true.
	if store.Has("settings") {
		t.Error("Has reported a key on a closed database")
	}
}

func TestMemoryPutUnencodable(t *testing.T) {
	store := NewMemory()

	if err := store.Put("bad", func() {}); err == nil {
		t.Error("Put accepted an unencodable value")
	}
	if store.Has("bad") {
		t.Error("failed Put left a document behind")
	}
}
