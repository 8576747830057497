package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/aretw0/memedir/pkg/core"
)

func TestGateway_CRUD(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(Config{})
	if err := g.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	created, err := g.Create(ctx, core.Record{ID: "client-chosen", Name: "Doge", ImageURL: "https://example.com/d.png", Likes: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "client-chosen" {
		t.Error("expected gateway-assigned ID")
	}
	if _, err := uuid.Parse(created.ID); err != nil {
		t.Errorf("expected UUID id, got %q", created.ID)
	}

	name := "Doge 2"
	updated, err := g.Update(ctx, created.ID, core.Patch{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Doge 2" || updated.Likes != 1 {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if err := g.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := g.Get(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := g.Delete(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestGateway_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(Config{Seed: []core.Record{{ID: "b"}, {ID: "a"}, {ID: "c"}}})
	if err := g.Initialize(ctx); err != nil {
		t.Fatal(err)
	}
	if err := g.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	list, _ := g.List(ctx)
	if len(list) != 2 || list[0].ID != "b" || list[1].ID != "c" {
		t.Errorf("unexpected order: %+v", list)
	}
}

func TestGateway_Fixture(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "memes.yaml")
	fixture := `
- id: "1"
  name: Success kid
  imgUrl: https://imgur.com/a/abc123
  likes: 10
- name: No id yet
  imgUrl: not a url
`
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatal(err)
	}

	g := NewGateway(Config{FixturePath: path})
	if err := g.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	list, _ := g.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].ImageURL != "https://imgur.com/a/abc123" || list[0].Likes != 10 {
		t.Errorf("unexpected first record: %+v", list[0])
	}
	if list[1].ID == "" {
		t.Error("expected generated ID for fixture record without id")
	}

	state := g.State().(GatewayState)
	if state.Records != 2 || state.FixturePath != path {
		t.Errorf("unexpected state: %+v", state)
	}
}

func TestGateway_FixtureErrors(t *testing.T) {
	g := NewGateway(Config{FixturePath: filepath.Join(t.TempDir(), "missing.yaml")})
	if err := g.Initialize(context.Background()); err == nil {
		t.Error("expected error for missing fixture")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("id: [unterminated"), 0644)
	if _, err := LoadFixture(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestGateway_ReadOnly(t *testing.T) {
	g := NewGateway(Config{ReadOnly: true, Seed: []core.Record{{ID: "1", Name: "x"}}})
	if err := g.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := g.Create(context.Background(), core.Record{}); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("Create: expected ErrReadOnly, got %v", err)
	}
	if err := g.Delete(context.Background(), "1"); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("Delete: expected ErrReadOnly, got %v", err)
	}
}

func TestGateway_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGateway(Config{})
	if _, err := g.List(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
