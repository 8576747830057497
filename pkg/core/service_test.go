package core_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/aretw0/memedir/pkg/core"
)

// MockGateway implements core.Gateway in memory.
type MockGateway struct {
	records map[string]core.Record
	seq     int
	patches []core.Patch
	failing error
}

func NewMockGateway() *MockGateway {
	return &MockGateway{records: make(map[string]core.Record)}
}

func (m *MockGateway) List(ctx context.Context) ([]core.Record, error) {
	if m.failing != nil {
		return nil, m.failing
	}
	var out []core.Record
	for _, r := range m.records {
		out = append(out, r)
	}
	// Sort for deterministic tests
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockGateway) Get(ctx context.Context, id string) (core.Record, error) {
	r, ok := m.records[id]
	if !ok {
		return core.Record{}, core.ErrNotFound
	}
	return r, nil
}

func (m *MockGateway) Create(ctx context.Context, r core.Record) (core.Record, error) {
	if m.failing != nil {
		return core.Record{}, m.failing
	}
	m.seq++
	r.ID = fmt.Sprint(m.seq)
	m.records[r.ID] = r
	return r, nil
}

func (m *MockGateway) Update(ctx context.Context, id string, p core.Patch) (core.Record, error) {
	if m.failing != nil {
		return core.Record{}, m.failing
	}
	r, ok := m.records[id]
	if !ok {
		return core.Record{}, core.ErrNotFound
	}
	m.patches = append(m.patches, p)
	r = p.Apply(r)
	m.records[id] = r
	return r, nil
}

func (m *MockGateway) Delete(ctx context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MockGateway) Initialize(ctx context.Context) error { return nil }

func fixedLikes(n int) core.ServiceOption {
	return core.WithLikes(func() int { return n })
}

func TestService_CRUD(t *testing.T) {
	gw := NewMockGateway()
	service := core.NewService(gw, fixedLikes(42))
	ctx := context.TODO()

	// 1. Create
	created, err := service.CreateRecord(ctx, core.Form{Name: "Distracted boyfriend", ImageURL: "https://imgur.com/a/abc123"})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned ID")
	}
	if created.Likes != 42 {
		t.Errorf("expected likes 42, got %d", created.Likes)
	}

	// 2. Get
	got, err := service.GetRecord(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if got.Name != "Distracted boyfriend" {
		t.Errorf("expected name 'Distracted boyfriend', got '%s'", got.Name)
	}

	// 3. List
	_, _ = service.CreateRecord(ctx, core.Form{Name: "Doge", ImageURL: "https://example.com/doge.png"})
	records, err := service.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}

	// 4. Delete
	if err := service.DeleteRecord(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRecord failed: %v", err)
	}
	if _, err := service.GetRecord(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound after deletion, got %v", err)
	}
}

func TestService_EditRecord_RegeneratesLikes(t *testing.T) {
	gw := NewMockGateway()
	gw.records["7"] = core.Record{ID: "7", Name: "Old", ImageURL: "https://example.com/a.png", Likes: 3}

	next := 10
	service := core.NewService(gw, core.WithLikes(func() int { next++; return next }))

	updated, err := service.EditRecord(context.TODO(), "7", core.Form{Name: "New name", ImageURL: "https://example.com/b.png"})
	if err != nil {
		t.Fatalf("EditRecord failed: %v", err)
	}
	if updated.Name != "New name" || updated.ImageURL != "https://example.com/b.png" {
		t.Errorf("unexpected record: %+v", updated)
	}
	if updated.Likes != 11 {
		t.Errorf("expected regenerated likes 11, got %d", updated.Likes)
	}

	if len(gw.patches) != 1 {
		t.Fatalf("expected 1 patch, got %d", len(gw.patches))
	}
	p := gw.patches[0]
	if p.Name == nil || p.ImageURL == nil || p.Likes == nil {
		t.Errorf("expected name, imgUrl and likes in patch, got %+v", p)
	}
}

func TestService_EditRecord_Validation(t *testing.T) {
	gw := NewMockGateway()
	gw.records["1"] = core.Record{ID: "1", Name: "Keep", ImageURL: "https://example.com/a.png"}
	service := core.NewService(gw)

	_, err := service.EditRecord(context.TODO(), "1", core.Form{Name: "ab", ImageURL: ""})

	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Details["name"] == "" || vErr.Details["imgUrl"] == "" {
		t.Errorf("expected name and imgUrl details, got %v", vErr.Details)
	}
	if len(gw.patches) != 0 {
		t.Error("gateway must not be called for an invalid form")
	}
	if gw.records["1"].Name != "Keep" {
		t.Error("record changed despite validation failure")
	}
}

func TestService_EmptyID(t *testing.T) {
	service := core.NewService(NewMockGateway())
	ctx := context.TODO()

	if _, err := service.GetRecord(ctx, ""); !errors.Is(err, core.ErrEmptyID) {
		t.Errorf("GetRecord: expected ErrEmptyID, got %v", err)
	}
	if _, err := service.EditRecord(ctx, "", core.Form{Name: "abc", ImageURL: "https://x.com"}); !errors.Is(err, core.ErrEmptyID) {
		t.Errorf("EditRecord: expected ErrEmptyID, got %v", err)
	}
	if err := service.DeleteRecord(ctx, ""); !errors.Is(err, core.ErrEmptyID) {
		t.Errorf("DeleteRecord: expected ErrEmptyID, got %v", err)
	}
}

func TestService_GatewayErrorPropagates(t *testing.T) {
	gw := NewMockGateway()
	gw.failing = errors.New("network down")
	service := core.NewService(gw)

	if _, err := service.ListRecords(context.TODO()); err == nil || err.Error() != "network down" {
		t.Errorf("expected gateway error, got %v", err)
	}
}

func TestService_Subscribe(t *testing.T) {
	gw := NewMockGateway()
	service := core.NewService(gw, core.WithEventBuffer(4))

	events, cancel := service.Subscribe()
	defer cancel()

	created, err := service.CreateRecord(context.TODO(), core.Form{Name: "Event me", ImageURL: "https://example.com/e.png"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := service.EditRecord(context.TODO(), created.ID, core.Form{Name: "Event me too", ImageURL: "https://example.com/e.png"}); err != nil {
		t.Fatal(err)
	}
	if err := service.DeleteRecord(context.TODO(), created.ID); err != nil {
		t.Fatal(err)
	}

	want := []core.EventType{core.EventCreate, core.EventModify, core.EventDelete}
	for _, w := range want {
		e := <-events
		if e.Type != w || e.ID != created.ID {
			t.Errorf("expected %s %s, got %s", w, created.ID, e)
		}
	}

	cancel()
	// Second cancel is a no-op.
	cancel()
	if _, ok := <-events; ok {
		t.Error("expected channel closed after cancel")
	}
}

func TestService_State(t *testing.T) {
	service := core.NewService(NewMockGateway())
	state, ok := service.State().(core.ServiceState)
	if !ok {
		t.Fatalf("unexpected state type %T", service.State())
	}
	if state.GatewayType != "gateway" {
		t.Errorf("expected generic gateway type, got %q", state.GatewayType)
	}
	if service.ComponentType() != "service" {
		t.Errorf("unexpected component type %q", service.ComponentType())
	}
}

func TestForm_Validate(t *testing.T) {
	cases := []struct {
		name   string
		form   core.Form
		fields []string
	}{
		{"valid", core.Form{Name: "abc", ImageURL: "https://example.com/a.png"}, nil},
		{"name too short", core.Form{Name: "ab", ImageURL: "https://example.com"}, []string{"name"}},
		{"name max", core.Form{Name: strings.Repeat("x", 100), ImageURL: "https://example.com"}, nil},
		{"name too long", core.Form{Name: strings.Repeat("x", 101), ImageURL: "https://example.com"}, []string{"name"}},
		{"runes not bytes", core.Form{Name: "жжж", ImageURL: "https://example.com"}, nil},
		{"missing fields", core.Form{}, []string{"name", "imgUrl"}},
		{"relative url", core.Form{Name: "abc", ImageURL: "cat.png"}, []string{"imgUrl"}},
		{"non-http url accepted by form", core.Form{Name: "abc", ImageURL: "ftp://example.com/a.png"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			details := tc.form.Validate()
			if len(details) != len(tc.fields) {
				t.Fatalf("expected fields %v, got %v", tc.fields, details)
			}
			for _, f := range tc.fields {
				if _, ok := details[f]; !ok {
					t.Errorf("expected detail for %q, got %v", f, details)
				}
			}
		})
	}
}
