package store

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
)

func TestGetBuild_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec := createTestBuild("build-1", "fp-a")
	rec.Destination = "assets"
	rec.Capabilities = []string{"Int8", "Int64"}
	rec.Extensions = []string{"SPV_KHR_shader_clock"}
	if err := s.WriteBuild(ctx, rec); err != nil {
		t.Fatalf("WriteBuild() failed: %v", err)
	}

	got, err := s.GetBuild(ctx, "build-1")
	if err != nil {
		t.Fatalf("GetBuild() failed: %v", err)
	}
	if !reflect.DeepEqual(got, *rec) {
		t.Errorf("GetBuild() = %+v\nwant %+v", got, *rec)
	}
}

func TestGetBuild_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetBuild(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetBuild() error = %v, want sql.ErrNoRows", err)
	}
}

func TestListBuilds_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"build-1", "build-2", "build-3"} {
		if err := s.WriteBuild(ctx, createTestBuild(id, "fp-a")); err != nil {
			t.Fatalf("WriteBuild(%s) failed: %v", id, err)
		}
	}

	records, err := s.ListBuilds(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListBuilds() failed: %v", err)
	}
	got := ids(records)
	want := []string{"build-3", "build-2", "build-1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListBuilds() ids = %v, want %v", got, want)
	}
}

func TestListBuilds_LimitAndFingerprint(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	writes := []struct{ id, fp string }{
		{"build-1", "fp-a"},
		{"build-2", "fp-b"},
		{"build-3", "fp-a"},
		{"build-4", "fp-a"},
	}
	for _, w := range writes {
		if err := s.WriteBuild(ctx, createTestBuild(w.id, w.fp)); err != nil {
			t.Fatalf("WriteBuild(%s) failed: %v", w.id, err)
		}
	}

	records, err := s.ListBuilds(ctx, ListOptions{Fingerprint: "fp-a", Limit: 2})
	if err != nil {
		t.Fatalf("ListBuilds() failed: %v", err)
	}
	got := ids(records)
	want := []string{"build-4", "build-3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListBuilds() ids = %v, want %v", got, want)
	}
}

func TestListBuilds_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	records, err := s.ListBuilds(context.Background(), ListOptions{Fingerprint: "none"})
	if err != nil {
		t.Fatalf("ListBuilds() failed: %v", err)
	}
	if records == nil {
		t.Error("ListBuilds() returned nil, want empty slice")
	}
}

func TestLatestBuild_SkipsFailures(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ok := createTestBuild("build-1", "fp-a")
	failed := createTestBuild("build-2", "fp-a")
	failed.Status = StatusFailed
	other := createTestBuild("build-3", "fp-b")
	for _, rec := range []*BuildRecord{ok, failed, other} {
		if err := s.WriteBuild(ctx, rec); err != nil {
			t.Fatalf("WriteBuild(%s) failed: %v", rec.ID, err)
		}
	}

	got, err := s.LatestBuild(ctx, "fp-a")
	if err != nil {
		t.Fatalf("LatestBuild() failed: %v", err)
	}
	if got.ID != "build-1" {
		t.Errorf("LatestBuild() = %s, want build-1", got.ID)
	}

	_, err = s.LatestBuild(ctx, "fp-none")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("LatestBuild() error = %v, want sql.ErrNoRows", err)
	}
}

func ids(records []BuildRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
