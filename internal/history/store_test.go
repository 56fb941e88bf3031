package history

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/mdgen/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.HistoryConfig{DataDir: t.TempDir(), MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordFillsIDAndTimestamp(t *testing.T) {
	store := testStore(t)

	run, err := store.Record(context.Background(), types.Run{
		Kind:   types.KindPDF,
		Method: types.MethodLocal,
		Source: "report.pdf",
		Bytes:  128,
		Status: types.RunSucceeded,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if run.ID == "" {
		t.Error("ID should be generated")
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled in")
	}
}

func TestRecentNewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, source := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		_, err := store.Record(ctx, types.Run{
			Kind:      types.KindPDF,
			Method:    types.MethodLocal,
			Source:    source,
			Status:    types.RunSucceeded,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].Source != "c.pdf" || runs[1].Source != "b.pdf" {
		t.Errorf("order = %s, %s; want c.pdf, b.pdf", runs[0].Source, runs[1].Source)
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	store, err := NewStore(types.HistoryConfig{DataDir: t.TempDir(), MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := store.Record(ctx, types.Run{
			Kind: types.KindWebsite, Method: types.MethodCloud,
			Source: "https://x.com", Status: types.RunSucceeded,
		}); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("runs = %d, want configured maximum of 2", len(runs))
	}
}

func TestReport(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, types.Run{
		Kind: types.KindPDF, Method: types.MethodCloud,
		Source: "broken.pdf", Status: types.RunFailed, Error: "quota exceeded",
	}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.Report(ctx, &buf, 10); err != nil {
		t.Fatalf("Report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "broken.pdf") || !strings.Contains(out, "quota exceeded") {
		t.Errorf("report missing run details:\n%s", out)
	}
	if !strings.Contains(out, "1 run(s)") {
		t.Errorf("report missing summary line:\n%s", out)
	}
}

func TestReportEmpty(t *testing.T) {
	store := testStore(t)

	var buf bytes.Buffer
	if err := store.Report(context.Background(), &buf, 10); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no conversions recorded") {
		t.Errorf("report = %q", buf.String())
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	dir := t.TempDir()
	cfg := types.HistoryConfig{DataDir: dir}

	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(context.Background(), types.Run{
		Kind: types.KindPDF, Method: types.MethodLocal,
		Source: "kept.pdf", Status: types.RunSucceeded,
	}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Source != "kept.pdf" {
		t.Errorf("runs = %+v", runs)
	}
}
