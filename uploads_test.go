package kodaklens

import (
	"sync"
	"testing"
	"time"
)

func TestUploadTrackerCommitsNewest(t *testing.T) {
	tr := NewUploadTracker(time.Hour)
	defer tr.Close()

	first := tr.Begin("u1")
	second := tr.Begin("u1")

	if !tr.Commit("u1", second, Upload{FileName: "new.jpg"}) {
		t.Fatalf("expected newest attempt to commit")
	}
	if tr.Commit("u1", first, Upload{FileName: "old.jpg"}) {
		t.Fatalf("expected stale attempt to be discarded")
	}

	got, ok := tr.Latest("u1")
	if !ok {
		t.Fatalf("expected a committed upload")
	}
	if got.FileName != "new.jpg" {
		t.Fatalf("expected new.jpg, got %q", got.FileName)
	}
	if got.Generation != second {
		t.Fatalf("expected generation %d, got %d", second, got.Generation)
	}
}

func TestUploadTrackerStaleCompletionAfterNewerBegin(t *testing.T) {
	tr := NewUploadTracker(time.Hour)
	defer tr.Close()

	gen := tr.Begin("u1")
	if !tr.Commit("u1", gen, Upload{FileName: "a.jpg"}) {
		t.Fatalf("expected commit")
	}

	slow := tr.Begin("u1")
	fast := tr.Begin("u1")
	if !tr.Commit("u1", fast, Upload{FileName: "c.jpg"}) {
		t.Fatalf("expected fast commit")
	}
	if tr.Commit("u1", slow, Upload{FileName: "b.jpg"}) {
		t.Fatalf("slow completion must not replace newer preview")
	}
	got, _ := tr.Latest("u1")
	if got.FileName != "c.jpg" {
		t.Fatalf("expected c.jpg, got %q", got.FileName)
	}
}

func TestUploadTrackerIsPerUploader(t *testing.T) {
	tr := NewUploadTracker(time.Hour)
	defer tr.Close()

	a := tr.Begin("a")
	tr.Begin("b")
	if !tr.Commit("a", a, Upload{FileName: "a.jpg"}) {
		t.Fatalf("expected commit for a")
	}
	if _, ok := tr.Latest("b"); ok {
		t.Fatalf("b has no committed upload")
	}
	if tr.Commit("missing", 1, Upload{}) {
		t.Fatalf("unknown uploader must not commit")
	}
}

func TestUploadTrackerUpdate(t *testing.T) {
	tr := NewUploadTracker(time.Hour)
	defer tr.Close()

	if tr.Update("u1", func(u *Upload) { u.ReportID = "x" }) {
		t.Fatalf("expected no update without a committed upload")
	}
	gen := tr.Begin("u1")
	tr.Commit("u1", gen, Upload{FileName: "a.jpg"})
	if !tr.Update("u1", func(u *Upload) { u.ReportID = "a-2024-01-01" }) {
		t.Fatalf("expected update")
	}
	got, _ := tr.Latest("u1")
	if got.ReportID != "a-2024-01-01" {
		t.Fatalf("expected report id, got %q", got.ReportID)
	}
}

func TestUploadTrackerSweepsIdleSessions(t *testing.T) {
	tr := NewUploadTracker(time.Minute)
	defer tr.Close()

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }
	tr.Begin("idle")

	now = now.Add(2 * time.Minute)
	tr.Begin("active")
	tr.sweep()

	if tr.Len() != 1 {
		t.Fatalf("expected 1 tracked session, got %d", tr.Len())
	}
}

func TestUploadTrackerConcurrentAttempts(t *testing.T) {
	tr := NewUploadTracker(time.Hour)
	defer tr.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gen := tr.Begin("u1")
			tr.Commit("u1", gen, Upload{})
		}()
	}
	wg.Wait()

	last := tr.Begin("u1")
	if last != 51 {
		t.Fatalf("expected 51 generations, got %d", last)
	}
}
