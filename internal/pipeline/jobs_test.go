package pipeline

import (
	"testing"
	"time"
)

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "abc", Status: StatusQueued, UpdatedAt: time.Now()}

	store.Put(job)

	if got := store.Get("abc"); got != job {
		t.Errorf("expected stored job, got %v", got)
	}
	if got := store.Get("missing"); got != nil {
		t.Errorf("expected nil for missing job, got %v", got)
	}
}

func TestJobStore_CleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)
	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-time.Minute)}
	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	store.Put(stale)
	store.Put(fresh)

	store.Cleanup()

	if store.Get("stale") != nil {
		t.Error("expected stale job to be evicted")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJob_StatusAndErrors(t *testing.T) {
	job := &Job{ID: "j1", Status: StatusQueued}

	job.SetStatus(StatusReading, "reading")
	job.AddError("boom")
	job.SetCounts(10, 4, 2)

	snap := job.Snapshot()
	if snap.Status != StatusReading || snap.Phase != "reading" {
		t.Errorf("unexpected snapshot state: %+v", snap)
	}
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "boom" {
		t.Errorf("unexpected errors: %v", snap.Progress.Errors)
	}
	if snap.Progress.Fragments != 10 || snap.Progress.Lines != 4 || snap.Progress.Sections != 2 {
		t.Errorf("unexpected counts: %+v", snap.Progress)
	}
}

func TestJob_SnapshotHasNonNilErrors(t *testing.T) {
	job := &Job{ID: "j2"}
	if errs := job.Snapshot().Progress.Errors; errs == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
}

func TestJob_SetResultDropsFileData(t *testing.T) {
	job := &Job{ID: "j3"}
	job.SetFileData([]byte("raw bytes"))

	job.SetResult(testRecord())

	if job.FileData() != nil {
		t.Error("expected file data to be released after result")
	}
	if job.Result() == nil {
		t.Error("expected result to be retained")
	}
}

func TestNewJobID_UniqueAndSortable(t *testing.T) {
	a := NewJobID()
	b := NewJobID()
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("expected 26-char ids, got %q, %q", a, b)
	}
	if a == b {
		t.Error("expected unique ids")
	}
	if !(a < b) {
		t.Errorf("expected ids to sort by creation: %q !< %q", a, b)
	}
}
