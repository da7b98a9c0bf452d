package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/careerstack/resumegest/internal/extract"
	"github.com/careerstack/resumegest/internal/layout"
	"github.com/careerstack/resumegest/internal/reader"
)

// Worker processes a single parse job: read fragments, group lines,
// group sections, extract fields.
type Worker struct {
	remote     *reader.RemoteReader
	log        *slog.Logger
	lineCfg    layout.LineConfig
	sectionCfg layout.SectionConfig
}

func NewWorker(remote *reader.RemoteReader, log *slog.Logger, lineCfg layout.LineConfig, sectionCfg layout.SectionConfig) *Worker {
	return &Worker{
		remote:     remote,
		log:        log,
		lineCfg:    lineCfg,
		sectionCfg: sectionCfg,
	}
}

// Process runs the full pipeline for a job. Reader failure fails the
// job; the downstream stages never run on failure and never fail
// themselves.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "user_id", job.UserID, "filename", job.Filename)

	// Phase 1: Read
	job.SetStatus(StatusReading, "reading")
	r, err := w.readerFor(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "reading")
		return
	}

	data := job.FileData()
	fragments, err := r.Read(ctx, bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("read failed", "error", err)
		job.AddError(fmt.Sprintf("read: %s", err))
		job.SetStatus(StatusFailed, "reading")
		return
	}

	// Phase 2: Group lines
	job.SetStatus(StatusGrouping, "grouping")
	lines := layout.GroupLines(fragments, w.lineCfg)

	// Phase 3: Group sections
	job.SetStatus(StatusSectioning, "sectioning")
	sections := layout.GroupSections(lines, w.sectionCfg)
	job.SetCounts(len(fragments), len(lines), len(sections))

	// Phase 4: Extract
	job.SetStatus(StatusExtracting, "extracting")
	record := extract.Extract(sections)

	job.SetResult(record)
	job.SetStatus(StatusCompleted, "done")
	log.Info("parse complete",
		"fragments", len(fragments),
		"lines", len(lines),
		"sections", len(sections),
		"empty", record.IsEmpty(),
	)
}

// readerFor prefers the remote parsing service when configured,
// falling back to the local format readers.
func (w *Worker) readerFor(filename string) (reader.Reader, error) {
	if w.remote != nil {
		return w.remote, nil
	}
	return reader.ForFile(filename)
}
