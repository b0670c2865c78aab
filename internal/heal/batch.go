package heal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aimlmend/internal/validate"
)

// Summary aggregates one heal run over a directory. It is built by folding
// FileResults and is immutable once returned.
type Summary struct {
	FilesProcessed int
	FilesHealed    int
	FilesFailed    int
	TotalFixes     int
}

// Fold accumulates one file's result into the summary.
func (s *Summary) Fold(r FileResult) {
	s.FilesProcessed++
	if !r.Succeeded {
		s.FilesFailed++
		return
	}
	if r.Modified {
		s.FilesHealed++
		s.TotalFixes += r.FixesApplied
	}
}

// ValidationSummary counts acceptable documents in a directory.
type ValidationSummary struct {
	TotalFiles   int
	ValidFiles   int
	InvalidFiles int
}

// HealDir heals every matching file directly inside dir (non-recursive).
// Files are processed concurrently up to the configured limit; results land
// in per-file slots and are folded at a single accumulation point, so no two
// files ever race on the counters.
func (h *Healer) HealDir(ctx context.Context, dir string) (Summary, error) {
	files, err := h.listFiles(dir)
	if err != nil {
		return Summary{}, err
	}
	log := h.log.With(
		zap.String("run_id", uuid.New().String()[:8]),
		zap.String("dir", dir))
	log.Info("heal run starting", zap.Int("files", len(files)))

	results := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = FileResult{Path: path, Err: err.Error()}
				return nil
			}
			results[i] = h.HealFile(path)
			return nil
		})
	}
	// Workers never return errors; failures live in their result slots.
	_ = g.Wait()

	var sum Summary
	for _, r := range results {
		if !r.Succeeded {
			log.Warn("file failed", zap.String("file", r.Path), zap.String("error", r.Err))
		}
		sum.Fold(r)
	}
	log.Info("heal run finished",
		zap.Int("processed", sum.FilesProcessed),
		zap.Int("healed", sum.FilesHealed),
		zap.Int("failed", sum.FilesFailed),
		zap.Int("fixes", sum.TotalFixes))
	return sum, nil
}

// ValidateDir runs the structural validator over every matching file without
// touching any of them. It is used before and after a heal run to measure
// improvement, and standalone via the validate command.
func (h *Healer) ValidateDir(ctx context.Context, dir string) (ValidationSummary, error) {
	files, err := h.listFiles(dir)
	if err != nil {
		return ValidationSummary{}, err
	}
	var sum ValidationSummary
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.TotalFiles++
		raw, err := os.ReadFile(path)
		if err != nil {
			sum.InvalidFiles++
			h.log.Warn("validate: unreadable file", zap.String("file", path), zap.Error(err))
			continue
		}
		out := validate.Check(string(raw), h.recordTag)
		if out.Acceptable(h.rootTag) {
			sum.ValidFiles++
			continue
		}
		sum.InvalidFiles++
		h.log.Debug("document not acceptable",
			zap.String("file", path),
			zap.Bool("wellformed", out.WellFormed),
			zap.String("root", out.RootTag),
			zap.Int("records", out.RecordCount),
			zap.String("diagnostic", out.Diagnostic))
	}
	return sum, nil
}

func (h *Healer) listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		// Backups match neither check: ".aiml.bak" has extension ".bak".
		if !strings.EqualFold(filepath.Ext(name), h.extension) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
