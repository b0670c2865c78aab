// Package heal drives the per-file repair workflow and the directory-level
// batch runs built on top of it. Per-file failures are captured in result
// records and never abort the batch.
package heal

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"aimlmend/internal/repair"
)

// FileResult records the outcome of healing one file. It is constructed once
// and never mutated afterwards; the batch layer folds it into a Summary and
// discards it.
type FileResult struct {
	Path         string
	Modified     bool
	FixesApplied int
	BackupPath   string
	Succeeded    bool
	Err          string
}

// Options configure a Healer. Zero values fall back to the corpus defaults.
type Options struct {
	RootTag      string
	RecordTag    string
	Extension    string
	Backup       bool
	BackupSuffix string
	Concurrency  int
	Speculative  bool
}

// Healer applies the repair pipeline to files on disk.
type Healer struct {
	pipeline     *repair.Pipeline
	log          *zap.Logger
	rootTag      string
	recordTag    string
	extension    string
	backup       bool
	backupSuffix string
	concurrency  int
}

// New builds a Healer from options. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Healer {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.RootTag == "" {
		opts.RootTag = repair.DefaultRootTag
	}
	if opts.RecordTag == "" {
		opts.RecordTag = "category"
	}
	if opts.Extension == "" {
		opts.Extension = ".aiml"
	}
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = ".bak"
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Healer{
		pipeline: repair.NewPipeline(repair.Options{
			RootTag:                opts.RootTag,
			SpeculativeTagRecovery: opts.Speculative,
		}),
		log:          log,
		rootTag:      opts.RootTag,
		recordTag:    opts.RecordTag,
		extension:    opts.Extension,
		backup:       opts.Backup,
		backupSuffix: opts.BackupSuffix,
		concurrency:  opts.Concurrency,
	}
}

// HealFile reads, repairs and, when anything changed, rewrites one file.
// With backups enabled the original is copied to a sibling path first.
// Backup-then-write is not atomic: a crash between the two can leave the
// original partially updated. That is acceptable for an offline batch tool;
// rerunning is safe because the pipeline is idempotent.
func (h *Healer) HealFile(path string) FileResult {
	raw, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Sprintf("read: %v", err)}
	}
	// Lenient decode: undecodable bytes ride along as-is until the
	// sanitizer pass drops them.
	repaired, tally := h.pipeline.Run(string(raw))
	if tally == 0 {
		return FileResult{Path: path, Succeeded: true}
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	res := FileResult{Path: path, Modified: true, FixesApplied: tally, Succeeded: true}
	if h.backup {
		bak := path + h.backupSuffix
		if err := os.WriteFile(bak, raw, mode); err != nil {
			return FileResult{Path: path, Err: fmt.Sprintf("backup: %v", err)}
		}
		res.BackupPath = bak
	}
	if err := os.WriteFile(path, []byte(repaired), mode); err != nil {
		return FileResult{Path: path, Err: fmt.Sprintf("write: %v", err)}
	}
	h.log.Debug("healed file",
		zap.String("file", path),
		zap.Int("fixes", tally),
		zap.String("backup", res.BackupPath))
	return res
}
