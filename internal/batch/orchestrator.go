package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"lyricdeck/internal/artwork"
	"lyricdeck/internal/config"
	"lyricdeck/internal/deck"
	"lyricdeck/internal/deck/pptx"
	"lyricdeck/internal/fileutil"
	"lyricdeck/internal/layout"
	"lyricdeck/internal/logging"
	"lyricdeck/internal/lyrics"
	"lyricdeck/internal/notify"
	"lyricdeck/internal/scratch"
	"lyricdeck/internal/services"
	"lyricdeck/internal/tags"
	"lyricdeck/internal/textutil"
)

// lockFileName guards the output directory against concurrent batches.
const lockFileName = ".lyricdeck.lock"

// Orchestrator runs the conversion pipeline over a directory of audio
// files.
type Orchestrator struct {
	cfg        *config.Config
	logger     *slog.Logger
	normalizer *lyrics.Normalizer
	compositor *artwork.Compositor
	engine     *layout.Engine
	builder    *deck.Builder
	notifier   notify.Service

	readTrack func(string) (tags.Track, error)
	writeDeck func(*deck.Deck, string) error
}

// New assembles an orchestrator from configured collaborators. The
// normalizer carries the cleaning client and cache wiring; everything else
// is derived from the config.
func New(cfg *config.Config, logger *slog.Logger, normalizer *lyrics.Normalizer, notifier notify.Service) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "batch"),
		normalizer: normalizer,
		compositor: artwork.NewCompositor(cfg),
		engine:     layout.NewEngine(layout.OptionsFromConfig(cfg)),
		builder:    deck.NewBuilder(cfg),
		notifier:   notifier,
		readTrack:  tags.Read,
		writeDeck:  pptx.Write,
	}
}

// Run executes the batch and reports the outcome through the notifier.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	summary, err := o.run(ctx)
	if err != nil {
		if notifyErr := o.notifier.BatchFailed(ctx, err); notifyErr != nil {
			o.logger.Warn("failed to send failure notification",
				logging.Error(notifyErr),
				logging.String(logging.FieldEventType, "notify_failed"),
			)
		}
		return nil, err
	}
	if notifyErr := o.notifier.BatchCompleted(ctx, summary.Successes, summary.Failures, summary.WallClock); notifyErr != nil {
		o.logger.Warn("failed to send completion notification",
			logging.Error(notifyErr),
			logging.String(logging.FieldEventType, "notify_failed"),
		)
	}
	return summary, nil
}

func (o *Orchestrator) run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	if o.cfg.Batch.TidyRootFiles {
		TidyRootFiles(o.cfg.Paths.MusicDir, o.logger)
	}

	files, err := Discover(o.cfg.Paths.MusicDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "batch", "discover", "cannot read music directory", err)
	}
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrNoInput, "batch", "discover", "no eligible audio files in "+o.cfg.Paths.MusicDir, nil)
	}

	lock := flock.New(filepath.Join(o.cfg.Paths.OutputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "batch", "lock", "cannot acquire output directory lock", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConfiguration, "batch", "lock", "another batch is already writing to "+o.cfg.Paths.OutputDir, nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			o.logger.Warn("failed to release output directory lock",
				logging.Error(unlockErr),
				logging.String(logging.FieldEventType, "lock_release_failed"),
			)
		}
	}()

	if maxAge := time.Duration(o.cfg.Batch.StaleScratchHours) * time.Hour; maxAge > 0 {
		scratch.CleanStale(ctx, o.cfg.Paths.ScratchDir, maxAge, o.logger)
	}
	run, err := scratch.New(o.cfg.Paths.ScratchDir)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "batch", "scratch", "cannot create run directory", err)
	}
	defer func() {
		if closeErr := run.Close(); closeErr != nil {
			o.logger.Warn("failed to remove run directory",
				logging.Error(closeErr),
				logging.String(logging.FieldEventType, "scratch_cleanup_failed"),
			)
		}
	}()

	workers := o.cfg.Batch.Workers
	if workers <= 0 {
		workers = 1
	}

	o.logger.Info("starting batch",
		logging.Int("files", len(files)),
		logging.Int("workers", workers),
		logging.String("output_dir", o.cfg.Paths.OutputDir),
		logging.String(logging.FieldEventType, "batch_started"),
	)

	results := make([]Result, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, path := range files {
		group.Go(func() error {
			results[i] = o.processFile(groupCtx, i, path, run)
			return nil
		})
	}
	// Workers record failures in their result slot and never return errors.
	_ = group.Wait()

	summary := summarize(results, time.Since(start))
	o.logger.Info("batch complete",
		logging.Int("total", summary.Total),
		logging.Int("successes", summary.Successes),
		logging.Int("failures", summary.Failures),
		logging.Duration("wall_clock", summary.WallClock),
		logging.String(logging.FieldEventType, "batch_completed"),
	)
	return summary, nil
}

// processFile runs one track through the full pipeline. Failures are
// recorded on the returned result, never propagated, so sibling tracks keep
// going.
func (o *Orchestrator) processFile(ctx context.Context, index int, path string, run *scratch.Dir) Result {
	start := time.Now()
	result := Result{Index: index, Path: path}

	finish := func() Result {
		result.Elapsed = time.Since(start)
		if result.Err != nil {
			o.logFailure(ctx, result)
		}
		return result
	}

	if err := ctx.Err(); err != nil {
		result.Err = services.Wrap(services.ErrTransient, "batch", "canceled", "run canceled before track started", err)
		return finish()
	}

	track, err := o.readTrack(path)
	if err != nil {
		result.Err = services.Wrap(services.ErrValidation, "tags", "read", "cannot read audio container", err)
		return finish()
	}
	result.Title = track.DisplayName()
	ctx = services.WithTrack(ctx, track.DisplayName())
	logger := logging.WithContext(ctx, o.logger)

	lines, pure := o.normalizer.Normalize(services.WithStage(ctx, "clean"), track.RawLyrics, track.DisplayName())
	result.Pure = pure

	assets, err := o.compositor.Composite(track.Cover)
	if err != nil {
		if errors.Is(err, services.ErrMissingArtwork) && o.cfg.Batch.OnMissingCover == config.MissingCoverBare {
			assets = nil
			result.Skipped = true
			logging.WarnWithContext(logger, "no usable cover art, emitting bare deck", "artwork_missing",
				logging.String(logging.FieldErrorHint, "embed cover art in the audio file"),
				logging.String(logging.FieldImpact, "deck has no background or cutout"),
			)
		} else {
			result.Err = err
			return finish()
		}
	}

	d := o.builder.NewDeck(track.DisplayName(), assets)
	o.builder.TitleSlide(d, track.Title, track.Artist)
	if len(lines) > 0 && assets != nil {
		for i := range lines {
			o.builder.LyricSlide(d, track.Title, track.Artist, o.engine.Frame(lines, i))
		}
		o.builder.TitleSlide(d, track.Title, track.Artist)
	}

	stem := textutil.SanitizeFileName(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	staged := run.Join(fmt.Sprintf("%03d-%s.pptx", index, stem))
	if err := o.writeDeck(d, staged); err != nil {
		result.Err = services.Wrap(services.ErrPersistence, "deck", "write", "cannot write deck package", err)
		return finish()
	}

	final := filepath.Join(o.cfg.Paths.OutputDir, stem+".pptx")
	if err := fileutil.MoveFile(staged, final); err != nil {
		result.Err = services.Wrap(services.ErrPersistence, "deck", "publish", "cannot move deck into output directory", err)
		return finish()
	}
	result.Output = final

	result.Elapsed = time.Since(start)
	logger.Info("deck generated",
		logging.String("output", final),
		logging.Int("slides", len(d.Slides)),
		logging.Bool("pure", result.Pure),
		logging.Duration("elapsed", result.Elapsed),
		logging.String(logging.FieldEventType, "deck_generated"),
	)
	return result
}

func (o *Orchestrator) logFailure(ctx context.Context, result Result) {
	logger := logging.WithContext(ctx, o.logger)
	logging.ErrorWithContext(logger, "track failed", "track_failed",
		logging.String("path", result.Path),
		logging.String("failure_kind", services.FailureKind(result.Err)),
		logging.Error(result.Err),
	)
}
