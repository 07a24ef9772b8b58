package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"webify/internal/archive"
	"webify/internal/collection"
	"webify/internal/logging"
	"webify/internal/output"
	"webify/internal/preflight"
	"webify/internal/services"
	"webify/internal/staging"
	"webify/internal/transform"
)

// Stage names in execution order.
const (
	StageExtracting      = "extracting"
	StageReadingMetadata = "reading metadata"
	StageTransforming    = "transforming"
	StageWriting         = "writing"
	StageDone            = "done"
)

// run carries the state shared between stages of one conversion.
type run struct {
	req       Request
	logger    *slog.Logger
	targetDir string
	tempDir   string

	extraction *archive.Extraction
	reader     *collection.Reader
	decks      collection.Decks
	manifest   collection.MediaManifest
	transform  *transform.Result
	result     Result
}

// Run converts req.ArchivePath into <OutputRoot>/<TargetID>.
func Run(ctx context.Context, req Request, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "pipeline")
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := archive.CheckInput(req.ArchivePath); err != nil {
		return nil, err
	}

	root, err := prepareOutputRoot(req.OutputRoot)
	if err != nil {
		return nil, err
	}
	var archiveSize int64
	if info, err := os.Stat(req.ArchivePath); err == nil {
		archiveSize = info.Size()
	}
	if err := preflight.Err(preflight.RunAll(root, archiveSize)); err != nil {
		return nil, err
	}

	unlock, err := lockTarget(root, req.TargetID)
	if err != nil {
		return nil, err
	}
	defer unlock(logger)

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithTargetID(ctx, req.TargetID)

	r := &run{
		req:       req,
		logger:    logger,
		targetDir: filepath.Join(root, req.TargetID),
		result: Result{
			RunID:     runID,
			TargetDir: filepath.Join(root, req.TargetID),
		},
	}
	defer r.close()

	logging.WithContext(ctx, logger).Info("conversion started",
		logging.String("archive", req.ArchivePath),
		logging.String("target_dir", r.targetDir),
		logging.String("media_prepend", req.MediaPrepend),
	)

	stages := []struct {
		name string
		fn   func(context.Context, *slog.Logger) error
	}{
		{StageExtracting, r.extract},
		{StageReadingMetadata, r.readMetadata},
		{StageTransforming, r.transformCards},
		{StageWriting, r.write},
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, services.Wrap(services.ErrIO, stage.name, "run stage", "cancelled", err)
		}
		if err := r.runStage(ctx, stage.name, stage.fn); err != nil {
			return nil, err
		}
	}

	r.result.Duration = time.Since(start)
	logging.WithContext(services.WithStage(ctx, StageDone), logger).Info("conversion completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("cards", r.result.Cards),
		logging.Int("decks", len(r.result.Decks)),
		logging.Int("media_files", r.result.MediaFiles),
		logging.Int("unresolved_images", len(r.result.Unresolved)),
		logging.Duration("duration", r.result.Duration),
	)
	result := r.result
	return &result, nil
}

func (r *run) runStage(ctx context.Context, name string, fn func(context.Context, *slog.Logger) error) error {
	stageCtx := services.WithStage(ctx, name)
	stageLogger := logging.WithContext(stageCtx, r.logger)
	stageStart := time.Now()
	stageLogger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))

	if err := fn(stageCtx, stageLogger); err != nil {
		stageLogger.Error("stage failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.String("error_category", services.Classify(err)),
			logging.Duration("duration", time.Since(stageStart)),
			logging.Error(err),
		)
		return err
	}

	stageLogger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("duration", time.Since(stageStart)),
	)
	return nil
}

func (r *run) extract(ctx context.Context, logger *slog.Logger) error {
	tempDir, err := staging.Prepare(r.targetDir, logger)
	if err != nil {
		return services.Wrap(services.ErrIO, StageExtracting, "prepare temp directory", r.targetDir, err)
	}
	r.tempDir = tempDir

	extraction, err := archive.Extract(ctx, r.req.ArchivePath, tempDir)
	if err != nil {
		return err
	}
	r.extraction = extraction
	logger.Debug("archive extracted",
		logging.String("temp_dir", tempDir),
		logging.Int("entries", extraction.Entries),
	)
	return nil
}

func (r *run) readMetadata(ctx context.Context, logger *slog.Logger) error {
	reader, err := collection.Open(ctx, r.extraction.DatabasePath)
	if err != nil {
		return err
	}
	r.reader = reader

	decks, err := reader.Decks(ctx)
	if err != nil {
		return err
	}
	manifest, err := collection.LoadMediaManifest(r.extraction.ManifestPath)
	if err != nil {
		return err
	}
	r.decks = decks
	r.manifest = manifest
	logger.Info("metadata loaded",
		logging.Int("decks", len(decks)),
		logging.Int("media_entries", len(manifest)),
	)
	return nil
}

func (r *run) transformCards(ctx context.Context, logger *slog.Logger) error {
	replacer := transform.NewReplacer(r.manifest, r.req.MediaPrepend, r.req.TargetID)
	transformer := transform.New(r.decks, replacer)
	if err := r.reader.Cards(ctx, transformer.Add); err != nil {
		return err
	}
	r.transform = transformer.Result()

	for _, card := range r.transform.Cards {
		r.auditImages(logger, card.ID, "front", card.Front)
		r.auditImages(logger, card.ID, "back", card.Back)
	}
	logger.Info("cards transformed",
		logging.Int("cards", len(r.transform.Cards)),
		logging.Int("decks_used", len(r.transform.Index)),
	)
	return nil
}

func (r *run) auditImages(logger *slog.Logger, cardID int64, face, html string) {
	for _, src := range transform.UnresolvedImages(html, r.req.MediaPrepend, r.req.TargetID) {
		r.result.Unresolved = append(r.result.Unresolved, UnresolvedImage{CardID: cardID, Face: face, Source: src})
		logging.WarnWithContext(logger, "image reference not rewritten", "media_unresolved",
			logging.Int64("card_id", cardID),
			logging.String("face", face),
			logging.String("src", src),
			logging.String(logging.FieldErrorHint, "re-export with the image inserted as a plain <img src> tag"),
			logging.String(logging.FieldImpact, "image will not load from the served files"),
		)
	}
}

func (r *run) write(_ context.Context, logger *slog.Logger) error {
	writer := output.New(r.targetDir, logger)
	if err := writer.WriteCards(r.transform.Cards); err != nil {
		return err
	}
	moved, err := writer.MoveMedia(r.tempDir, r.manifest)
	if err != nil {
		return err
	}
	if err := writer.WriteIndex(r.transform.Index); err != nil {
		return err
	}

	r.closeReader(logger)
	if err := staging.Cleanup(r.tempDir, logger); err != nil {
		return services.Wrap(services.ErrIO, StageWriting, "remove temp directory", r.tempDir, err)
	}

	r.result.Cards = len(r.transform.Cards)
	r.result.Decks = r.transform.DeckCounts()
	r.result.MediaFiles = moved
	return nil
}

func (r *run) closeReader(logger *slog.Logger) {
	if r.reader == nil {
		return
	}
	if err := r.reader.Close(); err != nil && logger != nil {
		logger.Debug("failed to close collection database", logging.Error(err))
	}
	r.reader = nil
}

func (r *run) close() {
	r.closeReader(r.logger)
}
