package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"file-ingest/internal/client/credbroker"
	"file-ingest/internal/client/objectstore"
	"file-ingest/internal/usecase/ingest"

	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file> [file...]",
		Short: "Upload a batch of files",
		Long: `Upload a batch of files to object storage.

Every file is validated against the configured limits first; one invalid
file rejects the whole selection. The batch is then uploaded strictly in
order and reported to the backend only when every file succeeded.

Examples:
  ingest upload report.pdf photo.png
  ingest --server http://ingest.local:8080 --max-size 10 upload notes.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runUpload,
	}
}

func runUpload(cmd *cobra.Command, args []string) error {
	zlog.Init()

	limits := ingest.Limits{
		MaxFiles:     maxFiles,
		MaxSizeBytes: maxSizeMB << 20,
		AllowedTypes: allowedTypes,
	}

	event, err := loadSelection(args, limits)
	if err != nil {
		return err
	}

	backend := credbroker.New(serverURL)
	batch := ingest.NewBatch(backend, objectstore.New(), limits, &zlog.Logger)

	if err := batch.Add(event); err != nil {
		return fmt.Errorf("selection rejected: %s", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sources, err := batch.Run(ctx)
	if err != nil {
		return fmt.Errorf("batch failed, %d file(s) still queued: %w", batch.Len(), err)
	}

	if err := backend.Complete(ctx, sources); err != nil {
		return fmt.Errorf("failed to report completed batch: %w", err)
	}

	fmt.Printf("Uploaded %d file(s):\n", len(sources))
	for _, src := range sources {
		fmt.Printf("  %s  %s (%d bytes, %s)\n", src.URL, src.Filename, src.Size, src.ContentType)
	}

	return nil
}
