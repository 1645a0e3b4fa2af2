package cli

import (
	"file-ingest/internal/domain"

	"github.com/spf13/cobra"
)

var (
	serverURL    string
	maxFiles     int
	maxSizeMB    int64
	allowedTypes []string
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Batch file ingestion client",
	Long:  "Uploads local files to object storage through backend-issued presigned credentials and reports the resulting input sources",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080",
		"Base URL of the ingest backend")
	rootCmd.PersistentFlags().IntVar(&maxFiles, "max-files", domain.DefaultMaxFiles,
		"Maximum number of files in one batch")
	rootCmd.PersistentFlags().Int64Var(&maxSizeMB, "max-size", domain.DefaultMaxSizeMB,
		"Maximum file size in megabytes")
	rootCmd.PersistentFlags().StringSliceVar(&allowedTypes, "type", domain.DefaultAllowedTypes,
		"Allowed content types (image/*, application/pdf, ...) or extensions (.log)")

	rootCmd.AddCommand(newUploadCmd())
}
