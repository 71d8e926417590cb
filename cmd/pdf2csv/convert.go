package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pdf-csv-extractor/internal/config"
	"pdf-csv-extractor/internal/domain"
	"pdf-csv-extractor/pkg/logger"
)

// stdoutTarget selects standard output for --output.
const stdoutTarget = "-"

var convertCmd = &cobra.Command{
	Use:   "convert <file.pdf>",
	Short: "Convert one PDF file to CSV",
	Long: `Convert extracts the text of one PDF and writes <name>_extracted.csv to the
current directory. Use --output to choose another path, or --output - to
write the CSV to standard output.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output path, or - for stdout (default: <name>_extracted.csv)")
	convertCmd.Flags().String("backend", domain.BackendLedongthuc, "text extraction backend: ledongthuc or fitz")
	convertCmd.Flags().String("staging-dir", filepath.Join(os.TempDir(), "pdf2csv"), "directory for the transient staging copy")
	convertCmd.Flags().Duration("page-timeout", 90*time.Second, "per-page timeout for the fitz backend")
	convertCmd.Flags().String("log-level", "warn", "log level: debug, info, warn, error")

	_ = viper.BindPFlags(convertCmd.Flags())

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := &config.AppConfig{
		UploadPath:        viper.GetString("staging-dir"),
		AllowedExtensions: []string{"pdf"},
		LogLevel:          viper.GetString("log-level"),
		ExtractorBackend:  viper.GetString("backend"),
		PageTimeout:       viper.GetDuration("page-timeout"),
	}
	appLogger := logger.NewLoggerWithWriter(cfg.LogLevel, cmd.ErrOrStderr())

	container, err := config.NewContainerWith(cfg, appLogger)
	if err != nil {
		return err
	}

	src := args[0]
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}

	out, err := container.GetConversionService().Convert(cmd.Context(), &domain.UploadedFile{
		Filename: filepath.Base(src),
		Size:     info.Size(),
		Content:  f,
	})
	if err != nil {
		return describeConvertError(err)
	}

	dest := viper.GetString("output")
	if dest == stdoutTarget {
		_, err := cmd.OutOrStdout().Write(out.Data)
		return err
	}
	if dest == "" {
		dest = out.AttachmentName
	}
	if err := os.WriteFile(dest, out.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d pages, %d with text)\n", dest, out.Result.PageCount, out.Result.TextPages)
	return nil
}

func describeConvertError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnsupportedType):
		return errors.New("Only PDF files are allowed")
	case errors.Is(err, domain.ErrNoFilename):
		return errors.New("No file selected")
	default:
		return err
	}
}
