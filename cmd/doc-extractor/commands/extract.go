package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsnap/doc-extractor/cmd/doc-extractor/ui"
	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/pdf"
)

var (
	extractURL   string
	extractPage  int
	extractOut   string
	extractModel string
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract data from a document image, PDF page, or image URL",
	Long: `Extract structured data from a local image or PDF file, or from a remote
image URL. For PDFs, --page selects the zero-based page to analyze.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractURL, "url", "u", "", "remote image URL instead of a local file")
	extractCmd.Flags().IntVarP(&extractPage, "page", "p", 0, "zero-based PDF page index")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "write the result to a file instead of stdout")
	extractCmd.Flags().StringVarP(&extractModel, "model", "m", "", "override the configured model identifier")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ui.InitUI(noColor, verbose)

	if len(args) == 0 && extractURL == "" {
		return fmt.Errorf("provide a file argument or --url")
	}
	if len(args) > 0 && extractURL != "" {
		return fmt.Errorf("provide either a file argument or --url, not both")
	}

	service, _, err := newService(extractModel)
	if err != nil {
		return err
	}

	ctx := context.Background()

	spin := ui.NewSpinner("Extracting data...")
	spin.Start()
	start := time.Now()
	result, err := extractOnce(ctx, service, args)
	spin.Stop()

	if err != nil {
		ui.Error("Extraction failed: %v", err)
		return err
	}

	if ui.Verbose() {
		ui.KeyValue("Model", result.Model)
		ui.KeyValue("Duration", ui.FormatDuration(time.Since(start)))
	}

	return writeResult(result)
}

// extractOnce routes the input through exactly one pipeline run.
func extractOnce(ctx context.Context, service serviceIface, args []string) (domain.ExtractionResult, error) {
	if extractURL != "" {
		return service.ExtractURL(ctx, extractURL)
	}

	path := args[0]
	kind, err := pdf.ValidateInputPath(path)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ExtractionResult{}, domain.ValidationError(fmt.Sprintf("cannot read %s", path), err)
	}

	raw := domain.RawInput{Kind: kind, Data: data, Filename: filepath.Base(path)}
	if kind == domain.KindPDF {
		return service.ExtractPDFPage(ctx, raw, extractPage)
	}
	return service.ExtractImage(ctx, raw)
}

// serviceIface is the slice of the pipeline the extract command uses.
type serviceIface interface {
	ExtractImage(ctx context.Context, raw domain.RawInput) (domain.ExtractionResult, error)
	ExtractPDFPage(ctx context.Context, raw domain.RawInput, pageIndex int) (domain.ExtractionResult, error)
	ExtractURL(ctx context.Context, rawURL string) (domain.ExtractionResult, error)
}

// writeResult prints the result or saves it as the download artifact.
// Structured results are pretty-printed best-effort; text that merely
// looks like JSON but does not indent is emitted verbatim.
func writeResult(result domain.ExtractionResult) error {
	text := result.Text
	if result.Display == domain.DisplayStructured {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(text), "", "  "); err == nil {
			text = buf.String()
		}
	}

	if extractOut == "" {
		fmt.Println(text)
		return nil
	}

	out := extractOut
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, domain.ArtifactFilename)
	}

	if err := os.WriteFile(out, []byte(result.Text), 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	ui.Success("Extracted data saved to: %s", out)
	return nil
}
