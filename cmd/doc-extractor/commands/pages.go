package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsnap/doc-extractor/cmd/doc-extractor/ui"
	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/pdf"
)

var pagesCmd = &cobra.Command{
	Use:   "pages <file.pdf>",
	Short: "List the pages of a PDF with their rendered dimensions",
	Args:  cobra.ExactArgs(1),
	RunE:  runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}

// runPages rasterizes locally and needs no extraction credential.
func runPages(cmd *cobra.Command, args []string) error {
	ui.InitUI(noColor, verbose)

	path := args[0]
	kind, err := pdf.ValidateInputPath(path)
	if err != nil {
		return err
	}
	if kind != domain.KindPDF {
		return fmt.Errorf("pages requires a PDF file, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	rasterizer := pdf.NewRasterizer()
	var bar *ui.ProgressBar
	rasterizer.OnPage = func(index, total int) {
		if bar == nil {
			bar = ui.NewProgressBar(int64(total), "Rasterizing")
		}
		bar.Set(int64(index + 1))
	}

	set, err := rasterizer.Rasterize(context.Background(), data)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(set))
	for _, page := range set {
		rows = append(rows, []string{
			fmt.Sprintf("%d", page.Index),
			fmt.Sprintf("%d", page.Width),
			fmt.Sprintf("%d", page.Height),
		})
	}

	ui.Table([]string{"Index", "Width", "Height"}, rows)
	ui.Info("%d pages rendered", len(set))

	return nil
}
