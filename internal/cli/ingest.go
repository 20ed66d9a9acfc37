package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/loader"
	"docqa/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Chunk and embed a document into the vector store",
	Long: `Split a document into paragraph chunks, embed each chunk, and upsert the
vectors into the configured collection. Record ids are chunk indices, so
re-running ingest over the same document overwrites the same records.

The collection must already exist with a dimensionality matching the
embedding model.

Examples:
  docqa ingest story.txt
  docqa ingest report.pdf --collection reports`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if err := cfg.ValidateForIngest(); err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	st, err := newStore(cfg, embedder.Dimension())
	if err != nil {
		return fmt.Errorf("failed to create vector store: %w", err)
	}

	doc, err := loader.Load(args[0])
	if err != nil {
		return err
	}

	ingestUC := usecase.NewIngestUseCase(chunker.NewParagraphChunker(), embedder, st)

	// The bar is created on the first callback, once the chunk count
	// is known.
	var bar *progressbar.ProgressBar
	progressCallback := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Ingesting[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	result, err := ingestUC.Ingest(doc, progressCallback)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Document:        %s\n", result.DocumentPath)
	fmt.Printf("  Chunks upserted: %d\n", result.ChunksUpserted)
	fmt.Printf("  Collection:      %s\n", cfg.Store.Collection)
	fmt.Printf("  Embedding model: %s\n", embedder.ModelName())
	return nil
}
