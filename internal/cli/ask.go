package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docqa/internal/domain"
	"docqa/internal/usecase"
)

var (
	askQuestion    string
	askTopK        int
	askShowMatches bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question from the ingested document",
	Long: `Embed the question, retrieve the closest chunks from the collection, and
ask the configured language model with those chunks as context. The
answer is printed to stdout as-is.

Examples:
  docqa ask -q "What appeared?"
  docqa ask -q "Who is the hero?" --top-k 3 --show-matches`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askShowMatches, "show-matches", false, "print retrieved chunks with scores before the answer")
	askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if strings.TrimSpace(askQuestion) == "" {
		return &domain.ConfigError{Field: "question", Reason: "question must not be blank"}
	}

	if err := cfg.ValidateForAsk(); err != nil {
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
	model, err := newLLM(cfg)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	topK := cfg.Ask.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	answerUC := usecase.NewAnswerUseCase(embedder, st, model, topK)

	result, err := answerUC.Answer(askQuestion)
	if err != nil {
		return fmt.Errorf("answering failed: %w", err)
	}

	if askShowMatches {
		if len(result.Matches) == 0 {
			fmt.Println("No matches found.")
		} else {
			fmt.Printf("Found %d matches for: %s\n\n", len(result.Matches), askQuestion)
			for i, m := range result.Matches {
				fmt.Printf("--- [%d] chunk %s (score: %.2f) ---\n", i+1, m.ID, m.Score)
				text := m.Metadata[domain.MetadataTextKey]
				if len(text) > 500 {
					text = text[:500] + "..."
				}
				fmt.Println(text)
				fmt.Println()
			}
		}
	}

	fmt.Println(result.Answer)
	return nil
}
