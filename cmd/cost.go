package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/themegen/internal/config"
	"github.com/ziadkadry99/themegen/internal/llm"
	"github.com/ziadkadry99/themegen/internal/theme"
)

// typicalOutputTokens approximates one response of three complete
// designs. It is capped at the configured max_tokens.
const typicalOutputTokens = 24000

var costCmd = &cobra.Command{
	Use:   "cost [brief]",
	Short: "Estimate the API cost of one generation",
	Long:  `Counts the tokens of the request that would be sent and estimates the cost for each quality tier without calling the provider.`,
	RunE:  runCost,
}

func init() {
	costCmd.Flags().String("attach", "", "reference file to include in the estimate")
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	req := theme.Request{Prompt: strings.Join(args, " ")}
	if path, _ := cmd.Flags().GetString("attach"); path != "" {
		att, err := llm.ReadAttachment(path, int64(cfg.Studio.MaxAttachmentMB)<<20)
		if err != nil {
			return err
		}
		req.Attachment = att
	}

	in := requestTokens(req, cfg)
	outTokens := typicalOutputTokens
	if cfg.MaxTokens > 0 && cfg.MaxTokens < outTokens {
		outTokens = cfg.MaxTokens
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Cost Estimate")
	fmt.Fprintln(out, "=============")
	fmt.Fprintf(out, "  Input tokens:   ~%d\n", in)
	fmt.Fprintf(out, "  Output tokens:  ~%d\n", outTokens)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Tier Comparison:")
	fmt.Fprintln(out, "  ────────────────────────────────────────")
	for _, tier := range []config.QualityTier{config.QualityLite, config.QualityNormal, config.QualityMax} {
		preset := config.GetPreset(cfg.Provider, tier)
		marker := " "
		if tier == cfg.Quality {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %-8s  ~$%.4f  (model: %s)\n", marker, tier, llm.EstimateCost(preset.Model, in, outTokens), preset.Model)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  * = current configuration")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Provider: %s\n", cfg.Provider)
	fmt.Fprintf(out, "  Model:    %s (~$%.4f)\n", cfg.Model, llm.EstimateCost(cfg.Model, in, outTokens))
	return nil
}

// requestTokens estimates the input tokens of the completion the
// generator would send. Attachments are rated by their encoded size.
func requestTokens(req theme.Request, cfg *config.Config) int {
	cr := theme.BuildCompletion(req, cfg.Model, cfg.MaxTokens, cfg.Temperature)
	total := 0
	for _, m := range cr.Messages {
		total += llm.EstimateTokens(m.Content)
		for _, a := range m.Attachments {
			total += llm.EstimateTokens(a.Base64())
		}
	}
	return total
}
