package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/themegen/internal/config"
	"github.com/ziadkadry99/themegen/internal/creations"
	"github.com/ziadkadry99/themegen/internal/llm"
	"github.com/ziadkadry99/themegen/internal/progress"
	"github.com/ziadkadry99/themegen/internal/theme"
)

var generateCmd = &cobra.Command{
	Use:   "generate [brief]",
	Short: "Generate three website designs from a brief",
	Long: `Sends the brief (and an optional reference file) to the configured model,
saves the three resulting designs, and writes each design's HTML and
design-system prompt to the output directory.`,
	Example: `  themegen generate "a landing page for a neighborhood coffee roaster" --name "Bean There"
  themegen generate --attach moodboard.png --name Portfolio`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("attach", "", "reference file (image, PDF or text) to design from")
	generateCmd.Flags().String("name", "Untitled", "project name, used in file names")
	generateCmd.Flags().String("out", "", "output directory (overrides config)")
	generateCmd.Flags().Bool("no-files", false, "save the creation without writing files")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	attachPath, _ := cmd.Flags().GetString("attach")
	outDir, _ := cmd.Flags().GetString("out")
	noFiles, _ := cmd.Flags().GetBool("no-files")
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	req := theme.Request{Prompt: strings.Join(args, " ")}
	if attachPath != "" {
		att, err := llm.ReadAttachment(attachPath, int64(cfg.Studio.MaxAttachmentMB)<<20)
		if err != nil {
			return err
		}
		req.Attachment = att
		log.Debug().Str("file", att.Name).Str("mime", att.MIMEType).Int("bytes", len(att.Data)).Msg("attachment loaded")
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: pass a brief or --attach a file", err)
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	database, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	result, err := generateWithProgress(ctx, cfg, gen, req)
	if err != nil {
		return err
	}

	c := &creations.Creation{
		Name:         name,
		Prompt:       req.Prompt,
		Provider:     string(cfg.Provider),
		Model:        result.Model,
		InputTokens:  result.InputTokens,
		OutputTokens: result.OutputTokens,
		Source:       theme.VersionsSource(result.Result.Variants()...),
	}
	if req.Attachment != nil {
		c.AttachmentName = req.Attachment.Name
		c.AttachmentType = req.Attachment.MIMEType
	}
	if err := store.Save(ctx, c); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nCreated %q (%s)\n", c.Name, c.ID)
	for i, v := range result.Result.Variants() {
		fmt.Fprintf(out, "  [%d] %s\n", i, v.Name)
	}

	if !noFiles {
		fmt.Fprintln(out)
		if err := writeArtifacts(out, outDir, c.Name, result.Result); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Tokens:          %d in / %d out\n", result.InputTokens, result.OutputTokens)
	if cost := llm.EstimateCost(result.Model, result.InputTokens, result.OutputTokens); cost > 0 {
		fmt.Fprintf(out, "  Estimated cost:  $%.4f\n", cost)
	}
	fmt.Fprintf(out, "  Duration:        %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// generateWithProgress runs one generation while the progress simulator
// walks its labels on the terminal.
func generateWithProgress(ctx context.Context, cfg *config.Config, gen *theme.Generator, req theme.Request) (*theme.Generation, error) {
	reporter := progress.NewReporter()
	sim := progress.NewSimulator()
	sim.Start()
	ticker := progress.NewTicker(sim, cfg.ProgressInterval(), progress.Attach(reporter))
	ticker.Start(ctx)

	result, err := gen.Generate(ctx, req)

	ticker.Stop()
	sim.Complete()
	reporter.Finish()

	if err != nil {
		if theme.IsStructural(err) {
			return nil, fmt.Errorf("the model returned an unusable response: %w", err)
		}
		return nil, err
	}
	return result, nil
}
