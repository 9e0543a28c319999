package main

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pagoandino/capture-cli/internal/capture"
	"github.com/pagoandino/capture-cli/internal/ingest"
	"github.com/pagoandino/capture-cli/internal/model"
	"github.com/pagoandino/capture-cli/internal/ocr"
	"github.com/pagoandino/capture-cli/internal/volcado"
	anthropicpkg "github.com/pagoandino/capture-cli/pkg/anthropic"
)

var (
	captureAuto    bool
	capturePublish bool
	captureUser    string
	captureSource  string
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Run a capture over a document directory",
	Long:  "Iterates extraction over the documents in the source directory until every field is matched or no new documents arrive, resolving low-confidence and conflicting values along the way.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		sourceDir := cfg.Sources.Dir
		if captureSource != "" {
			sourceDir = captureSource
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		fields, err := model.LoadFields(cfg.Capture.FieldsFile)
		if err != nil {
			return err
		}

		textExtractor, err := ocr.NewExtractor(cfg.Sources.OCR)
		if err != nil {
			return eris.Wrap(err, "init ocr")
		}

		hub := ingest.NewHub(sourceDir, cfg.Sources.PDFMode, textExtractor)
		if err := hub.Refresh(ctx); err != nil {
			return eris.Wrap(err, "load source documents")
		}
		if hub.Count() == 0 {
			return eris.Errorf("no documents found in %s", sourceDir)
		}

		client := anthropicpkg.NewClient(cfg.Anthropic.Key)
		extractor := capture.NewExtractor(client, cfg.Anthropic.Model, int64(cfg.Anthropic.MaxTokens), cfg.Anthropic.RatePerMinute)

		var resolver capture.Resolver = capture.NewConsoleResolver(os.Stdin, os.Stdout)
		if captureAuto {
			resolver = capture.AutoResolver{}
		}

		engine := capture.NewEngine(extractor, resolver, hub, capture.EngineConfig{
			CarryOverConfidence:    cfg.Capture.CarryOverConfidence,
			ConfidenceThreshold:    cfg.Capture.ConfidenceThreshold,
			ClearConflictOnResolve: cfg.Capture.ClearConflictOnResolve,
		})

		run, err := st.CreateRun(ctx, sourceDir)
		if err != nil {
			return err
		}
		zap.L().Info("captura iniciada",
			zap.String("run_id", run.ID),
			zap.String("source_dir", sourceDir),
			zap.Int("documents", hub.Count()),
		)

		state := model.NewCaptureState(fields, cfg.Capture.MaxIterations)
		state, runErr := engine.Run(ctx, state)
		if runErr != nil {
			if failErr := st.FailRun(context.WithoutCancel(ctx), run.ID, runErr); failErr != nil {
				zap.L().Error("no se pudo registrar el fallo de la captura", zap.Error(failErr))
			}
			return runErr
		}

		if !captureAuto {
			prompter := volcado.NewConsolePrompter(os.Stdin, os.Stdout)
			if err := volcado.CompleteMissing(state.Results, prompter, os.Stdout); err != nil {
				return err
			}
		}
		volcado.PrintResults(state.Results, os.Stdout)

		usage := anthropicpkg.TokenUsage{
			InputTokens:              int64(state.TokenUsage.InputTokens),
			OutputTokens:             int64(state.TokenUsage.OutputTokens),
			CacheCreationInputTokens: int64(state.TokenUsage.CacheCreationTokens),
			CacheReadInputTokens:     int64(state.TokenUsage.CacheReadTokens),
		}
		usage.LogCost(cfg.Anthropic.Model, "capture")

		result := &model.RunResult{
			Results:    state.Results,
			Iterations: state.Iteration,
			Sufficient: state.SufficientInfo,
			Documents:  hub.Count(),
			TokenUsage: state.TokenUsage,
		}

		if capturePublish {
			if err := publishResults(ctx, state.Results, captureUser); err != nil {
				result.Error = err.Error()
				if saveErr := st.CompleteRun(ctx, run.ID, result); saveErr != nil {
					zap.L().Error("no se pudo guardar el resultado", zap.Error(saveErr))
				}
				return err
			}
			result.Published = true
		}

		if err := st.CompleteRun(ctx, run.ID, result); err != nil {
			return err
		}
		if result.Published {
			if err := st.MarkPublished(ctx, run.ID); err != nil {
				return err
			}
		}

		zap.L().Info("captura finalizada",
			zap.String("run_id", run.ID),
			zap.Int("iterations", state.Iteration),
			zap.Bool("sufficient", state.SufficientInfo),
			zap.Bool("published", result.Published),
		)
		return nil
	},
}

func init() {
	captureCmd.Flags().BoolVar(&captureAuto, "auto", false, "resolve low-confidence and conflicting values without prompting")
	captureCmd.Flags().BoolVar(&capturePublish, "publish", false, "publish the consolidated payload to Kafka after capture")
	captureCmd.Flags().StringVar(&captureUser, "user", "capture-cli", "operator recorded on the published entities")
	captureCmd.Flags().StringVar(&captureSource, "source", "", "document directory (overrides sources.dir)")
	rootCmd.AddCommand(captureCmd)
}
