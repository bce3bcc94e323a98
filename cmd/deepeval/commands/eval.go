package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agokrani/deepeval/pkg/cache"
	"github.com/agokrani/deepeval/pkg/core"
	"github.com/agokrani/deepeval/pkg/dataset"
	"github.com/agokrani/deepeval/pkg/generate"
	"github.com/agokrani/deepeval/pkg/model"
	"github.com/agokrani/deepeval/pkg/reporter"
	"github.com/agokrani/deepeval/pkg/resultstore"
)

func newEvalCommand() *cobra.Command {
	var (
		filePath     string
		parallel     int
		metricNames  []string
		minScore     float64
		outputPath   string
		format       string
		provider     string
		modelName    string
		mockResponse string
		noCache      bool
		rps          float64
	)

	cmd := &cobra.Command{
		Use:   "eval [file]",
		Short: "Run an evaluation file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filePath
			if len(args) > 0 {
				path = args[0]
			}
			path = resolveString(path, appConfig.File)
			if path == "" {
				return errors.New("evaluation file is required")
			}

			workers := resolveInt(parallel, appConfig.Parallel, 1)
			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = reporter.FormatTable
			}
			outputResolved := resolveString(outputPath, appConfig.Output)
			providerResolved := resolveString(provider, appConfig.Provider)
			modelResolved := resolveString(modelName, appConfig.Model.Name)
			mockResolved := resolveString(mockResponse, appConfig.Model.MockResponse)
			names := metricNames
			if len(names) == 0 {
				names = appConfig.Metrics
			}
			if len(names) == 0 {
				names = []string{"exact-match"}
			}
			threshold := minScore
			if threshold <= 0 {
				threshold = appConfig.Threshold
			}
			if threshold <= 0 {
				threshold = core.DefaultThreshold
			}
			rpsResolved := rps
			if rpsResolved <= 0 {
				rpsResolved = appConfig.RPS
			}

			records, err := dataset.Load(path)
			if err != nil {
				return err
			}

			var evalModel core.Model
			if providerResolved != "" {
				evalModel, err = buildModel(providerResolved, modelResolved, mockResolved)
				if err != nil {
					return err
				}
				if providerResolved != "mock" && !noCache {
					responseCache, err := cache.New(appConfig.CacheDir, 0)
					if err != nil {
						return err
					}
					evalModel = model.Cached{Model: evalModel, Cache: responseCache}
				}
			}

			generator := generate.Generator{Model: evalModel}
			records, err = generator.Fill(cmd.Context(), records)
			if err != nil {
				return err
			}

			cases, err := dataset.ToCases(records)
			if err != nil {
				return err
			}

			factory, err := buildMetrics(names, threshold, evalModel)
			if err != nil {
				return err
			}

			runner := core.Runner{Workers: workers}
			if rpsResolved > 0 {
				limiter, err := core.NewRateLimiter(rpsResolved, workers)
				if err != nil {
					return err
				}
				runner.Limiter = limiter
			}
			bar := newProgressBar(progressWriter(cmd), len(cases))
			runner.Progress = bar.Update

			started := time.Now()
			report, err := runner.RunCases(cmd.Context(), cases, factory)
			if err != nil {
				return err
			}

			writer := cmd.OutOrStdout()
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}

			rep, err := buildReporter(formatResolved, writer)
			if err != nil {
				return err
			}
			if err := rep.Report(report); err != nil {
				return err
			}

			if dir := resultstore.Dir(); dir != "" {
				runName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				saved, err := resultstore.Write(dir, runName, report)
				if err != nil {
					logger.Warn("failed to persist run results", zap.Error(err))
				} else {
					logger.Info("persisted run results", zap.String("path", saved))
				}
			}

			logger.Info("evaluation finished",
				zap.Int("cases", report.Summary.TotalUnits),
				zap.Int("succeeded", report.Summary.Succeeded),
				zap.Int("failed", report.Summary.Failed),
				zap.Int("errored", report.Summary.Errored),
				zap.Bool("all_passed", report.AllPassed),
				zap.Duration("elapsed", time.Since(started)),
			)

			if !report.AllPassed {
				return fmt.Errorf("evaluation failed: %d of %d test cases passed",
					report.Summary.Succeeded, report.Summary.TotalUnits)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "path to evaluation file")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "number of parallel workers")
	cmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to evaluate (see: deepeval list)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "minimum passing score in [0,1]")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path")
	cmd.Flags().StringVar(&format, "format", "", "output format (table, json, html, markdown, csv)")
	cmd.Flags().StringVar(&provider, "provider", "", "model provider for judge metrics and missing outputs (mock, openai, anthropic, gemini)")
	cmd.Flags().StringVar(&modelName, "model", "", "model name")
	cmd.Flags().StringVar(&mockResponse, "mock-response", "", "fixed mock response")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the model response cache")
	cmd.Flags().Float64Var(&rps, "rps", 0, "rate limit for scoring calls, requests per second")

	return cmd
}

func buildModel(provider, modelName, mockResponse string) (core.Model, error) {
	switch provider {
	case "mock":
		return model.Mock{NameValue: modelName, ResponseText: mockResponse}, nil
	case "openai":
		openaiModel, err := model.NewOpenAIFromEnv(resolveString(modelName, appConfig.OpenAI.Model))
		if err != nil {
			return nil, err
		}
		if appConfig.OpenAI.TimeoutSeconds > 0 {
			openaiModel.Timeout = time.Duration(appConfig.OpenAI.TimeoutSeconds) * time.Second
		}
		if appConfig.OpenAI.MaxRetries > 0 {
			openaiModel.MaxRetries = appConfig.OpenAI.MaxRetries
		}
		if appConfig.OpenAI.BackoffMillis > 0 {
			openaiModel.Backoff = time.Duration(appConfig.OpenAI.BackoffMillis) * time.Millisecond
		}
		return openaiModel, nil
	case "anthropic":
		anthropicModel, err := model.NewAnthropicFromEnv(resolveString(modelName, appConfig.Anthropic.Model))
		if err != nil {
			return nil, err
		}
		if appConfig.Anthropic.TimeoutSeconds > 0 {
			anthropicModel.Timeout = time.Duration(appConfig.Anthropic.TimeoutSeconds) * time.Second
		}
		if appConfig.Anthropic.MaxRetries > 0 {
			anthropicModel.MaxRetries = appConfig.Anthropic.MaxRetries
		}
		if appConfig.Anthropic.BackoffMillis > 0 {
			anthropicModel.Backoff = time.Duration(appConfig.Anthropic.BackoffMillis) * time.Millisecond
		}
		if appConfig.Anthropic.MaxTokens > 0 {
			anthropicModel.MaxTokens = appConfig.Anthropic.MaxTokens
		}
		return anthropicModel, nil
	case "gemini":
		geminiModel, err := model.NewGeminiFromEnv(resolveString(modelName, appConfig.Gemini.Model))
		if err != nil {
			return nil, err
		}
		if appConfig.Gemini.TimeoutSeconds > 0 {
			geminiModel.Timeout = time.Duration(appConfig.Gemini.TimeoutSeconds) * time.Second
		}
		if appConfig.Gemini.MaxRetries > 0 {
			geminiModel.MaxRetries = appConfig.Gemini.MaxRetries
		}
		if appConfig.Gemini.BackoffMillis > 0 {
			geminiModel.Backoff = time.Duration(appConfig.Gemini.BackoffMillis) * time.Millisecond
		}
		return geminiModel, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

func buildReporter(format string, writer io.Writer) (reporter.Reporter, error) {
	switch format {
	case reporter.FormatJSON:
		return reporter.JSONReporter{Writer: writer, Pretty: true}, nil
	case reporter.FormatTable:
		return reporter.TableReporter{Writer: writer}, nil
	case reporter.FormatHTML:
		return reporter.HTMLReporter{Writer: writer}, nil
	case reporter.FormatMarkdown:
		return reporter.MarkdownReporter{Writer: writer}, nil
	case reporter.FormatCSV:
		return reporter.CSVReporter{Writer: writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func resolveString(value string, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func resolveInt(value int, fallback int, defaultValue int) int {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}
	return defaultValue
}
