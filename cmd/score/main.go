// Command score runs the reward suite over a JSONL batch of scored
// completions and emits a JSON report: per-completion totals, the
// per-function breakdown, group-relative advantages and batch
// statistics.
//
// Each input line is one sample:
//
//	{"id":"gsm8k-17","question":"...","answer":"#### 42","completion":"<think>...</think><answer>...</answer>"}
//
// The completion field also accepts the chat shape
// [{"role":"assistant","content":"..."}].
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rizome-dev/go-grpo-rewards/pkg/config"
	"github.com/rizome-dev/go-grpo-rewards/pkg/prompts"
	"github.com/rizome-dev/go-grpo-rewards/pkg/rewards"
	"github.com/rizome-dev/go-grpo-rewards/pkg/types"
	"github.com/rizome-dev/go-grpo-rewards/pkg/utils/logger"
)

type report struct {
	IDs        []string                      `json:"ids,omitempty"`
	Totals     []float64                     `json:"totals"`
	ByFunc     map[string][]float64          `json:"by_func"`
	Advantages []float64                     `json:"advantages,omitempty"`
	Stats      map[string]rewards.BatchStats `json:"stats"`
}

func main() {
	input := flag.String("input", "-", "JSONL batch file, - for stdin")
	sample := flag.Int("sample", 0, "score a seeded random subset of this size (0 = all)")
	seed := flag.Int64("seed", 42, "shuffle seed for -sample")
	printPrompt := flag.Bool("print-prompt", false, "print the generation system prompt and exit")
	flag.Parse()

	// .env is optional outside training machines.
	_ = godotenv.Load()
	logger.Init()

	if *printPrompt {
		fmt.Println(prompts.MathSystemPrompt)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	dataset, err := readSamples(*input)
	if err != nil {
		log.Fatal().Err(err).Str("input", *input).Msg("failed to read batch")
	}
	if *sample > 0 {
		dataset = dataset.Shuffle(*seed).Head(*sample)
	}
	log.Info().Int("samples", dataset.Len()).Msg("batch loaded")

	suite := cfg.BuildSuite()
	batch := rewards.NewBatch(dataset.Samples())
	result, err := suite.Score(batch)
	if err != nil {
		log.Fatal().Err(err).Msg("scoring failed")
	}

	out := report{
		IDs:    batch.IDs,
		Totals: result.Totals,
		ByFunc: result.ByFunc,
		Stats:  map[string]rewards.BatchStats{"total": rewards.Summarize(result.Totals)},
	}
	for name, scores := range result.ByFunc {
		out.Stats[name] = rewards.Summarize(scores)
	}

	if dataset.Len()%cfg.GroupSize == 0 && dataset.Len() > 0 {
		advantages, err := rewards.GroupAdvantages(result.Totals, cfg.GroupSize)
		if err != nil {
			log.Fatal().Err(err).Msg("advantage computation failed")
		}
		out.Advantages = advantages
	} else {
		log.Warn().
			Int("samples", dataset.Len()).
			Int("group_size", cfg.GroupSize).
			Msg("batch is not group-aligned, skipping advantages")
	}

	encoded, err := sonic.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode report")
	}
	fmt.Println(string(encoded))

	stats := out.Stats["total"]
	log.Info().
		Float64("mean", stats.Mean).
		Float64("std", stats.Std).
		Float64("min", stats.Min).
		Float64("max", stats.Max).
		Msg("batch scored")
}

func readSamples(path string) (*types.Dataset, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	}

	var samples []types.Sample
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var s types.Sample
		if err := sonic.Unmarshal(text, &s); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return types.NewDataset(samples), nil
}
