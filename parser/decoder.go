package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"scrappybara.io/depparse/logger"
	"scrappybara.io/depparse/tree"
)

var (
	ErrClassifierContract = errors.New("transition classifier broke its contract")
	ErrInvalidConfig      = errors.New("invalid decoder config")
)

type Config struct {
	BatchSize int `envconfig:"PARSER_BATCH_SIZE" default:"256" yaml:"batch_size"`
	Workers   int `envconfig:"PARSER_DECODE_WORKERS" default:"4" yaml:"workers"`
}

func LoadConfigFromEnv() (Config, error) {
	var config Config
	err := envconfig.Process("", &config)
	return config, err
}

// Result is the outcome of one sentence. Tree is nil when no single root could be found;
// Err is set when a predicted transition could not be applied.
type Result struct {
	Tree *tree.Tree
	Err  error
}

type Decoder struct {
	config     Config
	classifier TransitionClassifier
	logger     zerolog.Logger
}

func NewDecoder(config Config, classifier TransitionClassifier) (*Decoder, error) {
	if config.BatchSize <= 0 || config.Workers <= 0 {
		return nil, fmt.Errorf("%w: batch size %d, workers %d", ErrInvalidConfig, config.BatchSize, config.Workers)
	}
	if classifier == nil {
		return nil, fmt.Errorf("%w: no classifier", ErrInvalidConfig)
	}
	return &Decoder{
		config:     config,
		classifier: classifier,
		logger:     logger.NewLogger("Decoder"),
	}, nil
}

// Decode drives every parse to completion. Each round the incomplete parses are split into chunks of
// BatchSize, one classifier call per chunk, and chunks run on up to Workers goroutines.
// A sentence whose transition cannot be applied stops there with its own error; the others go on.
// On cancellation or classifier failure the results gathered so far are returned with the error.
func (d *Decoder) Decode(ctx context.Context, parses []*Parse) ([]Result, error) {
	results := make([]Result, len(parses))
	for round := 0; ; round++ {
		var pending []int
		for i, p := range parses {
			if !p.IsComplete() && results[i].Err == nil {
				pending = append(pending, i)
			}
		}
		if len(pending) == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return d.collect(parses, results), err
		}
		d.logger.Debug().Int("round", round).Int("pending", len(pending)).Msg("Decoding round")

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.config.Workers)
		for start := 0; start < len(pending); start += d.config.BatchSize {
			end := start + d.config.BatchSize
			if end > len(pending) {
				end = len(pending)
			}
			chunk := pending[start:end]
			g.Go(func() error {
				return d.step(gctx, parses, chunk, results)
			})
		}
		if err := g.Wait(); err != nil {
			return d.collect(parses, results), err
		}
	}
	return d.collect(parses, results), nil
}

// step runs one classifier call over chunk. Chunks of a round never share an index.
func (d *Decoder) step(ctx context.Context, parses []*Parse, chunk []int, results []Result) error {
	batch := make([]Features, 0, len(chunk))
	for _, i := range chunk {
		features, err := parses[i].CurrentFeatures()
		if err != nil {
			return err
		}
		batch = append(batch, features)
	}
	transitions, err := d.classifier.PredictTransitions(ctx, batch)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrClassifierContract, err)
	}
	if len(transitions) != len(batch) {
		return fmt.Errorf("%w: %d transitions for %d configurations", ErrClassifierContract, len(transitions), len(batch))
	}
	for k, i := range chunk {
		if err := parses[i].Apply(transitions[k]); err != nil {
			d.logger.Debug().Err(err).Int("sentence", i).Msg("Transition rejected")
			results[i].Err = err
		}
	}
	return nil
}

func (d *Decoder) collect(parses []*Parse, results []Result) []Result {
	for i, p := range parses {
		if results[i].Err != nil {
			continue
		}
		results[i].Tree, results[i].Err = p.IntoTree()
	}
	return results
}
