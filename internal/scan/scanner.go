package scan

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/mutscan/internal/sequence"
	"github.com/inodb/mutscan/internal/translate"
)

// Scanner enumerates and classifies every point mutation of a sequence.
type Scanner struct {
	workers    int
	stopPolicy StopPolicy
	logger     *zap.Logger
}

// NewScanner creates a scanner that translates on a single worker with
// StopPolicyFinal.
func NewScanner() *Scanner {
	return &Scanner{
		workers: 1,
		logger:  zap.NewNop(),
	}
}

// SetWorkers sets the number of translation workers. 0 means runtime.NumCPU().
// Results do not depend on the worker count.
func (s *Scanner) SetWorkers(n int) {
	s.workers = n
}

// SetStopPolicy configures where stop codons are tolerated.
func (s *Scanner) SetStopPolicy(p StopPolicy) {
	s.stopPolicy = p
}

// SetLogger sets the logger for warning and debug messages.
func (s *Scanner) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Enumerate substitutes every alternate base at every position of seq,
// in position order and then A, T, C, G order, and classifies each result.
// The first candidate producing a given protein is retained; later ones
// are counted as duplicates. Candidates that fail to translate are skipped
// and counted, never aborting the run.
func (s *Scanner) Enumerate(ctx context.Context, seq string) (*Result, error) {
	if err := sequence.Validate(seq); err != nil {
		return nil, err
	}

	original, err := translate.Translate(seq)
	if err != nil {
		return nil, fmt.Errorf("translate original sequence: %w", err)
	}

	s.logger.Debug("starting enumeration",
		zap.Int("length", len(seq)),
		zap.Int("workers", s.workers),
		zap.Stringer("stop_policy", s.stopPolicy))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := make(chan WorkItem, 64)
	go func() {
		defer close(items)
		n := 0
		for i := 0; i < len(seq); i++ {
			for _, b := range sequence.Bases {
				if b == seq[i] {
					continue
				}
				select {
				case items <- WorkItem{Seq: n, Index: i, Base: b}:
				case <-ctx.Done():
					return
				}
				n++
			}
		}
	}()

	c := newClassifier(original, s.stopPolicy)
	results := ParallelTranslate(seq, items, s.workers)

	if err := OrderedCollect(results, func(r WorkResult) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Err != nil {
			c.res.SkippedCount++
			c.res.Candidates++
			s.logger.Warn("skipping untranslatable candidate",
				zap.Int("position", r.Index+1),
				zap.String("base", string(r.Base)),
				zap.Error(r.Err))
			return nil
		}
		c.add(r.Index, seq[r.Index], r.Base, r.Protein)
		return nil
	}); err != nil {
		return nil, err
	}
	// The producer stops early on cancellation; never return a partial result.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("enumeration finished",
		zap.Int("candidates", c.res.Candidates),
		zap.Int("retained", len(c.res.Variants)),
		zap.Int("stop", c.res.StopCount),
		zap.Int("synonymous", c.res.SynonymousCount),
		zap.Int("duplicate", c.res.DuplicateCount),
		zap.Int("skipped", c.res.SkippedCount))

	return c.res, nil
}

// Enumerate runs a default Scanner over seq.
func Enumerate(seq string) (*Result, error) {
	return NewScanner().Enumerate(context.Background(), seq)
}

// classifier applies the stop, synonymy and duplicate filters in order.
// It must be fed candidates in enumeration order.
type classifier struct {
	original string
	policy   StopPolicy
	seen     map[string]struct{}
	res      *Result
}

func newClassifier(original string, policy StopPolicy) *classifier {
	return &classifier{
		original: original,
		policy:   policy,
		seen:     make(map[string]struct{}),
		res:      &Result{OriginalProtein: original},
	}
}

// add classifies a translated candidate and records it.
func (c *classifier) add(index int, ref, alt byte, protein string) Outcome {
	c.res.Candidates++
	o := c.classify(protein)
	switch o {
	case OutcomeStop:
		c.res.StopCount++
	case OutcomeSynonymous:
		c.res.SynonymousCount++
	case OutcomeDuplicate:
		c.res.DuplicateCount++
	case OutcomeRetained:
		c.seen[protein] = struct{}{}
		c.res.Variants = append(c.res.Variants, Variant{
			Position:     index + 1,
			OriginalBase: ref,
			NewBase:      alt,
			Protein:      protein,
		})
	}
	return o
}

func (c *classifier) classify(protein string) Outcome {
	if c.policy.HasPrematureStop(c.original, protein) {
		return OutcomeStop
	}
	if protein == c.original {
		return OutcomeSynonymous
	}
	if _, ok := c.seen[protein]; ok {
		return OutcomeDuplicate
	}
	return OutcomeRetained
}
