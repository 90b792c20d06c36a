// Package strategy orchestrates one generation request end to end: draw
// history in, scored and validated combination with financial metrics out.
package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/daebak/internal/combinatorics"
	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/events"
	"github.com/aristath/daebak/internal/modules/fusion"
	"github.com/aristath/daebak/internal/modules/history"
	"github.com/aristath/daebak/internal/modules/payout"
	"github.com/aristath/daebak/internal/modules/popularity"
	"github.com/aristath/daebak/internal/modules/profile"
	"github.com/aristath/daebak/internal/modules/scoring"
	"github.com/aristath/daebak/internal/modules/selection"
	"github.com/aristath/daebak/internal/rng"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GenerateRequest is one generation request. Timestamp seeds every random
// stream in the pipeline, so identical (history, request) pairs reproduce
// identical combinations.
type GenerateRequest struct {
	Timestamp       time.Time `json:"timestamp"`
	CarryoverMisses int       `json:"carryover_misses"`
	Selector        string    `json:"selector"`
}

// pipelinePhases are the progress checkpoints emitted per generation.
var pipelinePhases = []string{"scoring", "fusion", "pool", "selection", "evaluation", "persist"}

// Service runs the generation pipeline.
type Service struct {
	history      *history.Service
	popModel     *popularity.Model
	profiles     *profile.Builder
	constraints  profile.HardConstraints
	fuser        *fusion.Fuser
	poolBuilder  *fusion.PoolBuilder
	payoutEngine *payout.Engine
	calc         *combinatorics.Calculator
	selectors    map[string]selection.Selector
	repo         *Repository
	eventManager *events.Manager
	log          zerolog.Logger
}

// Config bundles the service dependencies.
type Config struct {
	History      *history.Service
	Popularity   *popularity.Model
	Profiles     *profile.Builder
	Constraints  profile.HardConstraints
	Fuser        *fusion.Fuser
	PoolBuilder  *fusion.PoolBuilder
	PayoutEngine *payout.Engine
	Calculator   *combinatorics.Calculator
	Repository   *Repository
	EventManager *events.Manager
	Log          zerolog.Logger
}

// NewService creates the strategy service with both selector strategies
// registered.
func NewService(cfg Config) *Service {
	log := cfg.Log.With().Str("component", "strategy").Logger()
	return &Service{
		history:      cfg.History,
		popModel:     cfg.Popularity,
		profiles:     cfg.Profiles,
		constraints:  cfg.Constraints,
		fuser:        cfg.Fuser,
		poolBuilder:  cfg.PoolBuilder,
		payoutEngine: cfg.PayoutEngine,
		calc:         cfg.Calculator,
		repo:         cfg.Repository,
		eventManager: cfg.EventManager,
		log:          log,
		selectors: map[string]selection.Selector{
			"mcmc":    selection.NewMCMCSelector(log),
			"genetic": selection.NewGeneticSelector(log),
		},
	}
}

// Generate runs the full pipeline for one request.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*domain.StrategyResult, error) {
	selectorName := req.Selector
	if selectorName == "" {
		selectorName = "mcmc"
	}
	selector, ok := s.selectors[selectorName]
	if !ok {
		return nil, fmt.Errorf("unknown selector %q", selectorName)
	}

	draws, err := s.history.OrderedDraws()
	if err != nil {
		return nil, fmt.Errorf("loading draw history: %w", err)
	}
	if len(draws) < history.MinimumDraws {
		return nil, fmt.Errorf("insufficient history: %d draws, need at least %d", len(draws), history.MinimumDraws)
	}

	warning := ""
	if len(draws) < history.RecommendedDraws {
		warning = fmt.Sprintf("only %d draws on record (recommended %d+), estimates are coarse; ", len(draws), history.RecommendedDraws)
		s.log.Warn().Int("draws", len(draws)).Msg("History below recommended size")
	}

	s.emit(events.GenerationStarted, nil)
	root := rng.New(req.Timestamp.UnixMilli())

	s.progress("scoring")
	runner := scoring.NewRunner(scoring.DefaultModels(root.Fork("monte_carlo")), s.log)
	modelScores, err := runner.ScoreAll(ctx, draws)
	if err != nil {
		return nil, fmt.Errorf("scoring models: %w", err)
	}

	s.progress("fusion")
	fused := s.fuser.Fuse(modelScores)

	s.progress("pool")
	pool := s.poolBuilder.Build(fused, s.calc)

	s.progress("selection")
	unpopularity := s.popModel.Unpopularity(draws)
	structural := s.profiles.Build(draws)
	validator := profile.NewValidator(s.constraints, draws)

	outcome, err := selector.Select(&selection.SelectionContext{
		Pool:         pool,
		Unpopularity: unpopularity,
		Profile:      structural,
		Validator:    validator,
		PairAffinity: selection.PairAffinityFromDraws(draws),
		Rand:         root.Fork("selection"),
	})
	if err != nil {
		return nil, fmt.Errorf("selecting combination: %w", err)
	}

	s.progress("evaluation")
	antiPopularity := popularity.CombinationUnpopularity(outcome.Combination, unpopularity)
	structuralFit, _ := structural.Score(outcome.Combination)
	breakdown := s.payoutEngine.Evaluate(req.CarryoverMisses, 1-antiPopularity, outcome.Converged)

	result := &domain.StrategyResult{
		ID:              uuid.NewString(),
		Combination:     outcome.Combination,
		AntiPopularity:  antiPopularity,
		StructuralFit:   structuralFit,
		ConvergenceRHat: outcome.RHat,
		Method:          outcome.Method,
		PoolSize:        len(pool),
		ModelScores:     combinationModelScores(outcome.Combination, modelScores),
		ExpectedValue:   breakdown,
		Confidence:      payout.Confidence(outcome.Score, outcome.Converged),
		Rationale:       warning + s.rationale(outcome, len(pool)),
		GeneratedAt:     time.Now().UTC(),
	}

	s.progress("persist")
	if s.repo != nil {
		if err := s.repo.Save(result); err != nil {
			return nil, fmt.Errorf("persisting result: %w", err)
		}
	}

	s.emitCompleted(result)
	s.log.Info().
		Str("result_id", result.ID).
		Ints("combination", []int(result.Combination)).
		Str("method", result.Method).
		Float64("total_ev", breakdown.TotalEV).
		Msg("Generated strategy")
	return result, nil
}

// Selectors lists the registered selector names.
func (s *Service) Selectors() []string {
	names := make([]string, 0, len(s.selectors))
	for name := range s.selectors {
		names = append(names, name)
	}
	return names
}

func (s *Service) rationale(outcome selection.Outcome, poolSize int) string {
	return fmt.Sprintf("method %s over a %d-number pool, composite score %.3f", outcome.Method, poolSize, outcome.Score)
}

// combinationModelScores reports, per model, the mean normalized score of
// the six chosen numbers. Diagnostic only.
func combinationModelScores(combo domain.Combination, modelScores map[string]domain.ScoreVector) map[string]float64 {
	out := make(map[string]float64, len(modelScores))
	for name, vector := range modelScores {
		norm := vector.Normalized()
		total := 0.0
		for _, n := range combo {
			total += norm[n]
		}
		out[name] = total / float64(len(combo))
	}
	return out
}

func (s *Service) progress(phase string) {
	for i, p := range pipelinePhases {
		if p != phase {
			continue
		}
		if s.eventManager != nil {
			s.eventManager.EmitTyped(events.GenerationProgress, "strategy", &events.GenerationProgressData{
				Phase:   phase,
				Current: i + 1,
				Total:   len(pipelinePhases),
			})
		}
		return
	}
}

func (s *Service) emit(eventType events.EventType, data events.EventData) {
	if s.eventManager != nil {
		s.eventManager.EmitTyped(eventType, "strategy", data)
	}
}

func (s *Service) emitCompleted(result *domain.StrategyResult) {
	s.emit(events.GenerationCompleted, &events.GenerationCompletedData{
		ResultID:       result.ID,
		Method:         result.Method,
		TotalEV:        result.ExpectedValue.TotalEV,
		Recommendation: string(result.ExpectedValue.Recommendation),
	})
}
