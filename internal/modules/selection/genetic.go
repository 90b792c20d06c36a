package selection

import (
	"fmt"
	"math"
	"sort"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/rng"
	"github.com/rs/zerolog"
)

const (
	gaPopulationSize = 200
	gaGenerations    = 50
	gaEliteFraction  = 0.10
	gaTournamentSize = 3
	gaMutationRate   = 0.15

	gaAntiPopularityWeight = 0.40
	gaStructuralFitWeight  = 0.35
	gaDiversityWeight      = 0.25
	gaPairWeight           = 0.6
	gaZoneWeight           = 0.4

	// gaFitnessThreshold triggers the temperature-sampling fallback when
	// even the best chromosome stays below it after the final generation.
	gaFitnessThreshold = 0.1
)

// GeneticSelector evolves a population of combinations drawn from the
// candidate pool.
type GeneticSelector struct {
	log zerolog.Logger
}

// NewGeneticSelector creates a genetic selector.
func NewGeneticSelector(log zerolog.Logger) *GeneticSelector {
	return &GeneticSelector{log: log.With().Str("component", "genetic_selector").Logger()}
}

// Name implements Selector.
func (s *GeneticSelector) Name() string { return "genetic" }

type chromosome struct {
	genes   domain.Combination
	fitness float64
}

// Select evolves the population for a fixed generation count and returns
// the fittest chromosome, falling back to temperature-weighted sampling
// when the whole run stays unfit.
func (s *GeneticSelector) Select(sc *SelectionContext) (Outcome, error) {
	if len(sc.Pool) < domain.CombinationSize {
		return Outcome{}, fmt.Errorf("pool too small for selection: %d numbers", len(sc.Pool))
	}

	r := sc.Rand.Fork("genetic")
	population := s.initialPopulation(sc, r)

	for gen := 0; gen < gaGenerations; gen++ {
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		next := make([]chromosome, 0, gaPopulationSize)
		eliteCount := int(gaEliteFraction * gaPopulationSize)
		next = append(next, population[:eliteCount]...)

		for len(next) < gaPopulationSize {
			parentA := s.tournament(population, r)
			parentB := s.tournament(population, r)
			child := s.crossover(sc, parentA.genes, parentB.genes, r)
			if r.Float64() < gaMutationRate {
				child = s.mutate(sc, child, r)
			}
			next = append(next, chromosome{genes: child, fitness: s.fitness(sc, child)})
		}
		population = next
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	best := population[0]

	if best.fitness < gaFitnessThreshold {
		s.log.Warn().Float64("fitness", best.fitness).Msg("Evolution stalled, falling back to temperature sampling")
		combo, score := temperatureSample(sc, sc.Rand.Fork("genetic_temperature"))
		return Outcome{
			Combination: combo,
			Score:       score,
			Method:      "genetic_fallback",
			RHat:        math.NaN(),
			Converged:   false,
		}, nil
	}

	s.log.Debug().Float64("fitness", best.fitness).Msg("Evolution finished")
	return Outcome{
		Combination: best.genes,
		Score:       sc.compositeScore(best.genes),
		Method:      "genetic",
		RHat:        math.NaN(),
		Converged:   true,
	}, nil
}

func (s *GeneticSelector) initialPopulation(sc *SelectionContext, r *rng.Source) []chromosome {
	population := make([]chromosome, gaPopulationSize)
	for i := range population {
		genes := randomCombination(sc.Pool, r)
		population[i] = chromosome{genes: genes, fitness: s.fitness(sc, genes)}
	}
	return population
}

// fitness blends anti-popularity, structural fit, and a diversity term over
// pair affinity and zone coverage. Invalid chromosomes keep a small floor so
// their genes stay available to crossover.
func (s *GeneticSelector) fitness(sc *SelectionContext, genes domain.Combination) float64 {
	if !sc.Validator.PassesHardConstraints(genes) {
		return scoreFloor
	}
	diversity := gaPairWeight*sc.pairCorrelation(genes) +
		gaZoneWeight*float64(genes.ZoneCoverage())/float64(domain.ZoneCount)
	return gaAntiPopularityWeight*sc.antiPopularity(genes) +
		gaStructuralFitWeight*sc.structuralFit(genes) +
		gaDiversityWeight*diversity
}

func (s *GeneticSelector) tournament(population []chromosome, r *rng.Source) chromosome {
	best := population[r.Intn(len(population))]
	for i := 1; i < gaTournamentSize; i++ {
		challenger := population[r.Intn(len(population))]
		if challenger.fitness > best.fitness {
			best = challenger
		}
	}
	return best
}

// crossover keeps the genes both parents share, fills the remainder from a
// shuffled symmetric difference, and pads from the pool when the parents
// overlap too much.
func (s *GeneticSelector) crossover(sc *SelectionContext, a, b domain.Combination, r *rng.Source) domain.Combination {
	child := make(domain.Combination, 0, domain.CombinationSize)
	var diff []int
	for _, n := range a {
		if b.Contains(n) {
			child = append(child, n)
		} else {
			diff = append(diff, n)
		}
	}
	for _, n := range b {
		if !a.Contains(n) {
			diff = append(diff, n)
		}
	}

	r.Shuffle(len(diff), func(i, j int) { diff[i], diff[j] = diff[j], diff[i] })
	for _, n := range diff {
		if len(child) == domain.CombinationSize {
			break
		}
		child = append(child, n)
	}

	for len(child) < domain.CombinationSize {
		candidate := sc.Pool[r.Intn(len(sc.Pool))]
		if !child.Contains(candidate) {
			child = append(child, candidate)
		}
	}

	sort.Ints(child)
	return child
}

// mutate replaces one gene with a pool number not already present.
func (s *GeneticSelector) mutate(sc *SelectionContext, genes domain.Combination, r *rng.Source) domain.Combination {
	mutated := genes.Clone()
	slot := r.Intn(len(mutated))
	for attempt := 0; attempt < len(sc.Pool); attempt++ {
		candidate := sc.Pool[r.Intn(len(sc.Pool))]
		if !mutated.Contains(candidate) {
			mutated[slot] = candidate
			break
		}
	}
	sort.Ints(mutated)
	return mutated
}
