package insurance

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"
)

var ErrInvalidSubsidyReq = errors.New("insurance: invalid subsidy request")

// ratingAreas is the number of PA marketplace rating areas.
const ratingAreas = 9

const (
	heatmapCacheKey = "insurance:heatmap:v1"
	heatmapCacheTTL = 5 * time.Minute
)

// Service serves rate lookups, the premium heatmap, PID filing search, and
// the subsidy calculator. The heatmap is an aggregate over every Silver rate
// and is cached; cache failures degrade to recomputation, never to request
// failure.
type Service struct {
	repo  Repository
	cache Cache
}

func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) ListRates(ctx context.Context) ([]HealthRate, error) {
	return s.repo.ListRates(ctx)
}

func (s *Service) ListCounties(ctx context.Context) ([]CountyMapping, error) {
	return s.repo.ListCounties(ctx)
}

// Heatmap returns the average Silver premium and projected increase per
// rating area 1..9. Areas without Silver rates report zeros.
func (s *Service) Heatmap(ctx context.Context) ([]AreaAverage, error) {
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, heatmapCacheKey); err != nil {
			slog.Warn("heatmap cache read failed", "err", err)
		} else if ok {
			var cached []AreaAverage
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	rates, err := s.repo.ListRates(ctx)
	if err != nil {
		return nil, err
	}

	sums := make([]float64, ratingAreas+1)
	increases := make([]float64, ratingAreas+1)
	counts := make([]int, ratingAreas+1)
	for _, r := range rates {
		if r.PlanType != PlanSilver || r.RatingArea < 1 || r.RatingArea > ratingAreas {
			continue
		}
		sums[r.RatingArea] += r.BasePremium2026
		increases[r.RatingArea] += r.ProjectedIncrease
		counts[r.RatingArea]++
	}

	out := make([]AreaAverage, 0, ratingAreas)
	for area := 1; area <= ratingAreas; area++ {
		cell := AreaAverage{RatingArea: area}
		if counts[area] > 0 {
			cell.AvgPremium = sums[area] / float64(counts[area])
			cell.AvgIncrease = increases[area] / float64(counts[area])
		}
		out = append(out, cell)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, heatmapCacheKey, raw, heatmapCacheTTL); err != nil {
				slog.Warn("heatmap cache write failed", "err", err)
			}
		}
	}
	return out, nil
}

// SearchFilings filters the PID filing list by carrier or filing number
// substring, case-insensitive. An empty query returns everything.
func (s *Service) SearchFilings(q string) []PIDFiling {
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]PIDFiling, 0, len(pidFilings))
	for _, f := range pidFilings {
		if q == "" ||
			strings.Contains(strings.ToLower(f.Carrier), q) ||
			strings.Contains(strings.ToLower(f.FilingNumber), q) {
			out = append(out, f)
		}
	}
	return out
}

// Federal Poverty Level figures for the 48 contiguous states, 2024.
const (
	baseFPL              = 15060.0
	additionalPersonRate = 5380.0
)

// incomeCapRatio is the ARPA/IRA "no cliff" cap: the benchmark Silver plan
// costs at most 8.5% of household income regardless of FPL percentage.
const incomeCapRatio = 0.085

// CalculateSubsidy computes the estimated premium tax credit for a monthly
// benchmark premium.
func CalculateSubsidy(req SubsidyRequest) (SubsidyCalculation, error) {
	if req.Income <= 0 || req.HouseholdSize < 1 || req.BenchmarkPremium < 0 {
		return SubsidyCalculation{}, ErrInvalidSubsidyReq
	}

	fplThreshold := baseFPL + float64(req.HouseholdSize-1)*additionalPersonRate
	fplPercentage := req.Income / fplThreshold * 100

	monthlyMaxContribution := req.Income * incomeCapRatio / 12
	estimatedCredit := req.BenchmarkPremium - monthlyMaxContribution
	if estimatedCredit < 0 {
		estimatedCredit = 0
	}
	netPremium := req.BenchmarkPremium - estimatedCredit
	if netPremium < 0 {
		netPremium = 0
	}

	return SubsidyCalculation{
		HouseholdIncome:  req.Income,
		HouseholdSize:    req.HouseholdSize,
		FPLPercentage:    fplPercentage,
		FPLThreshold:     fplThreshold,
		BenchmarkPremium: req.BenchmarkPremium,
		EstimatedCredit:  estimatedCredit,
		NetPremium:       netPremium,
		IncomeCapReached: req.BenchmarkPremium > monthlyMaxContribution,
	}, nil
}
