package insurance

import "context"

// Seed data mirrors the 2026 PA individual-market filings the navigator
// ships with. Rates land once into an empty store.

var seedRates = []HealthRate{
	{ID: "hr-hghp-s1", Carrier: "Highmark", PlanType: PlanSilver, RatingArea: 1, BasePremium2026: 512.40, ProjectedIncrease: 14.2},
	{ID: "hr-hghp-g1", Carrier: "Highmark", PlanType: PlanGold, RatingArea: 1, BasePremium2026: 641.10, ProjectedIncrease: 12.8},
	{ID: "hr-upmc-s1", Carrier: "UPMC Health Plan", PlanType: PlanSilver, RatingArea: 1, BasePremium2026: 489.75, ProjectedIncrease: 11.6},
	{ID: "hr-upmc-s4", Carrier: "UPMC Health Plan", PlanType: PlanSilver, RatingArea: 4, BasePremium2026: 455.20, ProjectedIncrease: 9.9},
	{ID: "hr-gsgr-s6", Carrier: "Geisinger", PlanType: PlanSilver, RatingArea: 6, BasePremium2026: 472.00, ProjectedIncrease: 13.5},
	{ID: "hr-gsgr-b6", Carrier: "Geisinger", PlanType: PlanBronze, RatingArea: 6, BasePremium2026: 371.30, ProjectedIncrease: 10.1},
	{ID: "hr-ibx-s8", Carrier: "Independence Blue Cross", PlanType: PlanSilver, RatingArea: 8, BasePremium2026: 538.90, ProjectedIncrease: 16.4},
	{ID: "hr-ibx-g8", Carrier: "Independence Blue Cross", PlanType: PlanGold, RatingArea: 8, BasePremium2026: 672.45, ProjectedIncrease: 15.0},
	{ID: "hr-cpbc-s9", Carrier: "Capital Blue Cross", PlanType: PlanSilver, RatingArea: 9, BasePremium2026: 501.60, ProjectedIncrease: 12.2},
}

var seedCounties = []CountyMapping{
	{ID: "cm-allegheny", County: "Allegheny", RatingArea: 1},
	{ID: "cm-erie", County: "Erie", RatingArea: 2},
	{ID: "cm-centre", County: "Centre", RatingArea: 4},
	{ID: "cm-luzerne", County: "Luzerne", RatingArea: 6},
	{ID: "cm-philadelphia", County: "Philadelphia", RatingArea: 8},
	{ID: "cm-dauphin", County: "Dauphin", RatingArea: 9},
}

// pidFilings is reference data served read-only; PID filings change on the
// department's schedule, not through this app.
var pidFilings = []PIDFiling{
	{ID: "pid-1", Carrier: "Highmark", FilingNumber: "HGHM-134021", RequestedIncrease: 14.2, Status: "Under Review"},
	{ID: "pid-2", Carrier: "UPMC Health Plan", FilingNumber: "UPMC-133877", RequestedIncrease: 11.6, Status: "Approved"},
	{ID: "pid-3", Carrier: "Geisinger", FilingNumber: "GSGR-134100", RequestedIncrease: 13.5, Status: "Under Review"},
	{ID: "pid-4", Carrier: "Independence Blue Cross", FilingNumber: "IBX-133904", RequestedIncrease: 16.4, Status: "Approved"},
	{ID: "pid-5", Carrier: "Capital Blue Cross", FilingNumber: "CPBC-134055", RequestedIncrease: 12.2, Status: "Withdrawn"},
}

// EnsureSeed inserts the rate and county data if the store is empty.
// Idempotent; safe to call on every process start.
func (s *Service) EnsureSeed(ctx context.Context) error {
	n, err := s.repo.CountRates(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, r := range seedRates {
		if err := s.repo.PutRate(ctx, r); err != nil {
			return err
		}
	}
	for _, c := range seedCounties {
		if err := s.repo.PutCounty(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
