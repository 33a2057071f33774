package features

import (
	"strings"

	"github.com/pitchedge/pitchedge/internal/config"
	"github.com/pitchedge/pitchedge/internal/domain"
	"github.com/pitchedge/pitchedge/internal/sim"
)

// Features is the complete per-fixture feature vector. Every field is
// populated; missing inputs degrade to the configured defaults, never to an
// error.
type Features struct {
	Home SideFeatures
	Away SideFeatures

	RefereeIndex        float64
	RefereeCornerIndex  float64
	RivalryIndex        float64
	WeatherModifier     float64
	HomeFormationFactor float64
	AwayFormationFactor float64
}

// SideFeatures are one team's derived indices plus the pass-through rates
// the engines use as baselines.
type SideFeatures struct {
	Aggression float64
	Pressing   float64
	Tempo      float64
	WingPlay   float64

	CornersPG        float64
	CornersAgainstPG float64
	ShotsPG          float64
	ShotsOnTargetPG  float64
	CardsPG          float64
	FoulsPG          float64
	XG               float64
}

// Builder derives feature vectors from raw fixture records.
type Builder struct {
	cfg     config.FeatureDefaults
	derbies map[[2]string]struct{}
}

// NewBuilder builds the derby lookup once; pair membership is unordered.
func NewBuilder(cfg config.FeatureDefaults) *Builder {
	derbies := make(map[[2]string]struct{}, len(cfg.Derbies))
	for _, d := range cfg.Derbies {
		derbies[pairKey(d[0], d[1])] = struct{}{}
	}
	return &Builder{cfg: cfg, derbies: derbies}
}

// Build produces the full feature vector for one fixture. Degradation is
// total and silent: any absent sub-record or field takes its default.
func (b *Builder) Build(fx domain.FixtureRecord) Features {
	home := b.sideFeatures(fx.HomeStats)
	away := b.sideFeatures(fx.AwayStats)
	if fx.HomeXG != nil {
		home.XG = *fx.HomeXG
	}
	if fx.AwayXG != nil {
		away.XG = *fx.AwayXG
	}
	return Features{
		Home:                home,
		Away:                away,
		RefereeIndex:        b.refereeIndex(fx.Referee, fx.Context),
		RefereeCornerIndex:  b.refereeCornerIndex(fx.Referee),
		RivalryIndex:        b.rivalryIndex(fx.Context, fx.HeadToHead),
		WeatherModifier:     b.weatherModifier(fx.Weather),
		HomeFormationFactor: b.formationAggression(fx.HomeFormation),
		AwayFormationFactor: b.formationAggression(fx.AwayFormation),
	}
}

func (b *Builder) sideFeatures(ts *domain.TeamStatSnapshot) SideFeatures {
	if ts == nil {
		ts = &domain.TeamStatSnapshot{}
	}
	d := b.cfg.Team

	fouls := orDefault(ts.FoulsPG, d.FoulsPG)
	cards := orDefault(ts.CardsPG, d.CardsPG)
	tackles := orDefault(ts.TacklesPG, d.TacklesPG)
	duels := orDefault(ts.DuelsPG, d.DuelsPG)
	ppda := orDefault(ts.PPDA, d.PPDA)
	intercepts := orDefault(ts.InterceptionsPG, d.InterceptionsPG)
	ppm := orDefault(ts.PassesPerMinute, d.PassesPerMinute)
	attacks := orDefault(ts.AttacksPer90, d.AttacksPer90)
	crosses := orDefault(ts.CrossesPer90, d.CrossesPer90)
	wide := orDefault(ts.WideZoneTouches, d.WideZoneTouches)
	flank := orDefault(ts.FlankAttackPct, d.FlankAttackPct)

	// Each component ratio is clamped individually before averaging so a
	// single noisy stat cannot dominate the index.
	aggression := mean(
		ratio(fouls, d.FoulsPG, 0.15),
		ratio(cards, d.CardsPG, 0.15),
		ratio(tackles, d.TacklesPG, 0.15),
		ratio(duels, d.DuelsPG, 0.15),
	)
	// Lower PPDA means more pressing, so the ratio is inverted.
	pressing := mean(
		ratio(d.PPDA, ppda, 0.20),
		ratio(intercepts, d.InterceptionsPG, 0.20),
	)
	tempo := mean(
		ratio(ppm, d.PassesPerMinute, 0.15),
		ratio(attacks, d.AttacksPer90, 0.15),
	)
	wing := mean(
		ratio(crosses, d.CrossesPer90, 0.20),
		ratio(wide, d.WideZoneTouches, 0.20),
		ratio(flank, d.FlankAttackPct, 0.20),
	)

	return SideFeatures{
		Aggression:       aggression,
		Pressing:         pressing,
		Tempo:            tempo,
		WingPlay:         wing,
		CornersPG:        orDefault(ts.CornersPG, d.CornersPG),
		CornersAgainstPG: orDefault(ts.CornersAgainstPG, d.CornersAgainstPG),
		ShotsPG:          orDefault(ts.ShotsPG, d.ShotsPG),
		ShotsOnTargetPG:  orDefault(ts.ShotsOnTargetPG, d.ShotsOnTargetPG),
		CardsPG:          orDefault(ts.CardsPG, d.CardsPG),
		FoulsPG:          orDefault(ts.FoulsPG, d.FoulsPG),
		XG:               orDefault(ts.XGPG, d.XGPG),
	}
}

// refereeIndex blends the official's card tendency ratios, nudged by early
// card habits and big-match intensity on important fixtures.
func (b *Builder) refereeIndex(ref *domain.RefereeProfile, ctx domain.MatchContext) float64 {
	if ref == nil {
		ref = &domain.RefereeProfile{}
	}
	d := b.cfg.Referee

	cardsRatio := safeDiv(orDefault(ref.CardsPerMatch, d.CardsPerMatch), d.CardsPerMatch)
	convRatio := safeDiv(orDefault(ref.FoulToCardConversion, d.FoulToCardConversion), d.FoulToCardConversion)
	nearBoxRatio := safeDiv(orDefault(ref.FoulsNearBoxPerMatch, d.FoulsNearBoxPerMatch), d.FoulsNearBoxPerMatch)
	early := orDefault(ref.EarlyCardRate, d.EarlyCardRate)

	idx := 0.5*cardsRatio + 0.3*convRatio + 0.2*nearBoxRatio
	if early > d.EarlyCardRate {
		idx += 0.05
	}
	if ctx.IsKnockout || ctx.IsTitleRace || ctx.Importance >= 0.8 {
		idx *= orDefault(ref.BigMatchIntensity, d.BigMatchIntensity)
	}
	return sim.Clamp(idx, 0.75, 1.35)
}

func (b *Builder) refereeCornerIndex(ref *domain.RefereeProfile) float64 {
	if ref == nil {
		ref = &domain.RefereeProfile{}
	}
	d := b.cfg.Referee
	return sim.Clamp(safeDiv(orDefault(ref.CornersPerMatch, d.CornersPerMatch), d.CornersPerMatch), 0.90, 1.10)
}

// rivalryIndex elevates derby pairs and heated head-to-head histories.
func (b *Builder) rivalryIndex(ctx domain.MatchContext, h2h *domain.HeadToHeadSnapshot) float64 {
	idx := 1.0
	if _, ok := b.derbies[pairKey(ctx.HomeTeam, ctx.AwayTeam)]; ok {
		idx = 1.15
	}
	if h2h != nil && h2h.Meetings > 0 {
		avgCards := orDefault(h2h.AvgCards, b.cfg.Referee.CardsPerMatch)
		if avgCards > b.cfg.Referee.CardsPerMatch*1.2 {
			idx += 0.08
		}
		avgGoals := orDefault(h2h.AvgGoals, 2.6)
		if avgGoals > 3.2 {
			idx += 0.04
		}
	}
	if ctx.IsKnockout {
		idx += 0.06
	}
	if ctx.IsRelegation {
		idx += 0.05
	}
	if ctx.IsTitleRace {
		idx += 0.04
	}
	return sim.Clamp(idx, 0.90, 1.40)
}

// weatherModifier multiplies independent wind and rain/pitch effects. Wind
// and rain both depress clean attacking play and lift scrappy events.
func (b *Builder) weatherModifier(w *domain.WeatherSnapshot) float64 {
	if w == nil {
		return 1.0
	}
	mod := 1.0
	wind := orDefault(w.WindSpeed, b.cfg.Weather.WindSpeed)
	switch {
	case wind > 30:
		mod *= 0.92
	case wind > 20:
		mod *= 0.96
	}
	if w.IsRain != nil && *w.IsRain {
		mod *= 1.04
	}
	if w.PitchCondition != nil {
		switch strings.ToLower(strings.TrimSpace(*w.PitchCondition)) {
		case "poor", "heavy", "waterlogged":
			mod *= 1.06
		}
	}
	return sim.Clamp(mod, 0.85, 1.12)
}

// formationAggression resolves the formation table: normalize, exact match,
// then substring match, then the documented default.
func (b *Builder) formationAggression(formation string) float64 {
	f := strings.TrimSpace(formation)
	f = strings.ReplaceAll(f, " ", "")
	if f == "" {
		return b.cfg.DefaultFormationAggression
	}
	if v, ok := b.cfg.Formations[f]; ok {
		return v
	}
	for key, v := range b.cfg.Formations {
		if strings.Contains(f, key) || strings.Contains(key, f) {
			return v
		}
	}
	return b.cfg.DefaultFormationAggression
}

func pairKey(a, b string) [2]string {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 1.0
	}
	return a / b
}

// ratio clamps obs/base to 1.0 +/- band.
func ratio(obs, base, band float64) float64 {
	return sim.Clamp(safeDiv(obs, base), 1.0-band, 1.0+band)
}

func mean(vs ...float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
