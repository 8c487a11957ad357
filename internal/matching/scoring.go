package matching

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Scoring primitives. Every function returns a score in [0,100] and maps
// missing input to a documented neutral or vacuous default rather than an
// error: a missing profile field must never abort a whole batch run.

const (
	scoreNeutral  = 50.0
	scoreNeutralHigh = 75.0
)

// tokenMatches reports whether a required token matches any held token,
// case-insensitive, substring in either direction ("welding" matches
// "Welding & Fabrication" and vice versa).
func tokenMatches(required string, have []string) bool {
	req := strings.ToLower(strings.TrimSpace(required))
	if req == "" {
		return false
	}
	for _, h := range have {
		held := strings.ToLower(strings.TrimSpace(h))
		if held == "" {
			continue
		}
		if strings.Contains(held, req) || strings.Contains(req, held) {
			return true
		}
	}
	return false
}

// skillMatchScore scores how many required items the candidate covers.
// Empty requirements are vacuously satisfied (100); an empty candidate
// list against real requirements scores 0.
func skillMatchScore(required, have []string) float64 {
	if len(required) == 0 {
		return 100
	}
	if len(have) == 0 {
		return 0
	}
	matched := 0
	for _, r := range required {
		if tokenMatches(r, have) {
			matched++
		}
	}
	return math.Round(float64(matched) / float64(len(required)) * 100)
}

var experienceTiers = map[string]int{
	"junior":    1,
	"mid-level": 2,
	"senior":    3,
	"expert":    4,
}

func experienceTier(level string) int {
	if tier, ok := experienceTiers[strings.ToLower(strings.TrimSpace(level))]; ok {
		return tier
	}
	return 2
}

// experienceLevelMatch gives full credit when the candidate meets or
// exceeds the required tier and docks 30 points per tier of shortfall.
func experienceLevelMatch(required, have string) float64 {
	req := experienceTier(required)
	got := experienceTier(have)
	if got >= req {
		return 100
	}
	return math.Max(0, 100-30*float64(req-got))
}

// geographicProximity floors at 50: a different or unknown location is
// still assumed reachable within the same country.
func geographicProximity(cityA, regionA, cityB, regionB string) float64 {
	if sameToken(cityA, cityB) {
		return 100
	}
	if sameToken(regionA, regionB) {
		return 70
	}
	return 50
}

func sameToken(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return a != "" && a == b
}

// parseRevenue converts strings like "10M", "1.5B", "500K" or the lower
// bound of a range like "10M-50M" into a figure expressed in thousands
// ("50M" -> 50000, "5K" -> 5). Returns 0 when unparseable.
func parseRevenue(revenue string) float64 {
	s := strings.ToUpper(strings.TrimSpace(revenue))
	if s == "" {
		return 0
	}
	if i := strings.IndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	s = strings.TrimLeft(s, "$€£ ")
	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "B"):
		multiplier = 1_000_000
		s = strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "M"):
		multiplier = 1_000
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "K"):
		multiplier = 1
		s = strings.TrimSuffix(s, "K")
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || value <= 0 {
		return 0
	}
	return value * multiplier
}

// financialCapacity ladders the candidate's revenue against the amount the
// opportunity needs committed. No required amount means no financial bar.
func financialCapacity(requiredAmount float64, revenueRange string) float64 {
	if requiredAmount <= 0 {
		return 100
	}
	revenue := parseRevenue(revenueRange)
	if revenue <= 0 {
		return 0
	}
	ratio := revenue / requiredAmount
	switch {
	case ratio >= 10:
		return 100
	case ratio >= 5:
		return 80
	case ratio >= 2:
		return 60
	case ratio >= 1:
		return 40
	default:
		return 20
	}
}

// timelineAlignment scores the overlap between the opportunity window and
// the candidate's availability as a fraction of the opportunity's own
// duration. Missing information on either side is neutral, not fatal.
func timelineAlignment(opp *DateRange, availStart, availEnd *time.Time) float64 {
	if opp == nil || availStart == nil || availEnd == nil {
		return scoreNeutralHigh
	}
	duration := opp.End.Sub(opp.Start)
	if duration <= 0 {
		return scoreNeutralHigh
	}
	start := opp.Start
	if availStart.After(start) {
		start = *availStart
	}
	end := opp.End
	if availEnd.Before(end) {
		end = *availEnd
	}
	overlap := end.Sub(start)
	if overlap <= 0 {
		return 0
	}
	return math.Min(100, math.Round(float64(overlap)/float64(duration)*100))
}

// overlapScore is the shared attribute-overlap heuristic (Jaccard over
// normalized tokens). Either side empty is neutral.
func overlapScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return scoreNeutral
	}
	seen := make(map[string]bool, len(a))
	for _, item := range a {
		if t := strings.ToLower(strings.TrimSpace(item)); t != "" {
			seen[t] = true
		}
	}
	other := make(map[string]bool, len(b))
	for _, item := range b {
		if t := strings.ToLower(strings.TrimSpace(item)); t != "" {
			other[t] = true
		}
	}
	if len(seen) == 0 || len(other) == 0 {
		return scoreNeutral
	}
	matches := 0
	for t := range other {
		if seen[t] {
			matches++
		}
	}
	union := len(seen) + len(other) - matches
	if union == 0 {
		return scoreNeutral
	}
	return math.Round(float64(matches) / float64(union) * 100)
}

func culturalCompatibility(oppValues, userValues []string) float64 {
	return overlapScore(oppValues, userValues)
}

func strategicAlignment(oppObjectives, userObjectives []string) float64 {
	return overlapScore(oppObjectives, userObjectives)
}

// complementaryStrengths scores how many of the strengths the opportunity
// asks for the candidate brings.
func complementaryStrengths(desired, strengths []string) float64 {
	if len(desired) == 0 || len(strengths) == 0 {
		return scoreNeutral
	}
	return skillMatchScore(desired, strengths)
}

var innovationKeywords = []string{
	"innovation", "innovative", "novel", "patent", "prototype",
	"r&d", "research", "automation", "artificial intelligence", "machine learning",
}

// innovationScore starts neutral and credits 10 points per distinct
// innovation signal found in the candidate's track record.
func innovationScore(signals []string) float64 {
	corpus := strings.ToLower(strings.Join(signals, " "))
	if strings.TrimSpace(corpus) == "" {
		return scoreNeutral
	}
	score := scoreNeutral
	for _, kw := range innovationKeywords {
		if strings.Contains(corpus, kw) {
			score += 10
		}
	}
	return math.Min(100, score)
}

// barterCompatibility scores the candidate's barter offers against what the
// opportunity wants in trade. No stated wants is neutral; stated wants with
// nothing offered is a hard 0 so the orchestrator's barter penalty bites.
func barterCompatibility(wanted, offers []string) float64 {
	if len(wanted) == 0 {
		return scoreNeutral
	}
	if len(offers) == 0 {
		return 0
	}
	return skillMatchScore(wanted, offers)
}

// rateVersusBudget compares the candidate's rate with the opportunity's
// budget ceiling. Within budget is a full score; each 1% over budget costs
// half a point off a 50-point base.
func rateVersusBudget(budget *BudgetRange, hourlyRate, dailyRate *float64) float64 {
	if budget == nil || budget.Max <= 0 {
		return scoreNeutral
	}
	var rate float64
	switch {
	case hourlyRate != nil && *hourlyRate > 0:
		rate = *hourlyRate
	case dailyRate != nil && *dailyRate > 0:
		rate = *dailyRate / 8
	default:
		return scoreNeutral
	}
	ratio := rate / budget.Max
	if ratio <= 1 {
		return 100
	}
	return math.Max(0, math.Round(50-50*(ratio-1)))
}

// technicalScore is skill matching with a neutral (not vacuous) default:
// an RFP with no stated technical requirements tells us nothing.
func technicalScore(requirements, have []string) float64 {
	if len(requirements) == 0 || len(have) == 0 {
		return scoreNeutral
	}
	return skillMatchScore(requirements, have)
}

// qualificationSkillMatch blends credential coverage with the experience
// tier for the hiring models.
func qualificationSkillMatch(opp *Opportunity, user *CandidateProfile) float64 {
	required := append([]string{}, opp.Attributes.Qualifications...)
	required = append(required, opp.Attributes.RequiredSkills...)
	have := append([]string{}, user.Skills...)
	have = append(have, user.Certifications...)
	skills := skillMatchScore(required, have)
	experience := experienceLevelMatch(opp.Attributes.ExperienceLevel, user.ExperienceLevel)
	return math.Round(0.7*skills + 0.3*experience)
}

func clampScore(s float64) float64 {
	return math.Max(0, math.Min(100, s))
}
