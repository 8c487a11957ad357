package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSkillMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		required []string
		have     []string
		want     float64
	}{
		{
			name:     "empty requirements are vacuously satisfied",
			required: nil,
			have:     []string{"welding"},
			want:     100,
		},
		{
			name:     "empty candidate list against real requirements",
			required: []string{"welding"},
			have:     nil,
			want:     0,
		},
		{
			name:     "case-insensitive substring match",
			required: []string{"welding"},
			have:     []string{"Welding & Fabrication", "electrical"},
			want:     100,
		},
		{
			name:     "partial coverage",
			required: []string{"welding", "plumbing"},
			have:     []string{"welding"},
			want:     50,
		},
		{
			name:     "no overlap",
			required: []string{"accounting"},
			have:     []string{"welding"},
			want:     0,
		},
		{
			name:     "required token shorter than held token matches both directions",
			required: []string{"Industrial Welding"},
			have:     []string{"welding"},
			want:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := skillMatchScore(tt.required, tt.have)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestExperienceLevelMatch(t *testing.T) {
	assert.Equal(t, 100.0, experienceLevelMatch("junior", "expert"))
	assert.Equal(t, 100.0, experienceLevelMatch("senior", "senior"))
	assert.Equal(t, 70.0, experienceLevelMatch("senior", "mid-level"))
	assert.Equal(t, 40.0, experienceLevelMatch("expert", "mid-level"))
	assert.Equal(t, 10.0, experienceLevelMatch("expert", "junior"))

	// Unknown levels default to mid-level.
	assert.Equal(t, 100.0, experienceLevelMatch("", ""))
	assert.Equal(t, 100.0, experienceLevelMatch("unknown", "senior"))
}

func TestGeographicProximity(t *testing.T) {
	assert.Equal(t, 100.0, geographicProximity("Lagos", "Lagos State", "lagos", "other"))
	assert.Equal(t, 70.0, geographicProximity("Ikeja", "Lagos State", "Epe", "Lagos State"))
	assert.Equal(t, 50.0, geographicProximity("Lagos", "Lagos State", "Abuja", "FCT"))

	// Empty fields never count as a match, so the floor holds.
	assert.Equal(t, 50.0, geographicProximity("", "", "", ""))
}

func TestGeographicProximitySymmetry(t *testing.T) {
	pairs := [][4]string{
		{"Lagos", "Lagos State", "Lagos", "FCT"},
		{"Ikeja", "Lagos State", "Epe", "Lagos State"},
		{"Lagos", "West", "Abuja", "North"},
		{"", "", "Lagos", "West"},
	}
	for _, p := range pairs {
		a := geographicProximity(p[0], p[1], p[2], p[3])
		b := geographicProximity(p[2], p[3], p[0], p[1])
		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, a, 50.0)
	}
}

func TestParseRevenue(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"50M", 50000},
		{"5K", 5},
		{"1.5B", 1500000},
		{"500K", 500},
		{"10M-50M", 10000}, // range takes the lower bound
		{"$2M", 2000},
		{"750", 750},
		{"", 0},
		{"N/A", 0},
		{"-5M", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRevenue(tt.input))
		})
	}
}

func TestFinancialCapacity(t *testing.T) {
	// No required amount means no financial bar.
	assert.Equal(t, 100.0, financialCapacity(0, "50M"))
	assert.Equal(t, 100.0, financialCapacity(0, ""))
	assert.Equal(t, 100.0, financialCapacity(-1, "garbage"))

	// Unparseable revenue against a real requirement.
	assert.Equal(t, 0.0, financialCapacity(1000, ""))
	assert.Equal(t, 0.0, financialCapacity(1000, "N/A"))

	// Ratio ladder.
	assert.Equal(t, 100.0, financialCapacity(1000, "50M")) // ratio 50
	assert.Equal(t, 80.0, financialCapacity(1000, "5M"))   // ratio 5
	assert.Equal(t, 60.0, financialCapacity(1000, "2M"))   // ratio 2
	assert.Equal(t, 40.0, financialCapacity(1000, "1M"))   // ratio 1
	assert.Equal(t, 20.0, financialCapacity(1000, "5K"))   // ratio 0.005
}

func TestTimelineAlignment(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	window := &DateRange{Start: start, End: end}

	t.Run("missing information is neutral", func(t *testing.T) {
		assert.Equal(t, 75.0, timelineAlignment(nil, &start, &end))
		assert.Equal(t, 75.0, timelineAlignment(window, nil, &end))
		assert.Equal(t, 75.0, timelineAlignment(window, &start, nil))
	})

	t.Run("full overlap", func(t *testing.T) {
		assert.Equal(t, 100.0, timelineAlignment(window, &start, &end))
	})

	t.Run("half overlap", func(t *testing.T) {
		mid := start.Add(end.Sub(start) / 2)
		got := timelineAlignment(window, &start, &mid)
		assert.InDelta(t, 50.0, got, 1.0)
	})

	t.Run("no overlap", func(t *testing.T) {
		later := end.AddDate(0, 1, 0)
		muchLater := end.AddDate(0, 2, 0)
		assert.Equal(t, 0.0, timelineAlignment(window, &later, &muchLater))
	})

	t.Run("inverted window is neutral", func(t *testing.T) {
		inverted := &DateRange{Start: end, End: start}
		assert.Equal(t, 75.0, timelineAlignment(inverted, &start, &end))
	})
}

func TestOverlapScore(t *testing.T) {
	assert.Equal(t, 50.0, overlapScore(nil, []string{"growth"}))
	assert.Equal(t, 50.0, overlapScore([]string{"growth"}, nil))
	assert.Equal(t, 100.0, overlapScore([]string{"growth"}, []string{"Growth"}))
	assert.Equal(t, 33.0, overlapScore([]string{"a", "b"}, []string{"b", "c"}))
	assert.Equal(t, 0.0, overlapScore([]string{"a"}, []string{"b"}))
}

func TestBarterCompatibility(t *testing.T) {
	assert.Equal(t, 50.0, barterCompatibility(nil, []string{"welding"}))
	assert.Equal(t, 0.0, barterCompatibility([]string{"welding"}, nil))
	assert.Equal(t, 100.0, barterCompatibility([]string{"welding"}, []string{"Welding Services"}))
	assert.Equal(t, 0.0, barterCompatibility([]string{"accounting"}, []string{"welding"}))
}

func TestRateVersusBudget(t *testing.T) {
	rate := func(v float64) *float64 { return &v }

	t.Run("missing budget or rate is neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, rateVersusBudget(nil, rate(150), nil))
		assert.Equal(t, 50.0, rateVersusBudget(&BudgetRange{Max: 100}, nil, nil))
		assert.Equal(t, 50.0, rateVersusBudget(&BudgetRange{}, rate(150), nil))
	})

	t.Run("within budget scores full", func(t *testing.T) {
		assert.Equal(t, 100.0, rateVersusBudget(&BudgetRange{Max: 100}, rate(80), nil))
		assert.Equal(t, 100.0, rateVersusBudget(&BudgetRange{Max: 100}, rate(100), nil))
	})

	t.Run("over budget decays", func(t *testing.T) {
		// 50% over budget: 50 - 50*0.5 = 25
		assert.Equal(t, 25.0, rateVersusBudget(&BudgetRange{Max: 100}, rate(150), nil))
		// Double the budget zeroes out.
		assert.Equal(t, 0.0, rateVersusBudget(&BudgetRange{Max: 100}, rate(200), nil))
		assert.Equal(t, 0.0, rateVersusBudget(&BudgetRange{Max: 100}, rate(500), nil))
	})

	t.Run("daily rate converts to hourly", func(t *testing.T) {
		assert.Equal(t, 100.0, rateVersusBudget(&BudgetRange{Max: 100}, nil, rate(800)))
		assert.Equal(t, 25.0, rateVersusBudget(&BudgetRange{Max: 100}, nil, rate(1200)))
	})
}

func TestInnovationScore(t *testing.T) {
	assert.Equal(t, 50.0, innovationScore(nil))
	assert.Equal(t, 50.0, innovationScore([]string{"  "}))
	assert.Equal(t, 50.0, innovationScore([]string{"built a warehouse"}))
	assert.Equal(t, 60.0, innovationScore([]string{"patent pending process"}))
	assert.Equal(t, 70.0, innovationScore([]string{"novel prototype for clients"}))

	// Caps at 100 no matter how many keywords stack up.
	loaded := []string{"innovation innovative novel patent prototype r&d research automation artificial intelligence machine learning"}
	assert.Equal(t, 100.0, innovationScore(loaded))
}

func TestTechnicalScore(t *testing.T) {
	assert.Equal(t, 50.0, technicalScore(nil, []string{"go"}))
	assert.Equal(t, 50.0, technicalScore([]string{"go"}, nil))
	assert.Equal(t, 100.0, technicalScore([]string{"go"}, []string{"Go", "sql"}))
}
