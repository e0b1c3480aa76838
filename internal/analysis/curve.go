package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/cturner512/edh-advisor/internal/deck"
)

// curveBucketMax groups every CMC of 7 or more into the top bucket.
const curveBucketMax = 7

// Archetype ideal curve distributions, as percentage of non-land cards per
// bucket 0..7+. Rows sum to 100.
var idealCurves = map[string][8]float64{
	"aggro":    {5, 25, 30, 20, 10, 5, 3, 2},
	"midrange": {3, 12, 22, 25, 18, 10, 6, 4},
	"control":  {4, 14, 20, 18, 16, 12, 8, 8},
	"combo":    {6, 20, 26, 20, 12, 8, 4, 4},
	"default":  {4, 15, 24, 22, 15, 10, 6, 4},
}

// Base land counts per archetype, nudged by average CMC.
var archetypeLandBase = map[string]int{
	"aggro":    35,
	"combo":    36,
	"midrange": 36,
	"control":  38,
	"default":  37,
}

// CurveDeviation flags a bucket whose share differs from the archetype
// ideal by more than ten percentage points.
type CurveDeviation struct {
	Bucket    int     `json:"bucket"` // 7 means "7+"
	ActualPct float64 `json:"actual_pct"`
	IdealPct  float64 `json:"ideal_pct"`
	Direction string  `json:"direction"` // "over" or "under"
}

// CurveReport is the mana curve and mana base analysis.
type CurveReport struct {
	Histogram        map[int]int      `json:"histogram"` // bucket 0..7, 7 = 7+
	IdealPct         [8]float64       `json:"ideal_pct"` // archetype ideal share per bucket
	NonLandCount     int              `json:"non_land_count"`
	AvgCMC           float64          `json:"avg_cmc"`
	Archetype        string           `json:"archetype"`
	Deviations       []CurveDeviation `json:"deviations,omitempty"`
	DeadZones        []int            `json:"dead_zones,omitempty"` // buckets 1-6 with zero cards
	CurrentLands     int              `json:"current_lands"`
	RecommendedLands int              `json:"recommended_lands"`
	ColorSources     map[string]int   `json:"color_sources,omitempty"`
}

// AnalyzeCurve builds the curve report for a deck.
func AnalyzeCurve(d deck.Deck) CurveReport {
	archetype := strings.ToLower(d.Archetype)
	if _, ok := idealCurves[archetype]; !ok {
		archetype = "default"
	}

	report := CurveReport{
		Histogram: make(map[int]int),
		AvgCMC:    d.AverageCMC(),
		Archetype: archetype,
	}

	nonLand := 0
	colorCounts := make(map[string]int)
	for _, e := range d.Cards {
		if e.Card.IsLand() {
			report.CurrentLands += e.Quantity
			continue
		}
		bucket := int(e.Card.CMC)
		if bucket > curveBucketMax {
			bucket = curveBucketMax
		}
		if bucket < 0 {
			bucket = 0
		}
		report.Histogram[bucket] += e.Quantity
		nonLand += e.Quantity
		for _, color := range e.Card.Colors {
			colorCounts[strings.ToUpper(color)] += e.Quantity
		}
	}

	ideal := idealCurves[archetype]
	report.IdealPct = ideal
	report.NonLandCount = nonLand
	if nonLand > 0 {
		for bucket := 0; bucket <= curveBucketMax; bucket++ {
			actualPct := float64(report.Histogram[bucket]) / float64(nonLand) * 100
			diff := actualPct - ideal[bucket]
			if math.Abs(diff) > 10 {
				direction := "over"
				if diff < 0 {
					direction = "under"
				}
				report.Deviations = append(report.Deviations, CurveDeviation{
					Bucket:    bucket,
					ActualPct: math.Round(actualPct*10) / 10,
					IdealPct:  ideal[bucket],
					Direction: direction,
				})
			}
		}
		for bucket := 1; bucket <= 6; bucket++ {
			if report.Histogram[bucket] == 0 {
				report.DeadZones = append(report.DeadZones, bucket)
			}
		}
	}

	report.RecommendedLands = recommendLands(archetype, report.AvgCMC)
	report.ColorSources = allocateColorSources(colorCounts, report.RecommendedLands)
	return report
}

// recommendLands starts from the archetype base and nudges by curve speed.
func recommendLands(archetype string, avgCMC float64) int {
	base, ok := archetypeLandBase[archetype]
	if !ok {
		base = archetypeLandBase["default"]
	}
	if avgCMC > 4.0 {
		base++
	} else if avgCMC > 0 && avgCMC < 2.5 {
		base--
	}
	return base
}

// allocateColorSources splits the recommended land count proportionally to
// colored-symbol frequency using the largest-remainder method. Every color
// receives at least floor(0.7 x its proportional share) and the allocation
// never exceeds the total land count.
func allocateColorSources(colorCounts map[string]int, lands int) map[string]int {
	total := 0
	for _, n := range colorCounts {
		total += n
	}
	if total == 0 || lands <= 0 {
		return nil
	}

	colors := make([]string, 0, len(colorCounts))
	for c := range colorCounts {
		colors = append(colors, c)
	}
	sort.Strings(colors)

	alloc := make(map[string]int, len(colors))
	type remainder struct {
		color string
		frac  float64
	}
	var remainders []remainder
	assigned := 0
	for _, c := range colors {
		share := float64(colorCounts[c]) / float64(total) * float64(lands)
		alloc[c] = int(math.Floor(share))
		assigned += alloc[c]
		remainders = append(remainders, remainder{color: c, frac: share - math.Floor(share)})
	}

	sort.SliceStable(remainders, func(i, j int) bool {
		return remainders[i].frac > remainders[j].frac
	})
	for i := 0; assigned < lands && i < len(remainders); i++ {
		alloc[remainders[i].color]++
		assigned++
	}
	return alloc
}
