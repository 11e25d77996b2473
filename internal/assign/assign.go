// Package assign seeds (location, shoot) assignments from configured page-ID
// ranges. Seeding is the only assignment method in this pipeline; pages
// outside every range stay unknown at low confidence.
package assign

// Shoot is one ID range belonging to a location.
type Shoot struct {
	Index      *int    `yaml:"shoot_index"` // nil = shoot unknown within the range
	StartID    int64   `yaml:"start_id"`
	EndID      int64   `yaml:"end_id"`
	Confidence float64 `yaml:"confidence"`
}

// Seed groups the shoot ranges of one location.
type Seed struct {
	Location string  `yaml:"location"`
	Shoots   []Shoot `yaml:"shoots"`
}

// MethodRangeSeed is the assignment method recorded for every seeded page.
const MethodRangeSeed = "range_seed"

const (
	defaultSeedConfidence   = 0.9
	unmatchedSeedConfidence = 0.5
)

// Assignment is the seeded result for one page.
type Assignment struct {
	Location   string // empty when no range matched
	Shoot      *int
	Method     string
	Confidence float64
}

// FromSeeds returns the assignment for a page ID, scanning seeds in order
// and taking the first covering range.
func FromSeeds(id int64, seeds []Seed) Assignment {
	for _, seed := range seeds {
		for _, sh := range seed.Shoots {
			if id < sh.StartID || id > sh.EndID {
				continue
			}
			conf := sh.Confidence
			if conf == 0 {
				conf = defaultSeedConfidence
			}
			return Assignment{
				Location:   seed.Location,
				Shoot:      sh.Index,
				Method:     MethodRangeSeed,
				Confidence: conf,
			}
		}
	}
	return Assignment{Method: MethodRangeSeed, Confidence: unmatchedSeedConfidence}
}
