package analytics

import (
	"math/rand"
	"time"
)

// Ranges bounds every value the generator draws.
type Ranges struct {
	MinStageDuration time.Duration `yaml:"min_stage_duration"`
	MaxStageDuration time.Duration `yaml:"max_stage_duration"`
	SampleInterval   time.Duration `yaml:"sample_interval"`

	HeartRateMin   float64 `yaml:"heart_rate_min"`
	HeartRateMax   float64 `yaml:"heart_rate_max"`
	OxygenMin      float64 `yaml:"oxygen_min"`
	OxygenMax      float64 `yaml:"oxygen_max"`
	RespiratoryMin float64 `yaml:"respiratory_min"`
	RespiratoryMax float64 `yaml:"respiratory_max"`
}

// DefaultRanges returns plausible adult resting values.
func DefaultRanges() Ranges {
	return Ranges{
		MinStageDuration: 15 * time.Minute,
		MaxStageDuration: 90 * time.Minute,
		SampleInterval:   30 * time.Minute,
		HeartRateMin:     50,
		HeartRateMax:     80,
		OxygenMin:        90,
		OxygenMax:        100,
		RespiratoryMin:   12,
		RespiratoryMax:   18,
	}
}

// normalized replaces unusable bounds with the defaults so generation always
// terminates.
func (r Ranges) normalized() Ranges {
	d := DefaultRanges()
	if r.MinStageDuration <= 0 {
		r.MinStageDuration = d.MinStageDuration
	}
	if r.MaxStageDuration < r.MinStageDuration {
		r.MaxStageDuration = r.MinStageDuration
	}
	if r.SampleInterval <= 0 {
		r.SampleInterval = d.SampleInterval
	}
	if r.HeartRateMax < r.HeartRateMin {
		r.HeartRateMin, r.HeartRateMax = r.HeartRateMax, r.HeartRateMin
	}
	if r.OxygenMax < r.OxygenMin {
		r.OxygenMin, r.OxygenMax = r.OxygenMax, r.OxygenMin
	}
	if r.RespiratoryMax < r.RespiratoryMin {
		r.RespiratoryMin, r.RespiratoryMax = r.RespiratoryMax, r.RespiratoryMin
	}
	return r
}

// Synthetic is generated stand-in data for an interval without sensor input.
type Synthetic struct {
	Stages          []StageSegment
	HeartRate       []HealthSample
	BloodOxygen     []HealthSample
	RespiratoryRate float64
}

// Generator draws synthetic physiological data from an injected source. A
// Generator is not safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	ranges Ranges
}

// NewGenerator creates a Generator drawing from rng. Pass a seeded source
// for reproducible output.
func NewGenerator(rng *rand.Rand, ranges Ranges) *Generator {
	return &Generator{
		rng:    rng,
		ranges: ranges.normalized(),
	}
}

// NewRandomGenerator creates a Generator seeded from the clock.
func NewRandomGenerator(ranges Ranges) *Generator {
	return NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), ranges)
}

// Ranges returns the bounds in effect.
func (g *Generator) Ranges() Ranges {
	return g.ranges
}

// Generate produces stages, samples and a respiratory rate for iv.
//
// Stage segments tile [Start, End] exactly. Samples are taken every
// SampleInterval from Start to End inclusive. A degenerate interval
// (End <= Start) yields no stages and a single sample at Start.
func (g *Generator) Generate(iv Interval) Synthetic {
	heart, oxygen := g.samples(iv)
	return Synthetic{
		Stages:          g.stages(iv),
		HeartRate:       heart,
		BloodOxygen:     oxygen,
		RespiratoryRate: g.uniform(g.ranges.RespiratoryMin, g.ranges.RespiratoryMax),
	}
}

func (g *Generator) stages(iv Interval) []StageSegment {
	var segments []StageSegment

	current := iv.Start
	for current.Before(iv.End) {
		next := current.Add(g.stageDuration())
		if next.After(iv.End) {
			next = iv.End
		}

		segments = append(segments, StageSegment{
			Stage: AllStages[g.rng.Intn(len(AllStages))],
			Start: current,
			End:   next,
		})
		current = next
	}

	return segments
}

func (g *Generator) stageDuration() time.Duration {
	span := g.ranges.MaxStageDuration - g.ranges.MinStageDuration
	if span <= 0 {
		return g.ranges.MinStageDuration
	}
	return g.ranges.MinStageDuration + time.Duration(g.rng.Int63n(int64(span)+1))
}

func (g *Generator) samples(iv Interval) (heart, oxygen []HealthSample) {
	current := iv.Start
	for {
		heart = append(heart, HealthSample{
			Timestamp: current,
			Value:     g.uniform(g.ranges.HeartRateMin, g.ranges.HeartRateMax),
		})
		oxygen = append(oxygen, HealthSample{
			Timestamp: current,
			Value:     g.uniform(g.ranges.OxygenMin, g.ranges.OxygenMax),
		})

		current = current.Add(g.ranges.SampleInterval)
		if current.After(iv.End) {
			break
		}
	}
	return heart, oxygen
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// Backfill fills in whatever r is missing (stages, heart rate, blood oxygen,
// respiratory rate) with generated data. Parts that are already present are
// sensor data and are kept untouched.
func (g *Generator) Backfill(r Record) (Record, bool) {
	missingStages := len(r.Stages) == 0
	missingHeart := len(r.HeartRate) == 0
	missingOxygen := len(r.BloodOxygen) == 0
	missingResp := r.RespiratoryRate <= 0

	if !missingStages && !missingHeart && !missingOxygen && !missingResp {
		return r, false
	}

	syn := g.Generate(r.Interval)
	if missingStages {
		r.Stages = syn.Stages
	}
	if missingHeart {
		r.HeartRate = syn.HeartRate
	}
	if missingOxygen {
		r.BloodOxygen = syn.BloodOxygen
	}
	if missingResp {
		r.RespiratoryRate = syn.RespiratoryRate
	}
	return r, true
}
