package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"
)

// ErrExhausted is returned when the sampler keeps drawing pairs it has
// already collected. That happens when MaxPairs is above the number of
// distinct pairs reachable with the current pool and dedup settings.
var ErrExhausted = errors.New("pair sampling exhausted")

// DefaultMaxMisses is the number of consecutive rejected draws after which
// sampling gives up with ErrExhausted.
const DefaultMaxMisses = 10000

// Config controls one sampling call.
type Config struct {
	// Dir is the dataset root directory (the faces/ directory of LFW).
	Dir string
	// MaxPairs is the total number of pairs to collect. Half of them
	// (rounded down) are same-person pairs.
	MaxPairs int
	// AllowSelfPairs permits pairs where both sides are the same file.
	AllowSelfPairs bool
	// IgnoreOrder treats (A,B) and (B,A) as the same pair for dedup.
	IgnoreOrder bool
	// Exclude lists pairs from earlier splits. Every image referenced by
	// them is removed from the candidate pool entirely.
	Exclude []Pair
	// Seed makes the call reproducible. Zero means seed from the clock.
	Seed int64
	// Rand overrides the random source; when set, Seed is ignored.
	Rand *rand.Rand
	// Verbose prints dataset statistics to stdout while sampling.
	Verbose bool
	// MaxMisses overrides DefaultMaxMisses when positive.
	MaxMisses int
}

// Sample draws a labeled, deduplicated, shuffled set of image pairs from
// the dataset directory using stratified sampling: first a person is drawn
// uniformly, then an image of that person. This keeps the distribution of
// drawn images even across persons instead of favoring the few celebrities
// with hundreds of images.
//
// The first MaxPairs/2 accepted pairs show the same person, the rest show
// different persons; the returned slice is shuffled so the two phases are
// not observable in its order. The call owns its random generator, so the
// process-global rand state is never touched and two calls with the same
// seed and inputs return identical sequences.
func Sample(cfg Config) ([]Pair, *SampleStats, error) {
	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	maxMisses := cfg.MaxMisses
	if maxMisses <= 0 {
		maxMisses = DefaultMaxMisses
	}

	records, err := ScanRecords(cfg.Dir, Records(cfg.Exclude))
	if err != nil {
		return nil, nil, err
	}

	byPerson, names, pairable := buildPools(records)
	stats := newSampleStats(records, byPerson, names, pairable)
	if cfg.Verbose {
		stats.ReportCensus(os.Stdout)
	}

	nbSame := cfg.MaxPairs / 2
	if nbSame > 0 && len(pairable) == 0 {
		return nil, nil, fmt.Errorf("no person has two or more images: %w", ErrExhausted)
	}
	if cfg.MaxPairs > nbSame && len(names) < 2 {
		return nil, nil, fmt.Errorf("need at least two persons for different-person pairs: %w", ErrExhausted)
	}

	pairs := make([]Pair, 0, cfg.MaxPairs)
	added := make(map[string]struct{}, cfg.MaxPairs)
	misses := 0

	// Same-person phase.
	for len(pairs) < nbSame {
		person := pairable[rng.Intn(len(pairable))]
		imgs := byPerson[person]
		ai := rng.Intn(len(imgs))
		var b Record
		if cfg.AllowSelfPairs {
			b = imgs[rng.Intn(len(imgs))]
		} else {
			bi := rng.Intn(len(imgs) - 1)
			if bi >= ai {
				bi++
			}
			b = imgs[bi]
		}
		pair := NewPair(imgs[ai], b)
		key := pair.Key(cfg.IgnoreOrder)
		if _, dup := added[key]; dup {
			if misses++; misses >= maxMisses {
				return nil, nil, fmt.Errorf("%d consecutive duplicate draws while collecting same-person pairs: %w", misses, ErrExhausted)
			}
			continue
		}
		misses = 0
		added[key] = struct{}{}
		pairs = append(pairs, pair)
		if pair.SameImage {
			stats.SameImage++
		} else {
			stats.SameDistinct++
		}
	}

	// Different-person phase. The two persons are drawn by rejection so
	// they always differ; the images then cannot collide.
	for len(pairs) < cfg.MaxPairs {
		p1 := names[rng.Intn(len(names))]
		p2 := p1
		for p2 == p1 {
			p2 = names[rng.Intn(len(names))]
		}
		imgs1, imgs2 := byPerson[p1], byPerson[p2]
		pair := NewPair(imgs1[rng.Intn(len(imgs1))], imgs2[rng.Intn(len(imgs2))])
		key := pair.Key(cfg.IgnoreOrder)
		if _, dup := added[key]; dup {
			if misses++; misses >= maxMisses {
				return nil, nil, fmt.Errorf("%d consecutive duplicate draws while collecting different-person pairs: %w", misses, ErrExhausted)
			}
			continue
		}
		misses = 0
		added[key] = struct{}{}
		pairs = append(pairs, pair)
		stats.Different++
	}

	rng.Shuffle(len(pairs), func(i, j int) {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	})

	if cfg.Verbose {
		stats.ReportComposition(os.Stdout)
	}
	return pairs, stats, nil
}

// buildPools groups records by person and builds the two name pools used
// for stratified sampling: every person, and persons with at least two
// images. Pools are built in first-seen order over the sorted records, so
// a fixed seed always walks the same sequence of draws.
func buildPools(records []Record) (byPerson map[string][]Record, names, pairable []string) {
	byPerson = make(map[string][]Record)
	for _, rec := range records {
		if _, ok := byPerson[rec.Person]; !ok {
			names = append(names, rec.Person)
		}
		byPerson[rec.Person] = append(byPerson[rec.Person], rec)
	}
	for _, name := range names {
		if len(byPerson[name]) >= 2 {
			pairable = append(pairable, name)
		}
	}
	return byPerson, names, pairable
}

// Census scans the dataset directory and returns its statistics without
// sampling any pairs.
func Census(dir string) (*SampleStats, error) {
	records, err := ScanRecords(dir, nil)
	if err != nil {
		return nil, err
	}
	byPerson, names, pairable := buildPools(records)
	return newSampleStats(records, byPerson, names, pairable), nil
}
