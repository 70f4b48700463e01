package dataset

import "strings"

// keySeparator joins the two filepaths of a pair into its dedup key. The
// separator cannot appear in a path, so keys are unambiguous.
const keySeparator = "$$$"

// Pair holds two image records. SamePerson and SameImage are derived from
// the records when the pair is built and are never set independently:
// SamePerson is person-name equality, SameImage is path equality.
type Pair struct {
	A          Record
	B          Record
	SamePerson bool
	SameImage  bool
}

// NewPair builds a Pair and computes its labels.
func NewPair(a, b Record) Pair {
	return Pair{
		A:          a,
		B:          b,
		SamePerson: a.Person == b.Person,
		SameImage:  a.Path == b.Path,
	}
}

// Key returns the dedup identifier for this pair. With ignoreOrder the key
// is canonical: (A,B) and (B,A) produce the same key, so a sampler using it
// treats them as the same pair.
func (p Pair) Key(ignoreOrder bool) string {
	a, b := p.A.Path, p.B.Path
	if ignoreOrder && b < a {
		a, b = b, a
	}
	return a + keySeparator + b
}

// Records returns the unique records referenced by the given pairs, used to
// build the exclusion set for a subsequent sampling call.
func Records(pairs []Pair) []Record {
	seen := make(map[string]struct{}, 2*len(pairs))
	var out []Record
	for _, p := range pairs {
		for _, rec := range [2]Record{p.A, p.B} {
			if _, ok := seen[rec.Path]; ok {
				continue
			}
			seen[rec.Path] = struct{}{}
			out = append(out, rec)
		}
	}
	return out
}

// Label returns 1.0 for a same-person pair and 0.0 otherwise.
func (p Pair) Label() float32 {
	if p.SamePerson {
		return 1.0
	}
	return 0.0
}

// String renders a short human-readable form used in listings.
func (p Pair) String() string {
	var sb strings.Builder
	sb.WriteString(p.A.Name)
	sb.WriteString(" / ")
	sb.WriteString(p.B.Name)
	if p.SameImage {
		sb.WriteString(" (same image)")
	} else if p.SamePerson {
		sb.WriteString(" (same person)")
	}
	return sb.String()
}
