package dataset

import (
	"io"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// bucketRanges are the image-count ranges used for the person histogram,
// each [start, end) in images per person.
var bucketRanges = [8][2]int{
	{1, 2}, {2, 3}, {3, 6}, {6, 11}, {11, 26}, {26, 76}, {76, 201}, {201, math.MaxInt},
}

var bucketLabels = [8]string{
	"1 image", "2 images", "3-5 images", "6-10 images",
	"11-25 images", "26-75 images", "76-200 images", ">=201 images",
}

// SampleStats describes the dataset census taken before sampling and the
// composition of the collected pairs afterwards. It is informational only
// and never feeds back into the sampling outcome.
type SampleStats struct {
	Images   int // images in the candidate pool
	Persons  int // distinct persons
	Pairable int // persons with at least two images

	MaxOrdered       int64 // k*(k-1) over all images
	MaxUnordered     int64 // k*(k-1)/2 over all images
	MaxSameOrdered   int64 // sum of k*(k-1) per pairable person
	MaxSameUnordered int64 // sum of k*(k-1)/2 per pairable person

	Buckets [8]int // persons per image-count range

	SameImage    int // collected pairs of identical images
	SameDistinct int // collected same-person pairs of distinct images
	Different    int // collected different-person pairs
}

func newSampleStats(records []Record, byPerson map[string][]Record, names, pairable []string) *SampleStats {
	s := &SampleStats{
		Images:   len(records),
		Persons:  len(names),
		Pairable: len(pairable),
	}
	k := int64(len(records))
	s.MaxOrdered = k * (k - 1)
	s.MaxUnordered = k * (k - 1) / 2
	for _, name := range names {
		n := len(byPerson[name])
		for i, r := range bucketRanges {
			if n >= r[0] && n < r[1] {
				s.Buckets[i]++
				break
			}
		}
	}
	for _, name := range pairable {
		n := int64(len(byPerson[name]))
		s.MaxSameOrdered += n * (n - 1)
		s.MaxSameUnordered += n * (n - 1) / 2
	}
	return s
}

// Collected returns the total number of pairs described by the composition
// counters.
func (s *SampleStats) Collected() int {
	return s.SameImage + s.SameDistinct + s.Different
}

func (s *SampleStats) ReportCensus(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Found %d images of %d persons, theoretical max %d ordered / %d unordered pairs.\n",
		s.Images, s.Persons, s.MaxOrdered, s.MaxUnordered)
	for i, label := range bucketLabels {
		p.Fprintf(w, " %7d persons have %s.\n", s.Buckets[i], label)
	}
	p.Fprintf(w, "Can collect max %d ordered and %d unordered pairs showing the same person.\n",
		s.MaxSameOrdered, s.MaxSameUnordered)
}

func (s *SampleStats) ReportComposition(w io.Writer) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Collected %d pairs of images total.\n", s.Collected())
	p.Fprintf(w, "Collected %d pairs showing the same person (%d are pairs of identical images).\n",
		s.SameImage+s.SameDistinct, s.SameImage)
	p.Fprintf(w, "Collected %d pairs showing different persons.\n", s.Different)
}
