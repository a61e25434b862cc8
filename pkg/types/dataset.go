package types

import (
	"math/rand"
)

// Dataset is an ordered, immutable collection of samples. Deriving
// operations (Shuffle, Select, Filter) return new datasets and never
// touch the receiver, so a dataset can be shared across goroutines.
type Dataset struct {
	samples []Sample
}

// NewDataset creates a dataset from a slice of samples
func NewDataset(samples []Sample) *Dataset {
	copied := make([]Sample, len(samples))
	copy(copied, samples)
	return &Dataset{samples: copied}
}

// Len returns the number of samples in the dataset
func (d *Dataset) Len() int {
	return len(d.samples)
}

// Get returns the sample at the specified index
func (d *Dataset) Get(idx int) (Sample, bool) {
	if idx < 0 || idx >= len(d.samples) {
		return Sample{}, false
	}
	return d.samples[idx], true
}

// Samples returns a copy of all samples in order
func (d *Dataset) Samples() []Sample {
	copied := make([]Sample, len(d.samples))
	copy(copied, d.samples)
	return copied
}

// Shuffle returns a new dataset with samples in seeded random order
func (d *Dataset) Shuffle(seed int64) *Dataset {
	shuffled := make([]Sample, len(d.samples))
	copy(shuffled, d.samples)

	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return &Dataset{samples: shuffled}
}

// Select returns a new dataset containing only the specified indices,
// in the given order. Out-of-range indices are skipped.
func (d *Dataset) Select(indices []int) *Dataset {
	selected := make([]Sample, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(d.samples) {
			selected = append(selected, d.samples[idx])
		}
	}
	return &Dataset{samples: selected}
}

// Head returns a new dataset with at most n leading samples
func (d *Dataset) Head(n int) *Dataset {
	if n < 0 {
		n = 0
	}
	if n > len(d.samples) {
		n = len(d.samples)
	}
	selected := make([]Sample, n)
	copy(selected, d.samples[:n])
	return &Dataset{samples: selected}
}

// Filter returns a new dataset with the samples matching the predicate
func (d *Dataset) Filter(predicate func(Sample) bool) *Dataset {
	kept := make([]Sample, 0, len(d.samples))
	for _, s := range d.samples {
		if predicate(s) {
			kept = append(kept, s)
		}
	}
	return &Dataset{samples: kept}
}

// Completions returns the completion column of the dataset
func (d *Dataset) Completions() []Completion {
	out := make([]Completion, len(d.samples))
	for i, s := range d.samples {
		out[i] = s.Completion
	}
	return out
}

// Answers returns the ground-truth answer column of the dataset
func (d *Dataset) Answers() []string {
	out := make([]string, len(d.samples))
	for i, s := range d.samples {
		out[i] = s.Answer
	}
	return out
}
