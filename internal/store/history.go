package store

import "github.com/NammaLakes/dashboard/internal/models"

// sampleRing is a fixed-capacity ring of historical samples. The oldest
// sample is overwritten once the ring is full.
type sampleRing struct {
	samples []models.HistoricalSample
	start   int
	size    int
}

func newSampleRing(capacity int) *sampleRing {
	if capacity < 1 {
		capacity = 1
	}
	return &sampleRing{samples: make([]models.HistoricalSample, capacity)}
}

// Len returns the number of stored samples
func (r *sampleRing) Len() int {
	return r.size
}

// Last returns the most recent sample
func (r *sampleRing) Last() (models.HistoricalSample, bool) {
	if r.size == 0 {
		return models.HistoricalSample{}, false
	}
	idx := (r.start + r.size - 1) % len(r.samples)
	return r.samples[idx], true
}

// Append stores sample unless it repeats the most recent one, and reports
// whether it was stored.
func (r *sampleRing) Append(sample models.HistoricalSample) bool {
	if last, ok := r.Last(); ok && last.SameAs(sample) {
		return false
	}

	if r.size < len(r.samples) {
		r.samples[(r.start+r.size)%len(r.samples)] = sample
		r.size++
		return true
	}

	r.samples[r.start] = sample
	r.start = (r.start + 1) % len(r.samples)
	return true
}

// Samples returns the stored samples oldest first
func (r *sampleRing) Samples() []models.HistoricalSample {
	out := make([]models.HistoricalSample, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.samples[(r.start+i)%len(r.samples)]
	}
	return out
}
