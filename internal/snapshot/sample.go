package snapshot

import (
	"math/rand"
	"time"
)

var sampleFirstNames = []string{
	"Caitlin", "Nick", "Ashley", "Lizzie", "Tom", "Maya", "Jordan", "Priya",
	"Sam", "Theo", "Rosa", "Kenji", "Amara", "Luca", "Noor", "Finn",
}

var sampleActivities = []string{
	"Archery", "Canoeing", "Hiking", "Swimming", "Arts and Crafts",
	"Rock Climbing", "Orienteering", "Fishing", "Campfire Songs", "Kayaking",
}

// SampleOptions controls Sample
type SampleOptions struct {
	Campers    int
	Activities int
	// Seed fixes the random source; 0 picks one from the clock
	Seed int64
}

// DefaultSampleOptions returns the sizes used by the seed command
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{Campers: 10, Activities: 5}
}

// Sample builds a snapshot of made-up campers and activities, with each
// camper signed up for one to three activities at random hours
func Sample(opts SampleOptions) *Snapshot {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	snap := &Snapshot{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC(),
		Campers:    make([]CamperRecord, 0, opts.Campers),
		Activities: make([]ActivityRecord, 0, opts.Activities),
		Signups:    make([]SignupRecord, 0),
	}

	for i := 0; i < opts.Activities; i++ {
		name := sampleActivities[i%len(sampleActivities)]
		if i >= len(sampleActivities) {
			name = name + " " + string(rune('A'+i/len(sampleActivities)-1))
		}
		snap.Activities = append(snap.Activities, ActivityRecord{
			ID:         int64(i + 1),
			Name:       name,
			Difficulty: rng.Intn(5) + 1,
		})
	}

	for i := 0; i < opts.Campers; i++ {
		snap.Campers = append(snap.Campers, CamperRecord{
			ID:   int64(i + 1),
			Name: sampleFirstNames[rng.Intn(len(sampleFirstNames))],
			Age:  rng.Intn(11) + 8,
		})
	}

	if len(snap.Activities) == 0 {
		return snap
	}

	var signupID int64
	for _, camper := range snap.Campers {
		for n := rng.Intn(3) + 1; n > 0; n-- {
			signupID++
			snap.Signups = append(snap.Signups, SignupRecord{
				ID:         signupID,
				CamperID:   camper.ID,
				ActivityID: snap.Activities[rng.Intn(len(snap.Activities))].ID,
				Time:       rng.Intn(24),
			})
		}
	}

	return snap
}
