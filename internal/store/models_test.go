package store

import "testing"

func TestNormalizeSport(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Run", SportRun},
		{"TrailRun", SportRun},
		{"Ride", SportRide},
		{"VirtualRide", SportRide},
		{"indoor_cycling", SportRide},
		{"MountainBikeRide", SportRide},
		{"Swim", SportSwim},
		{"Hike", SportHike},
		{"Walk", SportWalk},
		{"WeightTraining", SportStrength},
		{"strength_training", SportStrength},
		{"Deadlifting", SportStrength},
		{"Yoga", SportOther},
		{"", SportOther},
	}
	for _, tt := range tests {
		if got := NormalizeSport(tt.raw); got != tt.want {
			t.Errorf("NormalizeSport(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
