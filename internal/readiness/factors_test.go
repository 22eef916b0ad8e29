package readiness

import (
	"reflect"
	"testing"
	"time"
)

func ip(v int) *int { return &v }

var testNow = time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

func session(daysAgo int, hours float64, intense bool) Session {
	return Session{
		Date:        testNow.AddDate(0, 0, -daysAgo),
		DurationSec: hours * 3600,
		Intense:     intense,
	}
}

// TestComputeFactorsFullSet verifies that full signals produce all
// seven factors in declaration order with ceilings summing to 100.
func TestComputeFactorsFullSet(t *testing.T) {
	hist := TrainingHistory{Sessions: []Session{
		session(1, 1.5, true),
		session(3, 1.0, false),
	}}
	stats := &DailyStats{StressLevel: ip(30), BodyBattery: ip(80), Steps: ip(9000)}

	factors := ComputeFactors(hist, stats, testNow)
	if len(factors) != 7 {
		t.Fatalf("len(factors) = %d, want 7", len(factors))
	}

	wantOrder := []FactorName{
		FactorWeeklyLoad, FactorConsecutiveIntense, FactorRestDays,
		FactorRecovery, FactorStress, FactorBodyBattery, FactorSteps,
	}
	var maxSum int
	for i, f := range factors {
		if f.Name != wantOrder[i] {
			t.Errorf("factors[%d] = %s, want %s", i, f.Name, wantOrder[i])
		}
		if f.Score < 0 || f.Score > f.MaxScore {
			t.Errorf("%s score %d outside [0, %d]", f.Name, f.Score, f.MaxScore)
		}
		maxSum += f.MaxScore
	}
	if maxSum != 100 {
		t.Errorf("sum of maxScore = %d, want 100", maxSum)
	}
}

// TestComputeFactorsMissingTelemetry verifies that absent readings
// omit their factor instead of zero-scoring it.
func TestComputeFactorsMissingTelemetry(t *testing.T) {
	hist := TrainingHistory{}

	tests := []struct {
		name  string
		stats *DailyStats
		want  int
	}{
		{name: "no stats at all", stats: nil, want: 4},
		{name: "only stress", stats: &DailyStats{StressLevel: ip(40)}, want: 5},
		{name: "stress and steps", stats: &DailyStats{StressLevel: ip(40), Steps: ip(5000)}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors := ComputeFactors(hist, tt.stats, testNow)
			if len(factors) != tt.want {
				t.Fatalf("len(factors) = %d, want %d", len(factors), tt.want)
			}
			for _, f := range factors {
				if f.Name == FactorBodyBattery {
					t.Error("bodyBattery present despite missing reading")
				}
			}
		})
	}
}

// TestComputeFactorsDeterministic verifies that identical inputs
// produce identical factor sets.
func TestComputeFactorsDeterministic(t *testing.T) {
	hist := TrainingHistory{Sessions: []Session{
		session(1, 2, true), session(2, 1, true), session(5, 1.5, false),
	}}
	stats := &DailyStats{StressLevel: ip(60), BodyBattery: ip(40), Steps: ip(3000)}

	first := ComputeFactors(hist, stats, testNow)
	second := ComputeFactors(hist, stats, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ:\n%+v\n%+v", first, second)
	}
}

// TestWeeklyLoadBands verifies the weekly-load scoring bands over
// training hours.
func TestWeeklyLoadBands(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
	}{
		{hours: 0, want: 20},
		{hours: 4, want: 20},
		{hours: 6, want: 15},
		{hours: 9, want: 10},
		{hours: 12, want: 5},
		{hours: 15, want: 2},
	}

	for _, tt := range tests {
		hist := TrainingHistory{Sessions: []Session{session(2, tt.hours, false)}}
		f := computeWeeklyLoad(hist, testNow)
		if f.Score != tt.want {
			t.Errorf("weeklyLoad(%.0f h) = %d, want %d", tt.hours, f.Score, tt.want)
		}
	}
}

// TestWeeklyLoadIgnoresOldSessions verifies that sessions outside the
// 7-day window do not count toward the load.
func TestWeeklyLoadIgnoresOldSessions(t *testing.T) {
	hist := TrainingHistory{Sessions: []Session{session(10, 20, true)}}
	f := computeWeeklyLoad(hist, testNow)
	if f.Score != 20 {
		t.Errorf("score = %d, want 20 for an empty week", f.Score)
	}
}

// TestConsecutiveIntenseStreak verifies the streak counting and its
// scoring bands.
func TestConsecutiveIntenseStreak(t *testing.T) {
	tests := []struct {
		name     string
		sessions []Session
		want     int
	}{
		{name: "no intense days", sessions: []Session{session(0, 1, false)}, want: 15},
		{name: "one intense day", sessions: []Session{session(0, 1, true)}, want: 10},
		{name: "two in a row", sessions: []Session{session(0, 1, true), session(1, 1, true)}, want: 5},
		{
			name:     "three in a row",
			sessions: []Session{session(0, 1, true), session(1, 1, true), session(2, 1, true)},
			want:     0,
		},
		{
			name: "broken streak",
			// A gap yesterday resets the count even with older intense days.
			sessions: []Session{session(0, 1, true), session(2, 1, true), session(3, 1, true)},
			want:     10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := computeConsecutiveIntense(TrainingHistory{Sessions: tt.sessions}, testNow)
			if f.Score != tt.want {
				t.Errorf("score = %d, want %d", f.Score, tt.want)
			}
		})
	}
}

// TestWeeklyLoadWindowBoundary verifies that a session exactly seven
// days old still counts: the window is closed at the cutoff.
func TestWeeklyLoadWindowBoundary(t *testing.T) {
	hist := TrainingHistory{Sessions: []Session{session(7, 6, false)}}
	f := computeWeeklyLoad(hist, testNow)
	if f.Score != 15 {
		t.Errorf("score = %d, want 15 (6 h at the window edge must count)", f.Score)
	}
}

// TestConsecutiveIntenseIgnoresFutureSessions verifies that rows dated
// after now never feed the streak.
func TestConsecutiveIntenseIgnoresFutureSessions(t *testing.T) {
	future := []Session{
		{Date: testNow.Add(5 * time.Hour), DurationSec: 3600, Intense: true},
		{Date: testNow.AddDate(0, 0, 1), DurationSec: 3600, Intense: true},
	}
	f := computeConsecutiveIntense(TrainingHistory{Sessions: future}, testNow)
	if f.Score != 15 {
		t.Errorf("score = %d, want 15 (future sessions must not count)", f.Score)
	}
}

// TestRestDays verifies rest-day counting over the trailing week.
func TestRestDays(t *testing.T) {
	everyDay := make([]Session, 0, 7)
	for d := 0; d < 7; d++ {
		everyDay = append(everyDay, session(d, 1, false))
	}

	tests := []struct {
		name     string
		sessions []Session
		want     int
	}{
		{name: "empty week", sessions: nil, want: 15},
		{name: "five training days", sessions: everyDay[:5], want: 15},
		{name: "six training days", sessions: everyDay[:6], want: 8},
		{name: "no rest at all", sessions: everyDay, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := computeRestDays(TrainingHistory{Sessions: tt.sessions}, testNow)
			if f.Score != tt.want {
				t.Errorf("score = %d, want %d", f.Score, tt.want)
			}
		})
	}
}

// TestRecoveryHours verifies recovery scoring by hours since the last
// intense session.
func TestRecoveryHours(t *testing.T) {
	tests := []struct {
		name     string
		hoursAgo float64
		want     int
	}{
		{name: "two days", hoursAgo: 50, want: 20},
		{name: "a day and a half", hoursAgo: 38, want: 15},
		{name: "one day", hoursAgo: 26, want: 10},
		{name: "half a day", hoursAgo: 14, want: 5},
		{name: "this morning", hoursAgo: 3, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hist := TrainingHistory{Sessions: []Session{{
				Date:        testNow.Add(-time.Duration(tt.hoursAgo * float64(time.Hour))),
				DurationSec: 3600,
				Intense:     true,
			}}}
			f := computeRecovery(hist, testNow)
			if f.Score != tt.want {
				t.Errorf("score = %d, want %d", f.Score, tt.want)
			}
		})
	}
}

// TestRecoveryNoIntenseHistory verifies the full score when no intense
// session exists.
func TestRecoveryNoIntenseHistory(t *testing.T) {
	f := computeRecovery(TrainingHistory{Sessions: []Session{session(1, 1, false)}}, testNow)
	if f.Score != 20 {
		t.Errorf("score = %d, want 20", f.Score)
	}
}

// TestHealthFactorBands spot-checks the telemetry scoring bands.
func TestHealthFactorBands(t *testing.T) {
	if got := computeStress(20).Score; got != 10 {
		t.Errorf("stress(20) = %d, want 10", got)
	}
	if got := computeStress(90).Score; got != 1 {
		t.Errorf("stress(90) = %d, want 1", got)
	}
	if got := computeBodyBattery(80).Score; got != 10 {
		t.Errorf("bodyBattery(80) = %d, want 10", got)
	}
	if got := computeBodyBattery(10).Score; got != 1 {
		t.Errorf("bodyBattery(10) = %d, want 1", got)
	}
	if got := computeSteps(8000).Score; got != 10 {
		t.Errorf("steps(8000) = %d, want 10", got)
	}
	if got := computeSteps(20000).Score; got != 10 {
		t.Errorf("steps(20000) = %d, want 10 (capped)", got)
	}
	if got := computeSteps(4000).Score; got != 5 {
		t.Errorf("steps(4000) = %d, want 5", got)
	}
	if got := computeSteps(0).Score; got != 0 {
		t.Errorf("steps(0) = %d, want 0", got)
	}
}
