package sky

import (
	"math"
	"testing"
	"time"

	"github.com/echoflaresat/pathcam/vectors"
)

func TestColorEndpoints(t *testing.T) {
	s := Default()
	if got := s.Color(vectors.New(0, 5, 0)); got != s.Zenith {
		t.Errorf("straight up = %v, want zenith %v", got, s.Zenith)
	}
	if got := s.Color(vectors.New(0, -2, 0)); got != s.Horizon {
		t.Errorf("straight down = %v, want horizon %v", got, s.Horizon)
	}
}

func TestColorGradient(t *testing.T) {
	s := Default()
	dir := vectors.New(1, 0, -1)
	// horizontal ray: halfway between the stops
	want := vectors.New(0.75, 0.85, 1.0)
	got := s.Color(dir)
	if vectors.Distance(got, want) > 1e-12 {
		t.Errorf("Color(%v) = %v, want %v", dir, got, want)
	}
}

func TestColorZeroDirection(t *testing.T) {
	if got := Default().Color(vectors.Zero()); !got.IsFinite() {
		t.Errorf("Color(0) = %v, want finite", got)
	}
}

func TestForElevation(t *testing.T) {
	if got := ForElevation(45); got != Default() {
		t.Errorf("high sun = %v, want default sky", got)
	}
	if got := ForElevation(-30); got != night {
		t.Errorf("deep night = %v, want night sky", got)
	}
	if got := ForElevation(0); got != dusk {
		t.Errorf("sunset = %v, want dusk sky", got)
	}
}

func TestSunElevation(t *testing.T) {
	// March equinox: the Sun is close to the zenith over (0°, 0°) at noon UTC
	noon := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	if e := SunElevation(noon, 0, 0); e < 75 {
		t.Errorf("noon elevation = %.1f°, want > 75°", e)
	}
	midnight := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	if e := SunElevation(midnight, 0, 0); e > -75 {
		t.Errorf("midnight elevation = %.1f°, want < -75°", e)
	}
}

func TestSunDirectionIsUnit(t *testing.T) {
	d := SunDirectionECEF(time.Date(2025, 8, 2, 15, 4, 5, 0, time.UTC))
	if math.Abs(d.Length()-1) > 1e-9 {
		t.Errorf("|sun| = %v, want 1", d.Length())
	}
}

func TestDaylight(t *testing.T) {
	noon := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	if got := Daylight(noon, 0, 0); got != Default() {
		t.Errorf("Daylight(noon) = %v, want default sky", got)
	}
	midnight := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	if got := Daylight(midnight, 0, 0); got != night {
		t.Errorf("Daylight(midnight) = %v, want night sky", got)
	}
}
