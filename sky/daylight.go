package sky

import (
	"math"
	"time"

	"github.com/echoflaresat/pathcam/vectors"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

var (
	dusk = Sky{
		Horizon: vectors.New(1.00, 0.60, 0.35),
		Zenith:  vectors.New(0.35, 0.40, 0.65),
	}
	night = Sky{
		Horizon: vectors.New(0.05, 0.06, 0.12),
		Zenith:  vectors.New(0.01, 0.01, 0.04),
	}
)

// SunDirectionECEF returns the unit vector from the Earth's centre towards
// the Sun in Earth-centred, Earth-fixed coordinates at time t.
func SunDirectionECEF(t time.Time) vectors.Vec3 {
	t = t.UTC()
	jd := julian.TimeToJD(t)

	// Apparent RA/Dec of the Sun
	ra, dec := solar.ApparentEquatorial(jd)
	raRad, decRad := ra.Rad(), dec.Rad()

	// Unit vector in ECI (Earth-centred inertial)
	x := math.Cos(decRad) * math.Cos(raRad)
	y := math.Cos(decRad) * math.Sin(raRad)
	z := math.Sin(decRad)

	// Rotate ECI → ECEF using Greenwich apparent sidereal time
	gst := sidereal.Apparent(jd).Angle().Rad()
	cosGST, sinGST := math.Cos(gst), math.Sin(gst)

	return vectors.Vec3{
		X: x*cosGST + y*sinGST,
		Y: -x*sinGST + y*cosGST,
		Z: z,
	}
}

// SunElevation returns the Sun's altitude above the horizon in degrees for
// an observer at geodetic latitude/longitude (degrees, spherical Earth).
func SunElevation(t time.Time, latDeg, lonDeg float64) float64 {
	lat := latDeg * math.Pi / 180.0
	lon := lonDeg * math.Pi / 180.0
	up := vectors.Vec3{
		X: math.Cos(lat) * math.Cos(lon),
		Y: math.Cos(lat) * math.Sin(lon),
		Z: math.Sin(lat),
	}
	s := clip(up.Dot(SunDirectionECEF(t)), -1, 1)
	return math.Asin(s) * 180.0 / math.Pi
}

// Daylight picks the sky gradient for the Sun's position at time t seen from
// latDeg/lonDeg: the default blue sky by day, a warm dusk band around
// sunrise and sunset, and a dark sky at night. The Sun itself is not a light
// source; only the gradient colors change.
func Daylight(t time.Time, latDeg, lonDeg float64) Sky {
	return ForElevation(SunElevation(t, latDeg, lonDeg))
}

// ForElevation maps a solar elevation in degrees to a sky gradient.
func ForElevation(elevationDeg float64) Sky {
	switch {
	case elevationDeg >= 15:
		return Default()
	case elevationDeg >= 0:
		return dusk.Mix(Default(), smoothstep(0, 15, elevationDeg))
	default:
		return night.Mix(dusk, smoothstep(-12, 0, elevationDeg))
	}
}

// smoothstep performs a Hermite interpolation between 0 and 1 across [edge0, edge1].
func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0.0
		}
		return 1.0
	}
	t := clip((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3.0 - 2.0*t)
}

func clip(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
