package geo

import (
	"math"
	"time"

	"github.com/ahmetyavas01/SahaBul/internal/domain/entity"
)

type Mode string

const (
	ModeAll    Mode = "all"
	ModeToday  Mode = "today"
	ModeWeek   Mode = "week"
	ModeNearby Mode = "nearby"
)

const (
	earthRadiusKm  = 6371.0
	NearbyRadiusKm = 10.0
)

type Point struct {
	Lat float64
	Lng float64
}

// DistanceKm is the great-circle distance between two points by the
// haversine formula.
func DistanceKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Filter reduces matches by the given discovery mode. It is a pure function
// of its inputs: no store or network access, deterministic for a fixed now.
//
//	today:  match date on the same calendar day as now, in now's location
//	week:   match date within [now, now+7d)
//	nearby: both coordinates set and within NearbyRadiusKm of ref, inclusive
//	all:    identity
func Filter(matches []*entity.Match, mode Mode, ref Point, now time.Time) []*entity.Match {
	if mode == ModeAll || mode == "" {
		return matches
	}

	filtered := make([]*entity.Match, 0, len(matches))
	for _, m := range matches {
		if matchesMode(m, mode, ref, now) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func matchesMode(m *entity.Match, mode Mode, ref Point, now time.Time) bool {
	switch mode {
	case ModeToday:
		return sameDay(m.Date.In(now.Location()), now)
	case ModeWeek:
		return !m.Date.Before(now) && m.Date.Before(now.Add(7*24*time.Hour))
	case ModeNearby:
		if !m.HasCoordinates() {
			return false
		}
		return DistanceKm(Point{Lat: *m.Latitude, Lng: *m.Longitude}, ref) <= NearbyRadiusKm
	default:
		return false
	}
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
