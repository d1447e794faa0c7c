// Package geo serves the nearby-stations query from an in-memory R-tree.
// The index is rebuilt whenever the station set is replaced and returns
// results nearest-first, which is the ordering the API contract promises.
package geo

import (
	"math"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"

	"voltmap/internal/models"
)

const (
	dimensions   = 2
	minChildren  = 25
	maxChildren  = 50
	pointSpread  = 0.0001 // degrees; rtreego rects need a positive extent
	earthRadiusM = 6371000.0
)

type stationItem struct {
	station *models.Station
	rect    *rtreego.Rect
}

func (it *stationItem) Bounds() *rtreego.Rect {
	return it.rect
}

// Result pairs a station with its distance from the query point in meters.
type Result struct {
	Station  *models.Station
	Distance float64
}

// Index is a thread-safe R-tree over stations that carry coordinates.
// Stations without a coordinate pair are never indexed.
type Index struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
	size int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
}

// Rebuild replaces the whole index with the given stations.
func (idx *Index) Rebuild(stations []models.Station) {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	size := 0
	for i := range stations {
		s := stations[i]
		if s.Coordonnees == nil {
			continue
		}
		p := rtreego.Point{s.Coordonnees.Latitude, s.Coordonnees.Longitude}
		tree.Insert(&stationItem{station: &s, rect: p.ToRect(pointSpread)})
		size++
	}

	idx.mu.Lock()
	idx.tree = tree
	idx.size = size
	idx.mu.Unlock()
}

// Len returns the number of indexed stations.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// Nearby returns every indexed station within maxDistanceMeters of the
// point, ordered by ascending distance. A zero radius degenerates to
// stations exactly at the query point.
func (idx *Index) Nearby(longitude, latitude, maxDistanceMeters float64) []Result {
	if maxDistanceMeters < 0 {
		maxDistanceMeters = 0
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	// Candidate bounding box in degrees, verified with haversine below.
	deg := (maxDistanceMeters / earthRadiusM) * (180 / math.Pi)
	half := deg + pointSpread
	bounds, err := rtreego.NewRect(
		rtreego.Point{latitude - half, longitude - half},
		[]float64{2 * half, 2 * half},
	)
	if err != nil {
		return nil
	}

	candidates := idx.tree.SearchIntersect(bounds)
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		item, ok := c.(*stationItem)
		if !ok {
			continue
		}
		coords := item.station.Coordonnees
		dist := haversineMeters(latitude, longitude, coords.Latitude, coords.Longitude)
		if dist <= maxDistanceMeters {
			results = append(results, Result{Station: item.station, Distance: dist})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Station.ID < results[j].Station.ID
	})
	return results
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const toRad = math.Pi / 180.0
	dLat := (lat2 - lat1) * toRad
	dLon := (lon2 - lon1) * toRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*toRad)*math.Cos(lat2*toRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}
