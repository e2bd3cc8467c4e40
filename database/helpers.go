package database

import (
	"database/sql"
	"fmt"
	"time"

	"roadwatch-service/geo"
	"roadwatch-service/models"

	"github.com/apex/log"
)

// The store keeps DATETIME values in UTC using MySQL's own layout; the API
// speaks RFC3339. These helpers convert at the boundary.

func nowDB() string {
	return time.Now().UTC().Format(time.DateTime)
}

// ParseTimestamp converts a client-supplied ISO-8601 timestamp to the store
// layout. Used by handlers to validate optional timestamp fields up front.
func ParseTimestamp(iso string) (string, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.UTC().Format(time.DateTime), nil
		}
	}
	return "", fmt.Errorf("invalid timestamp %q", iso)
}

func isoFromDB(ts sql.NullString) string {
	if !ts.Valid {
		return ""
	}
	t, err := time.Parse(time.DateTime, ts.String)
	if err != nil {
		// Pass the raw value through rather than dropping it.
		return ts.String
	}
	return t.UTC().Format(time.RFC3339)
}

// pointFromCoords decodes the ST_Latitude/ST_Longitude pair of a nullable
// POINT column. Both coordinates are NULL together or present together.
func pointFromCoords(lat, lng sql.NullFloat64) models.GeoPoint {
	if !lat.Valid || !lng.Valid {
		return models.GeoPoint{}
	}
	return models.NewGeoPoint(lat.Float64, lng.Float64)
}

// pointWKT encodes an optional location for an ST_GeomFromText(?, 4326)
// placeholder. A nil result makes the expression evaluate to NULL.
func pointWKT(p *models.GeoPoint) *string {
	if !p.Valid() {
		return nil
	}
	wkt := geo.PointWKT(*p.Lat, *p.Lng)
	return &wkt
}

// vehicleReporter labels auto-detected hazards with their source vehicle.
func vehicleReporter(id int) string {
	return fmt.Sprintf("vehicle_%d", id)
}

func logResult(msgPrefix string, r sql.Result, e error, expectOne bool) {
	if e != nil {
		log.Errorf("Query failed: %v", e)
		return
	}
	rows, err := r.RowsAffected()
	if err != nil {
		log.Errorf("Failed to get status of db op: %v", err)
		return
	}
	if expectOne && rows != 1 {
		log.Warnf("%s: Expected to affect 1 row, affected %d", msgPrefix, rows)
	}
}
