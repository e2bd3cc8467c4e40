package database

import (
	"context"
	"database/sql"
	"sort"

	"roadwatch-service/geo"
	"roadwatch-service/models"
)

const hazardColumns = `id, type, severity,
	ST_Latitude(location), ST_Longitude(location),
	reported_by, timestamp, status, description, image_url`

// HazardsService handles all hazard-related database operations
type HazardsService struct {
	db *sql.DB
}

func NewHazardsService(db *sql.DB) *HazardsService {
	return &HazardsService{db: db}
}

func scanHazard(rows *sql.Rows) (*models.Hazard, error) {
	var (
		h           models.Hazard
		lat, lng    sql.NullFloat64
		ts          sql.NullString
		description sql.NullString
		imageURL    sql.NullString
	)
	if err := rows.Scan(&h.ID, &h.Type, &h.Severity, &lat, &lng,
		&h.ReportedBy, &ts, &h.Status, &description, &imageURL); err != nil {
		return nil, err
	}
	h.Location = pointFromCoords(lat, lng)
	h.Timestamp = isoFromDB(ts)
	if description.Valid {
		h.Description = &description.String
	}
	if imageURL.Valid {
		h.ImageURL = &imageURL.String
	}
	return &h, nil
}

func (s *HazardsService) collect(rows *sql.Rows) ([]models.Hazard, error) {
	defer rows.Close()
	hazards := []models.Hazard{}
	for rows.Next() {
		h, err := scanHazard(rows)
		if err != nil {
			return nil, err
		}
		hazards = append(hazards, *h)
	}
	return hazards, rows.Err()
}

func (s *HazardsService) List(ctx context.Context) ([]models.Hazard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+hazardColumns+` FROM hazards ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return s.collect(rows)
}

func (s *HazardsService) Get(ctx context.Context, id int) (*models.Hazard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+hazardColumns+` FROM hazards WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanHazard(rows)
}

// Create stores a reported hazard. The handler has already validated the
// required fields; timestamp arrives in store layout, empty meaning "now".
func (s *HazardsService) Create(ctx context.Context, req *models.CreateHazardRequest, dbTime string) (*models.Hazard, error) {
	status := "reported"
	if req.Status != nil {
		status = *req.Status
	}
	if dbTime == "" {
		dbTime = nowDB()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO hazards (type, severity, location, reported_by, timestamp, status, description, image_url)
		 VALUES (?, ?, ST_GeomFromText(?, 4326), ?, ?, ?, ?, ?)`,
		*req.Type, *req.Severity, pointWKT(req.Location), *req.ReportedBy,
		dbTime, status, req.Description, req.ImageURL)
	logResult("insertHazard", result, err, true)
	if err != nil {
		return nil, err
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Hazard{
		ID:          int(newID),
		Type:        *req.Type,
		Severity:    *req.Severity,
		Location:    models.NewGeoPoint(*req.Location.Lat, *req.Location.Lng),
		ReportedBy:  *req.ReportedBy,
		Timestamp:   isoFromDB(sql.NullString{String: dbTime, Valid: true}),
		Status:      status,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}, nil
}

func (s *HazardsService) Update(ctx context.Context, id int, req *models.UpdateHazardRequest) (*models.Hazard, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		h.Type = *req.Type
	}
	if req.Severity != nil {
		h.Severity = *req.Severity
	}
	if req.Status != nil {
		h.Status = *req.Status
	}
	if req.Description != nil {
		h.Description = req.Description
	}
	if req.ImageURL != nil {
		h.ImageURL = req.ImageURL
	}
	if req.Location.Valid() {
		h.Location = models.NewGeoPoint(*req.Location.Lat, *req.Location.Lng)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE hazards SET type = ?, severity = ?, location = ST_GeomFromText(?, 4326),
		 status = ?, description = ?, image_url = ? WHERE id = ?`,
		h.Type, h.Severity, pointWKT(&h.Location), h.Status, h.Description, h.ImageURL, id)
	logResult("updateHazard", result, err, true)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *HazardsService) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM hazards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Nearby returns hazards within radiusKm of the query point, closest first.
// The kilometer radius is treated as an angular radius of radiusKm/111
// degrees, matching the documented flat-earth approximation; the spatial
// predicate compares the equivalent great-circle arc in meters.
func (s *HazardsService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]models.Hazard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+hazardColumns+` FROM hazards
		 WHERE ST_Distance_Sphere(location, ST_GeomFromText(?, 4326)) <= ?`,
		geo.PointWKT(lat, lng), geo.RadiusKmToMeters(radiusKm))
	if err != nil {
		return nil, err
	}
	hazards, err := s.collect(rows)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(hazards, func(i, j int) bool {
		return geo.DistanceKm(lat, lng, *hazards[i].Location.Lat, *hazards[i].Location.Lng) <
			geo.DistanceKm(lat, lng, *hazards[j].Location.Lat, *hazards[j].Location.Lng)
	})
	return hazards, nil
}
