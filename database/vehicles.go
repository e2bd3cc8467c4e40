package database

import (
	"context"
	"database/sql"

	"roadwatch-service/models"
)

const vehicleColumns = `id, name, type, route, status,
	ST_Latitude(location), ST_Longitude(location), last_updated`

// VehiclesService handles all vehicle-related database operations
type VehiclesService struct {
	db *sql.DB
}

func NewVehiclesService(db *sql.DB) *VehiclesService {
	return &VehiclesService{db: db}
}

func scanVehicle(rows *sql.Rows) (*models.Vehicle, error) {
	var (
		v        models.Vehicle
		route    sql.NullString
		lat, lng sql.NullFloat64
		updated  sql.NullString
	)
	if err := rows.Scan(&v.ID, &v.Name, &v.Type, &route, &v.Status, &lat, &lng, &updated); err != nil {
		return nil, err
	}
	if route.Valid {
		v.Route = &route.String
	}
	v.Location = pointFromCoords(lat, lng)
	v.LastUpdated = isoFromDB(updated)
	return &v, nil
}

func (s *VehiclesService) List(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (s *VehiclesService) Get(ctx context.Context, id int) (*models.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = ?`, id)
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
	return scanVehicle(rows)
}

func (s *VehiclesService) Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	status := "inactive"
	if req.Status != nil {
		status = *req.Status
	}
	now := nowDB()

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO vehicles (name, type, route, status, location, last_updated)
		 VALUES (?, ?, ?, ?, ST_GeomFromText(?, 4326), ?)`,
		*req.Name, *req.Type, req.Route, status, pointWKT(req.Location), now)
	logResult("insertVehicle", result, err, true)
	if err != nil {
		return nil, err
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	v := &models.Vehicle{
		ID:          int(newID),
		Name:        *req.Name,
		Type:        *req.Type,
		Route:       req.Route,
		Status:      status,
		LastUpdated: isoFromDB(sql.NullString{String: now, Valid: true}),
	}
	if req.Location.Valid() {
		v.Location = models.NewGeoPoint(*req.Location.Lat, *req.Location.Lng)
	}
	return v, nil
}

// Update overwrites only the fields present in the request; everything else
// keeps its stored value. The last_updated stamp is always refreshed.
func (s *VehiclesService) Update(ctx context.Context, id int, req *models.UpdateVehicleRequest) (*models.Vehicle, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Type != nil {
		v.Type = *req.Type
	}
	if req.Route != nil {
		v.Route = req.Route
	}
	if req.Status != nil {
		v.Status = *req.Status
	}
	if req.Location.Valid() {
		v.Location = models.NewGeoPoint(*req.Location.Lat, *req.Location.Lng)
	}
	now := nowDB()

	result, err := s.db.ExecContext(ctx,
		`UPDATE vehicles SET name = ?, type = ?, route = ?, status = ?,
		 location = ST_GeomFromText(?, 4326), last_updated = ? WHERE id = ?`,
		v.Name, v.Type, v.Route, v.Status, pointWKT(&v.Location), now, id)
	logResult("updateVehicle", result, err, true)
	if err != nil {
		return nil, err
	}

	v.LastUpdated = isoFromDB(sql.NullString{String: now, Valid: true})
	return v, nil
}

func (s *VehiclesService) Delete(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
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
