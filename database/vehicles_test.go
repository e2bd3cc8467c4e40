package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"roadwatch-service/models"
)

const selectVehicleByID = `SELECT id, name, type, route, status,
	ST_Latitude(location), ST_Longitude(location), last_updated FROM vehicles WHERE id = ?`

func strPtr(s string) *string { return &s }

func TestGetVehicle(t *testing.T) {
	it(func() {
		s := NewVehiclesService(db)

		mock.ExpectQuery(regexp.QuoteMeta(selectVehicleByID)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(vehicleRowColumns()).
				AddRow(1, "Bus 101", "bus", "Downtown Express", "active", 40.7128, -74.006, "2023-09-18 10:30:00"))

		v, err := s.Get(context.Background(), 1)
		if err != nil {
			t.Fatalf("Get: unexpected error: %v", err)
		}
		if v.ID != 1 || v.Name != "Bus 101" || v.Type != "bus" || v.Status != "active" {
			t.Errorf("Get: unexpected vehicle %+v", v)
		}
		if v.Route == nil || *v.Route != "Downtown Express" {
			t.Errorf("Get: unexpected route %v", v.Route)
		}
		if !v.Location.Valid() || *v.Location.Lat != 40.7128 || *v.Location.Lng != -74.006 {
			t.Errorf("Get: unexpected location %+v", v.Location)
		}
		if v.LastUpdated != "2023-09-18T10:30:00Z" {
			t.Errorf("Get: unexpected last_updated %q", v.LastUpdated)
		}
	})
}

func TestGetVehicleNotFound(t *testing.T) {
	it(func() {
		s := NewVehiclesService(db)

		mock.ExpectQuery(regexp.QuoteMeta(selectVehicleByID)).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows(vehicleRowColumns()))

		if _, err := s.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get: expected ErrNotFound, got %v", err)
		}
	})
}

func TestGetVehicleNullFields(t *testing.T) {
	it(func() {
		s := NewVehiclesService(db)

		mock.ExpectQuery(regexp.QuoteMeta(selectVehicleByID)).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows(vehicleRowColumns()).
				AddRow(2, "Bus 202", "bus", nil, "inactive", nil, nil, "2023-09-18 10:30:00"))

		v, err := s.Get(context.Background(), 2)
		if err != nil {
			t.Fatalf("Get: unexpected error: %v", err)
		}
		if v.Route != nil {
			t.Errorf("Get: expected nil route, got %v", *v.Route)
		}
		if v.Location.Lat != nil || v.Location.Lng != nil {
			t.Errorf("Get: expected null location, got %+v", v.Location)
		}
	})
}

func TestCreateVehicle(t *testing.T) {
	it(func() {
		s := NewVehiclesService(db)

		mock.ExpectExec(regexp.QuoteMeta(
			`INSERT INTO vehicles (name, type, route, status, location, last_updated)
			 VALUES (?, ?, ?, ?, ST_GeomFromText(?, 4326), ?)`)).
			WithArgs("Bus 101", "bus", nil, "inactive", nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(7, 1))

		v, err := s.Create(context.Background(), &models.CreateVehicleRequest{
			Name: strPtr("Bus 101"),
			Type: strPtr("bus"),
		})
		if err != nil {
			t.Fatalf("Create: unexpected error: %v", err)
		}
		if v.ID != 7 {
			t.Errorf("Create: expected store-assigned id 7, got %d", v.ID)
		}
		if v.Status != "inactive" {
			t.Errorf("Create: expected default status inactive, got %q", v.Status)
		}
		if v.Location.Valid() {
			t.Errorf("Create: expected null location, got %+v", v.Location)
		}
		if v.LastUpdated == "" {
			t.Error("Create: last_updated not set")
		}
	})
}

func TestCreateVehicleWithLocation(t *testing.T) {
	it(func() {
		s := NewVehiclesService(db)

		mock.ExpectExec(regexp.QuoteMeta(
			`INSERT INTO vehicles (name, type, route, status, location, last_updated)
			 VALUES (?, ?, ?, ?, ST_GeomFromText(?, 4326), ?)`)).
			WithArgs("Bus 202", "bus", "Uptown Local", "active", "POINT(40.7138 -74.005)", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(8, 1))

		loc := models.NewGeoPoint(40.7138, -74.005)
		v, err := s.Create(context.Background(), &models.CreateVehicleRequest{
			Name:     strPtr("Bus 202"),
			Type:     strPtr("bus"),
			Route:    strPtr("Uptown Local"),
			Status:   strPtr("active"),
			Location: &loc,
		})
		if err != nil {
			t.Fatalf("Create: unexpected error: %v", err)
		}
		if !v.Location.Valid() || *v.Location.Lat != 40.7138 {
			t.Errorf("Create: unexpected location %+v", v.Location)
		}
	})
}

func TestUpdateVehiclePartial(t *testing.T) {
	it(func() {
		s := NewVehiclesService(db)

		mock.ExpectQuery(regexp.QuoteMeta(selectVehicleByID)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(vehicleRowColumns()).
				AddRow(1, "Bus 101", "bus", "Downtown Express", "inactive", 40.7128, -74.006, "2023-09-18 10:30:00"))
		mock.ExpectExec(regexp.QuoteMeta(
			`UPDATE vehicles SET name = ?, type = ?, route = ?, status = ?,
			 location = ST_GeomFromText(?, 4326), last_updated = ? WHERE id = ?`)).
			WithArgs("Bus 101", "bus", "Downtown Express", "active", "POINT(40.7128 -74.006)", sqlmock.AnyArg(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		v, err := s.Update(context.Background(), 1, &models.UpdateVehicleRequest{
			Status: strPtr("active"),
		})
		if err != nil {
			t.Fatalf("Update: unexpected error: %v", err)
		}
		if v.Status != "active" {
			t.Errorf("Update: status not applied, got %q", v.Status)
		}
		if v.Name != "Bus 101" || v.Route == nil || *v.Route != "Downtown Express" {
			t.Errorf("Update: unnamed fields changed: %+v", v)
		}
	})
}

func TestUpdateVehicleNotFound(t *testing.T) {
	it(func() {
		s := NewVehiclesService(db)

		mock.ExpectQuery(regexp.QuoteMeta(selectVehicleByID)).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows(vehicleRowColumns()))

		if _, err := s.Update(context.Background(), 42, &models.UpdateVehicleRequest{}); !errors.Is(err, ErrNotFound) {
			t.Errorf("Update: expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteVehicle(t *testing.T) {
	it(func() {
		s := NewVehiclesService(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM vehicles WHERE id = ?`)).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := s.Delete(context.Background(), 1); err != nil {
			t.Errorf("Delete: unexpected error: %v", err)
		}

		// Second delete hits nothing.
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM vehicles WHERE id = ?`)).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := s.Delete(context.Background(), 1); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete: expected ErrNotFound on second delete, got %v", err)
		}
	})
}
