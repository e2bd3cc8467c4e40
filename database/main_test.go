package database

import (
	"database/sql"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"
)

var (
	db   *sql.DB
	mock sqlmock.Sqlmock
)

func setUp() {
	db, mock, _ = sqlmock.New()
}

func tearDown() {
	db.Close()
}

var it = beforeeach.Create(setUp, tearDown)

func vehicleRowColumns() []string {
	return []string{"id", "name", "type", "route", "status", "lat", "lng", "last_updated"}
}

func hazardRowColumns() []string {
	return []string{"id", "type", "severity", "lat", "lng", "reported_by", "timestamp", "status", "description", "image_url"}
}
