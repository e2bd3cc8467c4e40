package database

import (
	"context"
	"database/sql"

	"roadwatch-service/geo"
	"roadwatch-service/models"

	"github.com/apex/log"
)

// sensorHistoryLimit caps how many readings a vehicle history query returns.
const sensorHistoryLimit = 100

const sensorColumns = `id, vehicle_id, gyroscope_x, gyroscope_y, gyroscope_z,
	ST_Latitude(location), ST_Longitude(location), timestamp, processed`

// SensorService handles telemetry persistence and the derived writes that go
// with it (vehicle position refresh, auto-detected hazards).
type SensorService struct {
	db *sql.DB
}

func NewSensorService(db *sql.DB) *SensorService {
	return &SensorService{db: db}
}

// IngestArgs is one validated telemetry submission. Timestamp is in store
// layout, empty meaning "now". HazardDetected is the heuristic's verdict for
// this sample.
type IngestArgs struct {
	VehicleID      int
	GyroX          float64
	GyroY          float64
	GyroZ          float64
	Lat            float64
	Lng            float64
	Timestamp      string
	HazardDetected bool
}

// Ingest stores a sensor reading, refreshes the vehicle's location and
// last_updated stamp, and files a "detected" hazard when the heuristic fired.
// All writes happen in one transaction; a missing vehicle aborts with
// ErrNotFound before anything is written.
func (s *SensorService) Ingest(ctx context.Context, args *IngestArgs) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Errorf("Error creating transaction: %v", err)
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM vehicles WHERE id = ?`, args.VehicleID)
	if err != nil {
		return 0, err
	}
	vehicleExists := rows.Next()
	rows.Close()
	if !vehicleExists {
		return 0, ErrNotFound
	}

	wkt := geo.PointWKT(args.Lat, args.Lng)
	now := nowDB()
	ts := args.Timestamp
	if ts == "" {
		ts = now
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO sensor_data (vehicle_id, gyroscope_x, gyroscope_y, gyroscope_z, location, timestamp, processed)
		 VALUES (?, ?, ?, ?, ST_GeomFromText(?, 4326), ?, false)`,
		args.VehicleID, args.GyroX, args.GyroY, args.GyroZ, wkt, ts)
	logResult("insertSensorData", result, err, true)
	if err != nil {
		return 0, err
	}
	sensorID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	result, err = tx.ExecContext(ctx,
		`UPDATE vehicles SET location = ST_GeomFromText(?, 4326), last_updated = ? WHERE id = ?`,
		wkt, now, args.VehicleID)
	logResult("updateVehicleLocation", result, err, true)
	if err != nil {
		return 0, err
	}

	if args.HazardDetected {
		result, err = tx.ExecContext(ctx,
			`INSERT INTO hazards (type, severity, location, reported_by, timestamp, status, description, image_url)
			 VALUES (?, ?, ST_GeomFromText(?, 4326), ?, ?, ?, ?, ?)`,
			"pothole", "medium", wkt, vehicleReporter(args.VehicleID), now, "detected",
			"Automatically detected by vehicle sensors", nil)
		logResult("insertDetectedHazard", result, err, true)
		if err != nil {
			return 0, err
		}
		log.Infof("Pothole detected from vehicle %d sensor data", args.VehicleID)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(sensorID), nil
}

// ListForVehicle returns up to the 100 most recent readings for a vehicle,
// newest first. The vehicle must exist.
func (s *SensorService) ListForVehicle(ctx context.Context, vehicleID int) ([]models.SensorData, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM vehicles WHERE id = ?`, vehicleID)
	if err != nil {
		return nil, err
	}
	vehicleExists := rows.Next()
	rows.Close()
	if !vehicleExists {
		return nil, ErrNotFound
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT `+sensorColumns+` FROM sensor_data
		 WHERE vehicle_id = ? ORDER BY timestamp DESC LIMIT ?`,
		vehicleID, sensorHistoryLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	readings := []models.SensorData{}
	for rows.Next() {
		var (
			d        models.SensorData
			lat, lng sql.NullFloat64
			ts       sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.VehicleID, &d.GyroscopeX, &d.GyroscopeY, &d.GyroscopeZ,
			&lat, &lng, &ts, &d.Processed); err != nil {
			return nil, err
		}
		d.Location = pointFromCoords(lat, lng)
		d.Timestamp = isoFromDB(ts)
		readings = append(readings, d)
	}
	return readings, rows.Err()
}
