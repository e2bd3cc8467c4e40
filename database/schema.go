package database

import (
	"database/sql"
	"fmt"

	"github.com/apex/log"
)

// InitSchema creates the necessary database tables if they don't exist
func InitSchema(db *sql.DB) error {
	log.Info("Initializing roadwatch database schema...")

	vehiclesTableSQL := `
	CREATE TABLE IF NOT EXISTS vehicles(
		id INT NOT NULL AUTO_INCREMENT,
		name VARCHAR(100) NOT NULL,
		type VARCHAR(50) NOT NULL,
		route VARCHAR(100),
		status VARCHAR(20) NOT NULL DEFAULT 'inactive',
		location POINT SRID 4326,
		last_updated DATETIME,
		PRIMARY KEY (id)
	)`

	if _, err := db.Exec(vehiclesTableSQL); err != nil {
		return fmt.Errorf("failed to create vehicles table: %w", err)
	}
	log.Info("Vehicles table created/verified")

	hazardsTableSQL := `
	CREATE TABLE IF NOT EXISTS hazards(
		id INT NOT NULL AUTO_INCREMENT,
		type VARCHAR(50) NOT NULL,
		severity VARCHAR(20) NOT NULL,
		location POINT NOT NULL SRID 4326,
		reported_by VARCHAR(50) NOT NULL,
		timestamp DATETIME,
		status VARCHAR(20) NOT NULL DEFAULT 'reported',
		description TEXT,
		image_url VARCHAR(255),
		PRIMARY KEY (id),
		SPATIAL INDEX(location)
	)`

	if _, err := db.Exec(hazardsTableSQL); err != nil {
		return fmt.Errorf("failed to create hazards table: %w", err)
	}
	log.Info("Hazards table created/verified")

	sensorDataTableSQL := `
	CREATE TABLE IF NOT EXISTS sensor_data(
		id INT NOT NULL AUTO_INCREMENT,
		vehicle_id INT NOT NULL,
		gyroscope_x DOUBLE NOT NULL DEFAULT 0,
		gyroscope_y DOUBLE NOT NULL DEFAULT 0,
		gyroscope_z DOUBLE NOT NULL DEFAULT 0,
		location POINT SRID 4326,
		timestamp DATETIME,
		processed BOOL NOT NULL DEFAULT false,
		PRIMARY KEY (id),
		INDEX vehicle_timestamp_index (vehicle_id, timestamp)
	)`

	if _, err := db.Exec(sensorDataTableSQL); err != nil {
		return fmt.Errorf("failed to create sensor_data table: %w", err)
	}
	log.Info("Sensor_data table created/verified")

	addFKConstraints(db)

	log.Info("Roadwatch database schema initialization completed")
	return nil
}

// addFKConstraints adds foreign key constraints for referential integrity
func addFKConstraints(db *sql.DB) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM information_schema.TABLE_CONSTRAINTS
		WHERE CONSTRAINT_SCHEMA = DATABASE()
		AND CONSTRAINT_NAME = 'fk_sensor_data_vehicle_id'
	`).Scan(&count)

	if err != nil {
		log.Warnf("Could not check for existing foreign key constraints: %v", err)
		return
	}

	if count == 0 {
		_, err := db.Exec(`
			ALTER TABLE sensor_data
			ADD CONSTRAINT fk_sensor_data_vehicle_id
			FOREIGN KEY (vehicle_id) REFERENCES vehicles(id) ON DELETE CASCADE
		`)
		if err != nil {
			log.Warnf("Could not add foreign key constraint for sensor_data: %v", err)
		} else {
			log.Info("Added foreign key constraint for sensor_data")
		}
	}
}
