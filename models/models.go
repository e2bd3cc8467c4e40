package models

// GeoPoint is a WGS84 coordinate pair. Both members are serialized even when
// absent so clients always see {"lat": ..., "lng": ...}.
type GeoPoint struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Valid reports whether the point carries both coordinates.
func (p *GeoPoint) Valid() bool {
	return p != nil && p.Lat != nil && p.Lng != nil
}

func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Lat: &lat, Lng: &lng}
}

type Vehicle struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Route       *string  `json:"route"`
	Status      string   `json:"status"`
	Location    GeoPoint `json:"location"`
	LastUpdated string   `json:"last_updated"`
}

type Hazard struct {
	ID          int      `json:"id"`
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Location    GeoPoint `json:"location"`
	ReportedBy  string   `json:"reported_by"`
	Timestamp   string   `json:"timestamp"`
	Status      string   `json:"status"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

type SensorData struct {
	ID         int      `json:"id"`
	VehicleID  int      `json:"vehicle_id"`
	GyroscopeX float64  `json:"gyroscope_x"`
	GyroscopeY float64  `json:"gyroscope_y"`
	GyroscopeZ float64  `json:"gyroscope_z"`
	Location   GeoPoint `json:"location"`
	Timestamp  string   `json:"timestamp"`
	Processed  bool     `json:"processed"`
}

// Request payloads use pointer fields so the handlers can tell a missing key
// from a zero value when validating and when applying partial updates.

type CreateVehicleRequest struct {
	Name     *string   `json:"name"`
	Type     *string   `json:"type"`
	Route    *string   `json:"route"`
	Status   *string   `json:"status"`
	Location *GeoPoint `json:"location"`
}

type UpdateVehicleRequest struct {
	Name     *string   `json:"name"`
	Type     *string   `json:"type"`
	Route    *string   `json:"route"`
	Status   *string   `json:"status"`
	Location *GeoPoint `json:"location"`
}

type CreateHazardRequest struct {
	Type        *string   `json:"type"`
	Severity    *string   `json:"severity"`
	Location    *GeoPoint `json:"location"`
	ReportedBy  *string   `json:"reported_by"`
	Timestamp   *string   `json:"timestamp"`
	Status      *string   `json:"status"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
}

type UpdateHazardRequest struct {
	Type        *string   `json:"type"`
	Severity    *string   `json:"severity"`
	Status      *string   `json:"status"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	Location    *GeoPoint `json:"location"`
}

type GyroscopeReading struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

type SensorDataRequest struct {
	VehicleID *int              `json:"vehicle_id"`
	Gyroscope *GyroscopeReading `json:"gyroscope"`
	Location  *GeoPoint         `json:"location"`
	Timestamp *string           `json:"timestamp"`
}

type SensorIngestResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	SensorDataID int    `json:"sensor_data_id"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
