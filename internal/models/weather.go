package models

// Weather holds current conditions at a park's coordinates as returned
// by the external weather provider.
// swagger:model Weather
type Weather struct {
	Temperature float64 `json:"temperature"` // Temperature in degrees Celsius
	Description string  `json:"description"` // Short textual description
	Humidity    int     `json:"humidity"`    // Relative humidity in percent
	WindSpeed   float64 `json:"wind_speed"`  // Wind speed in m/s
}
