package domain

// WeatherSnapshot is the point-in-time weather input consumed by schedule
// generation. It is read once at plan create/update time and never
// re-evaluated afterwards.
type WeatherSnapshot struct {
	Temperature float64 `json:"temperature"` // Celsius
	IsRaining   bool    `json:"isRaining"`
}

// DefaultWeather is substituted whenever the weather collaborator is
// unreachable, so generation never fails on weather availability.
func DefaultWeather() WeatherSnapshot {
	return WeatherSnapshot{Temperature: 25, IsRaining: false}
}
