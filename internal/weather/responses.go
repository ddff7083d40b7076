package weather

type Description struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type Clouds struct {
	All int `json:"all"`
}

type apiResponse struct {
	Cod                 int           `json:"cod"`
	Name                string        `json:"name"`
	Main                Main          `json:"main"`
	Wind                Wind          `json:"wind"`
	Clouds              Clouds        `json:"clouds"`
	WeatherDescriptions []Description `json:"weather"`
}
