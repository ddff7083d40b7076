package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fitlife/fitness-backend/internal/domain"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

// example API call
// http://api.openweathermap.org/data/2.5/weather?q=Berlin,de&units=metric&APPID=TODO

const (
	oneHour            = 60 * 60
	weatherCacheExpire = oneHour * 1 // default expire in hours
)

// Client fetches current conditions from the OpenWeatherMap API, with a
// per-city in-memory cache in front of it. Schedule generation only needs a
// coarse snapshot, so hour-old data is fine.
type Client struct {
	cache             *freecache.Cache
	openWeatherApiUrl string // http://api.openweathermap.org/data/2.5
	openWeatherApiKey string
	httpClient        *http.Client
}

func NewClient(openWeatherApiUrl, openWeatherApiKey string, httpClient *http.Client) *Client {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		openWeatherApiUrl: openWeatherApiUrl,
		openWeatherApiKey: openWeatherApiKey,
		cache:             freecache.NewCache(cacheSize),
		httpClient:        httpClient,
	}
}

// CurrentWeather returns the current snapshot for a city, serving from cache
// when a fresh entry exists.
func (c *Client) CurrentWeather(ctx context.Context, city string) (domain.WeatherSnapshot, error) {
	resp, err := c.getCurrent(ctx, city)
	if err != nil {
		return domain.WeatherSnapshot{}, err
	}

	return domain.WeatherSnapshot{
		Temperature: resp.Main.Temp,
		IsRaining:   isRaining(resp.WeatherDescriptions),
	}, nil
}

func (c *Client) getCurrent(ctx context.Context, city string) (*apiResponse, error) {
	// must initialize it, otherwise json.Unmarshal(...) below fails
	weatherApiResponse := &apiResponse{}

	cacheKey := fmt.Sprintf("current::%s", strings.ToLower(city))
	if currentCityWeatherBytes, err := c.cache.Get([]byte(cacheKey)); err == nil {
		log.Tracef("found current weather info for %s in cache", city)
		if err = json.Unmarshal(currentCityWeatherBytes, weatherApiResponse); err == nil {
			return weatherApiResponse, nil
		} else {
			log.Errorf("failed to unmarshal current weather from cache for city %s: %s", city, err)
		}
	} else {
		log.Debugf("get current weather for city %s from cache: %s; will get the data from open weather api", city, err)
	}

	weatherApiUrl := fmt.Sprintf("%s/weather?q=%s&units=metric&appid=%s", c.openWeatherApiUrl, city, c.openWeatherApiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", weatherApiUrl, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather api returned status %d for city %s", resp.StatusCode, city)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather api response bytes: %w", err)
	}

	if err := json.Unmarshal(respBytes, weatherApiResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weather api response bytes: %w", err)
	}

	// set cache
	if err = c.cache.Set([]byte(cacheKey), respBytes, weatherCacheExpire); err != nil {
		log.Errorf("failed to write current weather cache for %s: %s", city, err)
	} else {
		log.Debugf("current weather cache set for city: %s", city)
	}

	return weatherApiResponse, nil
}

// isRaining checks the condition descriptions for any form of rain. The API
// reports drizzle as a separate condition group, so both are checked.
func isRaining(descriptions []Description) bool {
	for _, d := range descriptions {
		main := strings.ToLower(d.Main)
		desc := strings.ToLower(d.Description)
		if strings.Contains(main, "rain") || strings.Contains(main, "drizzle") {
			return true
		}
		if strings.Contains(desc, "rain") || strings.Contains(desc, "drizzle") {
			return true
		}
	}
	return false
}
