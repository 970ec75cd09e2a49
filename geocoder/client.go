package geocoder

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://geocode-maps.yandex.ru/1.x"

// Client queries the geocoding provider for a single address and
// extracts the most relevant candidate's coordinates.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

func NewClient() *Client {
	baseURL := os.Getenv("GEOCODER_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return NewClientWith(baseURL, os.Getenv("GEOCODER_API_KEY"))
}

func NewClientWith(baseURL, apiKey string) *Client {
	return &Client{
		http:    resty.New().SetTimeout(10 * time.Second),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type geocoderResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// FetchCoordinates returns the (lon, lat) of the first, most relevant
// place the provider found for the address, along with the raw response
// body. Network errors, non-200 statuses, empty result sets and
// malformed position strings all come back as errors.
func (c *Client) FetchCoordinates(address string) (lon, lat float64, raw []byte, err error) {
	var parsed geocoderResponse
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"geocode": address,
			"apikey":  c.apiKey,
			"format":  "json",
		}).
		SetResult(&parsed).
		Get(c.baseURL)
	if err != nil {
		return 0, 0, nil, err
	}
	if resp.StatusCode() != 200 {
		return 0, 0, nil, fmt.Errorf("geocoder request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	places := parsed.Response.GeoObjectCollection.FeatureMember
	if len(places) == 0 {
		return 0, 0, nil, fmt.Errorf("geocoder found no places for %q", address)
	}

	// The provider encodes the point as a space-separated "lon lat" pair.
	parts := strings.Fields(places[0].GeoObject.Point.Pos)
	if len(parts) != 2 {
		return 0, 0, nil, fmt.Errorf("unexpected point format %q", places[0].GeoObject.Point.Pos)
	}
	lon, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, nil, err
	}
	lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, nil, err
	}
	return lon, lat, resp.Body(), nil
}
