package geocoder

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/foodcartapp/foodcart-api/models"
)

// Cache resolves addresses through the coordinates table, calling the
// provider at most once per address. Failed lookups are cached too, as
// rows with AreDefined=false, so a flaky provider is never retried for
// the same address.
type Cache struct {
	DB     *gorm.DB
	Client *Client
}

func NewCache(db *gorm.DB, client *Client) *Cache {
	return &Cache{DB: db, Client: client}
}

// Resolve returns the cached coordinate row for the address, creating
// it via the provider on first sight. Provider failures are recorded,
// not returned; the only errors out of Resolve are storage errors.
func (c *Cache) Resolve(address string) (models.Coordinate, error) {
	var coord models.Coordinate
	err := c.DB.Where("address = ?", address).First(&coord).Error
	if err == nil {
		return coord, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return coord, err
	}
	return c.addCoordinates(address)
}

// EnsureAddress populates the cache for an address that has no row yet.
// Called from order intake after the order itself is committed.
func (c *Cache) EnsureAddress(address string) {
	var count int64
	if err := c.DB.Model(&models.Coordinate{}).Where("address = ?", address).Count(&count).Error; err != nil {
		logrus.Printf("failed to check coordinate cache for %q: %v", address, err)
		return
	}
	if count > 0 {
		return
	}
	if _, err := c.addCoordinates(address); err != nil {
		logrus.Printf("failed to store coordinates for %q: %v", address, err)
	}
}

func (c *Cache) addCoordinates(address string) (models.Coordinate, error) {
	coord := models.Coordinate{Address: address, RequestDate: time.Now()}

	lon, lat, raw, err := c.Client.FetchCoordinates(address)
	if err != nil {
		// The row is still written so later lookups short-circuit to a
		// known-failed state instead of hitting the provider again.
		logrus.Printf("geocoder lookup failed for %q: %v", address, err)
	} else {
		coord.Lon = &lon
		coord.Lat = &lat
		coord.AreDefined = true
		coord.ProviderPayload = datatypes.JSON(raw)
	}

	if err := c.DB.Create(&coord).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent writer beat us to this address. Same address,
			// same coordinates, so the winner's row is just as good.
			var winner models.Coordinate
			if err := c.DB.Where("address = ?", address).First(&winner).Error; err != nil {
				return coord, err
			}
			return winner, nil
		}
		return coord, err
	}
	return coord, nil
}
