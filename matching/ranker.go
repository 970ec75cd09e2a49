package matching

import (
	"fmt"

	"github.com/umahmood/haversine"

	"github.com/foodcartapp/foodcart-api/models"
)

// UnknownDistance is shown when either endpoint of a pairing never
// geocoded successfully. Such restaurants stay in the list, unranked.
const UnknownDistance = "неизвестно"

type RankedRestaurant struct {
	Name     string `json:"name"`
	Distance string `json:"distance"`
}

// AddressResolver is satisfied by geocoder.Cache.
type AddressResolver interface {
	Resolve(address string) (models.Coordinate, error)
}

// RankByDistance labels each candidate restaurant with its great-circle
// distance from the order's delivery address. Output keeps the
// insertion order of the candidates; operators are used to seeing
// restaurants in registration order.
func RankByDistance(orderAddress string, restaurants []models.Restaurant, resolver AddressResolver) []RankedRestaurant {
	ranked := make([]RankedRestaurant, 0, len(restaurants))

	orderCoord, err := resolver.Resolve(orderAddress)
	orderDefined := err == nil && orderCoord.AreDefined

	for _, restaurant := range restaurants {
		label := UnknownDistance
		if orderDefined {
			restCoord, err := resolver.Resolve(restaurant.Address)
			if err == nil && restCoord.AreDefined {
				_, km := haversine.Distance(
					haversine.Coord{Lat: *orderCoord.Lat, Lon: *orderCoord.Lon},
					haversine.Coord{Lat: *restCoord.Lat, Lon: *restCoord.Lon},
				)
				label = fmt.Sprintf("%.3f км.", km)
			}
		}
		ranked = append(ranked, RankedRestaurant{Name: restaurant.Name, Distance: label})
	}
	return ranked
}
