package matching

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/foodcartapp/foodcart-api/models"
)

// SuitableRestaurants intersects, over every distinct product in the
// order, the set of restaurants stocking that product. A product absent
// from the index collapses the result to empty: the order is shown with
// zero candidates rather than failing. Ids come back ascending, which
// is restaurant registration order.
func SuitableRestaurants(items []models.OrderItem, index map[uint][]uint) []uint {
	var result map[uint]bool
	seen := make(map[uint]bool, len(items))

	for _, item := range items {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true

		available := index[item.ProductID]
		if result == nil {
			result = make(map[uint]bool, len(available))
			for _, id := range available {
				result[id] = true
			}
		} else {
			next := make(map[uint]bool, len(result))
			for _, id := range available {
				if result[id] {
					next[id] = true
				}
			}
			result = next
		}
		if len(result) == 0 {
			break
		}
	}

	ids := make([]uint, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// OrderTotal sums the snapshotted line prices. Current product prices
// deliberately play no part here.
func OrderTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}
