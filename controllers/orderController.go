package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/foodcartapp/foodcart-api/geocoder"
	"github.com/foodcartapp/foodcart-api/initializers"
	"github.com/foodcartapp/foodcart-api/matching"
	"github.com/foodcartapp/foodcart-api/models"
	"github.com/foodcartapp/foodcart-api/statemachine"
	"github.com/foodcartapp/foodcart-api/utils"
)

// Geocoder is wired in main (and swapped for a stub-backed cache in
// tests). Order intake uses it to populate the coordinate cache for
// addresses it has not seen before.
var Geocoder *geocoder.Cache

const (
	msgInvalidPhone     = "Некорректный номер телефона"
	msgInvalidQuantity  = "Недопустимое количество товара"
	msgEmptyProductList = "Список товаров не может быть пустым"
	msgUnknownProduct   = "Недопустимый первичный ключ товара"
)

type orderItemPayload struct {
	Product  uint `json:"product"`
	Quantity int  `json:"quantity"`
}

type orderPayload struct {
	Address     string             `json:"address"`
	Firstname   string             `json:"firstname"`
	Lastname    string             `json:"lastname"`
	Phonenumber string             `json:"phonenumber"`
	Products    []orderItemPayload `json:"products"`
}

// CreateOrder registers a customer order: validates the payload with
// field-keyed errors, persists the order and its snapshot-priced line
// items in one transaction, then lazily populates the coordinate cache
// for the delivery address. A geocoder outage cannot fail or roll back
// the order since the lookup runs after commit.
func CreateOrder(ctx *gin.Context) {
	var payload orderPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		logrus.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	phonenumber, err := utils.NormalizePhone(payload.Phonenumber)
	if err != nil {
		sendFieldErrors(ctx, gin.H{"phonenumber": msgInvalidPhone})
		return
	}

	if len(payload.Products) == 0 {
		sendFieldErrors(ctx, gin.H{"products": msgEmptyProductList})
		return
	}
	for _, item := range payload.Products {
		if item.Quantity < 1 {
			sendFieldErrors(ctx, gin.H{"quantity": msgInvalidQuantity})
			return
		}
	}

	productIDs := make([]uint, 0, len(payload.Products))
	for _, item := range payload.Products {
		productIDs = append(productIDs, item.Product)
	}
	var products []models.Product
	if err := initializers.DB.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		logrus.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to load products")
		return
	}
	productsByID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}
	for _, item := range payload.Products {
		if _, ok := productsByID[item.Product]; !ok {
			sendFieldErrors(ctx, gin.H{"products": msgUnknownProduct})
			return
		}
	}

	tx := initializers.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order := models.Order{
		Address:       payload.Address,
		Firstname:     payload.Firstname,
		Lastname:      payload.Lastname,
		Phonenumber:   phonenumber,
		Status:        models.StatusUnprocessed,
		PaymentMethod: models.PaymentNotSpecified,
		RegisteredAt:  time.Now(),
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create order")
		return
	}

	orderItems := make([]models.OrderItem, 0, len(payload.Products))
	for _, item := range payload.Products {
		product := productsByID[item.Product]
		orderItems = append(orderItems, models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.Product,
			Quantity:  item.Quantity,
			Price:     product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	if err := tx.Create(&orderItems).Error; err != nil {
		tx.Rollback()
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create order items")
		return
	}

	if err := tx.Commit().Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
		return
	}

	Geocoder.EnsureAddress(order.Address)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"id":          order.ID,
		"address":     order.Address,
		"firstname":   order.Firstname,
		"lastname":    order.Lastname,
		"phonenumber": order.Phonenumber,
		"products":    payload.Products,
	})
}

// GetUnprocessedOrders serializes the triage list for the manager
// console: every unprocessed order with its priced total and the
// restaurants able to cook the whole order, each labeled with its
// distance from the delivery address.
func GetUnprocessedOrders(ctx *gin.Context) {
	var orders []models.Order
	err := initializers.DB.
		Preload("Items").
		Where("status = ?", models.StatusUnprocessed).
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		logrus.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	productIDs := make([]uint, 0)
	seen := make(map[uint]bool)
	for _, order := range orders {
		for _, item := range order.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	index, err := matching.AvailabilityIndex(initializers.DB, productIDs)
	if err != nil {
		logrus.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to build availability index")
		return
	}

	var restaurants []models.Restaurant
	if err := initializers.DB.Find(&restaurants).Error; err != nil {
		logrus.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch restaurants")
		return
	}
	restaurantsByID := make(map[uint]models.Restaurant, len(restaurants))
	for _, restaurant := range restaurants {
		restaurantsByID[restaurant.ID] = restaurant
	}

	orderItems := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		suitableIDs := matching.SuitableRestaurants(order.Items, index)
		candidates := make([]models.Restaurant, 0, len(suitableIDs))
		for _, id := range suitableIDs {
			if restaurant, ok := restaurantsByID[id]; ok {
				candidates = append(candidates, restaurant)
			}
		}

		orderItems = append(orderItems, gin.H{
			"id":          order.ID,
			"price":       matching.OrderTotal(order.Items),
			"name":        order.Firstname + " " + order.Lastname,
			"address":     order.Address,
			"phonenumber": order.Phonenumber,
			"comment":     order.Comment,
			"payment":     order.PaymentMethod.Display(),
			"restaurants": matching.RankByDistance(order.Address, candidates, Geocoder),
		})
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orderItems": orderItems})
}

func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("Items")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := ctx.Query("search"); search != "" {
		query = query.Where("phonenumber LIKE ? OR address LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	query = query.Order("registered_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		logrus.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if status := ctx.Query("status"); status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("phonenumber LIKE ? OR address LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func GetOrderById(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		logrus.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if result := initializers.DB.Preload("Items").First(&order, orderId); result.Error != nil {
		logrus.Println(result.Error)
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus advances an order along its lifecycle. Only the
// forward transitions are accepted; anything else comes back as a 400
// naming the allowed move.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		logrus.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		logrus.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if result := initializers.DB.First(&order, orderId); result.Error != nil {
		logrus.Println(result.Error)
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	if err := statemachine.Advance(initializers.DB, &order, orderStatusData.Status); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
		"order":   order,
	})
}

func GetUndeliveredOrders(ctx *gin.Context) {
	var count int64

	result := initializers.DB.
		Model(&models.Order{}).
		Where("status != ?", models.StatusDelivered).
		Count(&count)

	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to count undelivered orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"undeliveredOrderCount": count})
}
