package geocoder

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodcartapp/foodcart-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Coordinate{}))
	return db
}

// stubProvider counts calls and answers with a single place at the
// given position, in the provider's wire format.
func stubProvider(pos string, calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"response":{"GeoObjectCollection":{"featureMember":[{"GeoObject":{"Point":{"pos":"%s"}}}]}}}`, pos)
	}))
}

func failingProvider(calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
}

func emptyProvider(calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response":{"GeoObjectCollection":{"featureMember":[]}}}`)
	}))
}

func TestResolveCachesSuccessfulLookup(t *testing.T) {
	var calls int32
	server := stubProvider("37.0 55.0", &calls)
	defer server.Close()

	cache := NewCache(setupTestDB(t), NewClientWith(server.URL, "test-key"))

	first, err := cache.Resolve("Москва, ул. Льва Толстого 16")
	require.NoError(t, err)
	assert.True(t, first.AreDefined)
	require.NotNil(t, first.Lon)
	require.NotNil(t, first.Lat)
	assert.Equal(t, 37.0, *first.Lon)
	assert.Equal(t, 55.0, *first.Lat)
	assert.NotEmpty(t, first.ProviderPayload)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// The second resolve is served from the cache row.
	second, err := cache.Resolve("Москва, ул. Льва Толстого 16")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestResolveCachesFailedLookup(t *testing.T) {
	var calls int32
	server := failingProvider(&calls)
	defer server.Close()

	cache := NewCache(setupTestDB(t), NewClientWith(server.URL, "test-key"))

	coord, err := cache.Resolve("no such place")
	require.NoError(t, err)
	assert.False(t, coord.AreDefined)
	assert.Nil(t, coord.Lon)
	assert.Nil(t, coord.Lat)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// Known-failed state short-circuits; the provider is not retried.
	again, err := cache.Resolve("no such place")
	require.NoError(t, err)
	assert.False(t, again.AreDefined)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestResolveTreatsEmptyResultAsFailure(t *testing.T) {
	var calls int32
	server := emptyProvider(&calls)
	defer server.Close()

	cache := NewCache(setupTestDB(t), NewClientWith(server.URL, "test-key"))

	coord, err := cache.Resolve("middle of nowhere")
	require.NoError(t, err)
	assert.False(t, coord.AreDefined)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestEnsureAddressSkipsKnownAddress(t *testing.T) {
	var calls int32
	server := stubProvider("37.0 55.0", &calls)
	defer server.Close()

	db := setupTestDB(t)
	cache := NewCache(db, NewClientWith(server.URL, "test-key"))

	require.NoError(t, db.Create(&models.Coordinate{Address: "known addr", AreDefined: false}).Error)

	cache.EnsureAddress("known addr")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	cache.EnsureAddress("new addr")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	var count int64
	db.Model(&models.Coordinate{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestAddCoordinatesRecoversConcurrentWinner(t *testing.T) {
	var calls int32
	server := stubProvider("38.0 56.0", &calls)
	defer server.Close()

	db := setupTestDB(t)
	cache := NewCache(db, NewClientWith(server.URL, "test-key"))

	// Another writer already inserted this address.
	lon, lat := 30.0, 60.0
	require.NoError(t, db.Create(&models.Coordinate{
		Address: "raced addr", Lon: &lon, Lat: &lat, AreDefined: true,
	}).Error)

	// The losing insert recovers with the winner's row, not an error.
	coord, err := cache.addCoordinates("raced addr")
	require.NoError(t, err)
	assert.True(t, coord.AreDefined)
	require.NotNil(t, coord.Lon)
	assert.Equal(t, 30.0, *coord.Lon)
	assert.Equal(t, 60.0, *coord.Lat)

	var count int64
	db.Model(&models.Coordinate{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCoordinateAddressIsUnique(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Coordinate{Address: "dup addr"}).Error)
	err := db.Create(&models.Coordinate{Address: "dup addr"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestFetchCoordinatesParsesPos(t *testing.T) {
	var calls int32
	server := stubProvider("37.618423 55.751244", &calls)
	defer server.Close()

	client := NewClientWith(server.URL, "test-key")
	lon, lat, raw, err := client.FetchCoordinates("Москва")
	require.NoError(t, err)
	assert.Equal(t, 37.618423, lon)
	assert.Equal(t, 55.751244, lat)
	assert.Contains(t, string(raw), "featureMember")
}

func TestFetchCoordinatesMalformedPos(t *testing.T) {
	var calls int32
	server := stubProvider("not-a-pair", &calls)
	defer server.Close()

	client := NewClientWith(server.URL, "test-key")
	_, _, _, err := client.FetchCoordinates("somewhere")
	assert.Error(t, err)
}
