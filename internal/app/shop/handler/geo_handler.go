package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka/internal/app/shop/entity"
	"lavka/internal/app/shop/service"
	"lavka/pkg/pagination"
)

// GeoHandler обрабатывает HTTP запросы географии:
// страны, города и магазины
type GeoHandler struct {
	geoService *service.GeoService
}

func NewGeoHandler(geoService *service.GeoService) *GeoHandler {
	return &GeoHandler{geoService: geoService}
}

// === COUNTRIES HANDLERS ===

// CreateCountry обрабатывает POST /api/countries
func (h *GeoHandler) CreateCountry(c *gin.Context) {
	var req entity.CreateCountryRequest
	if !bindJSON(c, &req) {
		return
	}

	country, err := h.geoService.CreateCountry(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, country)
}

// GetCountry обрабатывает GET /api/countries/:id
func (h *GeoHandler) GetCountry(c *gin.Context) {
	country, err := h.geoService.GetCountry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, country, country != nil, "Country Not Found!")
}

// FindCountries обрабатывает GET /api/countries?q=&page=&limit=
func (h *GeoHandler) FindCountries(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.geoService.FindCountries(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateCountry обрабатывает PUT /api/countries/:id
func (h *GeoHandler) UpdateCountry(c *gin.Context) {
	var req entity.UpdateCountryRequest
	if !bindJSON(c, &req) {
		return
	}

	country, err := h.geoService.UpdateCountry(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, country)
}

// === CITIES HANDLERS ===

// CreateCity обрабатывает POST /api/cities
func (h *GeoHandler) CreateCity(c *gin.Context) {
	var req entity.CreateCityRequest
	if !bindJSON(c, &req) {
		return
	}

	city, err := h.geoService.CreateCity(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, city)
}

// GetCity обрабатывает GET /api/cities/:id
func (h *GeoHandler) GetCity(c *gin.Context) {
	city, err := h.geoService.GetCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, city, city != nil, "City Not Found!")
}

// FindCities обрабатывает GET /api/cities?q=&page=&limit=
func (h *GeoHandler) FindCities(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.geoService.FindCities(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindCitiesByCountry обрабатывает GET /api/cities/country/:id
func (h *GeoHandler) FindCitiesByCountry(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.geoService.FindCitiesByCountry(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindCitiesByLocation обрабатывает POST /api/cities/location
// Тело запроса несет {latitude, longitude, distance}
func (h *GeoHandler) FindCitiesByLocation(c *gin.Context) {
	var req entity.LocationRequest
	if !bindJSON(c, &req) {
		return
	}

	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.geoService.FindCitiesByLocation(c.Request.Context(), &req, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateCity обрабатывает PUT /api/cities/:id
func (h *GeoHandler) UpdateCity(c *gin.Context) {
	var req entity.UpdateCityRequest
	if !bindJSON(c, &req) {
		return
	}

	city, err := h.geoService.UpdateCity(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, city)
}

// === STORES HANDLERS ===

// CreateStore обрабатывает POST /api/stores
func (h *GeoHandler) CreateStore(c *gin.Context) {
	var req entity.CreateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.geoService.CreateStore(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, store)
}

// GetStore обрабатывает GET /api/stores/:id
func (h *GeoHandler) GetStore(c *gin.Context) {
	store, err := h.geoService.GetStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondFound(c, store, store != nil, "Store Not Found!")
}

// FindStores обрабатывает GET /api/stores?q=&page=&limit=
func (h *GeoHandler) FindStores(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.geoService.FindStores(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindStoresByCity обрабатывает GET /api/stores/city/:id
func (h *GeoHandler) FindStoresByCity(c *gin.Context) {
	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.geoService.FindStoresByCity(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindStoresByLocation обрабатывает POST /api/stores/location
func (h *GeoHandler) FindStoresByLocation(c *gin.Context) {
	var req entity.LocationRequest
	if !bindJSON(c, &req) {
		return
	}

	page, limit := pagination.ParseParams(c.Query("page"), c.Query("limit"))

	result, err := h.geoService.FindStoresByLocation(c.Request.Context(), &req, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateStore обрабатывает PUT /api/stores/:id
func (h *GeoHandler) UpdateStore(c *gin.Context) {
	var req entity.UpdateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.geoService.UpdateStore(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}
