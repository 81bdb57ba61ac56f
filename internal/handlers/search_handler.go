package handlers

import (
	"math"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpcut-app/barber-marketplace/internal/models"
)

type SearchHandler struct {
	db *gorm.DB
}

func NewSearchHandler(db *gorm.DB) *SearchHandler {
	return &SearchHandler{db: db}
}

type NearbyBarbershop struct {
	models.Barbershop
	DistanceKm    float64 `json:"distance_km"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// Nearby lista barbearias dentro do raio, mais próximas primeiro.
func (h *SearchHandler) Nearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_coordinates"})
		return
	}

	radiusKm := 10.0
	if r := c.Query("radius_km"); r != "" {
		parsed, err := strconv.ParseFloat(r, 64)
		if err != nil || parsed <= 0 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_radius"})
			return
		}
		radiusKm = parsed
	}

	// Bounding box grosseiro no SQL; o filtro fino é feito em memória.
	latDelta := radiusKm / 111.0
	lngDelta := radiusKm / (111.0 * math.Cos(lat*math.Pi/180))

	var shops []models.Barbershop
	if err := h.db.
		Where("latitude BETWEEN ? AND ?", lat-latDelta, lat+latDelta).
		Where("longitude BETWEEN ? AND ?", lng-lngDelta, lng+lngDelta).
		Find(&shops).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_search"})
		return
	}

	out := make([]NearbyBarbershop, 0, len(shops))
	for _, shop := range shops {
		d := haversineKm(lat, lng, shop.Latitude, shop.Longitude)
		if d > radiusKm {
			continue
		}

		var rating struct {
			Avg   float64
			Count int64
		}
		h.db.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("barbershop_id = ?", shop.ID).
			Scan(&rating)

		out = append(out, NearbyBarbershop{
			Barbershop:    shop,
			DistanceKm:    math.Round(d*100) / 100,
			AverageRating: rating.Avg,
			ReviewCount:   rating.Count,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})

	c.JSON(http.StatusOK, gin.H{
		"barbershops": out,
		"radius_km":   radiusKm,
	})
}
