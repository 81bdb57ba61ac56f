package handlers

import (
	"time"

	"github.com/sharpcut-app/barber-marketplace/internal/models"
	"github.com/sharpcut-app/barber-marketplace/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado por barbearia
// --------------------------------------------------

func locationFromShop(shop *models.Barbershop) *time.Location {
	return timezone.Location(shop.Timezone)
}

func nowInShop(shop *models.Barbershop) time.Time {
	return time.Now().In(locationFromShop(shop))
}

func parseDateInShop(shop *models.Barbershop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromShop(shop),
	)
}

func parseDateTimeInShop(
	shop *models.Barbershop,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromShop(shop),
	)
}
