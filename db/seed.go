package db

import (
	"gamecatalog/models"

	"github.com/shopspring/decimal"
)

const (
	fifaCover         = "https://images.unsplash.com/photo-1579952363873-27f3bade9f55?w=400&h=500&fit=crop"
	rdr2Cover         = "https://images.unsplash.com/photo-1511512578047-dfb367046420?w=400&h=500&fit=crop"
	splitFictionCover = "https://images.unsplash.com/photo-1550745165-9bc0b252726f?w=400&h=500&fit=crop"
)

// DefaultCatalog is the data set loaded by the seed command when no file is given.
func DefaultCatalog() []models.Game {
	return []models.Game{
		listing("FIFA 23", "PC (Origin)", "GLOBAL", "40.93", "59.99", 32, fifaCover, "Origin"),
		listing("FIFA 23", "Xbox Series X|S", "EUROPE", "34.14", "49.99", 32, fifaCover, "Xbox Live"),
		listing("FIFA 23", "PlayStation 5", "GLOBAL", "35.15", "49.99", 30, fifaCover, "PSN"),
		listing("FIFA 23", "Nintendo Switch", "EUROPE", "36.25", "44.99", 19, fifaCover, "Nintendo"),
		listing("Red Dead Redemption 2", "PC (Rockstar)", "GLOBAL", "29.99", "59.99", 50, rdr2Cover, "Rockstar"),
		listing("Red Dead Redemption 2", "Xbox One", "GLOBAL", "24.99", "49.99", 50, rdr2Cover, "Xbox Live"),
		listing("Red Dead Redemption 2", "PlayStation 4", "EUROPE", "27.49", "54.99", 50, rdr2Cover, "PSN"),
		listing("Red Dead Redemption 2", "PC (Steam)", "GLOBAL", "32.99", "59.99", 45, rdr2Cover, "Steam"),
		listing("Split Fiction EA App Key (PC) GLOBAL", "PC (EA App)", "GLOBAL", "40.93", "59.99", 32, splitFictionCover, "EA App"),
		listing("Split Fiction (Xbox Series X|S) XBOX LIVE Key EUROPE", "Xbox Series X|S", "EUROPE", "34.14", "49.99", 32, splitFictionCover, "Xbox Live"),
		listing("Split Fiction (Xbox Series X|S) XBOX LIVE Key GLOBAL", "Xbox Series X|S", "GLOBAL", "35.15", "49.99", 30, splitFictionCover, "Xbox Live"),
		listing("Split Fiction (Nintendo Switch) 2) eShop Key EUROPE", "Nintendo Switch", "EUROPE", "36.25", "44.99", 19, splitFictionCover, "Nintendo"),
		listing("Split Fiction (PlayStation 5) PSN Key GLOBAL", "PlayStation 5", "GLOBAL", "38.99", "54.99", 29, splitFictionCover, "PSN"),
		listing("Split Fiction (PlayStation 4) PSN Key EUROPE", "PlayStation 4", "EUROPE", "33.50", "49.99", 33, splitFictionCover, "PSN"),
		listing("Split Fiction PC Steam Key GLOBAL", "PC (Steam)", "GLOBAL", "42.15", "59.99", 30, splitFictionCover, "Steam"),
	}
}

func listing(title, platform, region, price, originalPrice string, discount int, cover, stock string) models.Game {
	return models.Game{
		Title:              title,
		Platform:           platform,
		Region:             region,
		Price:              decimal.RequireFromString(price),
		OriginalPrice:      decimal.NewNullDecimal(decimal.RequireFromString(originalPrice)),
		DiscountPercentage: &discount,
		CoverImageURL:      cover,
		HasCashback:        true,
		StockStatus:        &stock,
	}
}
