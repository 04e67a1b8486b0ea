// Package catalog holds the static game and currency-bundle catalog. The
// catalog is the source of truth for prices: cart operations always resolve
// the unit price from here rather than trusting client input.
package catalog

import (
	apperrors "github.com/gamify/storefront/pkg/errors"
)

// Bundle is a purchasable amount of in-game currency for one game.
type Bundle struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Popular bool    `json:"popular"`
}

// Game groups the currency bundles sold for one title.
type Game struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Bundles     []Bundle `json:"bundles"`
}

var games = []Game{
	{
		ID:          "valorant",
		Name:        "Valorant",
		Slug:        "valorant",
		Description: "Tactical 5v5 character-based shooter",
		Bundles: []Bundle{
			{ID: "vp-475", Name: "475 VP", Price: 4.99},
			{ID: "vp-1000", Name: "1000 VP", Price: 9.99, Popular: true},
			{ID: "vp-2050", Name: "2050 VP", Price: 19.99},
			{ID: "vp-3650", Name: "3650 VP", Price: 34.99, Popular: true},
			{ID: "vp-5350", Name: "5350 VP", Price: 49.99},
			{ID: "vp-11000", Name: "11000 VP", Price: 99.99},
		},
	},
	{
		ID:          "mobile-legends",
		Name:        "Mobile Legends",
		Slug:        "mobile-legends",
		Description: "Ultimate 5v5 MOBA experience",
		Bundles: []Bundle{
			{ID: "ml-86", Name: "86 Diamonds", Price: 1.99},
			{ID: "ml-172", Name: "172 Diamonds", Price: 3.99},
			{ID: "ml-257", Name: "257 Diamonds", Price: 4.99, Popular: true},
			{ID: "ml-706", Name: "706 Diamonds", Price: 14.99, Popular: true},
			{ID: "ml-2195", Name: "2195 Diamonds", Price: 44.99},
			{ID: "ml-4390", Name: "4390 Diamonds", Price: 89.99},
		},
	},
	{
		ID:          "genshin-impact",
		Name:        "Genshin Impact",
		Slug:        "genshin-impact",
		Description: "Open-world action RPG adventure",
		Bundles: []Bundle{
			{ID: "gi-60", Name: "60 Genesis Crystals", Price: 0.99},
			{ID: "gi-330", Name: "330 Genesis Crystals", Price: 4.99},
			{ID: "gi-1090", Name: "1090 Genesis Crystals", Price: 14.99, Popular: true},
			{ID: "gi-2240", Name: "2240 Genesis Crystals", Price: 29.99, Popular: true},
			{ID: "gi-3880", Name: "3880 Genesis Crystals", Price: 49.99},
			{ID: "gi-8080", Name: "8080 Genesis Crystals", Price: 99.99},
		},
	},
	{
		ID:          "fortnite",
		Name:        "Fortnite",
		Slug:        "fortnite",
		Description: "Battle Royale phenomenon",
		Bundles: []Bundle{
			{ID: "fn-1000", Name: "1000 V-Bucks", Price: 7.99},
			{ID: "fn-2800", Name: "2800 V-Bucks", Price: 19.99, Popular: true},
			{ID: "fn-5000", Name: "5000 V-Bucks", Price: 31.99},
			{ID: "fn-13500", Name: "13500 V-Bucks", Price: 79.99, Popular: true},
		},
	},
	{
		ID:          "league-of-legends",
		Name:        "League of Legends",
		Slug:        "league-of-legends",
		Description: "Premier MOBA experience",
		Bundles: []Bundle{
			{ID: "lol-650", Name: "650 RP", Price: 5.00},
			{ID: "lol-1380", Name: "1380 RP", Price: 10.00, Popular: true},
			{ID: "lol-2800", Name: "2800 RP", Price: 20.00},
			{ID: "lol-5600", Name: "5600 RP", Price: 35.00, Popular: true},
			{ID: "lol-11000", Name: "11000 RP", Price: 65.00},
		},
	},
	{
		ID:          "pubg-mobile",
		Name:        "PUBG Mobile",
		Slug:        "pubg-mobile",
		Description: "Intense battle royale action",
		Bundles: []Bundle{
			{ID: "pubg-60", Name: "60 UC", Price: 0.99},
			{ID: "pubg-325", Name: "325 UC", Price: 4.99},
			{ID: "pubg-660", Name: "660 UC", Price: 9.99, Popular: true},
			{ID: "pubg-1800", Name: "1800 UC", Price: 24.99, Popular: true},
			{ID: "pubg-3850", Name: "3850 UC", Price: 49.99},
		},
	},
}

// Games returns every game in the catalog.
func Games() []Game {
	return games
}

// GetGame looks up a game by ID.
func GetGame(gameID string) (*Game, error) {
	for i := range games {
		if games[i].ID == gameID {
			return &games[i], nil
		}
	}
	return nil, apperrors.NotFound("game", gameID)
}

// GetBundle looks up a currency bundle within a game.
func GetBundle(gameID, bundleID string) (*Game, *Bundle, error) {
	game, err := GetGame(gameID)
	if err != nil {
		return nil, nil, err
	}
	for i := range game.Bundles {
		if game.Bundles[i].ID == bundleID {
			return game, &game.Bundles[i], nil
		}
	}
	return nil, nil, apperrors.NotFound("bundle", bundleID)
}
