package menu

import "github.com/ashrithps/BrekkieBowlz/internal/models"

// FallbackMenuData is the built-in catalog served whenever the menu
// webhook is unreachable or returns an invalid payload. The storefront
// stays usable; stock counts here are deliberately conservative.
func FallbackMenuData() models.MenuData {
	return models.MenuData{
		StoreConfig: models.StoreConfig{
			IsOpen:        true,
			Name:          "BrekkieBowlz",
			ClosedMessage: "We'll be back soon! Thank you for your patience.",
			SkipDates:     []string{},
			OperatingHours: models.OperatingHours{
				Open:  "08:00",
				Close: "20:00",
			},
		},
		Menu: []models.MenuItem{
			{
				ID:          "smoothie-bowl",
				Name:        "🥤 Smoothie Bowl",
				Description: "24G Plant Protein, blueberries, strawberries, banana, hazelnuts, pecan nuts, other seeds 🍓🍌",
				Price:       299,
				Image:       "/images/menu/smoothie-bowl.jpg",
				Ingredients: []string{
					"🌿 24G Plant Protein", "🫐 Blueberries", "🍓 Strawberries",
					"🍌 Banana", "🌰 Hazelnuts", "🥜 Pecan nuts", "🌱 Seeds",
				},
				QtyAvailable: 8,
			},
			{
				ID:          "overnight-oats",
				Name:        "🥣 Overnight Oats with Berries and Nuts",
				Description: "Creamy overnight oats topped with fresh berries and crunchy nuts 🫐🥜",
				Price:       199,
				Image:       "/images/menu/overnight-oats.jpg",
				Ingredients: []string{
					"🌾 Rolled oats", "🫐 Fresh berries", "🥜 Mixed nuts",
					"🌱 Chia seeds", "🥛 Almond milk", "🍯 Honey",
				},
				Customizations: []models.Customization{
					{
						ID:          "no-honey",
						Name:        "No Honey",
						Description: "Remove honey from the recipe",
						PriceChange: 0,
						Type:        models.CustomizationRemove,
					},
				},
				QtyAvailable: 8,
			},
			{
				ID:          "filter-coffee-hot",
				Name:        "☕ Filter Black Coffee (Hot)",
				Description: "Freshly Brewed premium beans black filter coffee iced or hot 🔥",
				Price:       99,
				Image:       "/images/menu/filter-coffee.jpg",
				Ingredients: []string{"☕ Premium coffee beans", "💧 Filtered water"},
				QtyAvailable: 6,
			},
			{
				ID:          "filter-coffee-iced",
				Name:        "🧊 Filter Black Coffee (Iced)",
				Description: "Freshly Brewed premium beans black filter coffee iced or hot ❄️",
				Price:       99,
				Image:       "/images/menu/filter-coffee.jpg",
				Ingredients: []string{"☕ Premium coffee beans", "💧 Filtered water", "🧊 Ice"},
				QtyAvailable: 6,
			},
		},
	}
}
