package model

// SeedCatalog returns the demo catalog. Each call returns fresh copies so
// callers can never mutate shared state.
func SeedCatalog() []Product {
	products := make([]Product, len(seedProducts))
	for i, p := range seedProducts {
		products[i] = p.Clone()
	}
	return products
}

var seedProducts = []Product{
	{
		ID:                 1,
		Name:               "Wireless Bluetooth Headphones",
		PriceCents:         8999,
		OriginalPriceCents: 12999,
		Category:           CategoryElectronics,
		Image:              "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400",
		Description:        "High-quality wireless headphones with noise cancellation and long battery life.",
		Rating:             4.5,
		Reviews:            128,
		InStock:            true,
		Colors:             []string{"Black", "White", "Blue"},
		Sizes:              []string{"One Size"},
	},
	{
		ID:                 2,
		Name:               "Smart Fitness Watch",
		PriceCents:         19999,
		OriginalPriceCents: 24999,
		Category:           CategoryElectronics,
		Image:              "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400",
		Description:        "Advanced fitness tracking with heart rate monitor and GPS.",
		Rating:             4.3,
		Reviews:            89,
		InStock:            true,
		Colors:             []string{"Black", "Silver"},
		Sizes:              []string{"One Size"},
	},
	{
		ID:                 3,
		Name:               "Organic Cotton T-Shirt",
		PriceCents:         2499,
		OriginalPriceCents: 3499,
		Category:           CategoryClothing,
		Image:              "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400",
		Description:        "Comfortable and sustainable cotton t-shirt for everyday wear.",
		Rating:             4.7,
		Reviews:            256,
		InStock:            true,
		Colors:             []string{"White", "Black", "Gray", "Navy"},
		Sizes:              []string{"S", "M", "L", "XL"},
	},
	{
		ID:                 4,
		Name:               "Leather Crossbody Bag",
		PriceCents:         7999,
		OriginalPriceCents: 9999,
		Category:           CategoryAccessories,
		Image:              "https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=400",
		Description:        "Stylish and practical leather bag perfect for daily use.",
		Rating:             4.4,
		Reviews:            67,
		InStock:            true,
		Colors:             []string{"Brown", "Black"},
		Sizes:              []string{"One Size"},
	},
	{
		ID:                 5,
		Name:               "Wireless Charging Pad",
		PriceCents:         3999,
		OriginalPriceCents: 5999,
		Category:           CategoryElectronics,
		Image:              "https://images.unsplash.com/photo-1586953208448-b95a79798f07?w=400",
		Description:        "Fast wireless charging pad compatible with all Qi-enabled devices.",
		Rating:             4.2,
		Reviews:            45,
		InStock:            true,
		Colors:             []string{"White", "Black"},
		Sizes:              []string{"One Size"},
	},
	{
		ID:                 6,
		Name:               "Denim Jacket",
		PriceCents:         8999,
		OriginalPriceCents: 11999,
		Category:           CategoryClothing,
		Image:              "https://images.unsplash.com/photo-1576995853123-5a10305d93c0?w=400",
		Description:        "Classic denim jacket with modern fit and comfortable design.",
		Rating:             4.6,
		Reviews:            134,
		InStock:            true,
		Colors:             []string{"Blue", "Black"},
		Sizes:              []string{"S", "M", "L", "XL"},
	},
	{
		ID:                 7,
		Name:               "Sunglasses",
		PriceCents:         14999,
		OriginalPriceCents: 19999,
		Category:           CategoryAccessories,
		Image:              "https://images.unsplash.com/photo-1572635196237-14b3f281503f?w=400",
		Description:        "Premium polarized sunglasses with UV protection.",
		Rating:             4.8,
		Reviews:            89,
		InStock:            true,
		Colors:             []string{"Black", "Brown", "Gray"},
		Sizes:              []string{"One Size"},
	},
	{
		ID:                 8,
		Name:               "Smartphone Case",
		PriceCents:         1999,
		OriginalPriceCents: 2999,
		Category:           CategoryAccessories,
		Image:              "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400",
		Description:        "Durable and stylish smartphone case with drop protection.",
		Rating:             4.1,
		Reviews:            203,
		InStock:            true,
		Colors:             []string{"Clear", "Black", "Blue", "Pink"},
		Sizes:              []string{"iPhone 13", "iPhone 14", "Samsung Galaxy"},
	},
}
