package shopbackend

import "github.com/yavemu/products-shop-web/internal/shopapi"

// seedCatalog returns the development product catalog. Prices are whole
// Colombian pesos.
func seedCatalog() []shopapi.Product {
	return []shopapi.Product{
		{
			ID:          1,
			Name:        "Audífonos inalámbricos",
			Brand:       "Sonora",
			Description: "Audífonos bluetooth con cancelación de ruido",
			Stock:       15,
			Price:       250000,
			MainImage:   "/images/products/headphones.jpg",
			Thumbnail:   "/images/products/headphones-thumb.jpg",
		},
		{
			ID:          2,
			Name:        "Teclado mecánico",
			Brand:       "Keystone",
			Description: "Teclado mecánico retroiluminado, switches rojos",
			Stock:       10,
			Price:       320000,
			MainImage:   "/images/products/keyboard.jpg",
			Thumbnail:   "/images/products/keyboard-thumb.jpg",
		},
		{
			ID:          3,
			Name:        "Mouse ergonómico",
			Brand:       "Keystone",
			Description: "Mouse vertical inalámbrico",
			Stock:       25,
			Price:       95000,
			MainImage:   "/images/products/mouse.jpg",
			Thumbnail:   "/images/products/mouse-thumb.jpg",
		},
		{
			ID:          4,
			Name:        "Monitor 27 pulgadas",
			Brand:       "Visual",
			Description: "Monitor QHD 144Hz",
			Stock:       5,
			Price:       1250000,
			MainImage:   "/images/products/monitor.jpg",
			Thumbnail:   "/images/products/monitor-thumb.jpg",
		},
	}
}
