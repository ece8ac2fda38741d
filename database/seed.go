package database

import (
	"log"

	"restaurant_manager/constants"
	"restaurant_manager/model"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashOr(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return password
	}
	return string(bytes)
}

func SeedData(db *gorm.DB) {
	users := []model.User{
		{Username: "admin", Email: "admin@example.com", Password: hashOr("admin123"), FirstName: "Admin", LastName: "User", Role: constants.ROLE_ADMIN, Active: true},
		{Username: "camarero", Email: "camarero@example.com", Password: hashOr("camarero123"), FirstName: "Camarero", LastName: "User", Role: constants.ROLE_WAITER, Active: true},
		{Username: "cocinero", Email: "cocinero@example.com", Password: hashOr("cocinero123"), FirstName: "Cocinero", LastName: "User", Role: constants.ROLE_COOK, Active: true},
	}
	for _, user := range users {
		if err := db.Where(model.User{Username: user.Username}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Username, "error:", err)
		}
	}

	categories := []model.Category{
		{Name: "Entrantes", Description: "Platos para compartir"},
		{Name: "Principales", Description: "Platos principales"},
		{Name: "Postres", Description: "Platos dulces para terminar"},
		{Name: "Bebidas", Description: "Bebidas frías y calientes"},
	}
	byName := make(map[string]uint)
	for _, category := range categories {
		if err := db.Where(model.Category{Name: category.Name}).FirstOrCreate(&category).Error; err != nil {
			log.Println("failed to seed category:", category.Name, "error:", err)
			continue
		}
		byName[category.Name] = category.ID
	}

	products := []model.Product{
		{Name: "Patatas Bravas", Description: "Patatas fritas con salsa picante", Price: 6.50, CategoryId: byName["Entrantes"], Type: constants.PRODUCT_FOOD, Available: true},
		{Name: "Calamares a la Romana", Description: "Calamares fritos con rebozado", Price: 9.90, CategoryId: byName["Entrantes"], Type: constants.PRODUCT_FOOD, Available: true},
		{Name: "Croquetas de Jamón", Description: "Croquetas caseras de jamón ibérico", Price: 8.50, CategoryId: byName["Entrantes"], Type: constants.PRODUCT_FOOD, Available: true},
		{Name: "Solomillo a la Pimienta", Description: "Solomillo con salsa de pimienta y guarnición", Price: 16.50, CategoryId: byName["Principales"], Type: constants.PRODUCT_FOOD, Available: true},
		{Name: "Paella Mixta", Description: "Paella con mariscos y carne", Price: 14.00, CategoryId: byName["Principales"], Type: constants.PRODUCT_FOOD, Available: true},
		{Name: "Lasaña Casera", Description: "Lasaña de carne con bechamel", Price: 12.75, CategoryId: byName["Principales"], Type: constants.PRODUCT_FOOD, Available: true},
		{Name: "Tarta de Queso", Description: "Tarta de queso con coulis de frutos rojos", Price: 5.90, CategoryId: byName["Postres"], Type: constants.PRODUCT_DESSERT, Available: true},
		{Name: "Tiramisú", Description: "Postre italiano con mascarpone y café", Price: 6.20, CategoryId: byName["Postres"], Type: constants.PRODUCT_DESSERT, Available: true},
		{Name: "Refresco", Description: "Varias opciones disponibles", Price: 2.50, CategoryId: byName["Bebidas"], Type: constants.PRODUCT_DRINK, Available: true},
		{Name: "Cerveza", Description: "Caña de cerveza", Price: 2.80, CategoryId: byName["Bebidas"], Type: constants.PRODUCT_DRINK, Available: true},
		{Name: "Vino de la Casa", Description: "Copa de vino tinto, blanco o rosado", Price: 3.50, CategoryId: byName["Bebidas"], Type: constants.PRODUCT_DRINK, Available: true},
	}
	for _, product := range products {
		product.Slug = slug.Make(product.Name)
		if err := db.Where(model.Product{Name: product.Name}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed product:", product.Name, "error:", err)
		}
	}

	tables := []model.Table{
		{Number: 1, Capacity: 4, Location: "Terraza"},
		{Number: 2, Capacity: 2, Location: "Terraza"},
		{Number: 3, Capacity: 6, Location: "Interior"},
		{Number: 4, Capacity: 4, Location: "Interior"},
		{Number: 5, Capacity: 2, Location: "Barra"},
	}
	for _, table := range tables {
		table.Status = constants.TABLE_FREE
		if err := db.Where(model.Table{Number: table.Number}).FirstOrCreate(&table).Error; err != nil {
			log.Println("failed to seed table:", table.Number, "error:", err)
		}
	}
}
