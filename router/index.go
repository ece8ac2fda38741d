package router

import (
	"restaurant_manager/handler"
	"restaurant_manager/middleware"
	"restaurant_manager/validate"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// auth
	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)

	// users
	users := v1.Group("/usuarios", middleware.Protected())
	users.Get("/", handler.GetUsers)
	users.Get("/:userId", validate.GetById("userId"), handler.GetUserById)
	users.Post("/", validate.CreateUser(), handler.CreateUser)
	users.Put("/:userId", validate.UpdateUser("userId"), handler.UpdateUser)
	users.Post("/cambiar-password", validate.ChangePassword(), handler.ChangePassword)
	users.Delete("/:userId", validate.DeleteUser("userId"), handler.DeleteUser)

	// tables
	tables := v1.Group("/mesas", middleware.Protected())
	tables.Get("/", handler.GetTables)
	tables.Get("/:tableId", validate.GetById("tableId"), handler.GetTableById)
	tables.Get("/:tableId/reserva-activa", validate.GetById("tableId"), handler.GetTableActiveReservation)
	tables.Post("/", validate.CreateTable(), handler.CreateTable)
	tables.Put("/:tableId", validate.UpdateTable("tableId"), handler.UpdateTable)
	tables.Delete("/:tableId", validate.DeleteTable("tableId"), handler.DeleteTable)

	// orders and their lines
	orders := v1.Group("/pedidos", middleware.Protected())
	orders.Get("/", handler.GetOrders)
	orders.Get("/:pedidoId", validate.GetById("pedidoId"), handler.GetOrderById)
	orders.Post("/", validate.CreateOrder(), handler.CreateOrder)
	orders.Put("/:pedidoId", validate.UpdateOrder("pedidoId"), handler.UpdateOrder)
	orders.Post("/:pedidoId/detalles", validate.CreateOrderItem("pedidoId"), handler.AddOrderItem)
	orders.Put("/:pedidoId/detalles/:detalleId", validate.UpdateOrderItem("pedidoId", "detalleId"), handler.UpdateOrderItem)
	orders.Delete("/:pedidoId/detalles/:detalleId", validate.DeleteOrderItem("pedidoId", "detalleId"), handler.DeleteOrderItem)

	// reservations
	reservations := v1.Group("/reservas", middleware.Protected())
	reservations.Get("/", handler.GetReservations)
	reservations.Get("/:reservaId", validate.GetById("reservaId"), handler.GetReservationById)
	reservations.Post("/", validate.CreateReservation(), handler.CreateReservation)
	reservations.Put("/:reservaId", validate.UpdateReservation("reservaId"), handler.UpdateReservation)
	reservations.Delete("/:reservaId", validate.DeleteReservation("reservaId"), handler.DeleteReservation)

	// bills
	bills := v1.Group("/cuentas", middleware.Protected())
	bills.Get("/", handler.GetBills)
	bills.Get("/resumen", handler.GetBillSummary)
	bills.Get("/:cuentaId", validate.GetById("cuentaId"), handler.GetBillById)
	bills.Get("/:cuentaId/qr", validate.GetById("cuentaId"), handler.GetBillQR)
	bills.Put("/:cuentaId", validate.UpdateBill("cuentaId"), handler.UpdateBill)
	bills.Delete("/:cuentaId", validate.DeleteBill("cuentaId"), handler.DeleteBill)

	// menu
	products := v1.Group("/productos", middleware.Protected())
	products.Get("/", handler.GetProducts)
	products.Get("/:productoId", validate.GetById("productoId"), handler.GetProductById)
	products.Post("/", validate.CreateProduct(), handler.CreateProduct)
	products.Put("/:productoId", validate.UpdateProduct("productoId"), handler.UpdateProduct)
	products.Post("/:productoId/imagen", validate.ManageProduct("productoId"), handler.UploadProductImage)
	products.Delete("/:productoId", validate.DeleteProduct("productoId"), handler.DeleteProduct)

	categories := v1.Group("/categorias", middleware.Protected())
	categories.Get("/", handler.GetCategories)
	categories.Get("/:categoriaId", validate.GetById("categoriaId"), handler.GetCategoryById)
	categories.Post("/", validate.CreateCategory(), handler.CreateCategory)
	categories.Put("/:categoriaId", validate.UpdateCategory("categoriaId"), handler.UpdateCategory)
	categories.Delete("/:categoriaId", validate.DeleteCategory("categoriaId"), handler.DeleteCategory)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)

	// realtime consoles
	v1.Get("/ws/:channel", handler.WebSocketUpgrade(), handler.WebSocketChannel())
}
