package helper

import (
	"os"
	"testing"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// openTestDB connects to the database named by TEST_DATABASE_URL, migrates the
// schema and starts from empty tables. Tests that need it are skipped when the
// variable is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Table{},
		&model.Order{},
		&model.OrderItem{},
		&model.Reservation{},
		&model.Bill{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	for _, table := range []string{"bills", "order_items", "orders", "reservations", "products", "categories", "tables", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to clean table %s: %v", table, err)
		}
	}
	return db
}

func seedWaiter(t *testing.T, db *gorm.DB) model.User {
	t.Helper()
	waiter := model.User{
		Username:  "camarero_test",
		Email:     "camarero_test@example.com",
		Password:  "irrelevant",
		FirstName: "Ana",
		LastName:  "García",
		Role:      constants.ROLE_WAITER,
		Active:    true,
	}
	if err := db.Create(&waiter).Error; err != nil {
		t.Fatalf("failed to seed waiter: %v", err)
	}
	return waiter
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) model.Product {
	t.Helper()
	category := model.Category{Name: "Pruebas " + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	product := model.Product{
		Name:       name,
		Slug:       "test-" + name,
		Price:      price,
		CategoryId: category.ID,
		Type:       constants.PRODUCT_FOOD,
		Available:  true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func seedTable(t *testing.T, db *gorm.DB, number uint, status string) model.Table {
	t.Helper()
	table := model.Table{Number: number, Capacity: 4, Status: status}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func billCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.Bill{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count bills: %v", err)
	}
	return count
}

func TestCloseTableCutsExactlyOneBill(t *testing.T) {
	db := openTestDB(t)
	waiter := seedWaiter(t, db)
	paella := seedProduct(t, db, "Paella", 14.0)
	beer := seedProduct(t, db, "Cerveza", 2.8)
	table := seedTable(t, db, 1, constants.TABLE_OCCUPIED)

	open := model.Order{
		PublicCode: "PED-TEST0001",
		TableId:    &table.ID,
		WaiterId:   waiter.ID,
		Status:     constants.ORDER_READY,
		Total:      19.6,
		Items: []model.OrderItem{
			{ProductId: utils.Ptr(paella.ID), Quantity: 1, UnitPrice: 14.0, Subtotal: 14.0, Status: constants.ORDER_READY},
			{ProductId: utils.Ptr(beer.ID), Quantity: 2, UnitPrice: 2.8, Subtotal: 5.6, Status: constants.ORDER_READY},
		},
	}
	if err := db.Create(&open).Error; err != nil {
		t.Fatalf("failed to seed open order: %v", err)
	}
	canceled := model.Order{
		PublicCode: "PED-TEST0002",
		TableId:    &table.ID,
		WaiterId:   waiter.ID,
		Status:     constants.ORDER_CANCELED,
		Items: []model.OrderItem{
			{ProductId: utils.Ptr(paella.ID), Quantity: 3, UnitPrice: 14.0, Subtotal: 42.0, Status: constants.ORDER_CANCELED},
		},
	}
	if err := db.Create(&canceled).Error; err != nil {
		t.Fatalf("failed to seed canceled order: %v", err)
	}

	orders, bill, err := CloseTable(db, table.ID, waiter, "tarjeta")
	if err != nil {
		t.Fatalf("CloseTable() error: %v", err)
	}
	if bill == nil {
		t.Fatal("CloseTable() returned no bill")
	}
	if bill.Total != 19.6 {
		t.Errorf("bill total = %v, want 19.6", bill.Total)
	}
	if bill.TableNumber != table.Number || bill.WaiterName != waiter.FullName() || bill.PaymentMethod != "tarjeta" {
		t.Errorf("bill snapshot = %+v, want table %d charged by %s via tarjeta", bill, table.Number, waiter.FullName())
	}
	if items := DecodeBillItems(bill.Details); len(items) != 2 {
		t.Errorf("bill snapshot holds %d items, want 2", len(items))
	}
	if got := billCount(t, db); got != 1 {
		t.Fatalf("bill count = %d, want 1", got)
	}
	if len(orders) != 1 {
		t.Fatalf("CloseTable() settled %d orders, want 1", len(orders))
	}

	var settled model.Order
	if err := db.First(&settled, open.ID).Error; err != nil {
		t.Fatalf("failed to reload settled order: %v", err)
	}
	if settled.Status != constants.ORDER_DELIVERED || settled.TableId != nil {
		t.Errorf("settled order status=%q tableId=%v, want entregado and detached", settled.Status, settled.TableId)
	}
	var untouched model.Order
	if err := db.First(&untouched, canceled.ID).Error; err != nil {
		t.Fatalf("failed to reload canceled order: %v", err)
	}
	if untouched.Status != constants.ORDER_CANCELED {
		t.Errorf("canceled order status = %q, want cancelado", untouched.Status)
	}

	var freed model.Table
	if err := db.First(&freed, table.ID).Error; err != nil {
		t.Fatalf("failed to reload table: %v", err)
	}
	if freed.Status != constants.TABLE_FREE {
		t.Errorf("table status = %q, want libre", freed.Status)
	}

	// A second close on the now-free table must be a no-op: no second bill.
	_, again, err := CloseTable(db, table.ID, waiter, "tarjeta")
	if err != nil {
		t.Fatalf("second CloseTable() error: %v", err)
	}
	if again != nil {
		t.Error("second CloseTable() cut a bill on a free table")
	}
	if got := billCount(t, db); got != 1 {
		t.Errorf("bill count after second close = %d, want 1", got)
	}
}

func TestCloseTableWithoutChargesCutsNoBill(t *testing.T) {
	db := openTestDB(t)
	waiter := seedWaiter(t, db)
	table := seedTable(t, db, 2, constants.TABLE_OCCUPIED)

	empty := model.Order{
		PublicCode: "PED-TEST0003",
		TableId:    &table.ID,
		WaiterId:   waiter.ID,
		Status:     constants.ORDER_RECEIVED,
	}
	if err := db.Create(&empty).Error; err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	_, bill, err := CloseTable(db, table.ID, waiter, "")
	if err != nil {
		t.Fatalf("CloseTable() error: %v", err)
	}
	if bill != nil {
		t.Errorf("CloseTable() cut a bill for a zero total: %+v", bill)
	}
	if got := billCount(t, db); got != 0 {
		t.Errorf("bill count = %d, want 0", got)
	}

	var settled model.Order
	if err := db.First(&settled, empty.ID).Error; err != nil {
		t.Fatalf("failed to reload order: %v", err)
	}
	if settled.Status != constants.ORDER_DELIVERED || settled.TableId != nil {
		t.Errorf("order status=%q tableId=%v, want entregado and detached", settled.Status, settled.TableId)
	}

	var freed model.Table
	if err := db.First(&freed, table.ID).Error; err != nil {
		t.Fatalf("failed to reload table: %v", err)
	}
	if freed.Status != constants.TABLE_FREE {
		t.Errorf("table status = %q, want libre", freed.Status)
	}
}
