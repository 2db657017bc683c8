package database

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Migrate creates the reference-data tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuItem{},
		&models.ModifierGroup{},
		&models.ModifierOption{},
	)
	if err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// Seed fills empty reference tables with a default floor plan and menu and
// makes sure an admin account exists.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedIfEmpty(tx, &models.Table{}, defaultTables()); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.ModifierGroup{}, defaultModifierGroups()); err != nil {
			return err
		}
		if err := seedIfEmpty(tx, &models.MenuItem{}, defaultMenu()); err != nil {
			return err
		}
		return seedAdmin(tx, adminEmail, adminPassword)
	})
}

// LoadSeed reads the reference data the floor service starts from.
func LoadSeed(db *gorm.DB) (services.SeedData, error) {
	var seed services.SeedData
	if err := db.Order("id").Find(&seed.Tables).Error; err != nil {
		return seed, err
	}
	if err := db.Order("category, name").Find(&seed.MenuItems).Error; err != nil {
		return seed, err
	}
	err := db.Preload("Options", func(q *gorm.DB) *gorm.DB {
		return q.Order("price, name")
	}).Order("id").Find(&seed.ModifierGroups).Error
	if err != nil {
		return seed, err
	}
	utils.InfoLogger.Printf("Loaded %d tables, %d menu items, %d modifier groups",
		len(seed.Tables), len(seed.MenuItems), len(seed.ModifierGroups))
	return seed, nil
}

func seedIfEmpty[T any](tx *gorm.DB, model *T, rows []T) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func seedAdmin(tx *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		utils.InfoLogger.Println("skip seeding admin: missing SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD")
		return nil
	}
	var existing models.User
	err := tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{Name: "Admin", Email: email, Password: string(hash), Role: "admin"}
	if err := tx.Create(&admin).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded admin user %s", email)
	return nil
}

func defaultTables() []models.Table {
	return []models.Table{
		{ID: "T1", Name: "Table 1", Position: models.Position{X: 40, Y: 40}, Capacity: 2, Shape: "square", Status: models.TableStatusAvailable},
		{ID: "T2", Name: "Table 2", Position: models.Position{X: 160, Y: 40}, Capacity: 2, Shape: "square", Status: models.TableStatusAvailable},
		{ID: "T3", Name: "Table 3", Position: models.Position{X: 280, Y: 40}, Capacity: 4, Shape: "round", Status: models.TableStatusAvailable},
		{ID: "T4", Name: "Table 4", Position: models.Position{X: 40, Y: 180}, Capacity: 4, Shape: "round", Status: models.TableStatusAvailable},
		{ID: "T5", Name: "Table 5", Position: models.Position{X: 160, Y: 180}, Capacity: 6, Shape: "rectangle", Status: models.TableStatusAvailable},
		{ID: "T6", Name: "Bar", Position: models.Position{X: 280, Y: 180}, Capacity: 8, Shape: "rectangle", Status: models.TableStatusAvailable},
	}
}

func defaultModifierGroups() []models.ModifierGroup {
	return []models.ModifierGroup{
		{ID: "drink-size", Name: "Size", Kind: models.ModifierSize, Options: []models.ModifierOption{
			{ID: "drink-size-s", Name: "Small", Price: 0},
			{ID: "drink-size-m", Name: "Medium", Price: 0.5},
			{ID: "drink-size-l", Name: "Large", Price: 1},
		}},
		{ID: "milk", Name: "Milk", Kind: models.ModifierAddOn, Options: []models.ModifierOption{
			{ID: "milk-oat", Name: "Oat milk", Price: 0.6},
			{ID: "milk-almond", Name: "Almond milk", Price: 0.6},
		}},
		{ID: "extras", Name: "Extras", Kind: models.ModifierAddOn, Options: []models.ModifierOption{
			{ID: "extra-cheese", Name: "Extra cheese", Price: 1.25},
			{ID: "extra-bacon", Name: "Bacon", Price: 1.75},
			{ID: "extra-egg", Name: "Fried egg", Price: 1},
		}},
	}
}

func defaultMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "latte", Name: "Latte", Category: "Drinks", Price: 4, SizeGroupID: "drink-size", AddOnGroupIDs: []string{"milk"}},
		{ID: "iced-tea", Name: "Iced Tea", Category: "Drinks", Price: 3, SizeGroupID: "drink-size"},
		{ID: "burger", Name: "Classic Burger", Category: "Mains", Price: 11.5, AddOnGroupIDs: []string{"extras"}},
		{ID: "pasta", Name: "Pasta Carbonara", Category: "Mains", Price: 13, AddOnGroupIDs: []string{"extras"}},
		{ID: "salad", Name: "Garden Salad", Category: "Starters", Price: 7.5},
		{ID: "fries", Name: "Fries", Category: "Sides", Price: 3.5},
	}
}
