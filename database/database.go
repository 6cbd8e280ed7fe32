package database

import (
	"fmt"
	"log"
	"strings"

	config "github.com/anjiri1684/edu_cooperative/configs"
	"github.com/anjiri1684/edu_cooperative/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

// AutoMigrate creates or updates every table of the back office on db.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Instructor{},
		&models.User{},
		&models.Student{},
		&models.Course{},
		&models.Enrollment{},
		&models.Attendance{},
		&models.InstructorHours{},
		&models.BillingRecord{},
		&models.ExpenseCategory{},
		&models.RecurringExpense{},
		&models.Expense{},
		&models.Member{},
		&models.FinancialReport{},
		&models.ProfitDistribution{},
		&models.AuditLog{},
	)
}

func Migrate() {
	if err := AutoMigrate(DB); err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️ ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Username: strings.SplitN(adminEmail, "@", 2)[0],
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	log.Println("✅ Admin user seeded successfully")
}
