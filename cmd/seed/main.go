package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resortdesk/internal/config"
	"resortdesk/internal/database"
	"resortdesk/internal/domain"
	"resortdesk/internal/modules/auth"
	"resortdesk/internal/pkg/logger"
)

// Seeds an admin, a front-desk user, rooms on three floors and the service
// catalog. Running it twice leaves existing rows untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}
	log := logger.New(cfg.AppEnv)
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	log.Info("running migrations")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	if err := seedUsers(db, log); err != nil {
		log.Fatal("seed users", zap.Error(err))
	}
	if err := seedRooms(db, log); err != nil {
		log.Fatal("seed rooms", zap.Error(err))
	}
	if err := seedServices(db, log); err != nil {
		log.Fatal("seed services", zap.Error(err))
	}
	log.Info("seed complete")
}

func seedUsers(db *gorm.DB, log *zap.Logger) error {
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin12345"
	}

	users := []struct {
		email, name, password string
		role                  domain.UserRole
	}{
		{"admin@resort.local", "Administrator", adminPassword, domain.RoleAdmin},
		{"frontdesk@resort.local", "Front Desk", "frontdesk123", domain.RoleStaff},
	}

	for _, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		row := domain.User{
			Email:        u.email,
			PasswordHash: hash,
			Name:         u.name,
			Role:         u.role,
			IsActive:     true,
		}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			log.Info("user created", zap.String("email", u.email), zap.String("role", string(u.role)))
		}
	}
	return nil
}

func seedRooms(db *gorm.DB, log *zap.Logger) error {
	layout := []struct {
		roomType domain.RoomType
		price    float64
		capacity int
	}{
		{domain.RoomSingle, 350000, 1},
		{domain.RoomDouble, 500000, 2},
		{domain.RoomDouble, 500000, 2},
		{domain.RoomSuite, 900000, 3},
		{domain.RoomDeluxe, 1200000, 4},
	}

	created := 0
	for floor := 1; floor <= 3; floor++ {
		for i, l := range layout {
			monthly := l.price * 20
			room := domain.Room{
				RoomNumber: fmt.Sprintf("%d%02d", floor, i+1),
				Type:       l.roomType,
				Status:     domain.RoomAvailable,
				Price:      l.price,
				Floor:      floor,
				Capacity:   l.capacity,
				Amenities:  datatypes.NewJSONSlice([]string{"wifi", "air_conditioning", "tv"}),
			}
			if l.roomType == domain.RoomSuite || l.roomType == domain.RoomDeluxe {
				room.MonthlyPrice = &monthly
			}
			res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&room)
			if res.Error != nil {
				return res.Error
			}
			created += int(res.RowsAffected)
		}
	}
	log.Info("rooms seeded", zap.Int("created", created))
	return nil
}

func seedServices(db *gorm.DB, log *zap.Logger) error {
	services := []domain.ExtraService{
		{Name: "Breakfast", Category: "food", Price: 80000, Unit: "person"},
		{Name: "Laundry", Category: "housekeeping", Price: 50000, Unit: "kg"},
		{Name: "Airport transfer", Category: "transport", Price: 300000, Unit: "trip"},
		{Name: "Motorbike rental", Category: "transport", Price: 150000, Unit: "day"},
		{Name: "Spa massage", Category: "wellness", Price: 450000, Unit: "session"},
		{Name: "Minibar", Category: "food", Price: 0, Unit: "item"},
	}

	created := 0
	for i := range services {
		services[i].IsActive = true
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&services[i])
		if res.Error != nil {
			return res.Error
		}
		created += int(res.RowsAffected)
	}
	log.Info("services seeded", zap.Int("created", created))
	return nil
}
