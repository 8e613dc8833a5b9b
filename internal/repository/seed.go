package repository

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"equipreserve/internal/domain"
)

// Collection names are part of the stored format and must not change.
const (
	equipmentCollection    = "equipment"
	usersCollection        = "users"
	reservationsCollection = "reservations"
)

func defaultEquipment() any {
	return []domain.Equipment{
		{
			ID:          uuid.NewString(),
			Name:        "Epson X41 Projector",
			Type:        "Projector",
			Description: "3600 lumens, XGA resolution, HDMI/VGA connectivity.",
			Location:    "Storeroom - Block A",
			Available:   true,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Dell Inspiron Notebook",
			Type:        "Notebook",
			Description: "i5 processor, 8GB RAM, 256GB SSD, Windows 10.",
			Location:    "Storeroom - Block A",
			Available:   true,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Samsung 50\" Smart TV",
			Type:        "TV",
			Description: "4K Smart TV with Wi-Fi and Bluetooth.",
			Location:    "Storeroom - Block B",
			Available:   true,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Shure Wireless Microphone",
			Type:        "Microphone",
			Description: "Wireless microphone with receiver and rechargeable battery.",
			Location:    "Storeroom - Block B",
			Available:   true,
		},
	}
}

func defaultUsers() any {
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	teacherHash, _ := bcrypt.GenerateFromPassword([]byte("teacher123"), bcrypt.DefaultCost)

	return []domain.User{
		{
			ID:           uuid.NewString(),
			Name:         "Administrator",
			Email:        "admin@school.edu",
			PasswordHash: string(adminHash),
			Role:         domain.RoleAdmin,
		},
		{
			ID:           uuid.NewString(),
			Name:         "Teacher",
			Email:        "teacher@school.edu",
			PasswordHash: string(teacherHash),
			Role:         domain.RoleTeacher,
		},
	}
}
