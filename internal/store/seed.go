package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/qazasd2518995/furhub/internal/auth"
	"github.com/qazasd2518995/furhub/internal/models"
)

const (
	AdminUsername = "admin"
	AdminEmail    = "admin@furhub.local"
	AdminPassword = "admin123"

	DefaultCategory = "Pet Supplies"
)

// demoCatalog is the fixed showcase inventory inserted on first boot.
var demoCatalog = []models.Item{
	{Content: "Retractable pet leash 5m - comfortable non-slip grip with one-touch lock", Price: "399", Image: "d11cc63cf52e0c9e.png"},
	{Content: "Automatic ball launcher - interactive dog training toy, 3 distance settings", Price: "1280", Image: "ec5834f792e018b8.png"},
	{Content: "Greenies dental chews, original flavor, regular size for medium dogs, 12 pack", Price: "450", Image: "efaceca171ec65f4.png"},
	{Content: "Milk-Bone dog biscuits - crunchy teeth-cleaning treats", Price: "320", Image: "b52be015fa732b09.png"},
	{Content: "Self-cleaning pet grooming brush - one-click fur removal, gentle on skin", Price: "289", Image: "pet_brush_01.jpg"},
	{Content: "Warm fleece pet sweater with D-ring leash hole, three colors (grey/blue/brown)", Price: "459", Image: "pet_sweater_01.jpg"},
	{Content: "Elevated bamboo pet bowl stand - double bowls, neck-friendly tilt, for cats and dogs", Price: "680", Image: "pet_bowl_stand_01.jpg"},
	{Content: "Semi-enclosed cat litter box - white/grey, anti-splash design, roomy and easy to clean", Price: "890", Image: "cat_litter_box_01.jpg"},
	{Content: "PETSTRO three-wheel pet stroller - mesh windows, foldable, carries up to 25kg", Price: "2480", Image: "pet_stroller_01.jpg"},
	{Content: "Plush pet bed with bone pattern - removable washable cover, for medium and large dogs", Price: "750", Image: "pet_bed_01.jpg"},
	{Content: "Pet diapers - super absorbent, leak-proof sides, size M 12 pack", Price: "320", Image: "pet_diaper_01.jpg"},
	{Content: "Portland Pet Food handmade dog treat combo - gingerbread/bacon/pumpkin cookies, grain free", Price: "580", Image: "dog_treats_combo_01.jpg"},
	{Content: "Cesar wet dog food - beef, cheese and vegetable terrine, 100g can", Price: "45", Image: "cesar_dog_food_01.jpg"},
	{Content: "Professional pet nail clippers - stainless steel blades with safety lock", Price: "199", Image: "pet_nail_clipper_01.jpg"},
	{Content: "Organic chicken rawhide rolls - all natural dental chews, 300g value pack", Price: "420", Image: "rawhide_sticks_01.jpg"},
}

// Seed makes the process bootable: it guarantees the admin account exists and
// fills an empty catalog with demo products. Safe to run on every startup.
func (s *Store) Seed() error {
	admin, err := s.ensureAdmin()
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := s.seedDemoCatalog(admin.ID); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

func (s *Store) ensureAdmin() (*models.User, error) {
	admin, err := s.GetUserByUsername(AdminUsername)
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		return nil, err
	}
	admin = &models.User{
		Username:     AdminUsername,
		Email:        AdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := s.CreateUser(admin); err != nil {
		return nil, err
	}
	slog.Info("Created default admin account", "username", AdminUsername)
	return admin, nil
}

func (s *Store) seedDemoCatalog(adminID int) error {
	count, err := s.CountItems()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, item := range demoCatalog {
		item.Store = "FurHub Official Store"
		item.Category = DefaultCategory
		item.UserID = adminID
		if err := s.CreateItem(&item); err != nil {
			return err
		}
	}
	slog.Info("Seeded demo catalog", "items", len(demoCatalog))
	return nil
}
