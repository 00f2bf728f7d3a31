package seed

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/hash"
	"github.com/sumafit/medstore/internal/models"
)

// kenyaData maps counties to their sub-counties; each sub-county gets one
// area with the same name, matching the reference dataset shipped with the
// storefront.
var kenyaData = map[string][]string{
	"Nairobi": {"Kasarani", "Embakasi", "Westlands", "Makadara", "Dagoretti"},
	"Mombasa": {"Mvita", "Kisauni", "Nyali", "Likoni", "Changamwe"},
	"Kisumu":  {"Kisumu Central", "Nyakach", "Muhoroni", "Seme", "Nyando"},
	"Nakuru":  {"Nakuru Central", "Rongai", "Gilgil", "Molo", "Njoro"},
	"Kericho": {"Kericho Central", "Belgaum", "Litein", "Ainamoi", "Sigowet"},
}

// Run is idempotent: it only fills in what is missing, existing data is
// never touched.
func Run(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := seedLocations(db); err != nil {
		return fmt.Errorf("seed locations: %w", err)
	}
	if err := seedSettings(db); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

func seedAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pwHash, err := hash.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@sumafit.co.ke",
		PasswordHash: pwHash,
		Role:         models.RoleSuperAdmin,
		Phone:        "+254700000000",
		Location:     "Nairobi, Kenya",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user created (admin / admin123) - change the password")
	return nil
}

func seedLocations(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.KenyaCounty{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for countyName, subCounties := range kenyaData {
		county := models.KenyaCounty{Name: countyName}
		if err := db.Create(&county).Error; err != nil {
			return err
		}
		for _, subCountyName := range subCounties {
			subCounty := models.KenyaSubCounty{CountyID: county.ID, Name: subCountyName}
			if err := db.Create(&subCounty).Error; err != nil {
				return err
			}
			area := models.KenyaArea{SubCountyID: subCounty.ID, Name: subCountyName}
			if err := db.Create(&area).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Kenya locations seeded")
	return nil
}

func seedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SiteSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := models.SiteSettings{
		DefaultWhatsappNumber: "254700000000",
		ShowUrgentBanner:      true,
	}
	return db.Create(&settings).Error
}
