package seeders

import (
	"log"

	"gorm.io/gorm"
	cityModel "transport-office/models/city"
)

func SeedCities(db *gorm.DB) {
	log.Printf("🔍 Checking city master data integrity...")

	cities := []cityModel.City{
		{Name: "KARACHI"},
		{Name: "LAHORE"},
		{Name: "FAISALABAD"},
		{Name: "RAWALPINDI"},
		{Name: "ISLAMABAD"},
		{Name: "MULTAN"},
		{Name: "HYDERABAD"},
		{Name: "GUJRANWALA"},
		{Name: "PESHAWAR"},
		{Name: "QUETTA"},
		{Name: "SIALKOT"},
		{Name: "SARGODHA"},
		{Name: "BAHAWALPUR"},
		{Name: "SUKKUR"},
		{Name: "LARKANA"},
		{Name: "SHEIKHUPURA"},
		{Name: "RAHIM YAR KHAN"},
		{Name: "JHANG"},
		{Name: "DERA GHAZI KHAN"},
		{Name: "GUJRAT"},
		{Name: "SAHIWAL"},
		{Name: "WAH CANTT"},
		{Name: "MARDAN"},
		{Name: "KASUR"},
		{Name: "OKARA"},
		{Name: "MINGORA"},
		{Name: "NAWABSHAH"},
		{Name: "CHINIOT"},
		{Name: "KOTRI"},
		{Name: "KAMOKE"},
		{Name: "HAFIZABAD"},
		{Name: "SADIQABAD"},
		{Name: "MIRPUR KHAS"},
		{Name: "BUREWALA"},
		{Name: "KOHAT"},
		{Name: "KHANEWAL"},
		{Name: "DERA ISMAIL KHAN"},
		{Name: "TURBAT"},
		{Name: "MUZAFFARGARH"},
		{Name: "ABBOTTABAD"},
		{Name: "MANDI BAHAUDDIN"},
		{Name: "SHIKARPUR"},
		{Name: "JACOBABAD"},
		{Name: "JHELUM"},
		{Name: "KHANPUR"},
		{Name: "KHAIRPUR"},
		{Name: "KHUZDAR"},
		{Name: "PAKPATTAN"},
		{Name: "HUB"},
		{Name: "DASKA"},
		{Name: "GOJRA"},
		{Name: "DADU"},
		{Name: "VEHARI"},
		{Name: "TANDO ADAM"},
		{Name: "NOWSHERA"},
		{Name: "SWABI"},
		{Name: "ATTOCK"},
		{Name: "BADIN"},
		{Name: "CHAKWAL"},
		{Name: "MIANWALI"},
	}

	// Get all existing city names from database
	var existingNames []string
	if err := db.Model(&cityModel.City{}).Pluck("name", &existingNames).Error; err != nil {
		log.Printf("❌ Failed to fetch existing city names: %v", err)
		return
	}

	// Create a map for faster lookup of existing names
	existingNamesMap := make(map[string]bool)
	for _, name := range existingNames {
		existingNamesMap[name] = true
	}

	// Find missing cities
	var missingCities []cityModel.City
	for _, city := range cities {
		if !existingNamesMap[city.Name] {
			missingCities = append(missingCities, city)
		}
	}

	// Report status
	totalExpected := len(cities)
	totalExisting := len(existingNames)
	totalMissing := len(missingCities)

	log.Printf("📊 Data integrity check:")
	log.Printf("   Expected cities: %d", totalExpected)
	log.Printf("   Existing cities: %d", totalExisting)
	log.Printf("   Missing cities: %d", totalMissing)

	// If no missing data, we're done
	if totalMissing == 0 {
		log.Printf("✅ All cities are already present. No seeding needed.")
		return
	}

	// Seed missing data
	log.Printf("🌱 Seeding %d missing cities...", totalMissing)

	successCount := 0
	failureCount := 0

	for _, city := range missingCities {
		if err := db.Create(&city).Error; err != nil {
			log.Printf("❌ Failed to seed city %s: %v", city.Name, err)
			failureCount++
		} else {
			log.Printf("✅ Added: %s", city.Name)
			successCount++
		}
	}

	log.Printf("🎉 Seeding completed! Successfully inserted %d cities, %d failures", successCount, failureCount)

	// Final verification
	var finalCount int64
	if err := db.Model(&cityModel.City{}).Count(&finalCount).Error; err == nil {
		log.Printf("📈 Database now contains %d cities", finalCount)
	}
}
