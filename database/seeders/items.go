package seeders

import (
	"log"

	"gorm.io/gorm"
	itemModel "transport-office/models/item"
)

func SeedItems(db *gorm.DB) {
	log.Printf("🔍 Checking item catalog data integrity...")

	items := []itemModel.ItemCatalog{
		{Name: "CEMENT BAGS"},
		{Name: "RICE SACKS"},
		{Name: "WHEAT FLOUR BAGS"},
		{Name: "SUGAR SACKS"},
		{Name: "FERTILIZER BAGS"},
		{Name: "STEEL BARS"},
		{Name: "STEEL PIPES"},
		{Name: "TILES CARTONS"},
		{Name: "SANITARY FITTINGS"},
		{Name: "ELECTRIC CABLE ROLLS"},
		{Name: "PAINT BUCKETS"},
		{Name: "COTTON BALES"},
		{Name: "CLOTH ROLLS"},
		{Name: "YARN CARTONS"},
		{Name: "GHEE CARTONS"},
		{Name: "COOKING OIL TINS"},
		{Name: "BEVERAGE CRATES"},
		{Name: "BISCUIT CARTONS"},
		{Name: "SOAP CARTONS"},
		{Name: "TYRE SETS"},
		{Name: "AUTO PARTS CRATES"},
		{Name: "MACHINERY CRATES"},
		{Name: "FURNITURE ITEMS"},
		{Name: "PLASTIC GRANULE BAGS"},
		{Name: "PAPER REELS"},
		{Name: "GLASS SHEETS"},
		{Name: "MARBLE SLABS"},
		{Name: "SEED BAGS"},
		{Name: "POTATO SACKS"},
		{Name: "ONION SACKS"},
	}

	// Get all existing item names from database
	var existingNames []string
	if err := db.Model(&itemModel.ItemCatalog{}).Pluck("name", &existingNames).Error; err != nil {
		log.Printf("❌ Failed to fetch existing item names: %v", err)
		return
	}

	// Create a map for faster lookup of existing names
	existingNamesMap := make(map[string]bool)
	for _, name := range existingNames {
		existingNamesMap[name] = true
	}

	// Find missing items
	var missingItems []itemModel.ItemCatalog
	for _, item := range items {
		if !existingNamesMap[item.Name] {
			missingItems = append(missingItems, item)
		}
	}

	// Report status
	totalExpected := len(items)
	totalExisting := len(existingNames)
	totalMissing := len(missingItems)

	log.Printf("📊 Data integrity check:")
	log.Printf("   Expected items: %d", totalExpected)
	log.Printf("   Existing items: %d", totalExisting)
	log.Printf("   Missing items: %d", totalMissing)

	// If no missing data, we're done
	if totalMissing == 0 {
		log.Printf("✅ All catalog items are already present. No seeding needed.")
		return
	}

	// Seed missing data
	log.Printf("🌱 Seeding %d missing catalog items...", totalMissing)

	successCount := 0
	failureCount := 0

	for _, item := range missingItems {
		if err := db.Create(&item).Error; err != nil {
			log.Printf("❌ Failed to seed item %s: %v", item.Name, err)
			failureCount++
		} else {
			log.Printf("✅ Added: %s", item.Name)
			successCount++
		}
	}

	log.Printf("🎉 Seeding completed! Successfully inserted %d items, %d failures", successCount, failureCount)

	// Final verification
	var finalCount int64
	if err := db.Model(&itemModel.ItemCatalog{}).Count(&finalCount).Error; err == nil {
		log.Printf("📈 Database now contains %d catalog items", finalCount)
	}
}
