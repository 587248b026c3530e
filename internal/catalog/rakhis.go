package catalog

import "github.com/safar/rakhi-store/internal/models"

const imageBase = "https://res.cloudinary.com/dx35lfv49/image/upload/"

var rakhis = []models.Product{
	{ID: "IMG_20250707_221915", Title: "Elegant Thread Rakhi", BasePrice: 120, DiscountPercent: 40,
		Image: imageBase + "v1753726754/IMG_20250707_221915.jpg"},
	{ID: "IMG_20250707_222238", Title: "Traditional Beads Rakhi", BasePrice: 120, DiscountPercent: 40,
		Image: imageBase + "v1753726756/IMG_20250707_222238.jpg"},
	{ID: "IMG_20250707_222103", Title: "Simple Grace Rakhi", BasePrice: 80, DiscountPercent: 20,
		Image: imageBase + "v1753726757/IMG_20250707_222103.jpg"},
	{ID: "IMG_20250707_222735", Title: "Royal Red Rakhi", BasePrice: 80, DiscountPercent: 20,
		Image: imageBase + "v1753726761/IMG_20250707_222735.jpg"},
	{ID: "IMG_20250707_222554", Title: "Pearl Designer Rakhi", BasePrice: 120, DiscountPercent: 40,
		Image: imageBase + "v1753726762/IMG_20250707_222554.jpg"},

	// 2025-07-29 uploads
	{ID: "IMG_20250729_114338_1", Title: "Golden Stone Rakhi", BasePrice: 150, DiscountPercent: 45,
		Image: imageBase + "v1753777815/WhatsApp%20Image%202025-07-29%20at%2011.43.38_6a4f12e0.jpg"},
	{ID: "IMG_20250729_114339_1", Title: "Rustic Charm Rakhi", BasePrice: 130, DiscountPercent: 40,
		Image: imageBase + "v1753777816/WhatsApp%20Image%202025-07-29%20at%2011.43.39_2f92630f.jpg"},
	{ID: "IMG_20250729_114339_2", Title: "Twin Pearl Rakhi", BasePrice: 110, DiscountPercent: 30,
		Image: imageBase + "v1753777817/WhatsApp%20Image%202025-07-29%20at%2011.43.39_032298f3.jpg"},
	{ID: "IMG_20250729_114338_2", Title: "Red Feather Rakhi", BasePrice: 140, DiscountPercent: 40,
		Image: imageBase + "v1753777818/WhatsApp%20Image%202025-07-29%20at%2011.43.38_a3cbeee5.jpg"},
	{ID: "IMG_20250729_114339_3", Title: "Antique Emblem Rakhi", BasePrice: 135, DiscountPercent: 40,
		Image: imageBase + "v1753777819/WhatsApp%20Image%202025-07-29%20at%2011.43.39_a760ab12.jpg"},
	{ID: "IMG_20250729_114340_1", Title: "Threaded Diamond Rakhi", BasePrice: 160, DiscountPercent: 50,
		Image: imageBase + "v1753777820/WhatsApp%20Image%202025-07-29%20at%2011.43.40_5451bc86.jpg"},
	{ID: "IMG_20250729_114340_2", Title: "Zari Pearl Rakhi", BasePrice: 115, DiscountPercent: 30,
		Image: imageBase + "v1753777821/WhatsApp%20Image%202025-07-29%20at%2011.43.40_29d3c9dc.jpg"},
	{ID: "IMG_20250729_114341_1", Title: "Elegant Floral Rakhi", BasePrice: 125, DiscountPercent: 30,
		Image: imageBase + "v1753777822/WhatsApp%20Image%202025-07-29%20at%2011.43.41_c90ca9c0.jpg"},
	{ID: "IMG_20250729_114340_3", Title: "Red Gemstone Rakhi", BasePrice: 145, DiscountPercent: 40,
		Image: imageBase + "v1753777823/WhatsApp%20Image%202025-07-29%20at%2011.43.40_90609f14.jpg"},
	{ID: "IMG_20250729_114341_2", Title: "Classic Rudraksha Rakhi", BasePrice: 95, DiscountPercent: 20,
		Image: imageBase + "v1753777824/WhatsApp%20Image%202025-07-29%20at%2011.43.41_50feea60.jpg"},
	{ID: "IMG_20250729_114342_1", Title: "Minimal Designer Rakhi", BasePrice: 105, DiscountPercent: 25,
		Image: imageBase + "v1753777825/WhatsApp%20Image%202025-07-29%20at%2011.43.42_ab1eb195.jpg"},
	{ID: "IMG_20250729_114342_2", Title: "Silver Stone Rakhi", BasePrice: 135, DiscountPercent: 40,
		Image: imageBase + "v1753777826/WhatsApp%20Image%202025-07-29%20at%2011.43.42_ea071a48.jpg"},
}
