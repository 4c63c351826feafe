package catalog

import (
	"math/rand"
	"strings"

	"kirana-backend/internal/models"
)

// Category carries the product category tree plus the prefix used when
// generating product codes for that category.
type Category struct {
	models.ProductCategory
	Prefix string `json:"prefix"`
}

// Categories is the built-in category catalog presented to the entry form.
var Categories = []Category{
	{ProductCategory: models.ProductCategory{Name: "Etables", Subcategories: []string{
		"Staple Foods", "Spices and Condiments", "Edible Oils and Ghee", "Beverages",
		"Snacks and Namkeen", "Dairy Products", "Packaged Foods",
	}}, Prefix: "EAT"},
	{ProductCategory: models.ProductCategory{Name: "Clothes & Garments", Subcategories: []string{
		"Men's Wear", "Women's Wear", "Kids' Wear", "Winter Wear", "Traditional Wear",
	}}, Prefix: "CLO"},
	{ProductCategory: models.ProductCategory{Name: "Electronics", Subcategories: []string{
		"Mobile Phones", "Laptops", "Televisions", "Cameras", "Audio Systems",
	}}, Prefix: "TEC"},
	{ProductCategory: models.ProductCategory{Name: "Werables", Subcategories: []string{
		"Watches", "Fitness Bands", "Smartwatches", "Jewelry", "Accessories",
	}}, Prefix: "WER"},
	{ProductCategory: models.ProductCategory{Name: "Furniture", Subcategories: []string{
		"Living Room Furniture", "Bedroom Furniture", "Office Furniture",
		"Outdoor Furniture", "Storage Furniture",
	}}, Prefix: "FUR"},
	{ProductCategory: models.ProductCategory{Name: "Kitchenware", Subcategories: []string{
		"Household Cleaning Items", "Cookware", "Bakeware", "Kitchen Tools",
		"Tableware", "Storage Containers",
	}}, Prefix: "KIT"},
	{ProductCategory: models.ProductCategory{Name: "Hardware & Bathware", Subcategories: []string{
		"Toiletries", "Household Supplies", "Stationery", "Gardening Tools",
		"Bathroom Accessories", "Plumbing Supplies", "Electrical Supplies",
		"Paint and Painting Supplies",
	}}, Prefix: "HAR"},
	{ProductCategory: models.ProductCategory{Name: "Personal Care Products", Subcategories: []string{
		"Cosmetics", "Skin Care Products", "Hair Care Products", "Oral Care Products",
		"Fragrances", "Bath and Body Products", "Health and Wellness Products",
	}}, Prefix: "PER"},
}

const codeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode builds a scanner-facing product code: the category prefix
// (when the category is known) followed by six random characters.
func GenerateCode(categoryName string) string {
	var b strings.Builder
	if prefix := PrefixFor(categoryName); prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('-')
	}
	for i := 0; i < 6; i++ {
		b.WriteByte(codeChars[rand.Intn(len(codeChars))])
	}
	return b.String()
}

// PrefixFor returns the code prefix for a category name, "" when unknown.
func PrefixFor(categoryName string) string {
	for _, c := range Categories {
		if c.Name == categoryName {
			return c.Prefix
		}
	}
	return ""
}
