package catalog

import (
	"log"
	"strings"
	"time"

	"kirana-backend/internal/database"
	"kirana-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name         string   `json:"product_name"`
	Code         string   `json:"product_code"` // optional, generated when empty
	SellingPrice float64  `json:"selling_price"`
	CostPrice    float64  `json:"cost_price"`
	MRPPrice     float64  `json:"mrp_price"`
	CategoryName string   `json:"category_name"`
	Subcategory  []string `json:"subcategories"`
	Quantity     int      `json:"quantity"`
	DealerName   string   `json:"dealer_name"`
	Size         string   `json:"size"`
	Color        string   `json:"color"`
}

type UpdateProductRequest struct {
	Name         *string  `json:"product_name"`
	SellingPrice *float64 `json:"selling_price"`
	CostPrice    *float64 `json:"cost_price"`
	MRPPrice     *float64 `json:"mrp_price"`
	Quantity     *int     `json:"quantity"`
	DealerName   *string  `json:"dealer_name"`
	Size         *string  `json:"size"`
	Color        *string  `json:"color"`
}

// POST /api/products
func CreateProductHandler(cat *Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "product_name is required")
		}
		if body.SellingPrice <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "selling_price must be greater than 0")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity cannot be negative")
		}

		code := strings.TrimSpace(body.Code)
		if code == "" {
			code = GenerateCode(body.CategoryName)
		}
		if _, exists := cat.FindByCode(code); exists {
			return fiber.NewError(fiber.StatusConflict, "A product with this code already exists")
		}

		now := time.Now()
		product := models.Product{
			ProductID:    uuid.NewString(),
			Name:         body.Name,
			Code:         code,
			SellingPrice: body.SellingPrice,
			CostPrice:    body.CostPrice,
			MRPPrice:     body.MRPPrice,
			Category: models.ProductCategory{
				Name:          body.CategoryName,
				Subcategories: body.Subcategory,
			},
			Quantity:   body.Quantity,
			DealerName: body.DealerName,
			Size:       body.Size,
			Color:      body.Color,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := cat.Store().Set(c.Context(), database.Products, product.ProductID, product); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save product")
		}
		if err := cat.Refresh(c.Context()); err != nil {
			log.Println("catalog refresh after create failed:", err)
		}

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// GET /api/products
func ListProductsHandler(cat *Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products := cat.Products()

		if category := c.Query("category"); category != "" {
			filtered := make([]models.Product, 0, len(products))
			for _, p := range products {
				if p.Category.Name == category {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}

		return c.JSON(products)
	}
}

// PUT /api/products/:id
func UpdateProductHandler(cat *Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		fields := map[string]any{}
		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "product_name cannot be empty")
			}
			fields["productName"] = strings.TrimSpace(*body.Name)
		}
		if body.SellingPrice != nil {
			if *body.SellingPrice <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "selling_price must be greater than 0")
			}
			fields["sellingPrice"] = *body.SellingPrice
		}
		if body.CostPrice != nil {
			fields["costPrice"] = *body.CostPrice
		}
		if body.MRPPrice != nil {
			fields["mrpPrice"] = *body.MRPPrice
		}
		if body.Quantity != nil {
			if *body.Quantity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity cannot be negative")
			}
			fields["quantity"] = *body.Quantity
		}
		if body.DealerName != nil {
			fields["dealerName"] = *body.DealerName
		}
		if body.Size != nil {
			fields["size"] = *body.Size
		}
		if body.Color != nil {
			fields["color"] = *body.Color
		}
		if len(fields) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No fields to update")
		}
		fields["updatedAt"] = time.Now()

		if err := cat.Store().Update(c.Context(), database.Products, id, fields); err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to update product")
		}
		if err := cat.Refresh(c.Context()); err != nil {
			log.Println("catalog refresh after update failed:", err)
		}

		return c.JSON(fiber.Map{"message": "Product updated"})
	}
}

// DELETE /api/products/:id
//
// Bills keep denormalized item snapshots, so deleting a product never
// invalidates billing history.
func DeleteProductHandler(cat *Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := cat.Store().Delete(c.Context(), database.Products, id); err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete product")
		}
		if err := cat.Refresh(c.Context()); err != nil {
			log.Println("catalog refresh after delete failed:", err)
		}

		return c.JSON(fiber.Map{"message": "Product deleted"})
	}
}

// POST /api/products/refresh
func RefreshHandler(cat *Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := cat.Refresh(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Failed to refresh product catalog")
		}
		return c.JSON(fiber.Map{"count": cat.Len()})
	}
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Categories)
	}
}
