package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/cache"
	"github.com/mkhaliddev/foodrush/internal/models"
	"github.com/mkhaliddev/foodrush/internal/mykafka"
	"github.com/mkhaliddev/foodrush/internal/service/search"
	"github.com/mkhaliddev/foodrush/internal/uploads"
)

type FoodHandler struct {
	DB       *gorm.DB
	ES       *elasticsearch.Client
	Index    string
	Cache    *cache.FoodCache
	Files    *uploads.Storage
	Producer *mykafka.Producer
	Timeout  time.Duration
}

func (h *FoodHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "food_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// reindex keeps the search index in step with the store. Best effort: a
// search document lagging the store is acceptable, a failed request is not.
func (h *FoodHandler) reindex(c echo.Context, item *models.FoodItem, deleted bool) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var err error
	if deleted {
		err = search.DeleteFood(ctx, h.ES, h.Index, item.ID)
	} else {
		err = search.IndexFood(ctx, h.ES, h.Index, *item)
	}
	if err != nil {
		c.Logger().Errorf("search index update error: %v", err)
	}
}

// AddFood handles the multipart seller form: image file plus the food
// fields, with options as a JSON-encoded array.
func (h *FoodHandler) AddFood(c echo.Context) error {
	category := c.FormValue("category")
	name := c.FormValue("name")
	description := c.FormValue("description")
	sellerID := c.FormValue("sellerId")
	rawOptions := c.FormValue("options")

	if category == "" || name == "" || sellerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Please fill in all required fields."})
	}

	var options models.OptionList
	if rawOptions != "" {
		if err := json.Unmarshal([]byte(rawOptions), &options); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid options"})
		}
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Image is required"})
	}
	imageURL, err := h.Files.Save(fh)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to add food item."})
	}

	item := models.FoodItem{
		SellerID:    sellerID,
		Category:    category,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		Options:     options,
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()
	if err := h.DB.WithContext(ctx).Create(&item).Error; err != nil {
		h.Files.Remove(c.Request().Context(), imageURL)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Failed to add food item."})
	}

	h.Cache.Invalidate(c.Request().Context())
	h.reindex(c, &item, false)
	h.publish(c, item.ID, map[string]any{
		"type":     "food_added",
		"foodID":   item.ID,
		"sellerID": item.SellerID,
		"name":     item.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Food item added successfully!"})
}

func (h *FoodHandler) SellerFoods(c echo.Context) error {
	sellerID := c.Param("sellerId")

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	items := []models.FoodItem{}
	if err := h.DB.WithContext(ctx).Where("seller_id = ?", sellerID).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch food items"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *FoodHandler) GetFood(c echo.Context) error {
	foodID := c.Param("foodid")

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	var item models.FoodItem
	if err := h.DB.WithContext(ctx).First(&item, "id = ?", foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Food item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error fetching food item"})
	}
	return c.JSON(http.StatusOK, item)
}

// GetFoods serves the public catalog for buyers, read through the cache.
func (h *FoodHandler) GetFoods(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	if items, ok := h.Cache.GetCatalog(ctx); ok {
		return c.JSON(http.StatusOK, items)
	}

	items := []models.FoodItem{}
	if err := h.DB.WithContext(ctx).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch food items"})
	}
	h.Cache.SetCatalog(ctx, items)
	return c.JSON(http.StatusOK, items)
}

// UpdateFood replaces the food fields and, when a new image is uploaded,
// swaps the stored file. The superseded file is removed best effort.
func (h *FoodHandler) UpdateFood(c echo.Context) error {
	foodID := c.Param("foodid")

	category := c.FormValue("category")
	name := c.FormValue("name")
	description := c.FormValue("description")
	rawOptions := c.FormValue("options")

	if category == "" || name == "" || rawOptions == "" || description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Please fill in all required fields."})
	}

	var options models.OptionList
	if err := json.Unmarshal([]byte(rawOptions), &options); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid options"})
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	var item models.FoodItem
	if err := h.DB.WithContext(ctx).First(&item, "id = ?", foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Food item not found."})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "An error occurred while updating the food item."})
	}

	item.Category = category
	item.Name = name
	item.Description = description
	item.Options = options

	oldImage := ""
	if fh, err := c.FormFile("image"); err == nil {
		imageURL, err := h.Files.Save(fh)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "An error occurred while updating the food item."})
		}
		oldImage = item.ImageURL
		item.ImageURL = imageURL
	}

	if err := h.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "An error occurred while updating the food item."})
	}
	if oldImage != "" {
		h.Files.Remove(c.Request().Context(), oldImage)
	}

	h.Cache.Invalidate(c.Request().Context())
	h.reindex(c, &item, false)
	h.publish(c, item.ID, map[string]any{
		"type":   "food_updated",
		"foodID": item.ID,
		"name":   item.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Food item updated successfully!"})
}

func (h *FoodHandler) DeleteFood(c echo.Context) error {
	foodID := c.Param("id")

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	var item models.FoodItem
	if err := h.DB.WithContext(ctx).First(&item, "id = ?", foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Food item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete food item"})
	}

	if err := h.DB.WithContext(ctx).Delete(&models.FoodItem{}, "id = ?", foodID).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete food item"})
	}

	h.Files.Remove(c.Request().Context(), item.ImageURL)
	h.Cache.Invalidate(c.Request().Context())
	h.reindex(c, &item, true)
	h.publish(c, item.ID, map[string]any{
		"type":   "food_deleted",
		"foodID": item.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Food item deleted successfully"})
}
