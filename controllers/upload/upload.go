package uploadController

import (
	"log"
	"marche/config"
	"marche/database"
	"marche/middleware"
	"marche/models"
	"marche/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 5 << 20 // 5 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadImage stores an image and returns its public URL
// POST /upload/image
func UploadImage(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	if file.Size > maxImageSize {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File must not exceed 5MB!", nil)
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only JPEG, PNG, GIF and WebP images are allowed!", nil)
	}

	savedPath, objectName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Failed to store upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	upload := models.Upload{
		UserID:      userId,
		Kind:        "image",
		ObjectName:  objectName,
		Filename:    file.Filename,
		URL:         utils.GetFileURL(savedPath),
		Size:        file.Size,
		ContentType: contentType,
	}

	if err := database.Database.Db.Create(&upload).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record upload!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded!", upload)
}
