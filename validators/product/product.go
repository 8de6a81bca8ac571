package productValidators

import (
	"encoding/json"
	"marche/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ProductDTO is shared by create and update
type ProductDTO struct {
	CategoryID  uint            `json:"categoryId"`
	Name        string          `json:"name"        validate:"required,min=2,max=200"`
	NameFr      string          `json:"nameFr"      validate:"max=200"`
	Description string          `json:"description" validate:"max=5000"`
	Price       float64         `json:"price"       validate:"gte=0"`
	Stock       int             `json:"stock"       validate:"gte=0"`
	ImageURL    string          `json:"imageUrl"    validate:"omitempty,url"`
	Attributes  json.RawMessage `json:"attributes"`
}

type CategoryDTO struct {
	Name        string `json:"name"        validate:"required,min=2,max=100"`
	NameFr      string `json:"nameFr"      validate:"max=100"`
	Description string `json:"description" validate:"max=1000"`
}

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "Failed validation: " + fe.Tag()
		}
	} else {
		errors["body"] = err.Error()
	}
	return errors
}

func Product() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProductDTO)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedProduct", reqData)
		return c.Next()
	}
}

func Category() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryDTO)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}
