// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"slices"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/stoicaandrei/monney2/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("wallet_currency", validateWalletCurrency)
	_ = v.RegisterValidation("wallet_color", validateWalletColor)
	_ = v.RegisterValidation("wallet_icon", validateWalletIcon)
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("category_type", validateCategoryType)
}

func validateWalletCurrency(fl validator.FieldLevel) bool {
	return slices.Contains(models.Currencies, models.WalletCurrency(fl.Field().String()))
}

func validateWalletColor(fl validator.FieldLevel) bool {
	return slices.Contains(models.WalletColors, models.WalletColor(fl.Field().String()))
}

func validateWalletIcon(fl validator.FieldLevel) bool {
	return slices.Contains(models.WalletIcons, models.WalletIcon(fl.Field().String()))
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}
