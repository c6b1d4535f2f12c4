package validation

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "crm/internal/errors"
)

const (
	MsgInvalidEmail  = "Invalid email format"
	MsgEmailExists   = "Email already exists"
	MsgInvalidPhone  = "Invalid phone format. Use +1234567890 or 123-456-7890"
	MsgInvalidPrice  = "Invalid decimal format for price"
	MsgPriceScale    = "Price must have at most 2 decimal places"
	MsgPriceNotPos   = "Price must be positive"
	MsgPriceTooLarge = "Price must be below 100000000"
	MsgNegativeStock = "Stock cannot be negative"
	MsgNameTooLong   = "Name must be at most 100 characters"
)

var (
	phonePattern = regexp.MustCompile(`^(\+\d{10,15}|\d{3}-\d{3}-\d{4})$`)
	maxPrice     = decimal.New(1, 8)

	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("crm_phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

func ValidateEmail(email string) error {
	if err := engine().Var(email, "required,email,max=100"); err != nil {
		return apperrors.NewInvalidFormatError("email", MsgInvalidEmail)
	}
	return nil
}

// ValidateName bounds the name by characters, as VARCHAR(100) does.
func ValidateName(name string) error {
	if err := engine().Var(name, "max=100"); err != nil {
		return apperrors.NewInvalidFormatError("name", MsgNameTooLong)
	}
	return nil
}

// ValidatePhone accepts a missing or empty phone. Otherwise the value must be
// +<10-15 digits> or ddd-ddd-dddd.
func ValidatePhone(phone *string) error {
	if phone == nil || *phone == "" {
		return nil
	}
	if err := engine().Var(*phone, "crm_phone"); err != nil {
		return apperrors.NewInvalidFormatError("phone", MsgInvalidPhone)
	}
	return nil
}

// ParsePrice parses a price into an exact decimal. Prices are stored as
// DECIMAL(10,2).
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, apperrors.NewInvalidFormatError("price", MsgInvalidPrice)
	}

	if !price.IsPositive() {
		return decimal.Decimal{}, apperrors.NewOutOfRangeError("price", MsgPriceNotPos)
	}

	if price.GreaterThanOrEqual(maxPrice) {
		return decimal.Decimal{}, apperrors.NewOutOfRangeError("price", MsgPriceTooLarge)
	}

	if !price.Equal(price.Round(2)) {
		return decimal.Decimal{}, apperrors.NewInvalidFormatError("price", MsgPriceScale)
	}

	return price, nil
}

func ValidateStock(stock int) error {
	if stock < 0 {
		return apperrors.NewOutOfRangeError("stock", MsgNegativeStock)
	}
	return nil
}
