package pantry

import (
	"strings"
	"time"

	"github.com/idilsaglam/pantry/internal/model"
)

// Reason says which required draft field was missing.
type Reason int

const (
	MissingName Reason = iota + 1
	MissingCategory
)

func (r Reason) String() string {
	switch r {
	case MissingName:
		return "missing_name"
	case MissingCategory:
		return "missing_category"
	default:
		return "invalid"
	}
}

// ValidationError rejects a draft. It is comparable, so errors.Is works
// against ErrMissingName and ErrMissingCategory.
type ValidationError struct {
	Reason Reason
}

func (e ValidationError) Error() string {
	switch e.Reason {
	case MissingName:
		return "name is required"
	case MissingCategory:
		return "category is required"
	default:
		return "invalid item"
	}
}

var (
	ErrMissingName     = ValidationError{Reason: MissingName}
	ErrMissingCategory = ValidationError{Reason: MissingCategory}
)

// Valid is a draft that passed Validate.
// Only this package can build one, so the store cannot be fed raw drafts.
type Valid struct {
	name      string
	emoji     string
	category  model.Category
	quantity  string
	note      string
	expiresAt *time.Time
}

// Validate trims the draft and checks name and category.
func Validate(d model.Draft) (Valid, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Valid{}, ErrMissingName
	}
	cat, ok := model.ParseCategory(d.Category)
	if !ok {
		return Valid{}, ErrMissingCategory
	}
	v := Valid{
		name:     name,
		emoji:    strings.TrimSpace(d.Emoji),
		category: cat,
		quantity: strings.TrimSpace(d.Quantity),
		note:     strings.TrimSpace(d.Note),
	}
	if d.ExpiresAt != nil {
		t := *d.ExpiresAt
		v.expiresAt = &t
	}
	return v, nil
}
