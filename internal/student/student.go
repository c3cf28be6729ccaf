package student

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validation bounds. These mirror what the data file schema enforces,
// so a record that passes here also passes `rollbook check`.
const (
	MinAge  = 5
	MaxAge  = 120
	MinCGPA = 0.0
	MaxCGPA = 4.0
)

// Student is the one record type in the system. Field order matters:
// JSON round-trips and the CSV/XLSX exports all use declaration order.
type Student struct {
	RollNumber int     `json:"roll_number" validate:"gt=0"`
	Name       string  `json:"name" validate:"required,alphaspace"`
	Age        int     `json:"age" validate:"gte=5,lte=120"`
	CGPA       float64 `json:"cgpa" validate:"gte=0,lte=4"`
}

// FieldNames in declaration order, as used for export headers.
func FieldNames() []string {
	return []string{"roll_number", "name", "age", "cgpa"}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// alphaspace: letters and spaces only. validator's built-in "alpha"
	// rejects spaces, which real names need.
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return nameOK(fl.Field().String())
	})
	return v
}

func nameOK(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Validate checks every field constraint at once. Used on full records;
// the interactive prompts use the per-field helpers below instead so the
// operator gets one message per field.
func (s Student) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid student record: %w", err)
	}
	return nil
}

// Per-field checks return ok plus a message suitable for re-prompting.
// They never return errors: a failed check just means "ask again".

func ValidateName(name string) (bool, string) {
	if !nameOK(name) {
		return false, "Invalid name! Only letters and spaces allowed."
	}
	return true, ""
}

func ValidateRollNumber(roll int, taken func(int) bool) (bool, string) {
	if roll <= 0 {
		return false, "Roll number must be positive."
	}
	if taken != nil && taken(roll) {
		return false, "Roll number already in use! Must be unique."
	}
	return true, ""
}

func ValidateAge(age int) (bool, string) {
	if age < MinAge || age > MaxAge {
		return false, fmt.Sprintf("Age must be between %d and %d.", MinAge, MaxAge)
	}
	return true, ""
}

func ValidateCGPA(cgpa float64) (bool, string) {
	if cgpa < MinCGPA || cgpa > MaxCGPA {
		return false, fmt.Sprintf("CGPA must be between %.1f and %.1f.", MinCGPA, MaxCGPA)
	}
	return true, ""
}
