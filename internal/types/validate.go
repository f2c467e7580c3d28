package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports the fields that failed request validation.
// Validation failures are the only caller-visible errors in the prediction
// path; every downstream failure degrades instead.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid prediction request: " + strings.Join(e.Fields, ", ")
}

// Validate validates the PredictionRequest using the validator.
func (r *PredictionRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return &ValidationError{Fields: fields}
		}
		return fmt.Errorf("invalid prediction request: %w", err)
	}
	return nil
}
