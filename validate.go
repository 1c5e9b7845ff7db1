package issues

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmgilman/go/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("milestone", isMilestoneFilter); err != nil {
		panic(err)
	}
	return v
}

// isMilestoneFilter accepts a positive milestone number, "*" or "none".
func isMilestoneFilter(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "*" || value == "none" {
		return true
	}
	n, err := strconv.Atoi(value)
	return err == nil && n > 0
}

// validateStruct runs tag validation and reports the first failing field.
func validateStruct(name string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.WrapWithContext(err, errors.CodeInvalidInput,
			fmt.Sprintf("invalid %s: %s failed %q", name, fe.Field(), fe.Tag()),
			map[string]interface{}{
				"field": fe.Namespace(),
				"rule":  fe.Tag(),
			})
	}

	return errors.Wrap(err, errors.CodeInvalidInput, "invalid "+name)
}

// ensureNotBlank rejects empty and whitespace-only identifiers.
func ensureNotBlank(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return newArgumentEmptyError(name)
	}
	return nil
}

func ensureRepository(owner, repo string) error {
	if err := ensureNotBlank("owner", owner); err != nil {
		return err
	}
	return ensureNotBlank("repo", repo)
}

func ensurePositive(name string, value int) error {
	if value <= 0 {
		return newInvalidInputError(name, fmt.Sprintf("must be positive, got %d", value))
	}
	return nil
}
