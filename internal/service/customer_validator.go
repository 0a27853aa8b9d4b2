package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Raymond9734/customers-api/internal/models"
)

// UniquenessChecker looks up whether a value is already taken by another
// active customer
type UniquenessChecker interface {
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsByPhone(ctx context.Context, phone string, excludeID int64) (bool, error)
}

// RuleSet names the rules a payload is checked against
type RuleSet struct {
	Name string
	// ExcludeID is left out of uniqueness checks; 0 excludes nothing.
	ExcludeID int64
}

// CreateRules is the rule set for new customers
func CreateRules() RuleSet {
	return RuleSet{Name: "create"}
}

// UpdateRules is the rule set for updating customer id, whose own email and
// phone do not count as duplicates
func UpdateRules(id int64) RuleSet {
	return RuleSet{Name: "update", ExcludeID: id}
}

var payloadFields = []string{"name", "email", "phone"}

// CustomerValidator checks customer payloads
type CustomerValidator struct {
	validate *validator.Validate
	checker  UniquenessChecker
}

// NewCustomerValidator creates a validator backed by checker for uniqueness
func NewCustomerValidator(checker UniquenessChecker) *CustomerValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CustomerValidator{
		validate: v,
		checker:  checker,
	}
}

// Validate decodes body and evaluates rules against it. Rule failures are
// returned as *models.ValidationError; a body that is not a JSON object is
// treated as an empty payload. Any other error comes from the uniqueness
// lookup.
func (v *CustomerValidator) Validate(ctx context.Context, rules RuleSet, body []byte) (*models.CustomerPayload, error) {
	var fieldErrs models.FieldErrors
	payload := decodePayload(body, &fieldErrs)
	payload.Normalize()

	if err := v.validate.Struct(payload); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("failed to validate customer: %w", err)
		}
		byField := make(map[string]validator.FieldError, len(ve))
		for _, fe := range ve {
			if _, ok := byField[fe.Field()]; !ok {
				byField[fe.Field()] = fe
			}
		}
		for _, field := range payloadFields {
			if fe, ok := byField[field]; ok && !fieldErrs.Has(field) {
				fieldErrs.Add(field, formatFieldError(fe))
			}
		}
	}

	if !fieldErrs.Has("email") {
		taken, err := v.checker.ExistsByEmail(ctx, payload.Email, rules.ExcludeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			fieldErrs.Add("email", uniqueMessage("email"))
		}
	}

	if !fieldErrs.Has("phone") {
		taken, err := v.checker.ExistsByPhone(ctx, payload.Phone, rules.ExcludeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
		}
		if taken {
			fieldErrs.Add("phone", uniqueMessage("phone"))
		}
	}

	if fieldErrs.Len() > 0 {
		return nil, &models.ValidationError{Fields: orderFields(fieldErrs)}
	}

	return payload, nil
}

// decodePayload reads the known fields out of body, reporting missing,
// null and non-string values into errs
func decodePayload(body []byte, errs *models.FieldErrors) *models.CustomerPayload {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		raw = map[string]json.RawMessage{}
	}

	values := make(map[string]string, len(payloadFields))
	for _, field := range payloadFields {
		value, ok := raw[field]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			errs.Add(field, fmt.Sprintf("The %s field is required.", field))
			continue
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			errs.Add(field, fmt.Sprintf("The %s field must be a string.", field))
			continue
		}
		values[field] = s
	}

	return &models.CustomerPayload{
		Name:  values["name"],
		Email: values["email"],
		Phone: values["phone"],
	}
}

// orderFields rebuilds errs in payload field order
func orderFields(errs models.FieldErrors) models.FieldErrors {
	var ordered models.FieldErrors
	for _, field := range payloadFields {
		for _, msg := range errs.Messages(field) {
			ordered.Add(field, msg)
		}
	}
	return ordered
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "email":
		return fmt.Sprintf("The %s field must contain a valid email address.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field cannot exceed %s characters in length.", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("The %s field failed validation for '%s'.", fe.Field(), fe.Tag())
}

func uniqueMessage(field string) string {
	return fmt.Sprintf("The %s field must contain a unique value.", field)
}
