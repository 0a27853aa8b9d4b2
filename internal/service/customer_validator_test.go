package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/customers-api/internal/models"
)

func validationFields(t *testing.T, err error) *models.FieldErrors {
	t.Helper()
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	return &ve.Fields
}

func TestCustomerValidator_CreateRules(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantFields []string
		wantMsgs   map[string]string
	}{
		{
			name: "valid payload",
			body: `{"name":"Jhon Doe","email":"jhondoe@gmail.com","phone":"32929087824"}`,
		},
		{
			name:       "name is null",
			body:       `{"name":null,"email":"jhondoe@gmail.com","phone":"32929087824"}`,
			wantFields: []string{"name"},
			wantMsgs:   map[string]string{"name": "The name field is required."},
		},
		{
			name:       "phone is null",
			body:       `{"name":"Jhon Doe","email":"jhondoe@gmail.com","phone":null}`,
			wantFields: []string{"phone"},
			wantMsgs:   map[string]string{"phone": "The phone field is required."},
		},
		{
			name:       "email misspelled key",
			body:       `{"name":"Jhon Doe","emial":null,"phone":"32929087824"}`,
			wantFields: []string{"email"},
			wantMsgs:   map[string]string{"email": "The email field is required."},
		},
		{
			name:       "blank name after trimming",
			body:       `{"name":"   ","email":"jhondoe@gmail.com","phone":"32929087824"}`,
			wantFields: []string{"name"},
			wantMsgs:   map[string]string{"name": "The name field is required."},
		},
		{
			name:       "name is not a string",
			body:       `{"name":42,"email":"jhondoe@gmail.com","phone":"32929087824"}`,
			wantFields: []string{"name"},
			wantMsgs:   map[string]string{"name": "The name field must be a string."},
		},
		{
			name:       "invalid email",
			body:       `{"name":"Jhon Doe","email":"not-an-email","phone":"32929087824"}`,
			wantFields: []string{"email"},
			wantMsgs:   map[string]string{"email": "The email field must contain a valid email address."},
		},
		{
			name:       "phone too long",
			body:       `{"name":"Jhon Doe","email":"jhondoe@gmail.com","phone":"` + strings.Repeat("9", 21) + `"}`,
			wantFields: []string{"phone"},
			wantMsgs:   map[string]string{"phone": "The phone field cannot exceed 20 characters in length."},
		},
		{
			name: "phone at max length",
			body: `{"name":"Jhon Doe","email":"jhondoe@gmail.com","phone":"` + strings.Repeat("9", 20) + `"}`,
		},
		{
			name:       "malformed JSON reports every field",
			body:       `{"name": "Jhon`,
			wantFields: []string{"name", "email", "phone"},
		},
		{
			name:       "empty body",
			body:       ``,
			wantFields: []string{"name", "email", "phone"},
		},
		{
			name:       "JSON array instead of object",
			body:       `["Jhon Doe"]`,
			wantFields: []string{"name", "email", "phone"},
		},
		{
			name:       "errors are ordered by field",
			body:       `{"phone":"` + strings.Repeat("1", 25) + `","email":"bad","name":""}`,
			wantFields: []string{"name", "email", "phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewCustomerValidator(newFakeCustomerRepository())

			payload, err := v.Validate(context.Background(), CreateRules(), []byte(tt.body))

			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				assert.NotEmpty(t, payload.Name)
				return
			}

			assert.Nil(t, payload)
			fields := validationFields(t, err)
			assert.Equal(t, tt.wantFields, fields.Fields())
			for field, msg := range tt.wantMsgs {
				assert.Equal(t, []string{msg}, fields.Messages(field))
			}
		})
	}
}

func TestCustomerValidator_TrimsPayload(t *testing.T) {
	v := NewCustomerValidator(newFakeCustomerRepository())

	payload, err := v.Validate(context.Background(), CreateRules(),
		[]byte(`{"name":"  Jhon Doe ","email":" jhondoe@gmail.com","phone":"32929087824  "}`))
	require.NoError(t, err)

	assert.Equal(t, &models.CustomerPayload{
		Name:  "Jhon Doe",
		Email: "jhondoe@gmail.com",
		Phone: "32929087824",
	}, payload)
}

func TestCustomerValidator_Uniqueness(t *testing.T) {
	repo := newFakeCustomerRepository()
	ctx := context.Background()
	aliceID, err := repo.Insert(ctx, &models.CustomerPayload{Name: "Alice", Email: "alice@example.com", Phone: "111"})
	require.NoError(t, err)
	bobID, err := repo.Insert(ctx, &models.CustomerPayload{Name: "Bob", Email: "bob@example.com", Phone: "222"})
	require.NoError(t, err)

	v := NewCustomerValidator(repo)

	t.Run("create with taken email and phone", func(t *testing.T) {
		_, err := v.Validate(ctx, CreateRules(), []byte(`{"name":"Eve","email":"alice@example.com","phone":"222"}`))

		fields := validationFields(t, err)
		assert.Equal(t, []string{"email", "phone"}, fields.Fields())
		assert.Equal(t, []string{"The email field must contain a unique value."}, fields.Messages("email"))
		assert.Equal(t, []string{"The phone field must contain a unique value."}, fields.Messages("phone"))
	})

	t.Run("create with distinct values", func(t *testing.T) {
		_, err := v.Validate(ctx, CreateRules(), []byte(`{"name":"Eve","email":"eve@example.com","phone":"333"}`))
		assert.NoError(t, err)
	})

	t.Run("update keeps own email and phone", func(t *testing.T) {
		_, err := v.Validate(ctx, UpdateRules(aliceID), []byte(`{"name":"Alice B","email":"alice@example.com","phone":"111"}`))
		assert.NoError(t, err)
	})

	t.Run("update takes another customer's email", func(t *testing.T) {
		_, err := v.Validate(ctx, UpdateRules(aliceID), []byte(`{"name":"Alice","email":"bob@example.com","phone":"111"}`))

		fields := validationFields(t, err)
		assert.Equal(t, []string{"email"}, fields.Fields())
	})

	t.Run("soft-deleted customer frees its values", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, bobID))

		_, err := v.Validate(ctx, CreateRules(), []byte(`{"name":"Bobby","email":"bob@example.com","phone":"222"}`))
		assert.NoError(t, err)
	})

	t.Run("syntax errors skip the uniqueness lookup", func(t *testing.T) {
		_, err := v.Validate(ctx, CreateRules(), []byte(`{"name":"Eve","email":"alice@","phone":"111"}`))

		fields := validationFields(t, err)
		assert.Equal(t, []string{"The email field must contain a valid email address."}, fields.Messages("email"))
		assert.Equal(t, []string{"The phone field must contain a unique value."}, fields.Messages("phone"))
	})
}

func TestCustomerValidator_CheckerFailure(t *testing.T) {
	repo := newFakeCustomerRepository()
	repo.existsErr = models.ErrStorage
	v := NewCustomerValidator(repo)

	_, err := v.Validate(context.Background(), CreateRules(),
		[]byte(`{"name":"Jhon Doe","email":"jhondoe@gmail.com","phone":"32929087824"}`))

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStorage))

	var ve *models.ValidationError
	assert.False(t, errors.As(err, &ve))
}
