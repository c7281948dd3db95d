package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Age           *int   `json:"age" validate:"required,min=0,max=120"`
	Province      string `json:"province" validate:"required"`
	SmokingStatus string `json:"smoking_status" validate:"required,oneof=smoker non-smoker"`
	Email         string `json:"email" validate:"omitempty,email"`
}

func TestValidateStructValid(t *testing.T) {
	age := 30
	req := sampleRequest{Age: &age, Province: "ON", SmokingStatus: "non-smoker"}

	assert.Nil(t, ValidateStruct(req))
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	req := sampleRequest{Province: "ON", SmokingStatus: "maybe"}

	errs := ValidateStruct(req)

	require.Len(t, errs, 2)
	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	assert.Equal(t, "age is required", fields["age"])
	assert.Equal(t, "smoking_status must be one of: smoker, non-smoker", fields["smoking_status"])
}

func TestValidateStructRangeMessages(t *testing.T) {
	age := 150
	req := sampleRequest{Age: &age, Province: "ON", SmokingStatus: "smoker"}

	errs := ValidateStruct(req)

	require.Len(t, errs, 1)
	assert.Equal(t, "age", errs[0].Field)
	assert.Equal(t, "age must be at most 120", errs[0].Message)
}

func TestValidateStructEmailMessage(t *testing.T) {
	age := 30
	req := sampleRequest{Age: &age, Province: "ON", SmokingStatus: "smoker", Email: "not-an-email"}

	errs := ValidateStruct(req)

	require.Len(t, errs, 1)
	assert.Equal(t, "email must be a valid email", errs[0].Message)
}

func TestValidateStructZeroThroughPointerPassesRequired(t *testing.T) {
	age := 0
	req := sampleRequest{Age: &age, Province: "ON", SmokingStatus: "smoker"}

	assert.Nil(t, ValidateStruct(req))
}
