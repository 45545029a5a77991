package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type dateKeyStruct struct {
	DateKey string `validate:"required,datekey"`
}

type attemptIndexStruct struct {
	Index int `validate:"attemptindex"`
}

func TestValidateDateKey(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(dateKeyStruct{DateKey: "2026-03-14"}))
	assert.Error(t, v.ValidateStruct(dateKeyStruct{DateKey: "14-03-2026"}))
	assert.Error(t, v.ValidateStruct(dateKeyStruct{DateKey: "2026-3-4"}))
	assert.Error(t, v.ValidateStruct(dateKeyStruct{DateKey: ""}))
}

func TestValidateAttemptIndex(t *testing.T) {
	v := GetValidator()

	for _, idx := range []int{1, 2, 3, 998, 999} {
		assert.NoError(t, v.ValidateStruct(attemptIndexStruct{Index: idx}), "index %d", idx)
	}
	for _, idx := range []int{0, -1, 4, 100, 997} {
		assert.Error(t, v.ValidateStruct(attemptIndexStruct{Index: idx}), "index %d", idx)
	}
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(dateKeyStruct{DateKey: "bogus"})
	formatted := FormatValidationError(err)
	assert.Equal(t, "Expected a YYYY-MM-DD date", formatted["datekey"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
