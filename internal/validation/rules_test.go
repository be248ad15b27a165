package validation

import (
	"strings"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/mist/internal/errors"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"prefixed", "0x" + strings.Repeat("ab", 32), false},
		{"unprefixed", strings.Repeat("ab", 32), false},
		{"empty is left to Required", "", false},
		{"too short", "0x" + strings.Repeat("ab", 31), true},
		{"too long", "0x" + strings.Repeat("ab", 33), true},
		{"not hex", "0x" + strings.Repeat("zz", 32), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, Identity)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNullifier(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"single byte", "01", false},
		{"max size", strings.Repeat("ff", 256), false},
		{"oversized", strings.Repeat("ff", 257), true},
		{"odd length", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, Nullifier)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHex(t *testing.T) {
	assert.NoError(t, validation.Validate("0xdeadbeef", Hex))
	assert.NoError(t, validation.Validate("deadbeef", Hex))
	assert.Error(t, validation.Validate("0xnothex", Hex))
}

func TestAssetType(t *testing.T) {
	assert.NoError(t, validation.Validate("0x2::sui::SUI", AssetType))
	assert.Error(t, validation.Validate(" 0x2::sui::SUI", AssetType))
	assert.Error(t, validation.Validate("   ", AssetType))
	assert.Error(t, validation.Validate(strings.Repeat("a", 256), AssetType))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("hello", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
	assert.Error(t, validation.Validate("\t\n", NotBlank))
}

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(validation.Validate("", validation.Required))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
