package domain

import (
	"strings"
	"unicode/utf8"
)

// AssetType tags the kind of value a pool, deposit or intent refers to (e.g. "0x2::sui::SUI").
type AssetType string

// Validate checks that the tag is non-blank, bounded and free of surrounding whitespace.
func (a AssetType) Validate() error {
	s := string(a)
	if s == "" || strings.TrimSpace(s) != s || utf8.RuneCountInString(s) > MaxAssetTypeLength {
		return ErrInvalidAssetType
	}
	return nil
}

// String returns the asset type tag.
func (a AssetType) String() string {
	return string(a)
}

// Funds is a transferable amount of a single asset.
type Funds struct {
	Asset  AssetType
	Amount uint64
}

// Validate checks the asset tag and that the amount is positive and storable.
func (f Funds) Validate() error {
	if err := f.Asset.Validate(); err != nil {
		return err
	}
	return ValidateAmount(f.Amount)
}

// ValidateAmount checks that amount is positive and does not exceed MaxAmount.
func ValidateAmount(amount uint64) error {
	if amount == 0 || amount > MaxAmount {
		return ErrInvalidAmount
	}
	return nil
}

// AddAmounts returns a+b, failing when the sum exceeds MaxAmount.
func AddAmounts(a, b uint64) (uint64, error) {
	if a > MaxAmount || b > MaxAmount-a {
		return 0, ErrInvalidAmount
	}
	return a + b, nil
}
