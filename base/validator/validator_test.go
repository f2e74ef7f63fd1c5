package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "too short",
			address:    "0x000",
			expIsValid: false,
		},
		{
			desc:       "not hex",
			address:    "vitalik.eth",
			expIsValid: false,
		},
		{
			desc:       "checksummed",
			address:    "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
			expIsValid: true,
		},
		{
			desc:       "lower case",
			address:    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
			expIsValid: true,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}
