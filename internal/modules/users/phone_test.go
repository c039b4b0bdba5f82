package users_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamlekside2/QuickGift/internal/modules/users"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"+2348031234567", "+2348031234567", true},
		{"2348031234567", "+2348031234567", true},
		{"08031234567", "+2348031234567", true},
		{"0803 123 4567", "+2348031234567", true},
		{"0803-123-4567", "+2348031234567", true},
		{"07012345678", "+2347012345678", true},
		{"09112345678", "+2349112345678", true},
		{"02031234567", "", false},  // landline prefix
		{"080312345", "", false},    // too short
		{"+14155551234", "", false}, // not Nigerian
		{"not a phone", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := users.NormalizePhone(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
