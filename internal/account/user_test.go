// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package account_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vocably/vocably/internal/account"
	"github.com/vocably/vocably/internal/validate"
)

func validUser() account.User {
	return account.User{
		Name:    "Anna",
		Email:   "Anna@Example.COM",
		Phone:   "0123456789",
		Address: "12 Elm Street",
	}
}

func fieldErrors(u account.User) *validate.Errors {
	var errs validate.Errors
	u.ValidateFields(&errs)
	return &errs
}

func TestUser_ValidateFields_Valid(t *testing.T) {
	assert.False(t, fieldErrors(validUser()).Any())
}

func TestUser_ValidateFields_Name(t *testing.T) {
	t.Run("blank", func(t *testing.T) {
		u := validUser()
		u.Name = ""
		assert.Contains(t, fieldErrors(u).On("name"), "can't be blank")
	})

	t.Run("too long", func(t *testing.T) {
		u := validUser()
		u.Name = strings.Repeat("a", account.MaxNameLength+1)
		assert.NotEmpty(t, fieldErrors(u).On("name"))
	})

	t.Run("at limit", func(t *testing.T) {
		u := validUser()
		u.Name = strings.Repeat("a", account.MaxNameLength)
		assert.Empty(t, fieldErrors(u).On("name"))
	})

	t.Run("limit counts characters not bytes", func(t *testing.T) {
		u := validUser()
		u.Name = strings.Repeat("é", account.MaxNameLength)
		assert.Empty(t, fieldErrors(u).On("name"))

		u.Name = strings.Repeat("é", account.MaxNameLength+1)
		assert.NotEmpty(t, fieldErrors(u).On("name"))
	})
}

func TestUser_ValidateFields_Email(t *testing.T) {
	valid := []string{
		"user@example.com",
		"USER@foo.COM",
		"A_US-ER@foo.bar.org",
		"first.last@foo.jp",
		"alice+bob@baz.cn",
	}
	for _, addr := range valid {
		u := validUser()
		u.Email = addr
		assert.Empty(t, fieldErrors(u).On("email"), "expected %q to validate", addr)
	}

	invalid := []string{
		"user@example,com",
		"user_at_foo.org",
		"user.name@example.",
		"foo@bar_baz.com ",
		"foo bar@baz.com",
	}
	for _, addr := range invalid {
		u := validUser()
		u.Email = addr
		assert.NotEmpty(t, fieldErrors(u).On("email"), "expected %q to be rejected", addr)
	}

	t.Run("blank", func(t *testing.T) {
		u := validUser()
		u.Email = ""
		assert.Contains(t, fieldErrors(u).On("email"), "can't be blank")
	})

	t.Run("too long", func(t *testing.T) {
		u := validUser()
		u.Email = strings.Repeat("a", account.MaxEmailLength-10) + "@example.com"
		assert.NotEmpty(t, fieldErrors(u).On("email"))
	})
}

func TestUser_ValidateFields_Phone(t *testing.T) {
	// The phone rule is intentionally lenient: the value must end in a
	// digit, optionally followed by closing parentheses.
	valid := []string{"0123456789", "(84) 123456", "99)", "ab12"}
	for _, phone := range valid {
		u := validUser()
		u.Phone = phone
		assert.Empty(t, fieldErrors(u).On("phone"), "expected %q to validate", phone)
	}

	invalid := []string{"abcdef", "12345x", ""}
	for _, phone := range invalid {
		u := validUser()
		u.Phone = phone
		assert.NotEmpty(t, fieldErrors(u).On("phone"), "expected %q to be rejected", phone)
	}

	t.Run("too long", func(t *testing.T) {
		u := validUser()
		u.Phone = strings.Repeat("1", account.MaxPhoneLength+1)
		assert.NotEmpty(t, fieldErrors(u).On("phone"))
	})
}

func TestUser_ValidateFields_Address(t *testing.T) {
	u := validUser()
	u.Address = ""
	assert.Contains(t, fieldErrors(u).On("address"), "can't be blank")

	u = validUser()
	u.Address = strings.Repeat("a", account.MaxAddressLength+1)
	assert.NotEmpty(t, fieldErrors(u).On("address"))
}

func TestUser_ValidateFields_AccumulatesAcrossFields(t *testing.T) {
	u := account.User{}
	errs := fieldErrors(u)
	assert.NotEmpty(t, errs.On("name"))
	assert.NotEmpty(t, errs.On("email"))
	assert.NotEmpty(t, errs.On("phone"))
	assert.NotEmpty(t, errs.On("address"))
}

func TestValidatePassword(t *testing.T) {
	t.Run("blank is rejected when required", func(t *testing.T) {
		var errs validate.Errors
		account.ValidatePassword("", true, &errs)
		assert.Contains(t, errs.On("password"), "can't be blank")
	})

	t.Run("blank is a no-op when optional", func(t *testing.T) {
		var errs validate.Errors
		account.ValidatePassword("", false, &errs)
		assert.False(t, errs.Any())
	})

	t.Run("too short", func(t *testing.T) {
		var errs validate.Errors
		account.ValidatePassword("12345", true, &errs)
		assert.NotEmpty(t, errs.On("password"))
	})

	t.Run("minimum length passes", func(t *testing.T) {
		var errs validate.Errors
		account.ValidatePassword("123456", true, &errs)
		assert.False(t, errs.Any())
	})

	t.Run("minimum counts characters not bytes", func(t *testing.T) {
		var errs validate.Errors
		account.ValidatePassword(strings.Repeat("é", 5), true, &errs)
		assert.NotEmpty(t, errs.On("password"))
	})

	t.Run("too long for bcrypt", func(t *testing.T) {
		var errs validate.Errors
		account.ValidatePassword(strings.Repeat("a", account.MaxPasswordLength+1), true, &errs)
		assert.Contains(t, errs.On("password"), "is too long (maximum is 72 characters)")
	})

	t.Run("maximum counts bytes", func(t *testing.T) {
		// 40 runes but 80 bytes, past bcrypt's input cap.
		var errs validate.Errors
		account.ValidatePassword(strings.Repeat("é", 40), true, &errs)
		assert.NotEmpty(t, errs.On("password"))
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "anna@example.com", account.NormalizeEmail("AnNa@ExAmPlE.CoM"))
	assert.Equal(t, "bob@example.com", account.NormalizeEmail("bob@example.com"))
}
