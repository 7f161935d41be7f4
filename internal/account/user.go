// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

package account

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/vocably/vocably/internal/validate"
)

// Field validation constraints.
const (
	MaxNameLength     = 50
	MaxEmailLength    = 255
	MaxPhoneLength    = 16
	MaxAddressLength  = 255
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's input cap; it counts bytes, not runes.
	MaxPasswordLength = 72
)

// emailRegex matches a simple local@domain.tld shape, case-insensitively.
var emailRegex = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-.]+\.[a-z]+$`)

// phoneRegex is deliberately lenient: it accepts any value ending in a
// digit, optionally followed by closing parentheses. Kept as-is for
// compatibility with existing data.
var phoneRegex = regexp.MustCompile(`\d[0-9]\)*$`)

// User represents a registered user account.
type User struct {
	ID             ulid.ULID
	Name           string
	Email          string
	Phone          string
	Address        string
	PasswordDigest string
	RememberDigest *string
	ResetDigest    *string
	ResetSentAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Relationship is the join entity of the follow graph: the follower follows
// the followed. The pair is unique at the storage layer, which makes Follow
// idempotent.
type Relationship struct {
	FollowerID ulid.ULID
	FollowedID ulid.ULID
	CreatedAt  time.Time
}

// NormalizeEmail lowercases an email address for storage. Every persisted
// user stores its email lower-cased regardless of input casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(email)
}

// ValidateFields appends any field-rule violations to errs. All rules run;
// none short-circuits, so one call reports every broken field at once.
func (u *User) ValidateFields(errs *validate.Errors) {
	if u.Name == "" {
		errs.Add("name", "can't be blank")
	} else if utf8.RuneCountInString(u.Name) > MaxNameLength {
		errs.Addf("name", "is too long (maximum is %d characters)", MaxNameLength)
	}

	switch {
	case u.Email == "":
		errs.Add("email", "can't be blank")
	case utf8.RuneCountInString(u.Email) > MaxEmailLength:
		errs.Addf("email", "is too long (maximum is %d characters)", MaxEmailLength)
	case !emailRegex.MatchString(u.Email):
		errs.Add("email", "is invalid")
	}

	switch {
	case u.Phone == "":
		errs.Add("phone", "can't be blank")
	case utf8.RuneCountInString(u.Phone) > MaxPhoneLength:
		errs.Addf("phone", "is too long (maximum is %d characters)", MaxPhoneLength)
	case !phoneRegex.MatchString(u.Phone):
		errs.Add("phone", "is invalid")
	}

	if u.Address == "" {
		errs.Add("address", "can't be blank")
	} else if utf8.RuneCountInString(u.Address) > MaxAddressLength {
		errs.Addf("address", "is too long (maximum is %d characters)", MaxAddressLength)
	}
}

// ValidatePassword appends password-rule violations to errs. A password is
// only checked when being set; required marks creation, where absence is
// itself a violation.
func ValidatePassword(password string, required bool, errs *validate.Errors) {
	if password == "" {
		if required {
			errs.Add("password", "can't be blank")
		}
		return
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs.Addf("password", "is too short (minimum is %d characters)", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		errs.Addf("password", "is too long (maximum is %d characters)", MaxPasswordLength)
	}
}
