package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the closed discriminant over account kinds.
type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// LoginOrder is the fixed probe order used by login.
var LoginOrder = []Role{RoleStudent, RoleCompany, RoleAdmin}

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleStudent, RoleCompany, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate key")
)

// DuplicateKeyError names the unique field that was violated.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate key: " + e.Field
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// Account is one of Student, Company or Admin; exactly the pointer matching Role is set.
type Account struct {
	Role    Role
	Student *Student
	Company *Company
	Admin   *Admin
}

func StudentAccount(s *Student) Account { return Account{Role: RoleStudent, Student: s} }
func CompanyAccount(c *Company) Account { return Account{Role: RoleCompany, Company: c} }
func AdminAccount(a *Admin) Account     { return Account{Role: RoleAdmin, Admin: a} }

func (a Account) ID() string {
	switch a.Role {
	case RoleStudent:
		return a.Student.ID
	case RoleCompany:
		return a.Company.ID
	case RoleAdmin:
		return a.Admin.ID
	}
	return ""
}

// LoginKey is the email the account signs in with.
func (a Account) LoginKey() string {
	switch a.Role {
	case RoleStudent:
		return a.Student.Email
	case RoleCompany:
		return a.Company.HREmail
	case RoleAdmin:
		return a.Admin.Email
	}
	return ""
}

func (a Account) PasswordHash() string {
	switch a.Role {
	case RoleStudent:
		return a.Student.PasswordHash
	case RoleCompany:
		return a.Company.PasswordHash
	case RoleAdmin:
		return a.Admin.PasswordHash
	}
	return ""
}

// Public is the client-facing projection. The variant structs tag their
// password hash with json:"-".
func (a Account) Public() any {
	switch a.Role {
	case RoleStudent:
		return a.Student
	case RoleCompany:
		return a.Company
	case RoleAdmin:
		return a.Admin
	}
	return nil
}

// NormalizeEmail lower-cases and trims login keys before lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
