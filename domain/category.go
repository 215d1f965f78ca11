package domain

import (
	"strings"
	"time"
)

// Category groups products by name. Products reference categories by value.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewCategory carries the caller-supplied fields of a category to create.
type NewCategory struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryUpdate is a partial update; nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply merges the non-nil fields of u into c.
func (u CategoryUpdate) Apply(c Category) Category {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	return c
}

// ValidateCategory checks the caller-editable fields of a category.
func ValidateCategory(c Category) error {
	if isBlank(c.Name) {
		return NewInvalidFieldError("category", "name", "cannot be empty", c.Name)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
