// Package domain defines error types for the inventory system.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when a product with the given ID is not found
type ProductNotFoundError struct {
	ProductID string
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%s", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// CategoryNotFoundError is returned when a category with the given ID is not found
type CategoryNotFoundError struct {
	CategoryID string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category not found: id=%s", e.CategoryID)
}

func (e *CategoryNotFoundError) Is(target error) bool {
	_, ok := target.(*CategoryNotFoundError)
	return ok
}

// InvalidFieldError is returned when a field fails validation
type InvalidFieldError struct {
	Entity string
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidFieldError
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: field=%s, reason=%s, value=%v", e.Entity, e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidFieldError) Is(target error) bool {
	_, ok := target.(*InvalidFieldError)
	return ok
}

// InsufficientStockError is returned when a sale asks for more than is in stock
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: id=%s, requested=%d, available=%d", e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	_, ok := target.(*InsufficientStockError)
	return ok
}

// StorageError wraps a persistent store failure for one collection key
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: key=%s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID string) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewCategoryNotFoundError creates a new CategoryNotFoundError
func NewCategoryNotFoundError(categoryID string) error {
	return &CategoryNotFoundError{CategoryID: categoryID}
}

// NewInvalidFieldError creates a new InvalidFieldError
func NewInvalidFieldError(entity, field, reason string, value interface{}) error {
	return &InvalidFieldError{
		Entity: entity,
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(productID string, requested, available int) error {
	return &InsufficientStockError{ProductID: productID, Requested: requested, Available: available}
}

// NewStorageError creates a new StorageError
func NewStorageError(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: err}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsCategoryNotFoundError checks if an error is a CategoryNotFoundError
func IsCategoryNotFoundError(err error) bool {
	var cnf *CategoryNotFoundError
	return errors.As(err, &cnf)
}

// IsInvalidFieldError checks if an error is an InvalidFieldError
func IsInvalidFieldError(err error) bool {
	var ife *InvalidFieldError
	return errors.As(err, &ife)
}

// IsInsufficientStockError checks if an error is an InsufficientStockError
func IsInsufficientStockError(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}

// IsStorageError checks if an error is a StorageError
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsNotFound reports whether err is any of the not-found errors.
func IsNotFound(err error) bool {
	return IsProductNotFoundError(err) || IsCategoryNotFoundError(err)
}
