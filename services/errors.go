package services

import "errors"

var (
	ErrTableNotFound      = errors.New("table not found")
	ErrItemNotFound       = errors.New("cart item not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrOptionNotFound     = errors.New("modifier option not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("table status transition not allowed")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidDiscount    = errors.New("invalid discount")
	ErrInvalidCustomer    = errors.New("customer name and phone are required")
	ErrDuplicatePhone     = errors.New("phone number already registered")
	ErrOrderNotActive     = errors.New("order is not open")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrPaymentState       = errors.New("operation not allowed in current payment state")
	ErrPaymentInProgress  = errors.New("payment is being processed")
	ErrInsufficientTender = errors.New("cash received is less than total")
	ErrInvalidSplit       = errors.New("split payment needs at least two ways")
	ErrUnknownAction      = errors.New("unknown cart action")
)
