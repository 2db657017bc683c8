package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/yeremiapane/restaurant-pos/models"
)

// MinPhoneSearchDigits is the shortest phone fragment that is searched.
const MinPhoneSearchDigits = 3

type CustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// CustomerRegistry keeps customers keyed by id with a unique phone index.
type CustomerRegistry struct {
	byID    map[string]*models.Customer
	byPhone map[string]string
	order   []string
	now     func() time.Time
}

func NewCustomerRegistry() *CustomerRegistry {
	return &CustomerRegistry{
		byID:    make(map[string]*models.Customer),
		byPhone: make(map[string]string),
		now:     time.Now,
	}
}

// Register adds a customer. A phone number that is already registered is
// rejected and the registry is left untouched.
func (r *CustomerRegistry) Register(in CustomerInput) (models.Customer, error) {
	name := strings.TrimSpace(in.Name)
	phone := normalizePhone(in.Phone)
	if name == "" || phone == "" {
		return models.Customer{}, ErrInvalidCustomer
	}
	if _, taken := r.byPhone[phone]; taken {
		return models.Customer{}, fmt.Errorf("%w: %s", ErrDuplicatePhone, phone)
	}

	now := r.now()
	c := &models.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Address:   strings.TrimSpace(in.Address),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.byID[c.ID] = c
	r.byPhone[phone] = c.ID
	r.order = append(r.order, c.ID)
	return *c, nil
}

func (r *CustomerRegistry) GetByID(id string) (models.Customer, bool) {
	c, ok := r.byID[id]
	if !ok {
		return models.Customer{}, false
	}
	return *c, true
}

func (r *CustomerRegistry) List() []models.Customer {
	out := make([]models.Customer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

func (r *CustomerRegistry) Len() int { return len(r.order) }

// SearchByPhone returns customers whose phone contains the given digits.
// Fragments shorter than MinPhoneSearchDigits return an empty list.
func (r *CustomerRegistry) SearchByPhone(fragment string) []models.Customer {
	digits := strings.TrimPrefix(normalizePhone(fragment), "+")
	out := []models.Customer{}
	if len(digits) < MinPhoneSearchDigits {
		return out
	}
	for _, id := range r.order {
		c := r.byID[id]
		if strings.Contains(c.Phone, digits) {
			out = append(out, *c)
		}
	}
	return out
}

// RecordOrder bumps the order counter of a customer after a checkout.
func (r *CustomerRegistry) RecordOrder(id string) error {
	c, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	c.OrderCount++
	c.UpdatedAt = r.now()
	return nil
}

// normalizePhone keeps digits and a leading plus sign.
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, ch := range phone {
		if unicode.IsDigit(ch) || (i == 0 && ch == '+') {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
