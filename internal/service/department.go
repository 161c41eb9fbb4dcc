package service

import "atelier-backend/internal/domain"

// DepartmentPolicy decides which department's safe receives a booking's
// money when a booking mixes items from several departments.
type DepartmentPolicy func(items []domain.BookingItem) domain.Department

// FirstItemDepartment attributes the booking to the department of its first
// item in insertion order. A deliberate simplification rather than a
// majority rule; bookings rarely mix departments in practice. Falls back to
// the women's department for legacy rows with no resolvable item.
func FirstItemDepartment(items []domain.BookingItem) domain.Department {
	for _, it := range items {
		if it.Department.Valid() {
			return it.Department
		}
	}
	return domain.DepartmentWomen
}
