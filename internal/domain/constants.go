package domain

// Default values
const (
	// DefaultClassCapacity capacity used for availability when a class has none
	DefaultClassCapacity = 12
	// DefaultDisplayCapacity capacity shown on the weekly schedule when a class has none
	DefaultDisplayCapacity = 20
	// DefaultAdminBookingTime used by admin bookings when the slot cannot be found
	DefaultAdminBookingTime = "09:00"
	// AdminPaymentReferencePrefix prefix of references synthesized for admin-marked payments
	AdminPaymentReferencePrefix = "admin_"
)

// Business validation constants
const (
	MaxNotesLength       = 1000
	MaxClassNameLength   = 120
	MaxDescriptionLength = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultCalendarCategories class name fragments shown on the booking calendar
var DefaultCalendarCategories = []string{"hot pilates", "hot yoga", "reformer"}

// Role of an authenticated user
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)
