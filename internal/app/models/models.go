package models

// Role defines the user role stored in the 'users' table.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the accepted roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// Category is the fixed item category shared by lost and found posts.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryAccessories Category = "Accessories"
	CategoryDocuments   Category = "Documents"
	CategoryKeys        Category = "Keys"
	CategoryBooks       Category = "Books"
	CategoryOther       Category = "Other"
)

// Categories lists every accepted category, in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryAccessories,
	CategoryDocuments,
	CategoryKeys,
	CategoryBooks,
	CategoryOther,
}

// ValidCategory reports whether c is one of the accepted categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// LostStatus is the lifecycle state of a lost post.
// open -> matched (claim) -> closed (admin resolve); never back to open.
type LostStatus string

const (
	LostStatusOpen    LostStatus = "open"
	LostStatusMatched LostStatus = "matched"
	LostStatusClosed  LostStatus = "closed"
)

// ValidLostStatus reports whether s is one of the accepted lost post states.
func ValidLostStatus(s LostStatus) bool {
	switch s {
	case LostStatusOpen, LostStatusMatched, LostStatusClosed:
		return true
	}
	return false
}

// FoundStatus is the lifecycle state of a found post.
// available -> matched (claim) -> returned (admin resolve).
type FoundStatus string

const (
	FoundStatusAvailable FoundStatus = "available"
	FoundStatusMatched   FoundStatus = "matched"
	FoundStatusReturned  FoundStatus = "returned"
)

// ValidFoundStatus reports whether s is one of the accepted found post states.
func ValidFoundStatus(s FoundStatus) bool {
	switch s {
	case FoundStatusAvailable, FoundStatusMatched, FoundStatusReturned:
		return true
	}
	return false
}
