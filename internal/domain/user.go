package domain

type User struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	// BranchID is nil for the general manager, who is not bound to any branch.
	BranchID        *int32 `json:"branch_id,omitempty"`
	CanAccessMen    bool   `json:"can_access_men"`
	CanAccessWomen  bool   `json:"can_access_women"`
	CanAccessBeauty bool   `json:"can_access_beauty"`
	// Staff are deactivated rather than deleted.
	IsActive bool `json:"is_active"`
}

// Departments returns the department capabilities granted to the user.
func (u *User) Departments() DepartmentSet {
	s := make(DepartmentSet, 3)
	if u.CanAccessMen {
		s[DepartmentMen] = true
	}
	if u.CanAccessWomen {
		s[DepartmentWomen] = true
	}
	if u.CanAccessBeauty {
		s[DepartmentBeautySalon] = true
	}
	return s
}

// Scope resolves the user to the caller scope passed into every core operation.
func (u *User) Scope() CallerScope {
	return CallerScope{
		UserID:      u.ID,
		BranchID:    u.BranchID,
		Departments: u.Departments(),
	}
}
