package domain

// CallerScope narrows every query and mutation to the caller's branch and
// department capabilities. It is resolved once at the boundary (from the
// authenticated user) and passed explicitly into core operations; the core
// never reads ambient session state.
type CallerScope struct {
	UserID string
	// BranchID is nil for the general manager, who sees all branches.
	BranchID    *int32
	Departments DepartmentSet
}

// Unscoped reports whether the caller may act across all branches.
func (s CallerScope) Unscoped() bool {
	return s.BranchID == nil
}

// AllowsBranch reports whether records of the given branch are visible to the
// caller. A nil branch on the record (legacy unassigned data) is only visible
// to the general manager.
func (s CallerScope) AllowsBranch(branchID *int32) bool {
	if s.BranchID == nil {
		return true
	}
	return branchID != nil && *branchID == *s.BranchID
}

func (s CallerScope) AllowsDepartment(d Department) bool {
	return s.Departments.Contains(d)
}

// ActorID returns the caller's user id as a ledger actor reference, or nil for
// system-originated postings.
func (s CallerScope) ActorID() *string {
	if s.UserID == "" {
		return nil
	}
	id := s.UserID
	return &id
}
