package domain

type Department string

const (
	DepartmentMen         Department = "MEN"
	DepartmentWomen       Department = "WOMEN"
	DepartmentBeautySalon Department = "BEAUTY_SALON"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentMen, DepartmentWomen, DepartmentBeautySalon:
		return true
	}
	return false
}

// DepartmentSet is the set of departments a caller may act on.
type DepartmentSet map[Department]bool

func NewDepartmentSet(depts ...Department) DepartmentSet {
	s := make(DepartmentSet, len(depts))
	for _, d := range depts {
		s[d] = true
	}
	return s
}

func (s DepartmentSet) Contains(d Department) bool {
	return s[d]
}

func (s DepartmentSet) Slice() []Department {
	out := make([]Department, 0, len(s))
	for _, d := range []Department{DepartmentMen, DepartmentWomen, DepartmentBeautySalon} {
		if s[d] {
			out = append(out, d)
		}
	}
	return out
}
