package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallerScope_AllowsBranch(t *testing.T) {
	branch1, branch2 := int32(1), int32(2)

	t.Run("GeneralManagerSeesEverything", func(t *testing.T) {
		gm := CallerScope{UserID: "gm"}
		assert.True(t, gm.Unscoped())
		assert.True(t, gm.AllowsBranch(&branch1))
		assert.True(t, gm.AllowsBranch(nil))
	})

	t.Run("BranchStaffSeeOnlyTheirBranch", func(t *testing.T) {
		staff := CallerScope{UserID: "s", BranchID: &branch1}
		assert.False(t, staff.Unscoped())
		assert.True(t, staff.AllowsBranch(&branch1))
		assert.False(t, staff.AllowsBranch(&branch2))
		// legacy unassigned records are reserved for the general manager
		assert.False(t, staff.AllowsBranch(nil))
	})
}

func TestCallerScope_AllowsDepartment(t *testing.T) {
	scope := CallerScope{Departments: NewDepartmentSet(DepartmentWomen)}
	assert.True(t, scope.AllowsDepartment(DepartmentWomen))
	assert.False(t, scope.AllowsDepartment(DepartmentMen))
	assert.False(t, scope.AllowsDepartment(DepartmentBeautySalon))
}

func TestUser_Departments(t *testing.T) {
	u := &User{CanAccessMen: true, CanAccessBeauty: true}
	depts := u.Departments()
	assert.True(t, depts.Contains(DepartmentMen))
	assert.False(t, depts.Contains(DepartmentWomen))
	assert.True(t, depts.Contains(DepartmentBeautySalon))
	assert.Equal(t, []Department{DepartmentMen, DepartmentBeautySalon}, depts.Slice())
}
