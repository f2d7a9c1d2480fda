package domain

import "testing"

func TestCan(t *testing.T) {
	student := &Profile{Role: RoleStudent}
	if student.Can(CapManageContent) {
		t.Error("student must not manage content")
	}
	if student.Can(CapViewPlatformStats) {
		t.Error("student must not view platform stats")
	}

	flagged := &Profile{Role: RoleStudent, IsAdmin: true}
	if !flagged.Can(CapManageContent) {
		t.Error("is_admin profile must manage content")
	}

	admin := &Profile{Role: RoleAdmin}
	if !admin.Can(CapViewPlatformStats) {
		t.Error("admin role must view platform stats")
	}
}

func TestValidClass(t *testing.T) {
	for _, c := range Classes {
		if !ValidClass(c) {
			t.Errorf("class %q should be valid", c)
		}
	}
	for _, c := range []string{"5", "11", "", "six"} {
		if ValidClass(c) {
			t.Errorf("class %q should be invalid", c)
		}
	}
}

func TestSCSEmail(t *testing.T) {
	if got := SCSEmail("1234567"); got != "1234567@skillur.app" {
		t.Errorf("SCSEmail = %q", got)
	}
}
