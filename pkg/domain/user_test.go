package domain

import "testing"

func TestFirstName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"full name", User{FullName: "Priya Raman", Email: "priya@example.com"}, "Priya"},
		{"single name", User{FullName: "Cher", Email: "c@example.com"}, "Cher"},
		{"whitespace name falls back to email", User{FullName: "   ", Email: "lee@example.com"}, "lee"},
		{"no name", User{Email: "sam.ng@clinic.org"}, "sam.ng"},
		{"empty user", User{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.FirstName(); got != tc.want {
				t.Errorf("FirstName() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole("patient") || !ValidRole("doctor") {
		t.Error("expected patient and doctor to be valid roles")
	}
	if ValidRole("admin") || ValidRole("") {
		t.Error("expected unknown roles to be invalid")
	}
}
