package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := m.Generate(Principal{UserID: "ops-1", Role: RoleAdmin})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		p := claims.Principal()
		if p.UserID != "ops-1" || p.Role != RoleAdmin {
			t.Errorf("principal = %+v", p)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := NewJWTManager("other", time.Hour).Generate(Principal{UserID: "x", Role: RoleViewer})
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, _ := NewJWTManager("test-secret", -time.Minute).Generate(Principal{UserID: "x", Role: RoleViewer})
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := m.Generate(Principal{UserID: "x", Role: "owner"})
		if !errors.Is(err, ErrInvalidRole) {
			t.Errorf("err = %v, want ErrInvalidRole", err)
		}
	})

	t.Run("empty secret signs and accepts nothing", func(t *testing.T) {
		empty := NewJWTManager("", time.Hour)
		if _, err := empty.Generate(Principal{UserID: "x", Role: RoleSuperAdmin}); !errors.Is(err, ErrEmptySecret) {
			t.Errorf("Generate err = %v, want ErrEmptySecret", err)
		}
		token, err := m.Generate(Principal{UserID: "x", Role: RoleSuperAdmin})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := empty.Validate(token); !errors.Is(err, ErrEmptySecret) {
			t.Errorf("Validate err = %v, want ErrEmptySecret", err)
		}
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := m.Generate(Principal{Role: RoleAdmin})
		if err == nil || !strings.Contains(err.Error(), "user id") {
			t.Errorf("err = %v", err)
		}
	})
}

func TestPrincipalPermissions(t *testing.T) {
	tests := []struct {
		role      Role
		canEdit   bool
		canSettle bool
		canForce  bool
	}{
		{RoleViewer, false, false, false},
		{RoleAdmin, true, true, false},
		{RoleSuperAdmin, true, true, true},
		{"", false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			p := Principal{UserID: "u", Role: tt.role}
			if p.CanEdit() != tt.canEdit {
				t.Errorf("CanEdit = %v", p.CanEdit())
			}
			if p.CanSettle() != tt.canSettle {
				t.Errorf("CanSettle = %v", p.CanSettle())
			}
			if p.CanForceSettle() != tt.canForce {
				t.Errorf("CanForceSettle = %v", p.CanForceSettle())
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" SuperAdmin "); !ok || r != RoleSuperAdmin {
		t.Errorf("ParseRole = %q, %v", r, ok)
	}
	if _, ok := ParseRole("root"); ok {
		t.Error("ParseRole accepted an unknown role")
	}
}
