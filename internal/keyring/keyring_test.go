package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/routine/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://routine@localhost:5432/routine?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("  "); err == nil {
		t.Error("SetConnectionString(\"  \") should return an error")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://routine@localhost/routine"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); err != ErrNotFound {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); err != ErrNotFound {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolveConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		stored   string
		fallback string
		want     string
		wantErr  bool
	}{
		{name: "env wins", env: "postgres://env@host/db", stored: "postgres://kr@host/db", fallback: "host=cfg", want: "postgres://env@host/db"},
		{name: "keyring before fallback", stored: "postgres://kr@host/db", fallback: "host=cfg", want: "postgres://kr@host/db"},
		{name: "fallback", fallback: "host=cfg", want: "host=cfg"},
		{name: "nothing configured", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gokeyring.MockInit()
			t.Setenv(constants.EnvDBConnection, tt.env)
			if tt.stored != "" {
				if err := SetConnectionString(tt.stored); err != nil {
					t.Fatalf("SetConnectionString() failed: %v", err)
				}
			}

			got, err := ResolveConnectionString(tt.fallback)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveConnectionString() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveConnectionString() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveConnectionString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}
