package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habithub/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := Set(constants.KeyringSessionToken, ""); err == nil {
		t.Error("Set() with empty value should return an error")
	}
}

func TestGetNotFound(t *testing.T) {
	gokeyring.MockInit()

	_, err := Get(constants.KeyringSessionToken)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDelete(t *testing.T) {
	gokeyring.MockInit()

	if err := Set(constants.KeyringSessionToken, "token"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := Delete(constants.KeyringSessionToken); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := Get(constants.KeyringSessionToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want %v", err, ErrNotFound)
	}
	if err := Delete(constants.KeyringSessionToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, ErrNotFound)
	}
}

func TestOSStore(t *testing.T) {
	gokeyring.MockInit()

	var s Store = OS{}
	if err := s.Set("entry", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got, err := s.Get("entry")
	if err != nil || got != "value" {
		t.Errorf("Get() = %q, %v; want %q, nil", got, err, "value")
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring, want true")
	}

	gokeyring.MockInitWithError(errors.New("no dbus"))
	if IsAvailable() {
		t.Error("IsAvailable() = true with failing keyring, want false")
	}
	gokeyring.MockInit()
}
