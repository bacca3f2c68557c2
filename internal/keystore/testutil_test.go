package keystore

import (
	"errors"
	"time"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedMigrator() *Migrator {
	return &Migrator{
		Hostname: func() (string, error) { return "alpha.local", nil },
		Now:      func() time.Time { return t0 },
		GOOS:     "linux",
		NewID:    func() (string, error) { return "dev-fixed", nil },
	}
}

func noHostMigrator() *Migrator {
	m := fixedMigrator()
	m.Hostname = func() (string, error) { return "", errors.New("no host") }
	m.GOOS = "darwin"
	return m
}
