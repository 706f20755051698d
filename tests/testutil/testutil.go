package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/kendall-kelly/inventory-dashboard/config"
	"github.com/kendall-kelly/inventory-dashboard/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against a real session database.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	t.Setenv("GO_ENV", "test")
	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// NewSessionDB opens a private in-memory sqlite database for session storage
func NewSessionDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.ConnectDatabase(":memory:", utils.DiscardLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// PrintEnvironmentInfo prints the current test environment configuration.
// Useful for debugging test environment issues.
func PrintEnvironmentInfo() {
	fmt.Printf("Test Environment Info:\n")
	fmt.Printf("  GO_ENV: %s\n", os.Getenv("GO_ENV"))
	fmt.Printf("  SESSION_DATABASE_URL: %s\n", maskDatabaseURL(os.Getenv("SESSION_DATABASE_URL")))
	fmt.Printf("  API_BASE_URL: %s\n", os.Getenv("API_BASE_URL"))
}

// maskDatabaseURL hides credentials of a postgres URL
func maskDatabaseURL(url string) string {
	if url == "" {
		return "(not set)"
	}
	if !config.IsPostgresURL(url) {
		return url
	}
	at := strings.LastIndex(url, "@")
	scheme := strings.Index(url, "://")
	if at < 0 || scheme < 0 {
		return url
	}
	return url[:scheme+3] + "***" + url[at:]
}
