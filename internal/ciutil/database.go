package ciutil

import "log/slog"

// GetTestDatabaseURL returns the database URL integration tests should use:
// HEROES_TEST_DB_URL, then DATABASE_URL, then HEROES_DATABASE_URL. It
// returns "" when none is set.
func GetTestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks(
		[]string{EnvHeroesTestDBURL, EnvDatabaseURL, EnvHeroesDatabaseURL},
		"",
		logger,
	)
}
