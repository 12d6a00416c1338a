package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	StoreEndpoint   string // document store base URL (e.g. "https://cloud.appwrite.io/v1")
	StoreProject    string // document store project id
	StoreAPIKey     string // document store server API key
	StoreDatabaseID string // document store database id
	SeatsCol        string // collection id holding seats
	StudentsCol     string // collection id holding students
	BookingsCol     string // collection id holding the payment ledger
	MaintenanceCol  string // collection id holding expense records
	OperatorsCol    string // collection id holding operator accounts
	HallCode        string // code of the hall this deployment manages
	JWTSecret       string // secret used to sign JWTs
	AccessTTLMin    int    // access token time‑to‑live in minutes
	RefreshTTLDays  int    // refresh token time‑to‑live in days
	BcryptCost      int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),                   // environment (dev/test/prod)
		Port:            must("APP_PORT"),                  // port to bind the HTTP server
		StoreEndpoint:   must("STORE_ENDPOINT"),            // document store base URL
		StoreProject:    must("STORE_PROJECT"),             // project id
		StoreAPIKey:     must("STORE_API_KEY"),             // server key, never shipped to clients
		StoreDatabaseID: must("STORE_DATABASE_ID"),         // database id
		SeatsCol:        must("STORE_SEATS_COL"),           // seats collection
		StudentsCol:     must("STORE_STUDENTS_COL"),        // students collection
		BookingsCol:     must("STORE_BOOKINGS_COL"),        // bookings collection
		MaintenanceCol:  must("STORE_MAINT_COL"),           // maintenance collection
		OperatorsCol:    must("STORE_OPERATORS_COL"),       // operators collection
		HallCode:        getenv("HALL_CODE", "PRAJNA"),     // hall this instance serves
		JWTSecret:       must("JWT_SECRET"),                // secret used for signing JWTs
		AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
		RefreshTTLDays:  mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
		BcryptCost:      mustInt("BCRYPT_COST"),            // bcrypt cost factor
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
