package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-g string   gRPC health bind address (e.g., ":50051"); empty disables it
//	-d string   PostgreSQL DSN; empty selects in-memory storage
//	-s string   JWT HMAC secret key
//	-t int      token validity, hours
//	-l string   log level
//
// Notes:
//   - The function first filters args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Token validity is accepted as an integer in hours and then converted
//     to a time.Duration value.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run the REST API")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port to run the gRPC health service")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidity.Hours()), "token validity (in hours)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.TokenValidity = time.Duration(*tokenValidity) * time.Hour
	return nil
}
