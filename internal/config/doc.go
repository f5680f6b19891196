// Package config provides configuration management for the FTP node.
//
// Configuration is loaded from environment variables and validated on startup.
// All configuration options have sensible defaults for development, except
// the FTP user and home directory which have to be provided before the
// server can start.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
