package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aescanero/dago-node-ftp/internal/ftpserver"
)

var probeFlags struct {
	addr     string
	username string
	password string
	timeout  time.Duration
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Connect and log in to an FTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ftpserver.Probe(cmd.Context(), probeFlags.addr,
			probeFlags.username, probeFlags.password, probeFlags.timeout); err != nil {
			return fmt.Errorf("probe failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: login as %s ok\n", probeFlags.addr, probeFlags.username)
		return nil
	},
}

func init() {
	probeCmd.Flags().StringVar(&probeFlags.addr, "addr", "127.0.0.1:2121", "server address (host:port)")
	probeCmd.Flags().StringVar(&probeFlags.username, "user", "anonymous", "user name")
	probeCmd.Flags().StringVar(&probeFlags.password, "pass", "", "password")
	probeCmd.Flags().DurationVar(&probeFlags.timeout, "timeout", 5*time.Second, "dial timeout")
}
