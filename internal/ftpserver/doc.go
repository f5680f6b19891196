// Package ftpserver configures and runs the node's embedded FTP server.
//
// Protocol handling is delegated to github.com/goftp/server. This package
// owns what surrounds it: validating the startup parameters, preparing the
// home directory, registering the single configured user, serving the home
// directory through an afero filesystem and bridging the library's session
// log to zap.
//
// Example usage:
//
//	svc := ftpserver.NewService(ftpserver.Options{
//	    NodeID:     "ftp-node-1",
//	    ServerName: "dago ftp node",
//	    Mode:       ftpserver.Passive,
//	}, afero.NewOsFs(), events.Nop{}, logger)
//
//	ok := svc.Start(ctx, ftpserver.Params{
//	    Address:  "0.0.0.0",
//	    Port:     2121,
//	    Username: "uploader",
//	    Password: "secret",
//	    HomeDir:  "/srv/ftp/uploads",
//	})
//	if !ok {
//	    // details were logged and published as an event
//	}
//	defer svc.Stop(ctx)
//
// Start never returns an error. Incomplete parameters and startup failures
// are logged and reported as false, and a failed restart leaves the node
// without a running server.
package ftpserver
