// Package worker implements the FTP node's control plane and health checks.
//
// The worker subscribes to a Redis stream for control requests, checks
// start requests against the admission rules, applies them to the FTP
// service and publishes the outcome as events.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(cfg.RedisOptions())
//	admitter, _ := admission.NewAdmitter(admission.AllowList(cfg.AdmissionRules), logger)
//
//	worker := worker.NewWorker(cfg, redisClient, service, admitter, publisher, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop(ctx)
//
// A control request is a JSON document in the message's "data" field:
//
//	{"request_id": "42", "action": "start", "params": {"address": "0.0.0.0",
//	 "port": 2121, "username": "uploader", "password": "...", "home_dir": "/srv/ftp"}}
//
// Every message is acknowledged, including the ones that cannot be parsed.
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8082, service, redisClient, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
