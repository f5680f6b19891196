package ftpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goftp/server"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-ftp/internal/eval/template"
	"github.com/aescanero/dago-node-ftp/internal/events"
	"github.com/aescanero/dago-node-ftp/internal/fileutil"
	"github.com/aescanero/dago-node-ftp/internal/strutil"
)

var (
	// ErrNotRunning is returned by Probe when no server is running.
	ErrNotRunning = errors.New("ftp server is not running")
	// ErrStopTimeout is returned by Stop when the server did not exit in time.
	ErrStopTimeout = errors.New("timed out waiting for ftp server to stop")
)

// ftpServer is the part of the FTP library the service drives.
type ftpServer interface {
	Serve(l net.Listener) error
	Shutdown() error
}

func newLibraryServer(opts *server.ServerOpts) ftpServer {
	return server.NewServer(opts)
}

// Options configure every server instance the service starts.
type Options struct {
	NodeID          string
	ServerName      string
	Mode            Mode
	PassivePorts    string
	PublicIP        string
	WelcomeTemplate string
	StopTimeout     time.Duration
	ProbeTimeout    time.Duration
}

// Service owns the single running FTP server. Start replaces the running
// instance, stopping it before the new one is started.
type Service struct {
	opts      Options
	fs        afero.Fs
	publisher events.Publisher
	templates *template.Engine
	logger    *zap.Logger

	newServer func(opts *server.ServerOpts) ftpServer

	mu      sync.Mutex
	current *instance
}

type instance struct {
	srv       ftpServer
	listener  net.Listener
	params    Params
	startedAt time.Time
	stopping  atomic.Bool
	done      chan struct{}
}

func (i *instance) running() bool {
	select {
	case <-i.done:
		return false
	default:
		return true
	}
}

// NewService creates a service serving home directories from fs.
func NewService(opts Options, fs afero.Fs, publisher events.Publisher, logger *zap.Logger) *Service {
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = 5 * time.Second
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = 5 * time.Second
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		opts:      opts,
		fs:        fs,
		publisher: publisher,
		templates: template.NewEngine(),
		logger:    logger,
		newServer: newLibraryServer,
	}
}

// Start starts an FTP server for p and reports whether it is serving.
//
// Incomplete parameters leave any running server untouched. Otherwise the
// home directory is created, the user is registered, the running server is
// stopped and the new one starts listening. Failures are logged and reported
// as false.
func (s *Service) Start(ctx context.Context, p Params) bool {
	if missing := p.Missing(); len(missing) > 0 {
		s.logger.Error("ftp configuration incomplete, server not started",
			append([]zap.Field{zap.Strings("missing", missing)}, p.zapFields()...)...,
		)
		s.publish(ctx, events.TypeConfigIncomplete,
			strutil.Format("ftp configuration incomplete, missing {}: {}", missing, p), p.eventFields())
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fileutil.Mkdirs(s.fs, p.HomeDir); err != nil {
		s.startFailed(ctx, p, "failed to create ftp home directory", err)
		return false
	}

	auth, err := registerUser(s.fs, p)
	if err != nil {
		s.startFailed(ctx, p, "failed to register ftp user", err)
		return false
	}

	if err := s.stopLocked(ctx); err != nil {
		s.logger.Warn("previous ftp server did not stop cleanly", zap.Error(err))
	}

	inst, err := s.launch(p, auth)
	if err != nil {
		s.startFailed(ctx, p, "failed to start ftp server", err)
		return false
	}
	s.current = inst

	s.logger.Info("ftp server started",
		append([]zap.Field{
			zap.String("listen_addr", inst.listener.Addr().String()),
			zap.Stringer("mode", s.opts.Mode),
		}, p.zapFields()...)...,
	)
	s.publish(ctx, events.TypeStarted,
		strutil.Format("ftp server started, {}", p), p.eventFields())
	return true
}

func (s *Service) launch(p Params, auth *userAuth) (*instance, error) {
	ln, err := net.Listen("tcp", p.Addr())
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", p.Addr(), err)
	}

	opts := &server.ServerOpts{
		Factory: &driverFactory{
			fs:     afero.NewBasePathFs(s.fs, p.HomeDir),
			owner:  p.Username,
			logger: s.logger,
		},
		Auth:           auth,
		Name:           s.opts.ServerName,
		Hostname:       p.Address,
		Port:           p.Port,
		WelcomeMessage: s.renderBanner(p),
		Logger:         newServerLogger(s.logger),
	}
	if s.opts.Mode == Passive {
		opts.PassivePorts = s.opts.PassivePorts
		opts.PublicIp = s.opts.PublicIP
	}

	inst := &instance{
		srv:       s.newServer(opts),
		listener:  ln,
		params:    p,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}

	go s.serve(inst)

	return inst, nil
}

func (s *Service) serve(inst *instance) {
	defer close(inst.done)

	err := inst.srv.Serve(inst.listener)
	_ = inst.listener.Close()
	if inst.stopping.Load() {
		return
	}

	s.logger.Error("ftp server exited unexpectedly",
		append([]zap.Field{zap.Error(err)}, inst.params.zapFields()...)...,
	)
	s.publish(context.Background(), events.TypeStopped,
		strutil.Format("ftp server exited unexpectedly: {}", err), inst.params.eventFields())
}

func (s *Service) renderBanner(p Params) string {
	if s.opts.WelcomeTemplate == "" {
		return ""
	}
	banner, err := s.templates.Render(s.opts.WelcomeTemplate, map[string]interface{}{
		"name":    s.opts.ServerName,
		"node_id": s.opts.NodeID,
		"user":    p.Username,
		"home":    p.HomeDir,
		"address": p.Address,
		"port":    p.Port,
	})
	if err != nil {
		s.logger.Warn("failed to render welcome banner, using default", zap.Error(err))
		return ""
	}
	return banner
}

func (s *Service) startFailed(ctx context.Context, p Params, msg string, err error) {
	s.logger.Error(msg, append([]zap.Field{zap.Error(err)}, p.zapFields()...)...)
	s.publish(ctx, events.TypeStartFailed, strutil.Format("{}: {}", msg, err), p.eventFields())
}

// Stop stops the running server, if any.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked(ctx)
}

func (s *Service) stopLocked(ctx context.Context) error {
	inst := s.current
	if inst == nil {
		return nil
	}
	s.current = nil

	if !inst.running() {
		return nil
	}

	inst.stopping.Store(true)
	if err := inst.srv.Shutdown(); err != nil {
		s.logger.Debug("ftp library shutdown", zap.Error(err))
	}
	// Closing the listener unblocks Serve even if the library had not
	// picked it up yet.
	_ = inst.listener.Close()

	select {
	case <-inst.done:
	case <-time.After(s.opts.StopTimeout):
		return ErrStopTimeout
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Info("ftp server stopped",
		append([]zap.Field{zap.Duration("uptime", time.Since(inst.startedAt))}, inst.params.zapFields()...)...,
	)
	s.publish(ctx, events.TypeStopped,
		strutil.Format("ftp server stopped, {}", inst.params), inst.params.eventFields())
	return nil
}

// IsStopped reports whether no server is currently serving.
func (s *Service) IsStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current == nil || !s.current.running()
}

// Current returns the parameters of the running server.
func (s *Service) Current() (Params, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || !s.current.running() {
		return Params{}, false
	}
	return s.current.params, true
}

// Addr returns the address the running server listens on, or "".
func (s *Service) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || !s.current.running() {
		return ""
	}
	return s.current.listener.Addr().String()
}

// Probe logs in to the running server with its own credentials.
func (s *Service) Probe(ctx context.Context) error {
	s.mu.Lock()
	inst := s.current
	s.mu.Unlock()

	if inst == nil || !inst.running() {
		return ErrNotRunning
	}
	return Probe(ctx, dialAddr(inst.listener.Addr()),
		inst.params.Username, inst.params.Password, s.opts.ProbeTimeout)
}

func (s *Service) publish(ctx context.Context, eventType, message string, fields map[string]interface{}) {
	ev := events.New(eventType, message, fields)
	ev.NodeID = s.opts.NodeID
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}
