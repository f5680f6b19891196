package ftpserver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aescanero/dago-node-ftp/internal/strutil"
)

// serverLogger routes the FTP library's session log through zap.
type serverLogger struct {
	logger *zap.Logger
}

func newServerLogger(logger *zap.Logger) *serverLogger {
	return &serverLogger{logger: logger.Named("ftp")}
}

func (l *serverLogger) Print(sessionID string, message interface{}) {
	l.logger.Info(strutil.UTF8Str(message), zap.String("session_id", sessionID))
}

func (l *serverLogger) Printf(sessionID string, format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...), zap.String("session_id", sessionID))
}

func (l *serverLogger) PrintCommand(sessionID string, command string, params string) {
	if command == "PASS" {
		params = maskedPassword
	}
	l.logger.Debug("ftp command",
		zap.String("session_id", sessionID),
		zap.String("command", command),
		zap.String("params", params),
	)
}

func (l *serverLogger) PrintResponse(sessionID string, code int, message string) {
	l.logger.Debug("ftp response",
		zap.String("session_id", sessionID),
		zap.Int("code", code),
		zap.String("message", message),
	)
}
