package ftpserver

import (
	"net"
	"strconv"

	"go.uber.org/zap"

	"github.com/aescanero/dago-node-ftp/internal/strutil"
)

const maskedPassword = "******"

// Params are the startup parameters of one FTP server instance.
type Params struct {
	Address  string `json:"address"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	HomeDir  string `json:"home_dir"`
}

// Missing lists the parameters that are absent. Blank strings and ports
// outside 1-65535 count as absent.
func (p Params) Missing() []string {
	var missing []string
	if strutil.IsBlank(p.Address) {
		missing = append(missing, "address")
	}
	if p.Port <= 0 || p.Port > 65535 {
		missing = append(missing, "port")
	}
	if strutil.IsBlank(p.Username) {
		missing = append(missing, "username")
	}
	if strutil.IsBlank(p.Password) {
		missing = append(missing, "password")
	}
	if strutil.IsBlank(p.HomeDir) {
		missing = append(missing, "home_dir")
	}
	return missing
}

// Addr returns the listen address.
func (p Params) Addr() string {
	return net.JoinHostPort(p.Address, strconv.Itoa(p.Port))
}

// String describes the parameters with the password masked.
func (p Params) String() string {
	return strutil.Format("ftpIp:{}, ftpPort:{}, ftpUsername:{}, ftpPassword:{}, ftpDir:{}",
		p.Address, p.Port, p.Username, p.maskedPassword(), p.HomeDir)
}

func (p Params) maskedPassword() string {
	if p.Password == "" {
		return ""
	}
	return maskedPassword
}

func (p Params) zapFields() []zap.Field {
	return []zap.Field{
		zap.String("ftp_address", p.Address),
		zap.Int("ftp_port", p.Port),
		zap.String("ftp_username", p.Username),
		zap.String("ftp_password", p.maskedPassword()),
		zap.String("ftp_dir", p.HomeDir),
	}
}

func (p Params) eventFields() map[string]interface{} {
	return map[string]interface{}{
		"address":  p.Address,
		"port":     p.Port,
		"username": p.Username,
		"home_dir": p.HomeDir,
	}
}
