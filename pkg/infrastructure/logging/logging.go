package logging

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

const logFormat = `%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`

// InitLogger receives the log level to be set in go-logging as a string and
// installs a stdout backend at that level. An invalid level is returned as an
// error.
func InitLogger(logLevel string) error {
	return InitLoggerWithWriter(os.Stdout, logLevel)
}

// InitLoggerWithWriter is InitLogger writing to w
func InitLoggerWithWriter(w io.Writer, logLevel string) error {
	baseBackend := logging.NewLogBackend(w, "", 0)
	format := logging.MustStringFormatter(logFormat)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}
