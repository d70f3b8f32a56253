package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared logrus instance for the service.
var Logger = logrus.New()
var once sync.Once

// CustomFormatter renders log records as single audit lines tagged with the
// emitting system and a fresh event id.
type CustomFormatter struct {
	SystemName string
}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s,", entry.Message))

	if entry.HasCaller() {
		b.WriteString(fmt.Sprintf(" Location: %s:%d in %s", entry.Caller.File, entry.Caller.Line, entry.Caller.Function))
	}

	b.WriteByte('\n')

	return b.Bytes(), nil
}

// InitLogger configures the shared logger with file rotation. Safe to call
// more than once.
func InitLogger() {
	once.Do(func() {
		if _, err := os.Stat("logs"); os.IsNotExist(err) {
			if err := os.Mkdir("logs", 0700); err != nil {
				logrus.Fatalf("Event ID: LOG_DIR_CREATE_FAILED, Description: Failed to create log directory: %v", err)
			}
		}

		logFile := &lumberjack.Logger{
			Filename:   "logs/projects.log",
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}

		Logger.SetOutput(logFile)
		Logger.SetFormatter(&CustomFormatter{SystemName: "projects-service"})
		Logger.SetLevel(logrus.InfoLevel)
		Logger.SetReportCaller(true)

		Logger.Infof("Event ID: LOGGER_INITIALIZED, Description: Logger initialized for projects-service, output to: %s", logFile.Filename)
	})
}
