// Package logger provides the prefixed, coloured console logger used across the service.
package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/labyrinth-api/config"
	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/sirupsen/logrus"
)

const timeLayout = "2006/01/02 15:04:05"

var _ i.Logger = &Logger{}

// Logger writes "[PREFIX] [LEVEL] message" lines through logrus.
type Logger struct {
	log *logrus.Logger
}

// New creates a logger whose lines start with prefix painted in color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if w == nil {
		return nil, errors.New("logger writer is required")
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})
	return &Logger{log: l}, nil
}

// Info implements i.Logger.
func (l *Logger) Info(msg string) {
	l.log.Info(msg)
}

// Warning implements i.Logger.
func (l *Logger) Warning(msg string) {
	l.log.Warn(msg)
}

// Error implements i.Logger.
func (l *Logger) Error(msg string) {
	l.log.Error(msg)
}

type prefixFormatter struct {
	prefix string
	color  string
}

// Format implements logrus.Formatter.
func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	levelColor := config.LogInfoColor
	switch e.Level {
	case logrus.WarnLevel:
		levelColor = config.LogWarningColor
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor = config.LogErrorColor
	}

	line := fmt.Sprintf("%s %s[%s]%s %s[%s]%s %s\n",
		e.Time.Format(timeLayout),
		f.color, f.prefix, config.ColorReset,
		levelColor, strings.ToUpper(e.Level.String()), config.LogColorReset,
		e.Message,
	)
	return []byte(line), nil
}
