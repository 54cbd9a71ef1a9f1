// Package logger, logrus standard logger'ını config'e göre ayarlar.
//
// Neden standard logger?
// Teknik olarak her katmana *logrus.Logger inject edilebilir, ama projede
// log çağrıları "component" field'ı ile ayrıştırılıyor:
//
//	logrus.WithField("component", "database").Info("migrations applied")
//
// Tek bir global yapılandırma yeterli: ayrı instance'lar sadece testlerde gerekir.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup, standard logger'ın seviyesini ve formatını ayarlar.
//
// level: "debug", "info", "warn", "error" (logrus.ParseLevel kabul ettiği her şey)
// format: "json" veya "text"
func Setup(level, format string) (*logrus.Logger, error) {
	return configure(logrus.StandardLogger(), os.Stdout, level, format)
}

// New, bağımsız bir logger oluşturur: testlerde çıktıyı buffer'a yönlendirmek için.
func New(out io.Writer, level, format string) (*logrus.Logger, error) {
	return configure(logrus.New(), out, level, format)
}

func configure(l *logrus.Logger, out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l.SetLevel(lvl)
	l.SetOutput(out)

	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}

	return l, nil
}
