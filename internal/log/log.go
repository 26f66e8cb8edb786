package logger

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Progress goes to the terminal views; the log file keeps the full story.
const LogFileName = "axsync.log"

var Log = logrus.New()

func InitLogger(verbose bool) {
	file, err := os.OpenFile(GetLogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Keep going on stderr rather than dying before the first sync.
		Log.SetOutput(os.Stderr)
		Log.Warnf("Failed to open log file %s: %v", LogFileName, err)
	} else {
		Log.SetOutput(file)
	}

	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		Log.SetLevel(logrus.DebugLevel)
		Log.Debugln("Verbose (debug) logging enabled")
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}

func GetLogFilePath() string {
	path, err := filepath.Abs(LogFileName)
	if err != nil {
		return LogFileName
	}
	return path
}
