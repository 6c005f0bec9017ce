package util

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogStream | LogTerrain | LogConfig | LogExport

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

type LogCategory int

const (
	LogStream LogCategory = 1 << iota
	LogTerrain
	LogMesh
	LogConfig
	LogExport
	LogDriver
)

var (
	logMutex  sync.Mutex
	levelTags = map[LogLevel]*color.Color{
		LogLevelError:   color.New(color.FgRed, color.Bold),
		LogLevelWarning: color.New(color.FgYellow),
		LogLevelInfo:    color.New(color.FgGreen),
		LogLevelDebug:   color.New(color.FgHiBlack),
	}
	levelNames = map[LogLevel]string{
		LogLevelError:   "ERR",
		LogLevelWarning: "WRN",
		LogLevelInfo:    "INF",
		LogLevelDebug:   "DBG",
	}
	categoryNames = map[string]LogCategory{
		"stream":  LogStream,
		"terrain": LogTerrain,
		"mesh":    LogMesh,
		"config":  LogConfig,
		"export":  LogExport,
		"driver":  LogDriver,
	}
)

func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return LogLevelError, nil
	case "warning", "warn":
		return LogLevelWarning, nil
	case "info", "":
		return LogLevelInfo, nil
	case "debug":
		return LogLevelDebug, nil
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", name)
}

func ParseLogCategories(names []string) (LogCategory, error) {
	var cats LogCategory
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			cats |= LogStream | LogTerrain | LogMesh | LogConfig | LogExport | LogDriver
			continue
		}
		cat, ok := categoryNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown log category %q", name)
		}
		cats |= cat
	}
	return cats, nil
}

func SetLogLevel(level LogLevel) {
	logMutex.Lock()
	GLOBAL_LOG_LEVEL = level
	logMutex.Unlock()
}

func SetLogCategories(cats LogCategory) {
	logMutex.Lock()
	GLOBAL_LOG_CATEGORIES = cats
	logMutex.Unlock()
}

// SetLogColors turns the level tags on or off, e.g. when stdout is not a terminal.
func SetLogColors(enabled bool) {
	color.NoColor = !enabled
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	logMutex.Lock()
	defer logMutex.Unlock()
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	fmt.Fprintf(color.Output, "%s %s\n", levelTags[lvl].Sprint(levelNames[lvl]), txt)
}

func LogStreamInfo(txt string) {
	log(LogStream, LogLevelInfo, txt)
}

func LogStreamDebug(txt string) {
	log(LogStream, LogLevelDebug, txt)
}

func LogStreamWarning(txt string) {
	log(LogStream, LogLevelWarning, txt)
}

func LogTerrainDebug(txt string) {
	log(LogTerrain, LogLevelDebug, txt)
}

func LogTerrainInfo(txt string) {
	log(LogTerrain, LogLevelInfo, txt)
}

func LogMeshDebug(txt string) {
	log(LogMesh, LogLevelDebug, txt)
}

func LogConfigInfo(txt string) {
	log(LogConfig, LogLevelInfo, txt)
}

func LogConfigError(txt string) {
	log(LogConfig, LogLevelError, txt)
}

func LogExportInfo(txt string) {
	log(LogExport, LogLevelInfo, txt)
}

func LogExportError(txt string) {
	log(LogExport, LogLevelError, txt)
}

func LogDriverInfo(txt string) {
	log(LogDriver, LogLevelInfo, txt)
}

func LogDriverError(txt string) {
	log(LogDriver, LogLevelError, txt)
}
