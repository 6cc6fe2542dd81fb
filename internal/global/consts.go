package global

import (
	"os"
	"time"
)

const (
	// Descriptive Names for available verbosity levels
	VerbosityNone int = iota
	VerbosityStandard
	VerbosityProgress
	VerbosityData
	VerbosityFullData
	VerbosityDebug

	// Descriptive names for available severity levels
	ErrorLog string = "Error"
	WarnLog  string = "Warn"
	InfoLog  string = "Info"
)

const (
	ProgVersion string = "v0.3.1"

	// Context keys
	LoggerKey  CtxKey = "logger"  // Diagnostic event queue
	LogTagsKey CtxKey = "logtags" // List of tags in order of broad->specific appended/popped at various parts of the program

	DefaultConfigPath string      = "/etc/nodetrace.json"
	DefaultTraceFile  string      = "tracing.log"
	DefaultFileMode   os.FileMode = 0640
	DefaultDirMode    os.FileMode = 0750

	// Simulation defaults
	DefaultSimNodes    int = 8
	DefaultSimMessages int = 1000
	DefaultSimWorkers  int = 4

	// Shutdown
	EmitDrainTimeout time.Duration = 5 * time.Second

	// Namespacing Name Components
	NSTest    string = "Test"
	NSCLI     string = "CLI"
	NSTracer  string = "Tracer"
	NSWriter  string = "Writer"
	NSSim     string = "Simulator"
	NSWorker  string = "Worker"
)
