package tracelog

import (
	"os"
	"sync"
	"sync/atomic"
)

// Runtime writer configuration
type Config struct {
	FilePath string      // Trace log location
	FileMode os.FileMode // Permissions when the log is created
	FullSync bool        // fsync instead of fdatasync after every append
	LogLevel int         // Diagnostic verbosity for the owning program
}

// On-disk configuration
type JSONConfig struct {
	LogFile  string `json:"logFile"`
	FileMode string `json:"fileMode"` // octal, e.g. "0640"
	FullSync bool   `json:"fullSync"`
	LogLevel int    `json:"logLevel"`
}

// Owns the trace log file. All methods are safe for concurrent use.
type Writer struct {
	Namespace []string
	mutex     sync.Mutex
	path      string
	mode      os.FileMode
	fullSync  bool
	sink      *os.File // nil until the first append after New or Reset
	closed    bool
	metrics   MetricStorage
}

type MetricStorage struct {
	RecordsAppended atomic.Uint64 // successful appends
	BytesAppended   atomic.Uint64 // bytes durably written
	AppendFailures  atomic.Uint64 // appends that returned an error
	Resets          atomic.Uint64 // successful resets
}
