package conf

import (
	"os"
	"sync"

	"hostbridge/internal/errors"

	"github.com/BurntSushi/toml"
)

const (
	DefaultListen            = ":8080"
	DefaultInferenceEndpoint = "http://localhost:11434/api/generate"
	DefaultInferenceModel    = "deepseek-coder-v2:16b"
)

var (
	Path string       // Config path
	mu   sync.RWMutex // Protects access to Conf
	Conf = Default()
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Server: Server{
			Listen: DefaultListen,
		},
		Web: Web{
			RootPath: "web",
		},
		Inference: Inference{
			Endpoint: DefaultInferenceEndpoint,
			Model:    DefaultInferenceModel,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// LoadConfig Set Path and load config into memory.
// A missing file is created empty and the defaults stay in effect.
func LoadConfig(path string) error {
	Path = path
	err := Update()
	if err == nil {
		return nil
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		f, createErr := os.OpenFile(path, os.O_CREATE, 0644)
		if createErr == nil {
			f.Close()
			return nil
		}
		return errors.New().Wrap(errors.ErrWriteConfig, createErr)
	}
	return err
}

// Update reads the config file and loads it into the global Conf variable
func Update() error {
	errFactory := errors.New()

	mu.Lock()
	defer mu.Unlock()

	if _, err := os.Stat(Path); err != nil {
		return errFactory.Wrap(errors.ErrReadConfig, err)
	}

	next := Default()
	if _, err := toml.DecodeFile(Path, &next); err != nil {
		return errFactory.Wrap(errors.ErrReadConfig, err)
	}
	Conf = next
	return nil
}

// Write saves the provided config to the TOML file at the global Path
func Write(conf Config) error {
	errFactory := errors.New()

	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(Path)
	if err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(conf); err != nil {
		return errFactory.Wrap(errors.ErrWriteConfig, err)
	}

	Conf = conf
	return nil
}

// Read returns a copy of the current configuration
func Read() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Conf
}

// SetListen overrides the listen address in memory only
func SetListen(addr string) {
	mu.Lock()
	defer mu.Unlock()
	Conf.Server.Listen = addr
}

// SetLogLevel overrides the log level in memory only
func SetLogLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	Conf.Log.Level = level
}

// GetServer returns the Server config in a thread-safe manner
func GetServer() Server {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Server
}

// GetWeb returns the Web config in a thread-safe manner
func GetWeb() Web {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Web
}

// GetInference returns the Inference config in a thread-safe manner
func GetInference() Inference {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Inference
}

// GetLog returns the Log config in a thread-safe manner
func GetLog() Log {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Log
}
