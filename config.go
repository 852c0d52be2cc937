package dsbuf

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the fixed limits of a Buffer. It is validated once, when
// the Buffer is constructed.
type Config struct {
	// ArenaCapacity is the size of the static region backing all allocations.
	ArenaCapacity datasize.ByteSize `yaml:"arena_capacity"`
	// MaxDescriptors is the number of blocks the buffer can ever track.
	MaxDescriptors int `yaml:"max_descriptors"`
	// MaxAllocationSize caps a single allocation.
	MaxAllocationSize datasize.ByteSize `yaml:"max_allocation_size"`
	// LoggingEnabled makes Initialize require a logger and routes
	// diagnostic messages to it.
	LoggingEnabled bool `yaml:"logging_enabled"`
}

// DefaultConfig returns a 1KB arena with 10 descriptors and a 256 byte
// allocation limit, with logging enabled.
func DefaultConfig() Config {
	return Config{
		ArenaCapacity:     1 * datasize.KB,
		MaxDescriptors:    10,
		MaxAllocationSize: 256 * datasize.B,
		LoggingEnabled:    true,
	}
}

// Validate rejects limits the allocator cannot work with.
func (cfg Config) Validate() error {
	switch {
	case cfg.ArenaCapacity == 0:
		return errors.New("arena_capacity must be greater than 0")
	case cfg.ArenaCapacity.Bytes() > math.MaxInt32:
		return fmt.Errorf("arena_capacity %s exceeds %d bytes", cfg.ArenaCapacity.HumanReadable(), math.MaxInt32)
	case cfg.MaxDescriptors <= 0:
		return errors.New("max_descriptors must be greater than 0")
	case cfg.MaxAllocationSize == 0:
		return errors.New("max_allocation_size must be greater than 0")
	case cfg.MaxAllocationSize > cfg.ArenaCapacity:
		return fmt.Errorf("max_allocation_size %s exceeds arena_capacity %s",
			cfg.MaxAllocationSize.HumanReadable(), cfg.ArenaCapacity.HumanReadable())
	}
	return nil
}

func (cfg Config) capacity() int {
	return int(cfg.ArenaCapacity.Bytes())
}

func (cfg Config) maxAllocation() int {
	return int(cfg.MaxAllocationSize.Bytes())
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML config file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}
	return ParseConfig(data)
}
