// Package dbconfig reads the server-level TOML bootstrap configuration:
// the Data/LogicalLog/System path triple for the meta-database and for
// each user database, and the Database.Attribute flag word (Online,
// ReadOnly, Unmounted, RecoveryFull, SuperUserMode, SlaveStarted) plus a
// replication master URL, mirroring System_Database's
// (id, name, flag, path[], master_url) row shape.
//
// Decoding goes through BurntSushi/toml into an intermediate tomlXxx
// struct, then converts into the package's own domain type, generalized
// from a schema-definition file to a server bootstrap file.
package dbconfig

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Attribute is the bit flag word carried on every database row.
type Attribute uint32

const (
	AttributeOnline Attribute = 1 << iota
	AttributeReadOnly
	AttributeUnmounted
	AttributeRecoveryFull
	AttributeSuperUserMode
	AttributeSlaveStarted
)

// PathTriple is the Data/LogicalLog/System path set a database (or the
// meta-database) is bootstrapped with. Each of LogicalLog and System
// falls back to Data when left empty, the common "outer value" fallback
// convention for optional path overrides.
type PathTriple struct {
	Data       string `toml:"data"`
	LogicalLog string `toml:"logical_log"`
	System     string `toml:"system"`
}

// Resolved fills LogicalLog/System from Data where left blank.
func (p PathTriple) Resolved() PathTriple {
	out := p
	if out.LogicalLog == "" {
		out.LogicalLog = out.Data
	}
	if out.System == "" {
		out.System = out.Data
	}
	return out
}

// tomlServer is the top-level bootstrap document.
type tomlServer struct {
	Meta      tomlDatabase            `toml:"meta"`
	Databases map[string]tomlDatabase `toml:"database"`
}

type tomlDatabase struct {
	Path          PathTriple `toml:"path"`
	ReadOnly      bool       `toml:"read_only"`
	Unmounted     bool       `toml:"unmounted"`
	RecoveryFull  bool       `toml:"recovery_full"`
	SuperUserMode bool       `toml:"super_user_mode"`
	MasterURL     string     `toml:"master_url"`
}

// DatabaseConfig is one [database.<name>] or [meta] entry, resolved into
// the form internal/catalog consumes directly.
type DatabaseConfig struct {
	Name      string
	Path      PathTriple
	Attribute Attribute
	MasterURL string
}

// ServerConfig is the fully decoded and resolved bootstrap file.
type ServerConfig struct {
	Meta      DatabaseConfig
	Databases []DatabaseConfig
}

func attributeFrom(d tomlDatabase) Attribute {
	attr := AttributeOnline
	if d.ReadOnly {
		attr |= AttributeReadOnly
	}
	if d.Unmounted {
		attr |= AttributeUnmounted
		attr &^= AttributeOnline
	}
	if d.RecoveryFull {
		attr |= AttributeRecoveryFull
	}
	if d.SuperUserMode {
		attr |= AttributeSuperUserMode
	}
	if d.MasterURL != "" {
		attr |= AttributeSlaveStarted
	}
	return attr
}

func convert(name string, d tomlDatabase) DatabaseConfig {
	return DatabaseConfig{
		Name:      name,
		Path:      d.Path.Resolved(),
		Attribute: attributeFrom(d),
		MasterURL: d.MasterURL,
	}
}

// Load reads and resolves a bootstrap TOML file from path.
func Load(path string) (*ServerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dbconfig: open %q: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and resolves a bootstrap TOML document from r.
func Decode(r io.Reader) (*ServerConfig, error) {
	var ts tomlServer
	if _, err := toml.NewDecoder(r).Decode(&ts); err != nil {
		return nil, fmt.Errorf("dbconfig: decode: %w", err)
	}

	cfg := &ServerConfig{Meta: convert("_meta", ts.Meta)}
	for name, d := range ts.Databases {
		cfg.Databases = append(cfg.Databases, convert(name, d))
	}
	return cfg, nil
}

// Has reports whether attr includes flag.
func (a Attribute) Has(flag Attribute) bool { return a&flag != 0 }
