// Package players builds search engines from user configuration strings.
// Engine modules register themselves by name, and the front-ends only ever
// deal with configuration strings like "mcts,c=1.4,seed=42".
package players

import (
	"strings"

	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
)

// Module builds searchers of one engine family. Implementations are expected
// to pop the parameters they understand and fail on anything left over, so
// typos in configuration strings surface at startup instead of being silently
// ignored.
type Module interface {
	NewSearcher(params parameters.Params) (searchers.Searcher[state.Board], error)
}

var registeredModules = make(map[string]Module)

// RegisterModule makes an engine module available to New under the given
// name. It is meant to be called from init() functions; see
// internal/players/default for the modules shipped with the repository.
func RegisterModule(name string, module Module) {
	registeredModules[name] = module
}

// DefaultConfig is used when the configuration string is empty.
const DefaultConfig = "mcts"

// Factory builds one fresh searcher per game from a parsed configuration.
// A searcher accumulates statistics for a single game, so reusing one across
// games would leak knowledge between them.
type Factory struct {
	name   string
	module Module
	params parameters.Params
}

// New parses a configuration string into a Factory. The string is the module
// name optionally followed by comma-separated parameters, e.g.
// "mcts,c=1.4,seed=42" or just "random". An empty config selects
// DefaultConfig. Unknown module names fail here; unknown parameters fail on
// the first NewSearcher call.
func New(config string) (*Factory, error) {
	if config == "" {
		config = DefaultConfig
	}
	name, rest, _ := strings.Cut(config, ",")
	module, ok := registeredModules[name]
	if !ok {
		return nil, errors.Errorf("unknown engine %q in configuration %q", name, config)
	}
	f := &Factory{name: name, module: module, params: parameters.Params{}}
	if rest != "" {
		f.params = parameters.NewFromConfigString(rest)
	}
	return f, nil
}

// NewSearcher builds a fresh engine for one game. The parsed parameters are
// cloned per call, since modules consume (pop) them while parsing.
func (f *Factory) NewSearcher() (searchers.Searcher[state.Board], error) {
	engine, err := f.module.NewSearcher(f.params.Clone())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create engine %q", f.name)
	}
	return engine, nil
}

// String returns the module name the factory was built from.
func (f *Factory) String() string {
	return f.name
}
