package sim

import (
	"sync"

	"github.com/kasuganosora/arpgcore/game/geom"
	"go.uber.org/zap"
)

// ProxyKind classifies the visual proxies a Renderer manages.
type ProxyKind string

const (
	ProxyPlayer  ProxyKind = "player"
	ProxyMonster ProxyKind = "monster"
	ProxyDrop    ProxyKind = "drop"
	ProxyChunk   ProxyKind = "chunk"
)

// Asset is an opaque loaded model or texture. Procedural marks the
// built-in stand-in used until the real asset arrives.
type Asset struct {
	Name       string
	Procedural bool
	Data       any
}

// AssetUpgrade replaces the procedural stand-in of Name.
type AssetUpgrade struct {
	Name  string
	Asset Asset
}

// Renderer receives proxy lifecycle calls from the tick goroutine.
type Renderer interface {
	Spawn(kind ProxyKind, id int64, pos geom.Vec2, asset Asset)
	Move(kind ProxyKind, id int64, pos geom.Vec2, facing float64)
	Remove(kind ProxyKind, id int64)
	Upgrade(name string, asset Asset)
}

// NopRenderer drops every call; used headless.
type NopRenderer struct{}

func (NopRenderer) Spawn(ProxyKind, int64, geom.Vec2, Asset)  {}
func (NopRenderer) Move(ProxyKind, int64, geom.Vec2, float64) {}
func (NopRenderer) Remove(ProxyKind, int64)                   {}
func (NopRenderer) Upgrade(string, Asset)                     {}

// AssetLoader resolves asset names. A miss is not an error: callers fall
// back to a procedural stand-in.
type AssetLoader interface {
	Load(name string) (Asset, bool)
}

// FetchFunc retrieves a real asset; it may block.
type FetchFunc func(name string) (Asset, error)

// AsyncLoader answers Load immediately with a procedural stand-in and
// fetches the real asset in the background. Finished fetches are offered
// on Upgrades without blocking; the tick goroutine drains them.
type AsyncLoader struct {
	fetch    FetchFunc
	upgrades chan AssetUpgrade
	logger   *zap.Logger

	mu      sync.Mutex
	loaded  map[string]Asset
	pending map[string]bool
	wg      sync.WaitGroup
}

func NewAsyncLoader(fetch FetchFunc, buffer int, logger *zap.Logger) *AsyncLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer < 1 {
		buffer = 1
	}
	return &AsyncLoader{
		fetch:    fetch,
		upgrades: make(chan AssetUpgrade, buffer),
		logger:   logger,
		loaded:   make(map[string]Asset),
		pending:  make(map[string]bool),
	}
}

// Load returns the cached asset when present. Otherwise it starts one
// background fetch per name and reports a miss.
func (l *AsyncLoader) Load(name string) (Asset, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.loaded[name]; ok {
		return a, true
	}
	if l.fetch == nil || l.pending[name] {
		return Asset{}, false
	}
	l.pending[name] = true
	l.wg.Add(1)
	go l.run(name)
	return Asset{}, false
}

func (l *AsyncLoader) run(name string) {
	defer l.wg.Done()
	a, err := l.fetch(name)
	if err != nil {
		l.logger.Warn("asset unavailable, keeping procedural fallback",
			zap.String("asset", name), zap.Error(err))
		return
	}
	a.Name = name
	l.mu.Lock()
	l.loaded[name] = a
	l.mu.Unlock()
	select {
	case l.upgrades <- AssetUpgrade{Name: name, Asset: a}:
	default:
		l.logger.Warn("asset upgrade queue full", zap.String("asset", name))
	}
}

// Upgrades delivers finished fetches.
func (l *AsyncLoader) Upgrades() <-chan AssetUpgrade { return l.upgrades }

// Wait blocks until every started fetch has finished.
func (l *AsyncLoader) Wait() { l.wg.Wait() }

// proceduralAsset is the built-in stand-in for name.
func proceduralAsset(name string) Asset {
	return Asset{Name: name, Procedural: true}
}
