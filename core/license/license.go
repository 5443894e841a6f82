// Package license tracks license and attribution metadata for bundled
// assets.
//
// The engine itself is dual-licensed (MIT OR Apache-2.0), but vendored
// assets (fonts, mostly) come with licenses of their own. Packaging
// metadata wants a single SPDX expression, so this package composes one
// from the module license and every registered asset.
package license

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// ModuleSPDX is the SPDX expression for the engine's own code.
const ModuleSPDX = "MIT OR Apache-2.0"

// LinkingNote documents a known ambiguity: whether dynamically linking a
// copyleft-licensed rendering library from permissively-licensed code makes
// the resulting binary a derivative work is not settled. Binaries that link
// such a library are subject to its license (GPL-2.0-or-later for the
// libraries our test tooling historically used); this module itself links
// nothing of the kind.
const LinkingNote = "programs that link against a GPL-licensed rendering " +
	"library are subject to that library's license for the resulting binary; " +
	"whether dynamic linking creates a derivative work is left unresolved"

// Some well-known asset licenses.
const (
	SPDXBitstreamVera = "Bitstream-Vera"
	SPDXOFL           = "OFL-1.1"
	SPDXCC0           = "CC0-1.0"
)

// Asset is a vendored binary asset with attribution metadata.
type Asset struct {
	Name   string // asset name, e.g. a font family
	Kind   string // "font", "image", …
	SPDX   string // SPDX license identifier
	Notice string // attribution text to reproduce in distributions
}

// Registry collects assets bundled into a binary.
type Registry struct {
	sync.Mutex
	assets map[string]Asset
}

var globalRegistry *Registry
var globalRegistryCreation sync.Once

// GlobalRegistry returns a registry shared by the whole process.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

func NewRegistry() *Registry {
	return &Registry{
		assets: make(map[string]Asset),
	}
}

// Register records an asset. Registering an asset twice overwrites the
// previous record.
func (r *Registry) Register(a Asset) {
	if a.Name == "" {
		T().Errorf("license registry cannot register unnamed asset")
		return
	}
	r.Lock()
	defer r.Unlock()
	T().Debugf("license registry records %s asset %q (%s)", a.Kind, a.Name, a.SPDX)
	r.assets[a.Name] = a
}

// Asset returns the record for a named asset.
func (r *Registry) Asset(name string) (Asset, bool) {
	r.Lock()
	defer r.Unlock()
	a, ok := r.assets[name]
	return a, ok
}

// Assets returns all registered assets, sorted by name.
func (r *Registry) Assets() []Asset {
	r.Lock()
	defer r.Unlock()
	assets := make([]Asset, 0, len(r.assets))
	for _, a := range r.assets {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets
}

// Expression composes a compound SPDX expression covering the module and
// every registered asset. Asset licenses appear once each, in sorted order:
//
//	(MIT OR Apache-2.0) AND Bitstream-Vera AND OFL-1.1
func (r *Registry) Expression() string {
	seen := make(map[string]bool)
	var ids []string
	for _, a := range r.Assets() {
		if a.SPDX == "" || seen[a.SPDX] {
			continue
		}
		seen[a.SPDX] = true
		ids = append(ids, a.SPDX)
	}
	sort.Strings(ids)
	expr := "(" + ModuleSPDX + ")"
	for _, id := range ids {
		expr += " AND " + id
	}
	return expr
}

// Notice generates an attribution text listing every registered asset and
// its license. Suitable for inclusion in a distribution's NOTICE file.
func (r *Registry) Notice() string {
	var b strings.Builder
	b.WriteString("This software is licensed under " + ModuleSPDX + ".\n")
	assets := r.Assets()
	if len(assets) > 0 {
		b.WriteString("It bundles the following third-party assets:\n")
	}
	for _, a := range assets {
		fmt.Fprintf(&b, "\n* %s (%s), licensed %s\n", a.Name, a.Kind, a.SPDX)
		if a.Notice != "" {
			b.WriteString("  " + strings.ReplaceAll(a.Notice, "\n", "\n  ") + "\n")
		}
	}
	return b.String()
}
