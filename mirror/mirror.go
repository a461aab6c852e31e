package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/symbridge-dev/symbridge-go/domain/entities"
	bridgeerrors "github.com/symbridge-dev/symbridge-go/domain/errors"
	"github.com/symbridge-dev/symbridge-go/domain/ports"
	"github.com/symbridge-dev/symbridge-go/exports"
	bridgelog "github.com/symbridge-dev/symbridge-go/log"
)

const ownNamesSource = `'use strict'; (
function bridgeGlobalNames()
{
  return Object.getOwnPropertyNames(globalThis);
}
)`

const enumerableNamesSource = `'use strict'; (
function bridgeEnumerableGlobals()
{
  return Object.keys(globalThis);
}
)`

const readSource = `'use strict'; (
function bridgeReadGlobal(name)
{
  return globalThis[name];
}
)`

// Namespace is the host namespace the mirrored bindings are added to.
// *exports.Registry satisfies it.
type Namespace interface {
	Has(name string) bool
}

// Snapshot is the ordered list of own property names of the global object.
type Snapshot []string

// Mirror holds the compiled enumeration helpers for one engine.
type Mirror struct {
	engine     ports.Engine
	ownNames   ports.Value
	enumerable ports.Value
	read       ports.Value
	cfg        mirrorConfig
}

// New compiles the mirror helpers in engine.
func New(engine ports.Engine, opts ...Option) (*Mirror, error) {
	if engine == nil {
		return nil, fmt.Errorf("mirror: engine is nil")
	}
	cfg := defaultMirrorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	m := &Mirror{engine: engine, cfg: cfg}
	helpers := []struct {
		dst  *ports.Value
		name string
		src  string
	}{
		{&m.ownNames, "own names", ownNamesSource},
		{&m.enumerable, "enumerable names", enumerableNamesSource},
		{&m.read, "global read", readSource},
	}
	for _, h := range helpers {
		v, err := engine.Evaluate(h.src, cfg.evalOpts)
		if err != nil {
			return nil, fmt.Errorf("compiling %s helper: %w", h.name, err)
		}
		*h.dst = v
	}
	return m, nil
}

// Snapshot enumerates the own property names of the global object, in engine order.
func (m *Mirror) Snapshot() (Snapshot, error) {
	return m.names(m.ownNames)
}

func (m *Mirror) names(helper ports.Value) (Snapshot, error) {
	v, err := m.engine.Call(helper)
	if err != nil {
		return nil, fmt.Errorf("enumerating globals: %w", err)
	}
	raw, ok := v.Export().([]any)
	if !ok {
		return nil, &bridgeerrors.MarshalError{
			Direction: bridgeerrors.ToHost,
			GoType:    fmt.Sprintf("%T", v.Export()),
			Err:       fmt.Errorf("global names are not an array"),
		}
	}
	names := make(Snapshot, 0, len(raw))
	for _, n := range raw {
		s, ok := n.(string)
		if !ok {
			return nil, &bridgeerrors.MarshalError{
				Direction: bridgeerrors.ToHost,
				GoType:    fmt.Sprintf("%T", n),
				Err:       fmt.Errorf("global name is not a string"),
			}
		}
		names = append(names, s)
	}
	return names, nil
}

// Collect takes one snapshot of the global scope and returns the bindings to
// add to ns, in enumeration order, together with a report of the pass.
//
// A name is dropped when it is the evaluator, carries the private prefix, is
// already present in ns or was accepted earlier in this pass, or is excluded.
// Bindings that fail to read or convert are skipped with a warning. Only a
// failure to enumerate or a cancelled ctx returns an error.
func (m *Mirror) Collect(ctx context.Context, ns Namespace) ([]exports.Export, entities.MirrorReport, error) {
	report := entities.NewMirrorReport()

	snapshot, err := m.Snapshot()
	if err != nil {
		return nil, report, err
	}
	report.Enumerated = len(snapshot)

	var enumerable map[string]struct{}
	if m.cfg.builtinsOnly {
		keys, err := m.names(m.enumerable)
		if err != nil {
			return nil, report, err
		}
		enumerable = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			enumerable[k] = struct{}{}
		}
	}

	accepted := make(map[string]struct{}, len(snapshot))
	var result []exports.Export
	for _, name := range snapshot {
		if err := ctx.Err(); err != nil {
			return nil, report, fmt.Errorf("mirroring globals: %w", err)
		}

		if reason := m.filter(name, ns, accepted, enumerable); reason != "" {
			report.Filtered[name] = reason
			continue
		}

		value, err := m.readBinding(name)
		if err != nil {
			skip := &bridgeerrors.SkipError{Name: name, Err: err}
			m.cfg.logger.WarnContext(ctx, "mirror: skipping global", "name", name, "error", skip)
			report.Skipped = append(report.Skipped, entities.SkippedBinding{Name: name, Reason: err.Error()})
			continue
		}

		accepted[name] = struct{}{}
		result = append(result, exports.Export{Name: name, Value: value})
		report.Mirrored = append(report.Mirrored, name)
	}

	m.cfg.logger.DebugContext(ctx, "mirror: pass complete",
		"enumerated", report.Enumerated,
		"mirrored", len(report.Mirrored),
		"filtered", len(report.Filtered),
		"skipped", len(report.Skipped))
	return result, report, nil
}

func (m *Mirror) filter(name string, ns Namespace, accepted, enumerable map[string]struct{}) string {
	if m.cfg.evaluatorName != "" && name == m.cfg.evaluatorName {
		return entities.FilterEvaluator
	}
	if m.cfg.privatePrefix != "" && strings.HasPrefix(name, m.cfg.privatePrefix) {
		return entities.FilterPrivate
	}
	if _, ok := accepted[name]; ok {
		return entities.FilterPresent
	}
	if ns != nil && ns.Has(name) {
		return entities.FilterPresent
	}
	if _, ok := m.cfg.exclude[name]; ok {
		return entities.FilterExcluded
	}
	if enumerable != nil {
		if _, ok := enumerable[name]; ok {
			return entities.FilterBuiltin
		}
	}
	return ""
}

func (m *Mirror) readBinding(name string) (any, error) {
	v, err := m.engine.Call(m.read, name)
	if err != nil {
		return nil, err
	}
	m.cfg.logger.Debug("mirror: read global", "name", name, bridgelog.ValueAttr("value", v))
	return m.engine.ToHost(v)
}
