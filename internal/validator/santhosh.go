package validator

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/andyballingall/schemaform/internal/formats"
	"github.com/andyballingall/schemaform/internal/keywords"
)

var santhoshDrafts = map[Draft]*jsonschema.Draft{
	Draft4:       jsonschema.Draft4,
	Draft6:       jsonschema.Draft6,
	Draft7:       jsonschema.Draft7,
	Draft2019_09: jsonschema.Draft2019,
	Draft2020_12: jsonschema.Draft2020,
}

type options struct {
	draft  Draft
	strict bool
}

// Option configures a Factory.
type Option func(*options)

// WithDraft sets the draft used for schemas without $schema.
// Unsupported drafts are ignored.
func WithDraft(d Draft) Option {
	return func(o *options) {
		if _, ok := santhoshDrafts[d]; ok {
			o.draft = d
		}
	}
}

// WithStrict turns schema-authoring strictness on or off. A strict compiler
// rejects unknown keywords and unknown formats.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Factory produces compilers that are configured identically.
type Factory struct {
	opts   options
	custom bool
}

// NewFactory returns a Factory whose compilers understand the schemaform
// formats and keywords. Strictness is off unless WithStrict(true) is given,
// so that UI annotations can sit next to validation keywords.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{opts: options{draft: DefaultDraft}, custom: true}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f
}

// NewPlainFactory returns a Factory for standard JSON Schema only. Its
// compilers are strict by default, so schemas using the schemaform vocabulary
// fail to compile.
func NewPlainFactory(opts ...Option) *Factory {
	f := &Factory{opts: options{draft: DefaultDraft, strict: true}}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f
}

// Draft returns the default draft of the compilers built by f.
func (f *Factory) Draft() Draft {
	return f.opts.draft
}

// New returns a new Compiler using the santhosh-tekuri/jsonschema/v6 package.
// Compilers never share state.
func (f *Factory) New() Compiler {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(santhoshDrafts[f.opts.draft])
	c.AssertFormat()

	sc := &santhoshCompiler{c: c, custom: f.custom}
	if f.custom {
		formats.Register(c)
		c.AssertVocabs()
		c.RegisterVocabulary(keywords.Vocabulary())
	}
	if f.opts.strict {
		sc.strict = newStrictChecker(f.custom)
	}
	return sc
}

// santhoshValidator wraps jsonschema.Schema to implement Validator.
type santhoshValidator struct {
	v *jsonschema.Schema
}

// Validate adapts jsonschema.Schema.Validate to match the Validator interface.
func (sv *santhoshValidator) Validate(doc JSONDocument) error {
	return sv.v.Validate(doc)
}

// santhoshCompiler wraps jsonschema.Compiler to implement Compiler.
type santhoshCompiler struct {
	mu     sync.Mutex
	c      *jsonschema.Compiler
	custom bool
	strict *strictChecker
}

func (s *santhoshCompiler) AddSchema(id string, schemaData JSONSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.strict != nil {
		if err := s.strict.check(schemaData); err != nil {
			return err
		}
	}
	if s.custom {
		schemaData = keywords.Lower(schemaData)
	}
	return s.c.AddResource(id, schemaData)
}

func (s *santhoshCompiler) Compile(id string) (Validator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.c.Compile(id)
	if err != nil {
		return nil, err
	}
	return &santhoshValidator{v: v}, nil
}

func (s *santhoshCompiler) SupportedSchemaVersions() []Draft {
	return SupportedDrafts()
}
